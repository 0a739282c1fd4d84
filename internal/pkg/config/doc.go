// Package config provides functionality for loading and managing application
// configuration.
//
// Settings are read from a YAML file selected by CONFIG_PATH, merged with
// environment overrides (PORT above all), validated, and handed to the rest
// of the application as typed sections.
package config
