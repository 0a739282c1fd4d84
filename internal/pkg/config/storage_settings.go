package config

import (
	"encoding/hex"
	"fmt"

	"github.com/go-playground/validator/v10"
)

// StorageSettings holds the object storage configuration. Provider selects
// between the local filesystem and Azure Blob Storage. When EncryptionKey is
// set (hex encoded, 16, 24 or 32 bytes) stored objects are encrypted at rest.
type StorageSettings struct {
	Provider         string `mapstructure:"provider" validate:"required,oneof=fs azure"`
	Root             string `mapstructure:"root"`
	ConnectionString string `mapstructure:"connection_string"`
	Container        string `mapstructure:"container"`
	EncryptionKey    string `mapstructure:"encryption_key"`
}

// Validate checks that all fields in StorageSettings are valid
func (s *StorageSettings) Validate() error {
	validate := validator.New()

	if err := validate.Struct(s); err != nil {
		return fmt.Errorf("validation failed for StorageSettings: %w", err)
	}

	if s.Provider == AzureStorageProvider {
		if s.ConnectionString == "" {
			return fmt.Errorf("connection_string is required for the azure provider")
		}
		if s.Container == "" {
			return fmt.Errorf("container is required for the azure provider")
		}
	}

	if s.EncryptionKey != "" {
		key, err := hex.DecodeString(s.EncryptionKey)
		if err != nil {
			return fmt.Errorf("encryption_key must be hex encoded: %w", err)
		}
		switch len(key) {
		case 16, 24, 32:
		default:
			return fmt.Errorf("encryption_key must decode to 16, 24 or 32 bytes, got %d", len(key))
		}
	}

	return nil
}

// EncryptionKeyBytes returns the decoded at-rest encryption key, or nil when
// encryption is not configured. Call Validate first.
func (s *StorageSettings) EncryptionKeyBytes() []byte {
	if s.EncryptionKey == "" {
		return nil
	}
	key, err := hex.DecodeString(s.EncryptionKey)
	if err != nil {
		return nil
	}
	return key
}
