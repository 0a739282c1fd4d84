// Package connector provides object storage implementations behind the
// StorageConnector interface: a local filesystem store, an Azure Blob
// Storage store and an AES-GCM encrypting wrapper for at-rest encryption.
package connector
