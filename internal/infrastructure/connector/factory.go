package connector

import (
	"context"
	"fmt"

	"github.com/jtsigarra/xferdx/internal/domain/studies"
	"github.com/jtsigarra/xferdx/internal/pkg/config"
	"github.com/jtsigarra/xferdx/internal/pkg/logger"
)

// NewStorageConnector creates the configured StorageConnector. When an
// at-rest encryption key is configured the connector is wrapped so every
// stored object is sealed with AES-GCM.
func NewStorageConnector(ctx context.Context, settings *config.StorageSettings, logger logger.Logger) (studies.StorageConnector, error) {
	var conn studies.StorageConnector
	var err error

	switch settings.Provider {
	case config.FsStorageProvider:
		conn, err = NewFsConnector(settings, logger)
	case config.AzureStorageProvider:
		conn, err = NewAzureBlobConnector(ctx, settings, logger)
	default:
		return nil, fmt.Errorf("unsupported storage provider: %s", settings.Provider)
	}
	if err != nil {
		return nil, err
	}

	if key := settings.EncryptionKeyBytes(); key != nil {
		conn, err = NewEncryptedConnector(conn, key, logger)
		if err != nil {
			return nil, err
		}
		logger.Info("At-rest encryption enabled for stored objects")
	}

	return conn, nil
}
