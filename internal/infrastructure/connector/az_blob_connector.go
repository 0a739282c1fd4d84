package connector

import (
	"context"
	"fmt"
	"io"

	"github.com/jtsigarra/xferdx/internal/domain/studies"
	"github.com/jtsigarra/xferdx/internal/pkg/config"
	"github.com/jtsigarra/xferdx/internal/pkg/logger"

	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob"
	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob/bloberror"
)

type azureBlobConnector struct {
	client        *azblob.Client
	containerName string
	logger        logger.Logger
}

// NewAzureBlobConnector creates a StorageConnector backed by Azure Blob
// Storage. The container is created if it does not exist yet.
func NewAzureBlobConnector(ctx context.Context, settings *config.StorageSettings, logger logger.Logger) (studies.StorageConnector, error) {
	if settings.ConnectionString == "" || settings.Container == "" {
		return nil, fmt.Errorf("connection string and container are required for the azure provider")
	}

	client, err := azblob.NewClientFromConnectionString(settings.ConnectionString, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create Azure Blob client: %w", err)
	}

	_, err = client.CreateContainer(ctx, settings.Container, nil)
	if err != nil && !bloberror.HasCode(err, bloberror.ContainerAlreadyExists) {
		return nil, fmt.Errorf("failed to create container %s: %w", settings.Container, err)
	}

	return &azureBlobConnector{
		client:        client,
		containerName: settings.Container,
		logger:        logger,
	}, nil
}

func (c *azureBlobConnector) Upload(ctx context.Context, key string, data []byte) error {
	_, err := c.client.UploadBuffer(ctx, c.containerName, key, data, nil)
	if err != nil {
		return fmt.Errorf("failed to upload object %s: %w", key, err)
	}

	c.logger.Info("Stored object ", key)
	return nil
}

func (c *azureBlobConnector) Download(ctx context.Context, key string) ([]byte, error) {
	resp, err := c.client.DownloadStream(ctx, c.containerName, key, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to download object %s: %w", key, err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read object %s: %w", key, err)
	}
	return data, nil
}

func (c *azureBlobConnector) Delete(ctx context.Context, key string) error {
	_, err := c.client.DeleteBlob(ctx, c.containerName, key, nil)
	if err != nil {
		if bloberror.HasCode(err, bloberror.BlobNotFound) {
			return nil
		}
		return fmt.Errorf("failed to delete object %s: %w", key, err)
	}

	c.logger.Info("Deleted object ", key)
	return nil
}
