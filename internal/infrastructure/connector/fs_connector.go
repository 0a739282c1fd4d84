package connector

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/jtsigarra/xferdx/internal/domain/studies"
	"github.com/jtsigarra/xferdx/internal/pkg/config"
	"github.com/jtsigarra/xferdx/internal/pkg/logger"

	"github.com/google/uuid"
)

type fsConnector struct {
	root   string
	logger logger.Logger
}

// NewFsConnector creates a StorageConnector backed by a local directory.
// Object keys map to file paths under the root.
func NewFsConnector(settings *config.StorageSettings, logger logger.Logger) (studies.StorageConnector, error) {
	root := settings.Root
	if root == "" {
		return nil, fmt.Errorf("storage root is required for the fs provider")
	}

	if err := os.MkdirAll(root, 0o750); err != nil {
		return nil, fmt.Errorf("failed to create storage root %s: %w", root, err)
	}

	return &fsConnector{
		root:   root,
		logger: logger,
	}, nil
}

func (c *fsConnector) Upload(ctx context.Context, key string, data []byte) error {
	path, err := c.resolve(key)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return fmt.Errorf("failed to create directory for %s: %w", key, err)
	}

	// Write to a temp file first so readers never observe partial content
	tmp := path + "." + uuid.NewString() + ".tmp"
	if err := os.WriteFile(tmp, data, 0o640); err != nil {
		return fmt.Errorf("failed to write object %s: %w", key, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("failed to store object %s: %w", key, err)
	}

	c.logger.Info("Stored object ", key)
	return nil
}

func (c *fsConnector) Download(ctx context.Context, key string) ([]byte, error) {
	path, err := c.resolve(key)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read object %s: %w", key, err)
	}
	return data, nil
}

func (c *fsConnector) Delete(ctx context.Context, key string) error {
	path, err := c.resolve(key)
	if err != nil {
		return err
	}

	if err := os.Remove(path); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to delete object %s: %w", key, err)
	}

	c.logger.Info("Deleted object ", key)
	return nil
}

// resolve maps an object key to a path under the root, rejecting keys that
// would escape it.
func (c *fsConnector) resolve(key string) (string, error) {
	if key == "" {
		return "", fmt.Errorf("object key must not be empty")
	}

	cleaned := filepath.Clean(filepath.FromSlash(key))
	if filepath.IsAbs(cleaned) || cleaned == ".." || strings.HasPrefix(cleaned, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("invalid object key %s", key)
	}

	return filepath.Join(c.root, cleaned), nil
}
