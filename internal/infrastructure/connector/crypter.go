package connector

import (
	"context"
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"fmt"

	"github.com/jtsigarra/xferdx/internal/domain/studies"
	"github.com/jtsigarra/xferdx/internal/pkg/logger"
)

type encryptedConnector struct {
	inner  studies.StorageConnector
	aead   cipher.AEAD
	logger logger.Logger
}

// NewEncryptedConnector wraps a StorageConnector with AES-GCM at-rest
// encryption. The key must be 16, 24 or 32 bytes. Each object carries its
// own random nonce, prepended to the ciphertext.
func NewEncryptedConnector(inner studies.StorageConnector, key []byte, logger logger.Logger) (studies.StorageConnector, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("failed to create AES cipher: %w", err)
	}

	aead, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("failed to create GCM: %w", err)
	}

	return &encryptedConnector{
		inner:  inner,
		aead:   aead,
		logger: logger,
	}, nil
}

func (c *encryptedConnector) Upload(ctx context.Context, key string, data []byte) error {
	nonce := make([]byte, c.aead.NonceSize())
	if _, err := rand.Read(nonce); err != nil {
		return fmt.Errorf("failed to generate nonce: %w", err)
	}

	sealed := c.aead.Seal(nonce, nonce, data, nil)
	return c.inner.Upload(ctx, key, sealed)
}

func (c *encryptedConnector) Download(ctx context.Context, key string) ([]byte, error) {
	sealed, err := c.inner.Download(ctx, key)
	if err != nil {
		return nil, err
	}

	if len(sealed) < c.aead.NonceSize() {
		return nil, fmt.Errorf("object %s is too short to be a sealed payload", key)
	}

	nonce, ciphertext := sealed[:c.aead.NonceSize()], sealed[c.aead.NonceSize():]
	data, err := c.aead.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to decrypt object %s: %w", key, err)
	}
	return data, nil
}

func (c *encryptedConnector) Delete(ctx context.Context, key string) error {
	return c.inner.Delete(ctx, key)
}
