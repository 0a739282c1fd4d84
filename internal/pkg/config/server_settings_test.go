//go:build unit
// +build unit

package config

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestServerSettings_Validate(t *testing.T) {
	tests := []struct {
		name     string
		settings ServerSettings
		wantErr  bool
	}{
		{"default port", ServerSettings{Port: "8080"}, false},
		{"low port", ServerSettings{Port: "80"}, false},
		{"missing port", ServerSettings{}, true},
		{"non numeric port", ServerSettings{Port: "http"}, true},
		{"port out of range", ServerSettings{Port: "70000"}, true},
		{"zero port", ServerSettings{Port: "0"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.settings.Validate()
			if tt.wantErr {
				require.Error(t, err)
			} else {
				require.NoError(t, err)
			}
		})
	}
}

func TestAuthSettings_Validate(t *testing.T) {
	valid := AuthSettings{
		JWTSecret:              "0123456789abcdef0123456789abcdef",
		TokenTTLMinutes:        60,
		LoginRateLimit:         5,
		LoginRateWindowSeconds: 300,
	}

	t.Run("valid settings", func(t *testing.T) {
		require.NoError(t, valid.Validate())
	})

	t.Run("short secret", func(t *testing.T) {
		s := valid
		s.JWTSecret = "short"
		require.Error(t, s.Validate())
	})

	t.Run("ttl out of range", func(t *testing.T) {
		s := valid
		s.TokenTTLMinutes = 0
		require.Error(t, s.Validate())

		s.TokenTTLMinutes = 2000
		require.Error(t, s.Validate())
	})

	t.Run("rate limit too small", func(t *testing.T) {
		s := valid
		s.LoginRateLimit = 0
		require.Error(t, s.Validate())
	})
}

func TestStorageSettings_Validate(t *testing.T) {
	t.Run("fs provider defaults", func(t *testing.T) {
		s := StorageSettings{Provider: FsStorageProvider, Root: "./media"}
		require.NoError(t, s.Validate())
	})

	t.Run("azure requires connection string and container", func(t *testing.T) {
		s := StorageSettings{Provider: AzureStorageProvider}
		require.Error(t, s.Validate())

		s.ConnectionString = "UseDevelopmentStorage=true"
		require.Error(t, s.Validate())

		s.Container = "studies"
		require.NoError(t, s.Validate())
	})

	t.Run("encryption key must be hex of a valid AES length", func(t *testing.T) {
		s := StorageSettings{Provider: FsStorageProvider, EncryptionKey: "not-hex"}
		require.Error(t, s.Validate())

		s.EncryptionKey = "00112233445566778899aabbccddeeff"
		require.NoError(t, s.Validate())
		require.Len(t, s.EncryptionKeyBytes(), 16)

		s.EncryptionKey = "0011223344"
		require.Error(t, s.Validate())
	})

	t.Run("unknown provider", func(t *testing.T) {
		s := StorageSettings{Provider: "s3"}
		require.Error(t, s.Validate())
	})
}

func TestEmailSettings_Validate(t *testing.T) {
	t.Run("disabled when empty", func(t *testing.T) {
		s := EmailSettings{}
		require.NoError(t, s.Validate())
		require.False(t, s.Enabled())
	})

	t.Run("key requires from address", func(t *testing.T) {
		s := EmailSettings{SendgridAPIKey: "SG.test"}
		require.Error(t, s.Validate())

		s.FromAddress = "reports@imaging.example.com"
		require.NoError(t, s.Validate())
		require.True(t, s.Enabled())
	})

	t.Run("invalid from address", func(t *testing.T) {
		s := EmailSettings{FromAddress: "not-an-email"}
		require.Error(t, s.Validate())
	})
}
