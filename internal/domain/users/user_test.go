//go:build unit
// +build unit

package users

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validUser() *User {
	return &User{
		ID:           uuid.NewString(),
		Username:     "dr.reyes",
		Email:        "reyes@imaging.example.com",
		FirstName:    "Amara",
		LastName:     "Reyes",
		Role:         RoleRadiologist,
		PasswordHash: "$2a$10$abcdefghijklmnopqrstuv",
		CreatedAt:    time.Now(),
	}
}

func TestUser_Validate(t *testing.T) {
	t.Run("valid user", func(t *testing.T) {
		require.NoError(t, validUser().Validate())
	})

	t.Run("invalid role", func(t *testing.T) {
		u := validUser()
		u.Role = "superuser"
		require.Error(t, u.Validate())
	})

	t.Run("short username", func(t *testing.T) {
		u := validUser()
		u.Username = "ab"
		require.Error(t, u.Validate())
	})

	t.Run("invalid email", func(t *testing.T) {
		u := validUser()
		u.Email = "not-an-email"
		require.Error(t, u.Validate())
	})

	t.Run("missing password hash", func(t *testing.T) {
		u := validUser()
		u.PasswordHash = ""
		require.Error(t, u.Validate())
	})

	t.Run("non uuid id", func(t *testing.T) {
		u := validUser()
		u.ID = "user-1"
		require.Error(t, u.Validate())
	})
}

func TestUser_FullName(t *testing.T) {
	u := validUser()
	assert.Equal(t, "Amara Reyes", u.FullName())

	u.FirstName = ""
	u.LastName = ""
	assert.Equal(t, "dr.reyes", u.FullName())
}

func TestValidRole(t *testing.T) {
	for _, role := range Roles {
		assert.True(t, ValidRole(role), role)
	}
	assert.False(t, ValidRole("superuser"))
	assert.False(t, ValidRole(""))
}
