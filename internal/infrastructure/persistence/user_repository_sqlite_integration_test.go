//go:build integration
// +build integration

package persistence

import (
	"context"
	"testing"

	"github.com/jtsigarra/xferdx/internal/domain/users"
	"github.com/jtsigarra/xferdx/internal/infrastructure/persistence/models"
	"github.com/jtsigarra/xferdx/internal/pkg/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserSqliteRepository_Create(t *testing.T) {
	ctx := SetupTestDB(t, config.SqliteDbType)

	user := CreateTestUser(t, "rmadrigal", users.RoleRadiologist)

	err := ctx.UserRepo.Create(context.Background(), user)
	require.NoError(t, err)

	// Verify using GORM model (infrastructure concern)
	var createdUserModel models.UserModel
	err = ctx.DB.First(&createdUserModel, "id = ?", user.ID).Error
	require.NoError(t, err)
	assert.Equal(t, user.Username, createdUserModel.Username)
	assert.Equal(t, users.RoleRadiologist, createdUserModel.Role)
}

func TestUserSqliteRepository_Create_DuplicateUsername(t *testing.T) {
	ctx := SetupTestDB(t, config.SqliteDbType)

	first := CreateTestUser(t, "frontdesk", users.RoleStaff)
	require.NoError(t, ctx.UserRepo.Create(context.Background(), first))

	second := CreateTestUser(t, "frontdesk", users.RoleStaff)
	err := ctx.UserRepo.Create(context.Background(), second)
	assert.Error(t, err)
	assert.ErrorIs(t, err, users.ErrDuplicateUsername)
}

func TestUserSqliteRepository_Create_InvalidUser(t *testing.T) {
	ctx := SetupTestDB(t, config.SqliteDbType)

	user := &users.User{} // Invalid - missing required fields

	err := ctx.UserRepo.Create(context.Background(), user)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "validation")
}

func TestUserSqliteRepository_GetByUsername(t *testing.T) {
	ctx := SetupTestDB(t, config.SqliteDbType)

	user := CreateTestUser(t, "techbay1", users.RoleRadTech)
	require.NoError(t, ctx.UserRepo.Create(context.Background(), user))

	fetchedUser, err := ctx.UserRepo.GetByUsername(context.Background(), "techbay1")
	require.NoError(t, err)
	assert.Equal(t, user.ID, fetchedUser.ID)
	assert.Equal(t, user.PasswordHash, fetchedUser.PasswordHash)
}

func TestUserSqliteRepository_GetByID_NotFound(t *testing.T) {
	ctx := SetupTestDB(t, config.SqliteDbType)

	_, err := ctx.UserRepo.GetByID(context.Background(), "non-existent-id")
	assert.Error(t, err)
	assert.ErrorIs(t, err, users.ErrUserNotFound)
}

func TestUserSqliteRepository_List(t *testing.T) {
	ctx := SetupTestDB(t, config.SqliteDbType)

	require.NoError(t, ctx.UserRepo.Create(context.Background(), CreateTestUser(t, "zeta", users.RoleAdmin)))
	require.NoError(t, ctx.UserRepo.Create(context.Background(), CreateTestUser(t, "alpha", users.RoleStaff)))

	list, err := ctx.UserRepo.List(context.Background())
	require.NoError(t, err)
	require.Len(t, list, 2)
	// Ordered by username
	assert.Equal(t, "alpha", list[0].Username)
	assert.Equal(t, "zeta", list[1].Username)
}
