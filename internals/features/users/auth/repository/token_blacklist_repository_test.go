package repository_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"disiplinku_backend/internals/databases/dbtest"
	"disiplinku_backend/internals/features/users/auth/model"
	"disiplinku_backend/internals/features/users/auth/repository"
)

func TestTokenBlacklistRepository(t *testing.T) {
	db := dbtest.Open(t)
	repo := repository.NewTokenBlacklistRepository(db, "secret")
	ctx := context.Background()
	now := time.Now().UTC()

	require.NoError(t, repo.Add(ctx, "token-a", now.Add(time.Hour)))
	require.NoError(t, repo.Add(ctx, "token-a", now.Add(time.Hour)))
	require.NoError(t, repo.Add(ctx, "token-b", now.Add(-time.Minute)))

	var stored []model.TokenBlacklistModel
	require.NoError(t, db.Find(&stored).Error)
	require.Len(t, stored, 2)
	for _, row := range stored {
		assert.Len(t, row.TokenBlacklistToken, 64)
		assert.NotContains(t, row.TokenBlacklistToken, "token")
	}

	ok, err := repo.IsBlacklisted(ctx, "token-a")
	require.NoError(t, err)
	assert.True(t, ok)
	ok, err = repo.IsBlacklisted(ctx, "token-c")
	require.NoError(t, err)
	assert.False(t, ok)

	n, err := repo.PurgeExpired(ctx, now)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
	ok, _ = repo.IsBlacklisted(ctx, "token-b")
	assert.False(t, ok)

	// secret berbeda, hash berbeda
	other := repository.NewTokenBlacklistRepository(db, "other")
	ok, err = other.IsBlacklisted(ctx, "token-a")
	require.NoError(t, err)
	assert.False(t, ok)
}
