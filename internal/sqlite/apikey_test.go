package sqlite

import (
	"context"
	"strings"
	"testing"

	"github.com/rpggio/folio/internal/repository"
	"github.com/stretchr/testify/require"
)

func TestAPIKeyRepository_CreateResolve(t *testing.T) {
	db := NewTestDB(t)
	repo := NewAPIKeyRepository(db)
	ctx := context.Background()

	token, err := repo.Create(ctx, "user1", "laptop")
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(token, TokenPrefix))

	userID, err := repo.ResolveUser(ctx, token)
	require.NoError(t, err)
	require.Equal(t, "user1", userID)

	var stored string
	require.NoError(t, db.QueryRow(`SELECT key_hash FROM api_keys`).Scan(&stored))
	require.NotEqual(t, token, stored, "plaintext token must not be stored")

	var used int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM api_keys WHERE last_used IS NOT NULL`).Scan(&used))
	require.Equal(t, 1, used)
}

func TestAPIKeyRepository_Unknown(t *testing.T) {
	db := NewTestDB(t)
	repo := NewAPIKeyRepository(db)

	_, err := repo.ResolveUser(context.Background(), "folio_nope")
	require.ErrorIs(t, err, repository.ErrNotFound)

	_, err = repo.Create(context.Background(), " ", "")
	require.ErrorIs(t, err, repository.ErrInvalidInput)
}
