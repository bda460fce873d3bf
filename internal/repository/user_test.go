package repository

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/rocketplay/tictactoe-league/internal/apperror"
	"github.com/rocketplay/tictactoe-league/internal/entity"
	"github.com/rocketplay/tictactoe-league/internal/repository/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newUserRepo(t *testing.T) (context.Context, UserRepository) {
	t.Helper()

	ctx := context.Background()

	st, err := storage.NewSQLiteStorage(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)

	t.Cleanup(func() {
		require.NoError(t, st.Close())
	})

	require.NoError(t, st.Init(ctx))

	return ctx, NewUserRepository(st.Connection)
}

func TestUserRepository_SaveAndFind(t *testing.T) {
	t.Run("Save then FindByName returns the user", func(t *testing.T) {
		ctx, userRepo := newUserRepo(t)

		// Given: a saved user
		user := &entity.User{Name: "alice", Email: "alice@example.com"}
		require.NoError(t, userRepo.Save(ctx, user))

		// When: looking the user up by name
		found, err := userRepo.FindByName(ctx, "alice")

		// Then: the stored record comes back with a zero score
		require.NoError(t, err)
		assert.Equal(t, "alice", found.Name)
		assert.Equal(t, "alice@example.com", found.Email)
		assert.Equal(t, 0, found.Score)
	})

	t.Run("FindByEmail returns the user", func(t *testing.T) {
		ctx, userRepo := newUserRepo(t)

		user := &entity.User{Name: "bob", Email: "bob@example.com"}
		require.NoError(t, userRepo.Save(ctx, user))

		found, err := userRepo.FindByEmail(ctx, "bob@example.com")

		require.NoError(t, err)
		assert.Equal(t, "bob", found.Name)
	})

	t.Run("FindByName returns ErrUserNotFound for unknown names", func(t *testing.T) {
		ctx, userRepo := newUserRepo(t)

		_, err := userRepo.FindByName(ctx, "nobody")

		require.ErrorIs(t, err, apperror.ErrUserNotFound)
	})

	t.Run("Save rejects a duplicate name", func(t *testing.T) {
		ctx, userRepo := newUserRepo(t)

		require.NoError(t, userRepo.Save(ctx, &entity.User{Name: "alice", Email: "alice@example.com"}))

		err := userRepo.Save(ctx, &entity.User{Name: "alice", Email: "other@example.com"})

		require.Error(t, err)
	})
}

func TestUserRepository_AdjustScore(t *testing.T) {
	t.Run("Applies signed deltas to one user only", func(t *testing.T) {
		ctx, userRepo := newUserRepo(t)

		// Given: two users with zero scores
		require.NoError(t, userRepo.Save(ctx, &entity.User{Name: "alice", Email: "alice@example.com"}))
		require.NoError(t, userRepo.Save(ctx, &entity.User{Name: "bob", Email: "bob@example.com"}))

		// When: crediting alice and debiting bob
		require.NoError(t, userRepo.AdjustScore(ctx, "alice", 1))
		require.NoError(t, userRepo.AdjustScore(ctx, "bob", -1))

		// Then: each score moved by exactly the delta
		alice, err := userRepo.FindByName(ctx, "alice")
		require.NoError(t, err)
		assert.Equal(t, 1, alice.Score)

		bob, err := userRepo.FindByName(ctx, "bob")
		require.NoError(t, err)
		assert.Equal(t, -1, bob.Score)
	})

	t.Run("Score may go below zero", func(t *testing.T) {
		ctx, userRepo := newUserRepo(t)

		require.NoError(t, userRepo.Save(ctx, &entity.User{Name: "carol", Email: "carol@example.com"}))

		require.NoError(t, userRepo.AdjustScore(ctx, "carol", -1))
		require.NoError(t, userRepo.AdjustScore(ctx, "carol", -1))

		carol, err := userRepo.FindByName(ctx, "carol")
		require.NoError(t, err)
		assert.Equal(t, -2, carol.Score)
	})

	t.Run("Returns ErrUserNotFound for unknown names", func(t *testing.T) {
		ctx, userRepo := newUserRepo(t)

		err := userRepo.AdjustScore(ctx, "nobody", 1)

		require.ErrorIs(t, err, apperror.ErrUserNotFound)
	})
}

func TestUserRepository_Rankings(t *testing.T) {
	ctx, userRepo := newUserRepo(t)

	// Given: three users with different scores
	require.NoError(t, userRepo.Save(ctx, &entity.User{Name: "alice", Email: "alice@example.com"}))
	require.NoError(t, userRepo.Save(ctx, &entity.User{Name: "bob", Email: "bob@example.com"}))
	require.NoError(t, userRepo.Save(ctx, &entity.User{Name: "carol", Email: "carol@example.com"}))

	require.NoError(t, userRepo.AdjustScore(ctx, "bob", 3))
	require.NoError(t, userRepo.AdjustScore(ctx, "carol", -2))

	// When: reading the rankings
	users, err := userRepo.Rankings(ctx)

	// Then: users come back ordered by score descending
	require.NoError(t, err)
	require.Len(t, users, 3)
	assert.Equal(t, "bob", users[0].Name)
	assert.Equal(t, "alice", users[1].Name)
	assert.Equal(t, "carol", users[2].Name)
}
