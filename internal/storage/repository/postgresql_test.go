package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

func setupTestDB(t *testing.T) (*Storage, func()) {
	ctx := context.Background()

	pgContainer, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	require.NoError(t, err, "failed to start container")

	dsn, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err, "failed to get connection string")

	// Пробуем подключиться несколько раз с ретраями
	var storage *Storage
	for range 10 {
		storage, err = New(dsn)
		if err == nil {
			break
		}
		time.Sleep(1 * time.Second)
	}
	require.NoError(t, err, "failed to create storage after retries")

	cleanup := func() {
		if storage != nil && storage.DB != nil {
			_ = storage.DB.Close()
		}
		if err := pgContainer.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %s", err)
		}
	}

	return storage, cleanup
}

func strPtr(s string) *string { return &s }

func TestStorage_Users(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	storage, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()

	t.Run("create and get by telegram id", func(t *testing.T) {
		id, err := storage.CreateUser(ctx, 111, strPtr("alice"), "alice@example.com")
		require.NoError(t, err)
		assert.Greater(t, id, int64(0))

		user, err := storage.GetUserByTelegramID(ctx, 111)
		require.NoError(t, err)
		assert.Equal(t, id, user.ID)
		assert.Equal(t, "alice@example.com", user.Email)
		require.NotNil(t, user.TelegramUsername)
		assert.Equal(t, "alice", *user.TelegramUsername)
		assert.True(t, user.IsActive)
		assert.Nil(t, user.ReferralLinkOverride)
		assert.Nil(t, user.ReferralStatusOverride)
	})

	t.Run("unknown telegram id", func(t *testing.T) {
		_, err := storage.GetUserByTelegramID(ctx, 999999)
		require.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("create without username", func(t *testing.T) {
		id, err := storage.CreateUser(ctx, 112, nil, "temp_112@placeholder.local")
		require.NoError(t, err)

		user, err := storage.GetUser(ctx, id)
		require.NoError(t, err)
		assert.Nil(t, user.TelegramUsername)
		assert.False(t, user.HasEmail())
	})

	t.Run("email taken", func(t *testing.T) {
		id, err := storage.CreateUser(ctx, 113, strPtr("bob"), "bob@example.com")
		require.NoError(t, err)

		taken, err := storage.EmailTaken(ctx, "bob@example.com", 0)
		require.NoError(t, err)
		assert.True(t, taken)

		// Свой собственный адрес не считается занятым
		taken, err = storage.EmailTaken(ctx, "bob@example.com", id)
		require.NoError(t, err)
		assert.False(t, taken)

		taken, err = storage.EmailTaken(ctx, "nobody@example.com", 0)
		require.NoError(t, err)
		assert.False(t, taken)
	})

	t.Run("update email", func(t *testing.T) {
		id, err := storage.CreateUser(ctx, 114, strPtr("carol"), "temp_114@placeholder.local")
		require.NoError(t, err)

		err = storage.UpdateUserEmail(ctx, id, "carol@example.com")
		require.NoError(t, err)

		user, err := storage.GetUser(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, "carol@example.com", user.Email)
		assert.True(t, user.HasEmail())
	})

	t.Run("overrides and toggle", func(t *testing.T) {
		id, err := storage.CreateUser(ctx, 115, strPtr("dave"), "dave@example.com")
		require.NoError(t, err)

		status := true
		err = storage.UpdateUserOverrides(ctx, id, strPtr("https://t.me/custom"), &status, true)
		require.NoError(t, err)

		user, err := storage.GetUser(ctx, id)
		require.NoError(t, err)
		require.NotNil(t, user.ReferralLinkOverride)
		assert.Equal(t, "https://t.me/custom", *user.ReferralLinkOverride)
		require.NotNil(t, user.ReferralStatusOverride)
		assert.True(t, *user.ReferralStatusOverride)

		// Сброс переопределений обратно в NULL
		err = storage.UpdateUserOverrides(ctx, id, nil, nil, true)
		require.NoError(t, err)

		user, err = storage.GetUser(ctx, id)
		require.NoError(t, err)
		assert.Nil(t, user.ReferralLinkOverride)
		assert.Nil(t, user.ReferralStatusOverride)

		active, err := storage.ToggleUserActive(ctx, id)
		require.NoError(t, err)
		assert.False(t, active)

		active, err = storage.ToggleUserActive(ctx, id)
		require.NoError(t, err)
		assert.True(t, active)

		_, err = storage.ToggleUserActive(ctx, 999999)
		require.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("list users with telegram id", func(t *testing.T) {
		all, err := storage.ListUsers(ctx)
		require.NoError(t, err)
		assert.NotEmpty(t, all)

		withTG, err := storage.ListUsersWithTelegramID(ctx)
		require.NoError(t, err)
		for _, u := range withTG {
			assert.NotZero(t, u.TelegramID)
		}
	})
}
