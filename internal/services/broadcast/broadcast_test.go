package broadcast

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/course-access-bot/internal/models"
	"github.com/magabrotheeeer/course-access-bot/internal/storage/repository"
)

type mockRepository struct {
	mock.Mock
}

func (m *mockRepository) ListUsersWithTelegramID(ctx context.Context) ([]*models.User, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.User), args.Error(1)
}

func (m *mockRepository) GetUser(ctx context.Context, id int64) (*models.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

type mockSender struct {
	mock.Mock
}

func (m *mockSender) SendText(chatID int64, text string) error {
	args := m.Called(chatID, text)
	return args.Error(0)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestSendAll(t *testing.T) {
	t.Run("counts successes and failures", func(t *testing.T) {
		repo := new(mockRepository)
		repo.On("ListUsersWithTelegramID", mock.Anything).Return([]*models.User{
			{ID: 1, TelegramID: 111},
			{ID: 2, TelegramID: 222},
			{ID: 3, TelegramID: 333},
		}, nil)

		sender := new(mockSender)
		sender.On("SendText", int64(111), "привет").Return(nil)
		sender.On("SendText", int64(222), "привет").Return(errors.New("bot was blocked by the user"))
		sender.On("SendText", int64(333), "привет").Return(nil)

		summary, err := New(repo, sender, discardLogger()).SendAll(context.Background(), "привет")

		require.NoError(t, err)
		assert.Equal(t, 2, summary.Sent)
		assert.Equal(t, 1, summary.Failed)
		require.Len(t, summary.Errors, 1)
		assert.Contains(t, summary.Errors[0], "Пользователь 2")
		sender.AssertExpectations(t)
	})

	t.Run("failure does not stop the loop", func(t *testing.T) {
		repo := new(mockRepository)
		repo.On("ListUsersWithTelegramID", mock.Anything).Return([]*models.User{
			{ID: 1, TelegramID: 111},
			{ID: 2, TelegramID: 222},
		}, nil)

		sender := new(mockSender)
		sender.On("SendText", int64(111), "text").Return(errors.New("chat not found"))
		sender.On("SendText", int64(222), "text").Return(nil)

		summary, err := New(repo, sender, discardLogger()).SendAll(context.Background(), "text")

		require.NoError(t, err)
		assert.Equal(t, 1, summary.Sent)
		sender.AssertCalled(t, "SendText", int64(222), "text")
	})

	t.Run("no recipients", func(t *testing.T) {
		repo := new(mockRepository)
		repo.On("ListUsersWithTelegramID", mock.Anything).Return([]*models.User{}, nil)

		_, err := New(repo, new(mockSender), discardLogger()).SendAll(context.Background(), "text")

		assert.ErrorIs(t, err, ErrNoTargets)
	})

	t.Run("storage error aborts", func(t *testing.T) {
		repo := new(mockRepository)
		repo.On("ListUsersWithTelegramID", mock.Anything).Return(nil, errors.New("connection refused"))

		_, err := New(repo, new(mockSender), discardLogger()).SendAll(context.Background(), "text")

		assert.Error(t, err)
	})
}

func TestSendToUser(t *testing.T) {
	t.Run("sends to a single user", func(t *testing.T) {
		repo := new(mockRepository)
		repo.On("GetUser", mock.Anything, int64(2)).
			Return(&models.User{ID: 2, TelegramID: 222}, nil)

		sender := new(mockSender)
		sender.On("SendText", int64(222), "text").Return(nil)

		summary, err := New(repo, sender, discardLogger()).SendToUser(context.Background(), 2, "text")

		require.NoError(t, err)
		assert.Equal(t, 1, summary.Sent)
	})

	t.Run("unknown user", func(t *testing.T) {
		repo := new(mockRepository)
		repo.On("GetUser", mock.Anything, int64(99)).
			Return(nil, repository.ErrNotFound)

		_, err := New(repo, new(mockSender), discardLogger()).SendToUser(context.Background(), 99, "text")

		assert.ErrorIs(t, err, ErrNoTargets)
	})

	t.Run("user without telegram id", func(t *testing.T) {
		repo := new(mockRepository)
		repo.On("GetUser", mock.Anything, int64(2)).
			Return(&models.User{ID: 2}, nil)

		_, err := New(repo, new(mockSender), discardLogger()).SendToUser(context.Background(), 2, "text")

		assert.ErrorIs(t, err, ErrNoTargets)
	})
}
