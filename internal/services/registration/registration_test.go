package registration

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/course-access-bot/internal/models"
)

type mockRepository struct {
	mock.Mock
}

func (m *mockRepository) EmailTaken(ctx context.Context, email string, excludeUserID int64) (bool, error) {
	args := m.Called(ctx, email, excludeUserID)
	return args.Bool(0), args.Error(1)
}

func (m *mockRepository) CreateUser(ctx context.Context, telegramID int64, username *string, email string) (int64, error) {
	args := m.Called(ctx, telegramID, username, email)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockRepository) UpdateUserEmail(ctx context.Context, userID int64, email string) error {
	args := m.Called(ctx, userID, email)
	return args.Error(0)
}

func TestIsValidEmail(t *testing.T) {
	tests := []struct {
		email string
		want  bool
	}{
		{"student@example.com", true},
		{"a@b.c", true},
		{"no-at-sign.com", false},
		{"no-dot@example", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.email, func(t *testing.T) {
			assert.Equal(t, tt.want, IsValidEmail(tt.email))
		})
	}
}

func TestSubmitEmail(t *testing.T) {
	t.Run("invalid email keeps dialog open", func(t *testing.T) {
		repo := new(mockRepository)

		res, err := New(repo).SubmitEmail(context.Background(),
			models.DialogState{Step: models.StepAwaitingEmail, NewTelegramID: 100500}, "not-an-email")

		require.NoError(t, err)
		assert.Equal(t, StatusInvalid, res.Status)
		repo.AssertNotCalled(t, "EmailTaken", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("taken email keeps dialog open", func(t *testing.T) {
		repo := new(mockRepository)
		repo.On("EmailTaken", mock.Anything, "student@example.com", int64(0)).
			Return(true, nil)

		res, err := New(repo).SubmitEmail(context.Background(),
			models.DialogState{Step: models.StepAwaitingEmail, NewTelegramID: 100500}, "student@example.com")

		require.NoError(t, err)
		assert.Equal(t, StatusTaken, res.Status)
		repo.AssertNotCalled(t, "CreateUser", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("creates new user with trimmed email", func(t *testing.T) {
		repo := new(mockRepository)
		repo.On("EmailTaken", mock.Anything, "student@example.com", int64(0)).
			Return(false, nil)
		repo.On("CreateUser", mock.Anything, int64(100500), mock.Anything, "student@example.com").
			Return(int64(7), nil)

		res, err := New(repo).SubmitEmail(context.Background(),
			models.DialogState{
				Step:          models.StepAwaitingEmail,
				NewTelegramID: 100500,
				NewUsername:   "student",
			}, "  student@example.com  ")

		require.NoError(t, err)
		assert.Equal(t, StatusCreated, res.Status)
		assert.Equal(t, int64(7), res.UserID)
		assert.Equal(t, "student@example.com", res.Email)
		repo.AssertExpectations(t)
	})

	t.Run("updates existing user and excludes it from taken check", func(t *testing.T) {
		repo := new(mockRepository)
		repo.On("EmailTaken", mock.Anything, "new@example.com", int64(7)).
			Return(false, nil)
		repo.On("UpdateUserEmail", mock.Anything, int64(7), "new@example.com").
			Return(nil)

		res, err := New(repo).SubmitEmail(context.Background(),
			models.DialogState{Step: models.StepAwaitingEmail, UserIDToUpdate: 7}, "new@example.com")

		require.NoError(t, err)
		assert.Equal(t, StatusUpdated, res.Status)
		assert.Equal(t, int64(7), res.UserID)
		repo.AssertExpectations(t)
	})
}
