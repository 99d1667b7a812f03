package today

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/course-access-bot/internal/http/webview"
	"github.com/magabrotheeeer/course-access-bot/internal/models"
)

type mockService struct {
	mock.Mock
}

func (m *mockService) ListSubscriptionsStartingOn(ctx context.Context, day time.Time) ([]*models.Subscription, error) {
	args := m.Called(ctx, day)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Subscription), args.Error(1)
}

func (m *mockService) ListSubscriptionsEndingOn(ctx context.Context, day time.Time) ([]*models.Subscription, error) {
	args := m.Called(ctx, day)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Subscription), args.Error(1)
}

func TestSubscriptionsToday(t *testing.T) {
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	view, err := webview.New(log)
	require.NoError(t, err)

	amount := 1500
	repo := new(mockService)
	repo.On("ListSubscriptionsStartingOn", mock.Anything, mock.MatchedBy(func(day time.Time) bool {
		return day.Hour() == 0 && day.Minute() == 0
	})).Return([]*models.Subscription{
		{ID: 1, UserID: 7, StartDate: time.Now(), EndDate: time.Now().AddDate(0, 0, 30), PaymentAmount: &amount},
	}, nil)
	repo.On("ListSubscriptionsEndingOn", mock.Anything, mock.Anything).
		Return([]*models.Subscription{}, nil)

	req := httptest.NewRequest(http.MethodGet, "/subscriptions", nil)
	rec := httptest.NewRecorder()
	New(log, repo, view).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "1500 ₽")
	assert.Contains(t, rec.Body.String(), "Сегодня ничего не истекает")
	repo.AssertExpectations(t)
}
