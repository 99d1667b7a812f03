// Package today реализует страницу подписок за текущий день: оплаты,
// прошедшие сегодня, и подписки, истекающие сегодня. Сутки берутся
// по локальной дате сервера, интервал полуоткрытый [сегодня, завтра).
package today

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/middleware"

	"github.com/magabrotheeeer/course-access-bot/internal/http/webview"
	"github.com/magabrotheeeer/course-access-bot/internal/lib/sl"
	"github.com/magabrotheeeer/course-access-bot/internal/models"
)

// Service описывает интерфейс хранилища подписок.
type Service interface {
	ListSubscriptionsStartingOn(ctx context.Context, day time.Time) ([]*models.Subscription, error)
	ListSubscriptionsEndingOn(ctx context.Context, day time.Time) ([]*models.Subscription, error)
}

// PageData — данные страницы подписок.
type PageData struct {
	PaymentsToday []*models.Subscription
	EndingToday   []*models.Subscription
}

// Handler обрабатывает страницу подписок за сегодня.
type Handler struct {
	log  *slog.Logger
	repo Service
	view *webview.Renderer
}

// New создает новый экземпляр Handler.
func New(log *slog.Logger, repo Service, view *webview.Renderer) *Handler {
	return &Handler{log: log, repo: repo, view: view}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.subscription.today"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	now := time.Now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	starting, err := h.repo.ListSubscriptionsStartingOn(r.Context(), today)
	if err != nil {
		log.Error("failed to list starting subscriptions", sl.Err(err))
		webview.SetFlash(w, "error", "Ошибка при получении информации о подписках")
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}
	ending, err := h.repo.ListSubscriptionsEndingOn(r.Context(), today)
	if err != nil {
		log.Error("failed to list ending subscriptions", sl.Err(err))
		webview.SetFlash(w, "error", "Ошибка при получении информации о подписках")
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	h.view.Render(w, r, "subscriptions.html", webview.PageData{
		Active: "subscriptions",
		Data: PageData{
			PaymentsToday: starting,
			EndingToday:   ending,
		},
	})
}
