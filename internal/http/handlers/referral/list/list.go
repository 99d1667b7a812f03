// Package list реализует страницу реферальных связей.
package list

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"

	"github.com/magabrotheeeer/course-access-bot/internal/http/webview"
	"github.com/magabrotheeeer/course-access-bot/internal/lib/sl"
	"github.com/magabrotheeeer/course-access-bot/internal/models"
)

// Service описывает интерфейс хранилища реферальных связей.
type Service interface {
	ListReferrals(ctx context.Context) ([]*models.Referral, error)
}

// Handler обрабатывает запросы списка рефералов.
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
	const op = "handlers.referral.list"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	referrals, err := h.repo.ListReferrals(r.Context())
	if err != nil {
		log.Error("failed to list referrals", sl.Err(err))
		webview.SetFlash(w, "error", "Ошибка при получении списка рефералов")
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	h.view.Render(w, r, "referrals.html", webview.PageData{Active: "referrals", Data: referrals})
}
