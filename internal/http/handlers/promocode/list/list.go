// Package list реализует страницу со списком промокодов.
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

// Service описывает интерфейс хранилища промокодов.
type Service interface {
	ListPromoCodes(ctx context.Context) ([]*models.PromoCode, error)
}

// Handler обрабатывает запросы списка промокодов.
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
	const op = "handlers.promocode.list"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	codes, err := h.repo.ListPromoCodes(r.Context())
	if err != nil {
		log.Error("failed to list promo codes", sl.Err(err))
		webview.SetFlash(w, "error", "Ошибка при получении списка промокодов")
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	h.view.Render(w, r, "promocodes.html", webview.PageData{Active: "promocodes", Data: codes})
}
