// Package page реализует страницу подготовки рассылки.
package page

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"

	"github.com/magabrotheeeer/course-access-bot/internal/http/webview"
	"github.com/magabrotheeeer/course-access-bot/internal/lib/sl"
	"github.com/magabrotheeeer/course-access-bot/internal/models"
)

// Service описывает интерфейс хранилища пользователей.
type Service interface {
	ListUsersWithTelegramID(ctx context.Context) ([]*models.User, error)
}

// Handler обрабатывает страницу рассылки.
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
	const op = "handlers.broadcast.page"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	users, err := h.repo.ListUsersWithTelegramID(r.Context())
	if err != nil {
		log.Error("failed to load broadcast recipients", sl.Err(err))
		webview.SetFlash(w, "error", "Ошибка при загрузке страницы рассылки")
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	h.view.Render(w, r, "broadcast.html", webview.PageData{Active: "broadcast", Data: users})
}
