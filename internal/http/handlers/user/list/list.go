// Package list реализует страницу со списком пользователей.
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

// Service описывает интерфейс хранилища пользователей.
type Service interface {
	ListUsers(ctx context.Context) ([]*models.User, error)
}

// Handler обрабатывает запросы списка пользователей.
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
	const op = "handlers.user.list"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	users, err := h.repo.ListUsers(r.Context())
	if err != nil {
		log.Error("failed to list users", sl.Err(err))
		webview.SetFlash(w, "error", "Ошибка при получении списка пользователей")
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}
	log.Info("users listed", slog.Int("count", len(users)))

	h.view.Render(w, r, "users.html", webview.PageData{Active: "users", Data: users})
}
