// Package health реализует служебную проверку живости сервиса.
package health

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/render"

	"github.com/magabrotheeeer/course-access-bot/internal/http/response"
	"github.com/magabrotheeeer/course-access-bot/internal/lib/sl"
)

// Service описывает интерфейс проверки готовности хранилища.
type Service interface {
	CheckDatabaseReady(ctx context.Context) error
}

// Handler обрабатывает запросы проверки живости.
type Handler struct {
	log  *slog.Logger
	repo Service
}

// New создает новый экземпляр Handler.
func New(log *slog.Logger, repo Service) *Handler {
	return &Handler{log: log, repo: repo}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.health"

	if err := h.repo.CheckDatabaseReady(r.Context()); err != nil {
		h.log.Error("database is not ready", slog.String("op", op), sl.Err(err))
		w.WriteHeader(http.StatusServiceUnavailable)
		render.JSON(w, r, response.Error("database is not ready"))
		return
	}

	render.JSON(w, r, response.OKWithData(map[string]any{
		"status": "ok",
	}))
}
