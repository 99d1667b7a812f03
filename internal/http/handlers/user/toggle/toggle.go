// Package toggle реализует переключение флага активности пользователя.
package toggle

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"

	"github.com/magabrotheeeer/course-access-bot/internal/http/webview"
	"github.com/magabrotheeeer/course-access-bot/internal/lib/sl"
	"github.com/magabrotheeeer/course-access-bot/internal/storage/repository"
)

// Service описывает интерфейс хранилища пользователей.
type Service interface {
	ToggleUserActive(ctx context.Context, id int64) (bool, error)
}

// Handler обрабатывает активацию и деактивацию пользователя.
type Handler struct {
	log  *slog.Logger
	repo Service
}

// New создает новый экземпляр Handler.
func New(log *slog.Logger, repo Service) *Handler {
	return &Handler{log: log, repo: repo}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.user.toggle"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	userID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		webview.SetFlash(w, "error", "Пользователь не найден")
		http.Redirect(w, r, "/users", http.StatusSeeOther)
		return
	}

	isActive, err := h.repo.ToggleUserActive(r.Context(), userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			webview.SetFlash(w, "error", fmt.Sprintf("Пользователь с ID %d не найден.", userID))
		} else {
			log.Error("failed to toggle user", slog.Int64("user_id", userID), sl.Err(err))
			webview.SetFlash(w, "error", "Ошибка при изменении статуса пользователя")
		}
		http.Redirect(w, r, "/users", http.StatusSeeOther)
		return
	}

	status := "деактивирован"
	if isActive {
		status = "активирован"
	}
	log.Info("user active flag toggled",
		slog.Int64("user_id", userID), slog.Bool("is_active", isActive))
	webview.SetFlash(w, "success", fmt.Sprintf("Пользователь успешно %s.", status))
	http.Redirect(w, r, "/users", http.StatusSeeOther)
}
