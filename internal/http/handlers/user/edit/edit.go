// Package edit реализует страницу редактирования пользователя:
// реферальные переопределения и флаг активности.
package edit

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"

	"github.com/magabrotheeeer/course-access-bot/internal/http/webview"
	"github.com/magabrotheeeer/course-access-bot/internal/lib/sl"
	"github.com/magabrotheeeer/course-access-bot/internal/models"
	"github.com/magabrotheeeer/course-access-bot/internal/storage/repository"
)

// Service описывает интерфейс хранилища пользователей.
type Service interface {
	GetUser(ctx context.Context, id int64) (*models.User, error)
	UpdateUserOverrides(ctx context.Context, id int64, referralLink *string, referralStatus *bool, isActive bool) error
}

// Handler обрабатывает редактирование пользователя.
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
	const op = "handlers.user.edit"

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

	user, err := h.repo.GetUser(r.Context(), userID)
	if err != nil {
		if !errors.Is(err, repository.ErrNotFound) {
			log.Error("failed to load user", slog.Int64("user_id", userID), sl.Err(err))
		}
		webview.SetFlash(w, "error", "Пользователь не найден")
		http.Redirect(w, r, "/users", http.StatusSeeOther)
		return
	}

	if r.Method != http.MethodPost {
		h.view.Render(w, r, "edit_user.html", webview.PageData{Active: "users", Data: user})
		return
	}

	// Пустая ссылка означает возврат к значению по умолчанию.
	var referralLink *string
	if v := r.FormValue("referral_link"); v != "" {
		referralLink = &v
	}
	referralStatus := r.FormValue("referral_status") == "true"
	isActive := r.FormValue("is_active") == "true"

	if err := h.repo.UpdateUserOverrides(r.Context(), userID, referralLink, &referralStatus, isActive); err != nil {
		log.Error("failed to update user", slog.Int64("user_id", userID), sl.Err(err))
		webview.SetFlash(w, "error", "Ошибка при редактировании пользователя")
		http.Redirect(w, r, "/users", http.StatusSeeOther)
		return
	}

	log.Info("user updated", slog.Int64("user_id", userID))
	webview.SetFlash(w, "success", "Пользователь успешно обновлен")
	http.Redirect(w, r, "/users", http.StatusSeeOther)
}
