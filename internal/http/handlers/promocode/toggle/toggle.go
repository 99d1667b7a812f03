// Package toggle реализует включение и отключение промокода.
package toggle

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
	"github.com/magabrotheeeer/course-access-bot/internal/storage/repository"
)

// Service описывает интерфейс хранилища промокодов.
type Service interface {
	TogglePromoCode(ctx context.Context, id int64) (bool, error)
}

// Handler обрабатывает переключение статуса промокода.
type Handler struct {
	log  *slog.Logger
	repo Service
}

// New создает новый экземпляр Handler.
func New(log *slog.Logger, repo Service) *Handler {
	return &Handler{log: log, repo: repo}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.promocode.toggle"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	promoID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		webview.SetFlash(w, "error", "Промокод не найден")
		http.Redirect(w, r, "/promocodes", http.StatusSeeOther)
		return
	}

	isActive, err := h.repo.TogglePromoCode(r.Context(), promoID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			webview.SetFlash(w, "error", "Промокод не найден")
		} else {
			log.Error("failed to toggle promo code", slog.Int64("promo_id", promoID), sl.Err(err))
			webview.SetFlash(w, "error", "Ошибка при изменении статуса промокода")
		}
		http.Redirect(w, r, "/promocodes", http.StatusSeeOther)
		return
	}

	log.Info("promo code toggled",
		slog.Int64("promo_id", promoID), slog.Bool("is_active", isActive))
	webview.SetFlash(w, "success", "Статус промокода успешно изменен")
	http.Redirect(w, r, "/promocodes", http.StatusSeeOther)
}
