// Package remove реализует удаление записи из белого списка.
package remove

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"

	"github.com/magabrotheeeer/course-access-bot/internal/http/webview"
	"github.com/magabrotheeeer/course-access-bot/internal/lib/sl"
)

// Service описывает интерфейс хранилища белого списка.
type Service interface {
	DeleteWhitelistEntry(ctx context.Context, id int64) (int, error)
}

// Handler обрабатывает удаление из белого списка.
type Handler struct {
	log  *slog.Logger
	repo Service
}

// New создает новый экземпляр Handler.
func New(log *slog.Logger, repo Service) *Handler {
	return &Handler{log: log, repo: repo}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.whitelist.remove"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	entryID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		webview.SetFlash(w, "error", "Запись не найдена")
		http.Redirect(w, r, "/whitelist", http.StatusSeeOther)
		return
	}

	deleted, err := h.repo.DeleteWhitelistEntry(r.Context(), entryID)
	if err != nil {
		log.Error("failed to delete whitelist entry", slog.Int64("entry_id", entryID), sl.Err(err))
		webview.SetFlash(w, "error", "Ошибка при удалении записи")
		http.Redirect(w, r, "/whitelist", http.StatusSeeOther)
		return
	}
	if deleted == 0 {
		webview.SetFlash(w, "error", "Запись не найдена")
		http.Redirect(w, r, "/whitelist", http.StatusSeeOther)
		return
	}

	log.Info("whitelist entry deleted", slog.Int64("entry_id", entryID))
	webview.SetFlash(w, "success", "Запись успешно удалена из белого списка")
	http.Redirect(w, r, "/whitelist", http.StatusSeeOther)
}
