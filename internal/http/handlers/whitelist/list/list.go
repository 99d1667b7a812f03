// Package list реализует страницу белого списка: просмотр и добавление
// telegram id, которым доступ открыт без подписки.
package list

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/middleware"

	"github.com/magabrotheeeer/course-access-bot/internal/http/webview"
	"github.com/magabrotheeeer/course-access-bot/internal/lib/sl"
	"github.com/magabrotheeeer/course-access-bot/internal/models"
)

// Service описывает интерфейс хранилища белого списка.
type Service interface {
	AddWhitelistEntry(ctx context.Context, telegramID int64) (int64, error)
	ListWhitelist(ctx context.Context) ([]*models.WhitelistEntry, error)
}

// Handler обрабатывает страницу белого списка.
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
	const op = "handlers.whitelist.list"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var flash *webview.Flash
	if r.Method == http.MethodPost {
		flash = h.addEntry(r, log)
	}

	entries, err := h.repo.ListWhitelist(r.Context())
	if err != nil {
		log.Error("failed to list whitelist", sl.Err(err))
		webview.SetFlash(w, "error", "Ошибка при работе с белым списком")
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	h.view.Render(w, r, "whitelist.html", webview.PageData{
		Active: "whitelist",
		Flash:  flash,
		Data:   entries,
	})
}

// addEntry разбирает форму добавления. Нечисловой telegram id не считается
// ошибкой запроса: пользователь получает подсказку, страница остается той же.
func (h *Handler) addEntry(r *http.Request, log *slog.Logger) *webview.Flash {
	raw := r.FormValue("telegram_id")
	if raw == "" {
		return nil
	}

	telegramID, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		log.Warn("non numeric telegram id submitted", slog.String("value", raw))
		return &webview.Flash{Category: "error", Message: "Telegram ID должен быть числом"}
	}

	if _, err := h.repo.AddWhitelistEntry(r.Context(), telegramID); err != nil {
		log.Error("failed to add whitelist entry",
			slog.Int64("telegram_id", telegramID), sl.Err(err))
		return &webview.Flash{Category: "error", Message: "Ошибка при добавлении в белый список"}
	}

	log.Info("whitelist entry added", slog.Int64("telegram_id", telegramID))
	return &webview.Flash{Category: "success", Message: "Telegram ID успешно добавлен в белый список"}
}
