// Package send реализует запуск рассылки из админ-панели.
//
// Рассылка выполняется синхронно в рамках запроса, администратору
// показывается сводка: сколько сообщений дошло и какие не доставлены.
package send

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/middleware"

	"github.com/magabrotheeeer/course-access-bot/internal/http/webview"
	"github.com/magabrotheeeer/course-access-bot/internal/lib/sl"
	"github.com/magabrotheeeer/course-access-bot/internal/services/broadcast"
)

// Service описывает интерфейс сервиса рассылки.
type Service interface {
	SendAll(ctx context.Context, text string) (broadcast.Summary, error)
	SendToUser(ctx context.Context, userID int64, text string) (broadcast.Summary, error)
}

// Handler обрабатывает запуск рассылки.
type Handler struct {
	log     *slog.Logger
	service Service
}

// New создает новый экземпляр Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.broadcast.send"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	message := r.FormValue("message_text")
	if message == "" {
		webview.SetFlash(w, "error", "Введите текст сообщения")
		http.Redirect(w, r, "/broadcast", http.StatusSeeOther)
		return
	}

	var (
		summary broadcast.Summary
		err     error
	)
	if r.FormValue("broadcast_type") == "selected" {
		userID, parseErr := strconv.ParseInt(r.FormValue("selected_user_id"), 10, 64)
		if parseErr != nil {
			webview.SetFlash(w, "error", "Нет пользователей для рассылки")
			http.Redirect(w, r, "/broadcast", http.StatusSeeOther)
			return
		}
		summary, err = h.service.SendToUser(r.Context(), userID, message)
	} else {
		summary, err = h.service.SendAll(r.Context(), message)
	}

	switch {
	case errors.Is(err, broadcast.ErrNoTargets):
		webview.SetFlash(w, "error", "Нет пользователей для рассылки")
	case err != nil:
		log.Error("broadcast failed", sl.Err(err))
		webview.SetFlash(w, "error", "Ошибка при выполнении рассылки")
	case summary.Failed > 0:
		webview.SetFlash(w, "warning",
			fmt.Sprintf("Рассылка завершена. Успешно: %d, Ошибок: %d. Подробности: %s",
				summary.Sent, summary.Failed, strings.Join(summary.Errors, ", ")))
	default:
		webview.SetFlash(w, "success",
			fmt.Sprintf("Рассылка успешно завершена. Отправлено сообщений: %d", summary.Sent))
	}
	http.Redirect(w, r, "/broadcast", http.StatusSeeOther)
}
