// Package logout завершает админ-сессию: гасит сессионную cookie
// и возвращает на страницу входа.
package logout

import (
	"log/slog"
	"net/http"

	"github.com/magabrotheeeer/course-access-bot/internal/http/middlewarectx"
)

// Handler обрабатывает выход администратора.
type Handler struct {
	log *slog.Logger
}

// New создает новый экземпляр Handler.
func New(log *slog.Logger) *Handler {
	return &Handler{log: log}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     middlewarectx.SessionCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
	})
	h.log.Info("admin logged out")
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}
