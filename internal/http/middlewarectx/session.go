// Package middlewarectx содержит HTTP middleware админ-панели: проверку
// сессионной cookie и ограничение частоты запросов.
//
// SessionMiddleware проверяет JWT в cookie сессии и при успехе кладет
// имя администратора в контекст запроса. Неавторизованные запросы
// перенаправляются на страницу входа вместо ответа 401: панель
// рассчитана на браузер, а не на API-клиентов.
package middlewarectx

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"

	"github.com/magabrotheeeer/course-access-bot/internal/lib/jwt"
)

// Key тип для ключей контекста HTTP-запроса.
type Key string

// AdminUser — ключ для имени администратора в контексте.
const AdminUser Key = "admin_username"

// SessionCookie — имя cookie с токеном сессии администратора.
const SessionCookie = "admin_session"

// SessionMiddleware возвращает middleware, пропускающий только запросы
// с валидным токеном сессии.
func SessionMiddleware(maker jwt.Maker, log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			const op = "middlewarectx.Session"

			log := log.With(
				slog.String("op", op),
				slog.String("request_id", middleware.GetReqID(r.Context())),
			)

			cookie, err := r.Cookie(SessionCookie)
			if err != nil || cookie.Value == "" {
				log.Warn("missing session cookie", slog.String("path", r.URL.Path))
				http.Redirect(w, r, "/login", http.StatusSeeOther)
				return
			}

			claims, err := maker.ParseToken(cookie.Value)
			if err != nil {
				log.Warn("invalid or expired session token", slog.String("path", r.URL.Path))
				http.Redirect(w, r, "/login", http.StatusSeeOther)
				return
			}

			ctx := context.WithValue(r.Context(), AdminUser, claims.Username)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
