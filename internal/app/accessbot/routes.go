// Package accessbot предоставляет маршруты админ-панели.
package accessbot

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/magabrotheeeer/course-access-bot/internal/http/handlers/auth/login"
	"github.com/magabrotheeeer/course-access-bot/internal/http/handlers/auth/logout"
	broadcastpage "github.com/magabrotheeeer/course-access-bot/internal/http/handlers/broadcast/page"
	broadcastsend "github.com/magabrotheeeer/course-access-bot/internal/http/handlers/broadcast/send"
	"github.com/magabrotheeeer/course-access-bot/internal/http/handlers/health"
	promocreate "github.com/magabrotheeeer/course-access-bot/internal/http/handlers/promocode/create"
	promolist "github.com/magabrotheeeer/course-access-bot/internal/http/handlers/promocode/list"
	prototoggle "github.com/magabrotheeeer/course-access-bot/internal/http/handlers/promocode/toggle"
	referrallist "github.com/magabrotheeeer/course-access-bot/internal/http/handlers/referral/list"
	subscriptiontoday "github.com/magabrotheeeer/course-access-bot/internal/http/handlers/subscription/today"
	useredit "github.com/magabrotheeeer/course-access-bot/internal/http/handlers/user/edit"
	userlist "github.com/magabrotheeeer/course-access-bot/internal/http/handlers/user/list"
	usertoggle "github.com/magabrotheeeer/course-access-bot/internal/http/handlers/user/toggle"
	whitelistlist "github.com/magabrotheeeer/course-access-bot/internal/http/handlers/whitelist/list"
	whitelistremove "github.com/magabrotheeeer/course-access-bot/internal/http/handlers/whitelist/remove"
	"github.com/magabrotheeeer/course-access-bot/internal/http/middlewarectx"
	"github.com/magabrotheeeer/course-access-bot/internal/http/webview"
	"github.com/magabrotheeeer/course-access-bot/internal/lib/jwt"
	broadcastservice "github.com/magabrotheeeer/course-access-bot/internal/services/broadcast"
	"github.com/magabrotheeeer/course-access-bot/internal/storage/repository"
)

// RegisterRoutes регистрирует все маршруты приложения.
func RegisterRoutes(r chi.Router, logger *slog.Logger, db *repository.Storage, view *webview.Renderer, maker jwt.Maker, broadcaster *broadcastservice.Service) {
	// Глобальные middleware
	r.Use(
		middleware.RequestID,
		middleware.Logger,
		middleware.Recoverer,
		middleware.URLFormat,
	)

	// Открытые конечные точки
	loginHandler := login.New(logger, db, maker, view)
	r.Get("/login", loginHandler.ServeHTTP)
	r.Post("/login", loginHandler.ServeHTTP)
	r.Get("/logout", logout.New(logger).ServeHTTP)
	r.Get("/healthz", health.New(logger, db).ServeHTTP)

	// Группа под cookie-сессией администратора
	r.Group(func(r chi.Router) {
		r.Use(middlewarectx.SessionMiddleware(maker, logger))
		r.Use(middlewarectx.RateLimitMiddleware(logger))

		r.Get("/", func(w http.ResponseWriter, r *http.Request) {
			http.Redirect(w, r, "/users", http.StatusSeeOther)
		})

		r.Get("/users", userlist.New(logger, db, view).ServeHTTP)
		editHandler := useredit.New(logger, db, view)
		r.Get("/edit_user/{id}", editHandler.ServeHTTP)
		r.Post("/edit_user/{id}", editHandler.ServeHTTP)
		r.Post("/toggle_user_active/{id}", usertoggle.New(logger, db).ServeHTTP)

		whitelistHandler := whitelistlist.New(logger, db, view)
		r.Get("/whitelist", whitelistHandler.ServeHTTP)
		r.Post("/whitelist", whitelistHandler.ServeHTTP)
		r.Get("/delete_whitelist/{id}", whitelistremove.New(logger, db).ServeHTTP)

		r.Get("/subscriptions", subscriptiontoday.New(logger, db, view).ServeHTTP)

		r.Get("/promocodes", promolist.New(logger, db, view).ServeHTTP)
		r.Post("/add_promocode", promocreate.New(logger, db).ServeHTTP)
		r.Post("/toggle_promocode/{id}", prototoggle.New(logger, db).ServeHTTP)

		r.Get("/referrals", referrallist.New(logger, db, view).ServeHTTP)

		r.Get("/broadcast", broadcastpage.New(logger, db, view).ServeHTTP)
		if broadcaster != nil {
			r.Post("/send_broadcast", broadcastsend.New(logger, broadcaster).ServeHTTP)
		} else {
			r.Post("/send_broadcast", func(w http.ResponseWriter, r *http.Request) {
				webview.SetFlash(w, "error", "Ошибка: Бот не инициализирован.")
				http.Redirect(w, r, "/broadcast", http.StatusSeeOther)
			})
		}
	})

	r.Handle("/metrics", promhttp.Handler())
}
