// Package login реализует вход в админ-панель.
//
// GET отдает форму, POST сверяет пару логин-пароль с учётной записью
// администратора в хранилище (пароль проверяется по bcrypt-хэшу)
// и при успехе выдает сессионную cookie с JWT.
package login

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"

	"github.com/magabrotheeeer/course-access-bot/internal/http/middlewarectx"
	"github.com/magabrotheeeer/course-access-bot/internal/http/webview"
	"github.com/magabrotheeeer/course-access-bot/internal/lib/jwt"
	"github.com/magabrotheeeer/course-access-bot/internal/lib/password"
	"github.com/magabrotheeeer/course-access-bot/internal/lib/sl"
	"github.com/magabrotheeeer/course-access-bot/internal/models"
	"github.com/magabrotheeeer/course-access-bot/internal/storage/repository"
)

// Service описывает интерфейс хранилища учётных записей администраторов.
type Service interface {
	GetAdminByUsername(ctx context.Context, username string) (*models.Admin, error)
}

// Handler обрабатывает вход администратора.
type Handler struct {
	log   *slog.Logger
	repo  Service
	maker jwt.Maker
	view  *webview.Renderer
}

// New создает новый экземпляр Handler.
func New(log *slog.Logger, repo Service, maker jwt.Maker, view *webview.Renderer) *Handler {
	return &Handler{
		log:   log,
		repo:  repo,
		maker: maker,
		view:  view,
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.auth.login"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	if r.Method != http.MethodPost {
		h.view.Render(w, r, "login.html", webview.PageData{})
		return
	}

	username := r.FormValue("username")
	pass := r.FormValue("password")

	admin, err := h.repo.GetAdminByUsername(r.Context(), username)
	if err != nil {
		if !errors.Is(err, repository.ErrNotFound) {
			log.Error("admin lookup failed", sl.Err(err))
		}
		h.rejectLogin(w, r, log, username)
		return
	}
	if err := password.CompareHash(admin.PasswordHash, pass); err != nil {
		h.rejectLogin(w, r, log, username)
		return
	}

	token, err := h.maker.GenerateToken(admin.Username)
	if err != nil {
		log.Error("failed to issue session token", sl.Err(err))
		h.view.Render(w, r, "login.html", webview.PageData{
			Flash: &webview.Flash{Category: "error", Message: "Внутренняя ошибка сервера"},
		})
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     middlewarectx.SessionCookie,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	log.Info("admin logged in", slog.String("username", admin.Username))
	http.Redirect(w, r, "/users", http.StatusSeeOther)
}

func (h *Handler) rejectLogin(w http.ResponseWriter, r *http.Request, log *slog.Logger, username string) {
	log.Warn("invalid admin credentials", slog.String("username", username))
	h.view.Render(w, r, "login.html", webview.PageData{
		Flash: &webview.Flash{Category: "error", Message: "Неверные учетные данные"},
	})
}
