// Package create реализует добавление промокода из админ-панели.
package create

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/middleware"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/course-access-bot/internal/http/response"
	"github.com/magabrotheeeer/course-access-bot/internal/http/webview"
	"github.com/magabrotheeeer/course-access-bot/internal/lib/sl"
	"github.com/magabrotheeeer/course-access-bot/internal/services/promo"
)

// Request — данные формы добавления промокода.
//
// Код нормализуется до валидации, скидка задается в процентах от 1 до 100.
type Request struct {
	Code            string `validate:"required,min=2,max=64"`
	DiscountPercent int    `validate:"required,min=1,max=100"`
	MaxUses         *int   `validate:"omitempty,min=1"`
}

// Service описывает интерфейс хранилища промокодов.
type Service interface {
	CreatePromoCode(ctx context.Context, code string, discountPercent int, maxUses *int) (int64, error)
}

// Handler обрабатывает добавление промокода.
type Handler struct {
	log      *slog.Logger
	repo     Service
	validate *validator.Validate
}

// New создает новый экземпляр Handler.
//
// Инициализирует валидатор для проверки структур.
func New(log *slog.Logger, repo Service) *Handler {
	return &Handler{
		log:      log,
		repo:     repo,
		validate: validator.New(),
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.promocode.create"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	req, err := parseForm(r)
	if err != nil {
		log.Warn("malformed promo code form", sl.Err(err))
		webview.SetFlash(w, "error", "Скидка и лимит должны быть числами")
		http.Redirect(w, r, "/promocodes", http.StatusSeeOther)
		return
	}

	if err := h.validate.Struct(req); err != nil {
		log.Warn("promo code validation failed", sl.Err(err))
		webview.SetFlash(w, "error",
			"Ошибка при добавлении промокода: "+response.ValidationErrorText(err.(validator.ValidationErrors)))
		http.Redirect(w, r, "/promocodes", http.StatusSeeOther)
		return
	}

	code := promo.Normalize(req.Code)
	if _, err := h.repo.CreatePromoCode(r.Context(), code, req.DiscountPercent, req.MaxUses); err != nil {
		log.Error("failed to create promo code", slog.String("code", code), sl.Err(err))
		webview.SetFlash(w, "error", "Ошибка при добавлении промокода")
		http.Redirect(w, r, "/promocodes", http.StatusSeeOther)
		return
	}

	log.Info("promo code created",
		slog.String("code", code), slog.Int("discount_percent", req.DiscountPercent))
	webview.SetFlash(w, "success", "Промокод успешно добавлен")
	http.Redirect(w, r, "/promocodes", http.StatusSeeOther)
}

func parseForm(r *http.Request) (Request, error) {
	req := Request{Code: r.FormValue("code")}

	discount, err := strconv.Atoi(r.FormValue("discount_percent"))
	if err != nil {
		return Request{}, err
	}
	req.DiscountPercent = discount

	if raw := r.FormValue("max_uses"); raw != "" {
		maxUses, err := strconv.Atoi(raw)
		if err != nil {
			return Request{}, err
		}
		req.MaxUses = &maxUses
	}
	return req, nil
}
