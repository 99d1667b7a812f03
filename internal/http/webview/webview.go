// Package webview отвечает за HTML-страницы админ-панели: встроенные
// шаблоны, их рендеринг и flash-сообщения между редиректами.
package webview

import (
	"embed"
	"fmt"
	"html/template"
	"log/slog"
	"net/http"

	"github.com/magabrotheeeer/course-access-bot/internal/lib/sl"
)

//go:embed templates/*.html
var templateFS embed.FS

// pages — страницы, собираемые поверх общего layout.
var pages = []string{
	"login.html",
	"users.html",
	"edit_user.html",
	"whitelist.html",
	"subscriptions.html",
	"promocodes.html",
	"referrals.html",
	"broadcast.html",
}

// PageData — данные, доступные каждому шаблону.
type PageData struct {
	// Active подсвечивает текущий пункт меню.
	Active string
	// Flash — одноразовое сообщение после редиректа.
	Flash *Flash
	// Data — данные конкретной страницы.
	Data any
}

// Renderer рендерит страницы админ-панели.
type Renderer struct {
	templates map[string]*template.Template
	log       *slog.Logger
}

// funcMap содержит хелперы шаблонов. deref нужен для nullable-полей:
// без него движок печатает адрес указателя вместо значения.
var funcMap = template.FuncMap{
	"deref": func(v any) any {
		switch p := v.(type) {
		case *string:
			if p == nil {
				return ""
			}
			return *p
		case *bool:
			if p == nil {
				return false
			}
			return *p
		case *int:
			if p == nil {
				return 0
			}
			return *p
		default:
			return v
		}
	},
}

// New разбирает встроенные шаблоны. Каждая страница собирается вместе
// с layout.html, чтобы переопределить его блок content.
func New(log *slog.Logger) (*Renderer, error) {
	const op = "webview.New"

	templates := make(map[string]*template.Template, len(pages))
	for _, page := range pages {
		tmpl, err := template.New(page).Funcs(funcMap).
			ParseFS(templateFS, "templates/layout.html", "templates/"+page)
		if err != nil {
			return nil, fmt.Errorf("%s: parse %s: %w", op, page, err)
		}
		templates[page] = tmpl
	}
	return &Renderer{templates: templates, log: log}, nil
}

// Render отдает страницу вместе с flash-сообщением, если оно было
// установлено предыдущим запросом.
func (rnd *Renderer) Render(w http.ResponseWriter, r *http.Request, page string, data PageData) {
	tmpl, ok := rnd.templates[page]
	if !ok {
		rnd.log.Error("unknown template requested", slog.String("page", page))
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	if data.Flash == nil {
		data.Flash = PopFlash(w, r)
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := tmpl.ExecuteTemplate(w, "layout", data); err != nil {
		rnd.log.Error("failed to render template", slog.String("page", page), sl.Err(err))
	}
}
