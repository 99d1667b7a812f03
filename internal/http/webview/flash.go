package webview

import (
	"encoding/base64"
	"net/http"
	"strings"
)

const flashCookie = "admin_flash"

// Flash — одноразовое сообщение, переживающее один редирект.
type Flash struct {
	// Category управляет цветом сообщения: success, error или warning.
	Category string
	Message  string
}

// SetFlash сохраняет сообщение в cookie до следующего запроса.
// Текст кодируется base64: в значении cookie недопустимы кириллица
// и большинство знаков препинания.
func SetFlash(w http.ResponseWriter, category, message string) {
	value := base64.URLEncoding.EncodeToString([]byte(category + "|" + message))
	http.SetCookie(w, &http.Cookie{
		Name:     flashCookie,
		Value:    value,
		Path:     "/",
		HttpOnly: true,
	})
}

// PopFlash возвращает сообщение и сразу его гасит.
func PopFlash(w http.ResponseWriter, r *http.Request) *Flash {
	cookie, err := r.Cookie(flashCookie)
	if err != nil || cookie.Value == "" {
		return nil
	}

	http.SetCookie(w, &http.Cookie{
		Name:     flashCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
	})

	decoded, err := base64.URLEncoding.DecodeString(cookie.Value)
	if err != nil {
		return nil
	}
	category, message, found := strings.Cut(string(decoded), "|")
	if !found {
		return nil
	}
	return &Flash{Category: category, Message: message}
}
