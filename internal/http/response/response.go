// Package response содержит вспомогательные типы и функции для формирования
// унифицированных JSON‑ответов служебных HTTP‑обработчиков и для
// преобразования ошибок валидации форм в человеко‑читаемый текст.
package response

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator"
)

// Response описывает стандартную структуру JSON‑ответа сервера.
type Response struct {
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
	Data   any    `json:"data,omitempty"`
}

const (
	// StatusOK — значение статуса для успешного ответа.
	StatusOK = "OK"
	// StatusError — значение статуса для ответа с ошибкой.
	StatusError = "Error"
)

// OK возвращает успешный Response без данных.
func OK() Response {
	return Response{Status: StatusOK}
}

// OKWithData возвращает успешный Response с переданными данными.
func OKWithData(data any) Response {
	return Response{
		Status: StatusOK,
		Data:   data,
	}
}

// Error возвращает Response с ошибкой и переданным сообщением.
func Error(msg string) Response {
	return Response{
		Status: StatusError,
		Error:  msg,
	}
}

// ValidationErrorText формирует текст для flash-сообщения на основе ошибок
// валидации формы. Каждое нарушение превращается в отдельную фразу,
// фразы объединяются через запятую.
func ValidationErrorText(errs validator.ValidationErrors) string {
	var msgs []string

	for _, err := range errs {
		switch err.ActualTag() {
		case "required":
			msgs = append(msgs, fmt.Sprintf("поле %s обязательно", err.Field()))
		case "min":
			msgs = append(msgs, fmt.Sprintf("поле %s меньше минимального значения %s", err.Field(), err.Param()))
		case "max":
			msgs = append(msgs, fmt.Sprintf("поле %s больше максимального значения %s", err.Field(), err.Param()))
		case "numeric":
			msgs = append(msgs, fmt.Sprintf("поле %s должно быть числом", err.Field()))
		default:
			msgs = append(msgs, fmt.Sprintf("поле %s заполнено некорректно", err.Field()))
		}
	}

	return strings.Join(msgs, ", ")
}
