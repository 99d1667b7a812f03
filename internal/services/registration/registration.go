// Package registration реализует привязку email к telegram-аккаунту.
package registration

import (
	"context"
	"fmt"
	"strings"

	"github.com/magabrotheeeer/course-access-bot/internal/models"
)

// Repository определяет методы хранилища для регистрации пользователя.
type Repository interface {
	// EmailTaken проверяет, занят ли email другим пользователем.
	EmailTaken(ctx context.Context, email string, excludeUserID int64) (bool, error)
	// CreateUser создает пользователя и возвращает его id.
	CreateUser(ctx context.Context, telegramID int64, username *string, email string) (int64, error)
	// UpdateUserEmail заменяет email существующего пользователя.
	UpdateUserEmail(ctx context.Context, userID int64, email string) error
}

// Status описывает результат попытки привязать email.
type Status int

const (
	// StatusInvalid — строка не похожа на email, диалог остается открытым.
	StatusInvalid Status = iota
	// StatusTaken — email занят другим пользователем, диалог остается открытым.
	StatusTaken
	// StatusCreated — создан новый пользователь.
	StatusCreated
	// StatusUpdated — email обновлен у существующего пользователя.
	StatusUpdated
)

// Result содержит итог попытки привязки и email после нормализации.
type Result struct {
	Status Status
	Email  string
	UserID int64
}

// Service выполняет регистрацию пользователей поверх хранилища.
type Service struct {
	repo Repository
}

// New создает новый Service.
func New(repo Repository) *Service {
	return &Service{repo: repo}
}

// IsValidEmail выполняет намеренно слабую проверку: строка содержит
// "@" и ".". Реальным подтверждением адреса служит оплата, поэтому
// строгая валидация здесь только мешала бы.
func IsValidEmail(email string) bool {
	return strings.Contains(email, "@") && strings.Contains(email, ".")
}

// SubmitEmail обрабатывает email, присланный пользователем в ответ на запрос.
//
// Невалидная строка и занятый адрес не считаются ошибками: диалог должен
// остаться в ожидании email, а пользователь получить подсказку. Ошибка
// возвращается только при отказе хранилища.
func (s *Service) SubmitEmail(ctx context.Context, state models.DialogState, input string) (Result, error) {
	const op = "registration.SubmitEmail"

	email := strings.TrimSpace(input)
	if !IsValidEmail(email) {
		return Result{Status: StatusInvalid, Email: email}, nil
	}

	taken, err := s.repo.EmailTaken(ctx, email, state.UserIDToUpdate)
	if err != nil {
		return Result{}, fmt.Errorf("%s: %w", op, err)
	}
	if taken {
		return Result{Status: StatusTaken, Email: email}, nil
	}

	if state.UserIDToUpdate != 0 {
		if err := s.repo.UpdateUserEmail(ctx, state.UserIDToUpdate, email); err != nil {
			return Result{}, fmt.Errorf("%s: %w", op, err)
		}
		return Result{Status: StatusUpdated, Email: email, UserID: state.UserIDToUpdate}, nil
	}

	var username *string
	if state.NewUsername != "" {
		username = &state.NewUsername
	}
	userID, err := s.repo.CreateUser(ctx, state.NewTelegramID, username, email)
	if err != nil {
		return Result{}, fmt.Errorf("%s: %w", op, err)
	}
	return Result{Status: StatusCreated, Email: email, UserID: userID}, nil
}
