// Package broadcast реализует массовую рассылку сообщений пользователям бота.
package broadcast

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/magabrotheeeer/course-access-bot/internal/lib/sl"
	"github.com/magabrotheeeer/course-access-bot/internal/models"
	"github.com/magabrotheeeer/course-access-bot/internal/storage/repository"
)

// ErrNoTargets возвращается, когда получателей для рассылки нет.
var ErrNoTargets = errors.New("no users to broadcast to")

// MessageSender отправляет текстовое сообщение в telegram-чат.
type MessageSender interface {
	SendText(chatID int64, text string) error
}

// Repository определяет методы хранилища для рассылки.
type Repository interface {
	// ListUsersWithTelegramID возвращает пользователей с ненулевым telegram id.
	ListUsersWithTelegramID(ctx context.Context) ([]*models.User, error)
	// GetUser возвращает пользователя по внутреннему id.
	GetUser(ctx context.Context, id int64) (*models.User, error)
}

// Summary — итог рассылки.
type Summary struct {
	Sent   int
	Failed int
	Errors []string
}

// Service выполняет рассылку последовательно. Отдельные неудачные
// отправки (бот заблокирован, чат удален) не прерывают цикл, а только
// попадают в сводку.
type Service struct {
	repo   Repository
	sender MessageSender
	log    *slog.Logger
}

// New создает новый Service.
func New(repo Repository, sender MessageSender, log *slog.Logger) *Service {
	return &Service{repo: repo, sender: sender, log: log}
}

// SendAll отправляет текст всем пользователям с привязанным telegram id.
func (s *Service) SendAll(ctx context.Context, text string) (Summary, error) {
	const op = "broadcast.SendAll"

	users, err := s.repo.ListUsersWithTelegramID(ctx)
	if err != nil {
		return Summary{}, fmt.Errorf("%s: %w", op, err)
	}
	if len(users) == 0 {
		return Summary{}, ErrNoTargets
	}
	return s.send(text, users), nil
}

// SendToUser отправляет текст одному пользователю по его внутреннему id.
func (s *Service) SendToUser(ctx context.Context, userID int64, text string) (Summary, error) {
	const op = "broadcast.SendToUser"

	user, err := s.repo.GetUser(ctx, userID)
	if errors.Is(err, repository.ErrNotFound) {
		return Summary{}, ErrNoTargets
	}
	if err != nil {
		return Summary{}, fmt.Errorf("%s: %w", op, err)
	}
	if user.TelegramID == 0 {
		return Summary{}, ErrNoTargets
	}
	return s.send(text, []*models.User{user}), nil
}

func (s *Service) send(text string, users []*models.User) Summary {
	var summary Summary
	for _, user := range users {
		if err := s.sender.SendText(user.TelegramID, text); err != nil {
			summary.Failed++
			summary.Errors = append(summary.Errors,
				fmt.Sprintf("Пользователь %d: %v", user.ID, err))
			s.log.Warn("broadcast delivery failed",
				slog.Int64("telegram_id", user.TelegramID), sl.Err(err))
			continue
		}
		summary.Sent++
	}

	s.log.Info("broadcast finished",
		slog.Int("sent", summary.Sent), slog.Int("failed", summary.Failed))
	return summary
}
