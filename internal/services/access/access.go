// Package access реализует проверку доступа пользователя к курсу.
//
// Решение принимается в фиксированном порядке: регистрация и активность,
// затем белый список, затем действующая подписка. Результат нигде
// не кэшируется: подписки истекают, а правки белого списка и флага
// активности должны действовать немедленно, поэтому решение
// вычисляется заново при каждом защищённом действии.
package access

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/magabrotheeeer/course-access-bot/internal/models"
	"github.com/magabrotheeeer/course-access-bot/internal/storage/repository"
)

// Repository определяет методы хранилища, необходимые для проверки доступа.
type Repository interface {
	// GetUserByTelegramID возвращает пользователя по его telegram id.
	GetUserByTelegramID(ctx context.Context, telegramID int64) (*models.User, error)
	// IsWhitelisted проверяет наличие telegram id в белом списке.
	IsWhitelisted(ctx context.Context, telegramID int64) (bool, error)
	// FindCurrentSubscription возвращает подписку с самой поздней датой
	// окончания, строго большей now.
	FindCurrentSubscription(ctx context.Context, userID int64, now time.Time) (*models.Subscription, error)
}

// Service принимает решения о доступе поверх хранилища.
type Service struct {
	repo Repository
}

// New создает новый Service.
func New(repo Repository) *Service {
	return &Service{repo: repo}
}

// Resolve возвращает полное решение о доступе для telegram id.
//
// Порядок проверок:
//  1. Пользователь не найден, email не указан (или заглушка), либо аккаунт
//     деактивирован — OutcomeNotRegistered: вызывающий должен направить
//     пользователя на регистрацию, а не показывать отказ.
//  2. Белый список — OutcomeGranted(ReasonWhitelist), безусловно
//     и независимо от подписок.
//  3. Подписка с датой окончания в будущем (берётся самая поздняя) —
//     OutcomeGranted(ReasonSubscription) c её датой и флагом автопродления.
//  4. Иначе — OutcomeDenied.
func (s *Service) Resolve(ctx context.Context, telegramID int64) (models.AccessDecision, error) {
	const op = "access.Resolve"

	decision, user, err := s.resolveRegistered(ctx, telegramID)
	if err != nil {
		return models.AccessDecision{}, fmt.Errorf("%s: %w", op, err)
	}
	if decision.Outcome == models.OutcomeNotRegistered {
		return decision, nil
	}

	whitelisted, err := s.repo.IsWhitelisted(ctx, telegramID)
	if err != nil {
		return models.AccessDecision{}, fmt.Errorf("%s: %w", op, err)
	}
	if whitelisted {
		return models.AccessDecision{
			Outcome: models.OutcomeGranted,
			Reason:  models.ReasonWhitelist,
			User:    user,
		}, nil
	}

	sub, err := s.repo.FindCurrentSubscription(ctx, user.ID, time.Now().UTC())
	if errors.Is(err, repository.ErrNotFound) {
		return models.AccessDecision{
			Outcome: models.OutcomeDenied,
			User:    user,
		}, nil
	}
	if err != nil {
		return models.AccessDecision{}, fmt.Errorf("%s: %w", op, err)
	}

	return models.AccessDecision{
		Outcome:     models.OutcomeGranted,
		Reason:      models.ReasonSubscription,
		User:        user,
		ExpiresAt:   sub.EndDate,
		AutoRenewal: sub.AutoRenewal,
	}, nil
}

// ResolveRegistered выполняет только регистрационную проверку: пользователь
// существует, указал настоящий email и активен. Используется для действий,
// требующих заполненного профиля, но не оплаченного доступа.
func (s *Service) ResolveRegistered(ctx context.Context, telegramID int64) (models.AccessDecision, error) {
	const op = "access.ResolveRegistered"

	decision, user, err := s.resolveRegistered(ctx, telegramID)
	if err != nil {
		return models.AccessDecision{}, fmt.Errorf("%s: %w", op, err)
	}
	if decision.Outcome == models.OutcomeNotRegistered {
		return decision, nil
	}
	return models.AccessDecision{
		Outcome: models.OutcomeGranted,
		User:    user,
	}, nil
}

func (s *Service) resolveRegistered(ctx context.Context, telegramID int64) (models.AccessDecision, *models.User, error) {
	user, err := s.repo.GetUserByTelegramID(ctx, telegramID)
	if errors.Is(err, repository.ErrNotFound) {
		return models.AccessDecision{Outcome: models.OutcomeNotRegistered}, nil, nil
	}
	if err != nil {
		return models.AccessDecision{}, nil, err
	}
	if !user.HasEmail() || !user.IsActive {
		return models.AccessDecision{Outcome: models.OutcomeNotRegistered, User: user}, user, nil
	}
	return models.AccessDecision{Outcome: models.OutcomeGranted, User: user}, user, nil
}
