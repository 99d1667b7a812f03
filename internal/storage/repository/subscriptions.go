package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/magabrotheeeer/course-access-bot/internal/models"
)

const subscriptionColumns = `id, user_id, start_date, end_date, payment_amount, payment_id, auto_renewal`

func scanSubscription(row interface{ Scan(...any) error }) (*models.Subscription, error) {
	sub := &models.Subscription{}
	var amount sql.NullInt64
	var paymentID sql.NullString
	if err := row.Scan(&sub.ID, &sub.UserID, &sub.StartDate, &sub.EndDate,
		&amount, &paymentID, &sub.AutoRenewal); err != nil {
		return nil, err
	}
	if amount.Valid {
		v := int(amount.Int64)
		sub.PaymentAmount = &v
	}
	if paymentID.Valid {
		sub.PaymentID = &paymentID.String
	}
	return sub, nil
}

// CreateSubscription вставляет новую запись подписки и возвращает её ID.
func (s *Storage) CreateSubscription(ctx context.Context, sub models.Subscription) (int64, error) {
	const op = "storage.CreateSubscription"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO subscriptions (user_id, start_date, end_date, payment_amount, payment_id, auto_renewal)
			  VALUES ($1, $2, $3, $4, $5, $6)
			  RETURNING id`
	var newID int64
	err := s.DB.QueryRowContext(ctx, query,
		sub.UserID, sub.StartDate, sub.EndDate, sub.PaymentAmount, sub.PaymentID, sub.AutoRenewal).Scan(&newID)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return newID, nil
}

// FindCurrentSubscription возвращает действующую подписку пользователя:
// запись с самой поздней датой окончания, строго большей now.
func (s *Storage) FindCurrentSubscription(ctx context.Context, userID int64, now time.Time) (*models.Subscription, error) {
	const op = "storage.FindCurrentSubscription"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT ` + subscriptionColumns + `
			  FROM subscriptions
			  WHERE user_id = $1 AND end_date > $2
			  ORDER BY end_date DESC
			  LIMIT 1`
	sub, err := scanSubscription(s.DB.QueryRowContext(ctx, query, userID, now))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%s: %w", op, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return sub, nil
}

// DisableAutoRenewal снимает флаг автопродления с подписки.
func (s *Storage) DisableAutoRenewal(ctx context.Context, subscriptionID int64) error {
	const op = "storage.DisableAutoRenewal"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	_, err := s.DB.ExecContext(ctx, `UPDATE subscriptions SET auto_renewal = FALSE WHERE id = $1`, subscriptionID)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// ListSubscriptionsStartingOn возвращает подписки, начавшиеся в указанный
// календарный день: полуоткрытый интервал [day, day+1).
func (s *Storage) ListSubscriptionsStartingOn(ctx context.Context, day time.Time) ([]*models.Subscription, error) {
	const op = "storage.ListSubscriptionsStartingOn"
	return s.listSubscriptionsByDay(ctx, op, "start_date", day)
}

// ListSubscriptionsEndingOn возвращает подписки, заканчивающиеся в указанный
// календарный день: полуоткрытый интервал [day, day+1).
func (s *Storage) ListSubscriptionsEndingOn(ctx context.Context, day time.Time) ([]*models.Subscription, error) {
	const op = "storage.ListSubscriptionsEndingOn"
	return s.listSubscriptionsByDay(ctx, op, "end_date", day)
}

func (s *Storage) listSubscriptionsByDay(ctx context.Context, op, column string, day time.Time) ([]*models.Subscription, error) {
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	dayStart := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
	dayEnd := dayStart.AddDate(0, 0, 1)

	query := `SELECT ` + subscriptionColumns + `
			  FROM subscriptions
			  WHERE ` + column + ` >= $1 AND ` + column + ` < $2
			  ORDER BY id`
	rows, err := s.DB.QueryContext(ctx, query, dayStart, dayEnd)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.Subscription
	for rows.Next() {
		sub, err := scanSubscription(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, sub)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}
