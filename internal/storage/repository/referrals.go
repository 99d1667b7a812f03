package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/magabrotheeeer/course-access-bot/internal/models"
)

// CreateReferral сохраняет связь «реферер — приглашённый» и возвращает её ID.
func (s *Storage) CreateReferral(ctx context.Context, userID, referredUserID int64) (int64, error) {
	const op = "storage.CreateReferral"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	var newID int64
	query := `INSERT INTO referrals (user_id, referred_user_id) VALUES ($1, $2) RETURNING id`
	if err := s.DB.QueryRowContext(ctx, query, userID, referredUserID).Scan(&newID); err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return newID, nil
}

// ListReferrals возвращает все реферальные связи.
func (s *Storage) ListReferrals(ctx context.Context) ([]*models.Referral, error) {
	const op = "storage.ListReferrals"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, user_id, referred_user_id, created_at FROM referrals ORDER BY id`
	rows, err := s.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.Referral
	for rows.Next() {
		var ref models.Referral
		if err = rows.Scan(&ref.ID, &ref.UserID, &ref.ReferredUserID, &ref.CreatedAt); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, &ref)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// UpsertAdmin создаёт или обновляет учётную запись администратора.
// Используется при старте для посева учётной записи из конфигурации.
func (s *Storage) UpsertAdmin(ctx context.Context, username, passwordHash string) error {
	const op = "storage.UpsertAdmin"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO admins (username, password_hash)
			  VALUES ($1, $2)
			  ON CONFLICT (username) DO UPDATE SET password_hash = EXCLUDED.password_hash`
	if _, err := s.DB.ExecContext(ctx, query, username, passwordHash); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// GetAdminByUsername возвращает администратора по имени.
func (s *Storage) GetAdminByUsername(ctx context.Context, username string) (*models.Admin, error) {
	const op = "storage.GetAdminByUsername"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, username, password_hash, created_at FROM admins WHERE username = $1`
	admin := &models.Admin{}
	err := s.DB.QueryRowContext(ctx, query, username).Scan(
		&admin.ID, &admin.Username, &admin.PasswordHash, &admin.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%s: %w", op, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return admin, nil
}
