package repository

import (
	"context"
	"fmt"

	"github.com/magabrotheeeer/course-access-bot/internal/models"
)

// IsWhitelisted проверяет наличие telegram id в белом списке.
func (s *Storage) IsWhitelisted(ctx context.Context, telegramID int64) (bool, error) {
	const op = "storage.IsWhitelisted"
	select {
	case <-ctx.Done():
		return false, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT EXISTS (SELECT 1 FROM whitelist WHERE telegram_id = $1)`
	var exists bool
	if err := s.DB.QueryRowContext(ctx, query, telegramID).Scan(&exists); err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}
	return exists, nil
}

// AddWhitelistEntry добавляет telegram id в белый список и возвращает ID записи.
func (s *Storage) AddWhitelistEntry(ctx context.Context, telegramID int64) (int64, error) {
	const op = "storage.AddWhitelistEntry"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	var newID int64
	query := `INSERT INTO whitelist (telegram_id) VALUES ($1) RETURNING id`
	if err := s.DB.QueryRowContext(ctx, query, telegramID).Scan(&newID); err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return newID, nil
}

// DeleteWhitelistEntry удаляет запись по ID и возвращает количество удалённых строк.
func (s *Storage) DeleteWhitelistEntry(ctx context.Context, id int64) (int, error) {
	const op = "storage.DeleteWhitelistEntry"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	result, err := s.DB.ExecContext(ctx, `DELETE FROM whitelist WHERE id = $1`, id)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return int(rowsAffected), nil
}

// ListWhitelist возвращает все записи белого списка.
func (s *Storage) ListWhitelist(ctx context.Context) ([]*models.WhitelistEntry, error) {
	const op = "storage.ListWhitelist"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, telegram_id, added_date FROM whitelist ORDER BY id`
	rows, err := s.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.WhitelistEntry
	for rows.Next() {
		var entry models.WhitelistEntry
		if err = rows.Scan(&entry.ID, &entry.TelegramID, &entry.AddedDate); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, &entry)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}
