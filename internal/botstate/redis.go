package botstate

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/magabrotheeeer/course-access-bot/internal/config"
	"github.com/magabrotheeeer/course-access-bot/internal/models"
)

// dialogTTL ограничивает жизнь незавершённого диалога: брошенный на середине
// ввод email не должен висеть в Redis вечно.
const dialogTTL = 24 * time.Hour

// RedisStore хранит состояния диалогов в Redis, переживая перезапуск процесса.
type RedisStore struct {
	db *redis.Client
}

// NewRedisStore подключается к Redis и возвращает хранилище состояний.
func NewRedisStore(ctx context.Context, cfg config.RedisConnection) (*RedisStore, error) {
	const op = "botstate.NewRedisStore"
	db := redis.NewClient(&redis.Options{
		Addr:         cfg.AddressRedis,
		Password:     cfg.Password,
		DB:           cfg.DB,
		Username:     cfg.User,
		MaxRetries:   cfg.MaxRetries,
		DialTimeout:  cfg.DialTimeout,
		ReadTimeout:  cfg.TimeoutRedis,
		WriteTimeout: cfg.TimeoutRedis,
	})

	if err := db.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &RedisStore{db: db}, nil
}

func dialogKey(chatID int64) string {
	return fmt.Sprintf("dialog:%d", chatID)
}

// Get возвращает состояние чата; для неизвестного чата — StepIdle.
func (r *RedisStore) Get(ctx context.Context, chatID int64) (models.DialogState, error) {
	const op = "botstate.RedisStore.Get"
	val, err := r.db.Get(ctx, dialogKey(chatID)).Result()
	if err == redis.Nil {
		return models.IdleState(), nil
	}
	if err != nil {
		return models.IdleState(), fmt.Errorf("%s: %w", op, err)
	}
	var state models.DialogState
	if err = json.Unmarshal([]byte(val), &state); err != nil {
		return models.IdleState(), fmt.Errorf("%s: %w", op, err)
	}
	return state, nil
}

// Set сохраняет состояние чата.
func (r *RedisStore) Set(ctx context.Context, chatID int64, state models.DialogState) error {
	const op = "botstate.RedisStore.Set"
	jsonData, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if err = r.db.Set(ctx, dialogKey(chatID), jsonData, dialogTTL).Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// Clear сбрасывает состояние чата.
func (r *RedisStore) Clear(ctx context.Context, chatID int64) error {
	const op = "botstate.RedisStore.Clear"
	if err := r.db.Del(ctx, dialogKey(chatID)).Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}
