// Package botstate реализует хранилище состояний диалогов бота.
//
// Состояние хранится по ключу чата: на один чат — одно активное состояние.
// Интерфейс Store позволяет выбрать бэкенд: память процесса или Redis,
// если состояние должно переживать перезапуск.
package botstate

import (
	"context"
	"sync"

	"github.com/magabrotheeeer/course-access-bot/internal/models"
)

// Store описывает хранилище состояний диалогов, ключ — id чата.
type Store interface {
	// Get возвращает состояние чата; для неизвестного чата — StepIdle.
	Get(ctx context.Context, chatID int64) (models.DialogState, error)
	// Set сохраняет состояние чата.
	Set(ctx context.Context, chatID int64, state models.DialogState) error
	// Clear сбрасывает состояние чата в StepIdle.
	Clear(ctx context.Context, chatID int64) error
}

// MemoryStore хранит состояния в памяти процесса.
type MemoryStore struct {
	mu     sync.RWMutex
	states map[int64]models.DialogState
}

// NewMemoryStore создает новый MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		states: make(map[int64]models.DialogState),
	}
}

// Get возвращает состояние чата; для неизвестного чата — StepIdle.
func (m *MemoryStore) Get(_ context.Context, chatID int64) (models.DialogState, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	state, ok := m.states[chatID]
	if !ok {
		return models.IdleState(), nil
	}
	return state, nil
}

// Set сохраняет состояние чата.
func (m *MemoryStore) Set(_ context.Context, chatID int64, state models.DialogState) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.states[chatID] = state
	return nil
}

// Clear сбрасывает состояние чата.
func (m *MemoryStore) Clear(_ context.Context, chatID int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.states, chatID)
	return nil
}
