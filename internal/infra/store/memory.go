package store

import (
	"sync"

	"pet-adoption-hub/internal/domain"
)

// Memory хранит значения в памяти процесса. quotaBytes <= 0 отключает лимит.
type Memory struct {
	mu         sync.RWMutex
	items      map[string]string
	used       int
	quotaBytes int
}

// NewMemory создаёт хранилище в памяти.
func NewMemory(quotaBytes int) *Memory {
	return &Memory{items: make(map[string]string), quotaBytes: quotaBytes}
}

// GetItem возвращает значение.
func (m *Memory) GetItem(key string) (string, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	value, ok := m.items[key]
	return value, ok, nil
}

// SetItem задаёт значение, учитывая квоту на суммарный размер ключей и значений.
func (m *Memory) SetItem(key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	used := m.used
	if prev, ok := m.items[key]; ok {
		used -= len(key) + len(prev)
	}
	used += len(key) + len(value)
	if m.quotaBytes > 0 && used > m.quotaBytes {
		return domain.ErrQuotaExceeded
	}
	m.items[key] = value
	m.used = used
	return nil
}

// RemoveItem удаляет значение.
func (m *Memory) RemoveItem(key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if prev, ok := m.items[key]; ok {
		m.used -= len(key) + len(prev)
		delete(m.items, key)
	}
	return nil
}

// Disabled имитирует выключенное хранилище: каждая операция завершается ошибкой.
type Disabled struct{}

func (Disabled) GetItem(string) (string, bool, error) { return "", false, domain.ErrStorageDisabled }
func (Disabled) SetItem(string, string) error         { return domain.ErrStorageDisabled }
func (Disabled) RemoveItem(string) error              { return domain.ErrStorageDisabled }

var (
	_ domain.KeyValueStore = (*Memory)(nil)
	_ domain.KeyValueStore = Disabled{}
)
