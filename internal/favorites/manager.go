package favorites

import (
	"context"
	"sync"
)

// Manager выдает Store по ключу сессии: один Store на сессию на все время ее
// жизни. Хранилище передается явно, глобального состояния нет.
type Manager struct {
	mu      sync.Mutex
	storage Storage
	stores  map[string]*Store
}

// NewManager создает менеджер поверх хранилища снимков
func NewManager(storage Storage) *Manager {
	return &Manager{
		storage: storage,
		stores:  make(map[string]*Store),
	}
}

// Store возвращает Store сессии, создавая и загружая его при первом обращении
func (m *Manager) Store(ctx context.Context, sessionKey string) *Store {
	m.mu.Lock()
	store, ok := m.stores[sessionKey]
	if !ok {
		store = NewStore(m.storage, sessionKey)
		m.stores[sessionKey] = store
	}
	m.mu.Unlock()

	store.LoadInitial(ctx)
	return store
}

// Drop выбрасывает Store сессии из памяти. Вызывается при завершении сессии;
// сохраненный снимок в хранилище остается.
func (m *Manager) Drop(sessionKey string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.stores, sessionKey)
}
