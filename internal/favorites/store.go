package favorites

import (
	"context"
	"encoding/json"
	"log"
	"sync"
	"sync/atomic"

	"github.com/google/uuid"

	"github.com/gorodok/gorodok-api/internal/models"
)

// Store хранит набор избранного одной сессии (пользователя или гостя).
// Набор упорядочен по времени добавления, членство проверяется по RefID,
// удаление — по FavouriteID. Один Store на сессию, не синглтон.
type Store struct {
	mu      sync.Mutex
	storage Storage
	key     string

	items []models.FavoriteRelation
	byRef map[string]string // RefID -> FavouriteID

	loaded     bool
	issuedSeq  atomic.Uint64
	appliedSeq uint64
}

// NewStore создает пустой Store для сессии с ключом sessionKey
func NewStore(storage Storage, sessionKey string) *Store {
	return &Store{
		storage: storage,
		key:     sessionKey,
		byRef:   make(map[string]string),
	}
}

// LoadInitial читает сохраненный снимок из хранилища. Повторные вызовы — no-op.
// Отсутствующий или поврежденный снимок дает пустой набор: избранное никогда
// не блокирует остальное приложение. Пока LoadInitial не выполнен, запись в
// хранилище запрещена, чтобы первый рендер не затер сохраненные данные пустым
// набором.
func (s *Store) LoadInitial(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.loaded {
		return
	}
	s.loaded = true

	raw, err := s.storage.Read(ctx, s.key)
	if err != nil {
		log.Printf("Ошибка чтения избранного из хранилища: %v", err)
		return
	}
	if raw == "" {
		return
	}

	var items []models.FavoriteRelation
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		log.Printf("Поврежденный снимок избранного, начинаем с пустого набора: %v", err)
		return
	}

	s.replaceLocked(items)
}

// BeginSync выдает номер для очередной синхронизации с сервером.
// Номера монотонно растут; ответ с номером не больше последнего примененного
// отбрасывается как устаревший.
func (s *Store) BeginSync() uint64 {
	return s.issuedSeq.Add(1)
}

// SyncFromServer безусловно заменяет набор серверным снимком (server-wins,
// не слияние): локальные записи, отсутствующие на сервере, теряются.
// Возвращает false, если снимок устарел и был отброшен.
func (s *Store) SyncFromServer(ctx context.Context, seq uint64, items []models.FavoriteRelation) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if seq <= s.appliedSeq {
		return false
	}
	s.appliedSeq = seq

	// Серверный снимок авторитетен, после него запись разрешена
	s.loaded = true
	s.replaceLocked(items)
	s.persistLocked(ctx)
	return true
}

// Add добавляет запись в конец набора. Если RefID уже присутствует — no-op.
// Пустой FavouriteID заменяется локально сгенерированным до синхронизации.
func (s *Store) Add(ctx context.Context, item models.FavoriteRelation) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.addLocked(item) {
		s.persistLocked(ctx)
	}
}

// Remove удаляет запись по ее собственному идентификатору. Если записи нет — no-op.
func (s *Store) Remove(ctx context.Context, favouriteID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.removeLocked(favouriteID) {
		s.persistLocked(ctx)
	}
}

// Toggle переключает избранное: удаляет запись, если объект уже в наборе,
// иначе добавляет. Операция атомарна для вызывающего. Возвращает итоговое
// состояние членства. Проверка прав вызывающего остается на HTTP-слое.
func (s *Store) Toggle(ctx context.Context, item models.FavoriteRelation) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if favouriteID, ok := s.byRef[item.RefID]; ok {
		s.removeLocked(favouriteID)
		s.persistLocked(ctx)
		return false
	}

	s.addLocked(item)
	s.persistLocked(ctx)
	return true
}

// IsFavorite проверяет членство объекта по его идентификатору
func (s *Store) IsFavorite(refID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.byRef[refID]
	return ok
}

// FavouriteID возвращает идентификатор записи избранного по идентификатору
// объекта. Обратный поиск нужен, потому что удаление идет по FavouriteID,
// а вызывающие обычно знают только RefID.
func (s *Store) FavouriteID(refID string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	id, ok := s.byRef[refID]
	return id, ok
}

// Items возвращает копию набора в порядке добавления
func (s *Store) Items() []models.FavoriteRelation {
	s.mu.Lock()
	defer s.mu.Unlock()

	items := make([]models.FavoriteRelation, len(s.items))
	copy(items, s.items)
	return items
}

// Len возвращает размер набора
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.items)
}

func (s *Store) addLocked(item models.FavoriteRelation) bool {
	if _, ok := s.byRef[item.RefID]; ok {
		return false
	}
	if item.FavouriteID == "" {
		item.FavouriteID = uuid.New().String()
	}
	s.items = append(s.items, item)
	s.byRef[item.RefID] = item.FavouriteID
	return true
}

func (s *Store) removeLocked(favouriteID string) bool {
	for i, item := range s.items {
		if item.FavouriteID == favouriteID {
			delete(s.byRef, item.RefID)
			s.items = append(s.items[:i], s.items[i+1:]...)
			return true
		}
	}
	return false
}

func (s *Store) replaceLocked(items []models.FavoriteRelation) {
	s.items = s.items[:0]
	s.byRef = make(map[string]string, len(items))
	for _, item := range items {
		s.addLocked(item)
	}
}

// persistLocked записывает снимок в хранилище. Запись разрешена только после
// начальной загрузки; ошибки записи не прерывают работу.
func (s *Store) persistLocked(ctx context.Context) {
	if !s.loaded {
		return
	}

	raw, err := json.Marshal(s.items)
	if err != nil {
		log.Printf("Ошибка сериализации избранного: %v", err)
		return
	}

	if err := s.storage.Write(ctx, s.key, string(raw)); err != nil {
		log.Printf("Ошибка записи избранного в хранилище: %v", err)
	}
}
