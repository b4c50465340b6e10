package favorites

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// keyPrefix — фиксированное пространство имён для ключей избранного
const keyPrefix = "favorites:"

// Storage определяет долговременное хранилище снимков избранного.
// Read возвращает пустую строку без ошибки, если ключ отсутствует.
type Storage interface {
	Read(ctx context.Context, key string) (string, error)
	Write(ctx context.Context, key string, value string) error
}

// RedisStorage хранит снимки избранного в Redis
type RedisStorage struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisStorage создает хранилище поверх клиента Redis.
// Нулевой ttl означает бессрочное хранение.
func NewRedisStorage(client *redis.Client, ttl time.Duration) *RedisStorage {
	return &RedisStorage{client: client, ttl: ttl}
}

// Read читает снимок по ключу
func (s *RedisStorage) Read(ctx context.Context, key string) (string, error) {
	value, err := s.client.Get(ctx, keyPrefix+key).Result()
	if errors.Is(err, redis.Nil) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return value, nil
}

// Write записывает снимок по ключу
func (s *RedisStorage) Write(ctx context.Context, key string, value string) error {
	return s.client.Set(ctx, keyPrefix+key, value, s.ttl).Err()
}

// MemoryStorage хранит снимки в памяти процесса.
// Используется в тестах и как деградация при недоступном Redis.
type MemoryStorage struct {
	mu   sync.RWMutex
	data map[string]string
}

// NewMemoryStorage создает пустое хранилище в памяти
func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{data: make(map[string]string)}
}

// Read читает снимок по ключу
func (s *MemoryStorage) Read(_ context.Context, key string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.data[key], nil
}

// Write записывает снимок по ключу
func (s *MemoryStorage) Write(_ context.Context, key string, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[key] = value
	return nil
}
