package websocket

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

// EventType определяет тип события, отправляемого консоли администратора
type EventType string

const (
	EventConnected    EventType = "connected"
	EventModeration   EventType = "moderation"
	EventStatsUpdated EventType = "stats_updated"
)

// Event представляет структуру сообщения для WebSocket
type Event struct {
	Type      EventType       `json:"type"`
	Data      json.RawMessage `json:"data,omitempty"`
	Timestamp time.Time       `json:"timestamp"`
}

// Manager представляет центральный менеджер соединений консоли администратора.
// Все подключенные клиенты — администраторы; события модерации рассылаются всем.
type Manager struct {
	clients      map[uuid.UUID]*Client
	clientsMutex sync.RWMutex
	ctx          context.Context
	cancel       context.CancelFunc
}

// NewManager создает новый экземпляр Manager
func NewManager() *Manager {
	ctx, cancel := context.WithCancel(context.Background())
	return &Manager{
		clients: make(map[uuid.UUID]*Client),
		ctx:     ctx,
		cancel:  cancel,
	}
}

// AddClient регистрирует нового клиента
func (m *Manager) AddClient(client *Client) {
	m.clientsMutex.Lock()
	m.clients[client.ID] = client
	m.clientsMutex.Unlock()

	client.SendEvent(Event{Type: EventConnected, Timestamp: time.Now()})
}

// RemoveClient удаляет клиента по его идентификатору
func (m *Manager) RemoveClient(clientID uuid.UUID) {
	m.clientsMutex.Lock()
	delete(m.clients, clientID)
	m.clientsMutex.Unlock()
}

// Broadcast отправляет событие всем подключенным клиентам
func (m *Manager) Broadcast(eventType EventType, data any) {
	payload, err := json.Marshal(data)
	if err != nil {
		log.Printf("Ошибка сериализации события %s: %v", eventType, err)
		return
	}

	event := Event{Type: eventType, Data: payload, Timestamp: time.Now()}
	message, err := json.Marshal(event)
	if err != nil {
		log.Printf("Ошибка сериализации сообщения: %v", err)
		return
	}

	m.clientsMutex.RLock()
	defer m.clientsMutex.RUnlock()
	for _, client := range m.clients {
		client.Send(message)
	}
}

// Shutdown закрывает все соединения
func (m *Manager) Shutdown() {
	m.cancel()

	m.clientsMutex.Lock()
	defer m.clientsMutex.Unlock()
	for id, client := range m.clients {
		client.Close()
		delete(m.clients, id)
	}
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// Консоль администратора живет на другом origin
	CheckOrigin: func(r *http.Request) bool { return true },
}

// UpgradeHandler возвращает HTTP-обработчик, который проверяет токен из
// query-параметра и поднимает WebSocket-соединение. authorize должен вернуть
// идентификатор субъекта или ошибку.
func (m *Manager) UpgradeHandler(authorize func(token string) (string, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := authorize(r.URL.Query().Get("token"))
		if err != nil {
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}

		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			log.Printf("Ошибка апгрейда соединения: %v", err)
			return
		}

		client := NewClient(userID, conn, m)
		client.Start()
	}
}
