package admin

import (
	"github.com/gorodok/gorodok-api/internal/moderation"
	"github.com/gorodok/gorodok-api/internal/websocket"
)

// EventBridge транслирует события модерации в WebSocket-канал консоли.
// После каждого события консоль получает и обновленные счетчики.
type EventBridge struct {
	manager   *websocket.Manager
	lifecycle *moderation.Lifecycle
}

// NewEventBridge создает новый экземпляр EventBridge. Цикл модерации
// подключается отдельным вызовом Bind, так как он сам ссылается на мост.
func NewEventBridge(manager *websocket.Manager) *EventBridge {
	return &EventBridge{manager: manager}
}

// Bind привязывает цикл модерации, счетчики которого рассылаются консоли
func (b *EventBridge) Bind(lifecycle *moderation.Lifecycle) {
	b.lifecycle = lifecycle
}

// Notify вызывается из цикла модерации под его блокировкой, поэтому рассылка
// и чтение счетчиков выполняются в отдельной горутине
func (b *EventBridge) Notify(event moderation.Event) {
	go func() {
		b.manager.Broadcast(websocket.EventModeration, event)
		if b.lifecycle != nil {
			b.manager.Broadcast(websocket.EventStatsUpdated, b.lifecycle.Stats())
		}
	}()
}
