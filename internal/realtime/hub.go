package realtime

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
)

const (
	writeWait    = 10 * time.Second
	pingInterval = 25 * time.Second
	sendBuffer   = 32
)

// Message - конверт события в нативном websocket-потоке
type Message struct {
	Event string `json:"event"`
	Data  any    `json:"data"`
}

// Client - одно websocket-соединение и комнаты, в которых оно состоит.
// Все записи в conn делает только writePump.
type Client struct {
	conn      *websocket.Conn
	rooms     []string
	send      chan []byte
	closeOnce sync.Once
}

func NewClient(conn *websocket.Conn, rooms ...string) *Client {
	return &Client{conn: conn, rooms: rooms, send: make(chan []byte, sendBuffer)}
}

// Hub - реестр websocket-клиентов по комнатам
type Hub struct {
	mu     sync.RWMutex
	rooms  map[string]map[*Client]struct{}
	logger *logrus.Logger
}

func NewHub(logger *logrus.Logger) *Hub {
	return &Hub{
		rooms:  make(map[string]map[*Client]struct{}),
		logger: logger,
	}
}

func (h *Hub) Register(c *Client) {
	h.mu.Lock()
	for _, room := range c.rooms {
		if h.rooms[room] == nil {
			h.rooms[room] = make(map[*Client]struct{})
		}
		h.rooms[room][c] = struct{}{}
	}
	h.mu.Unlock()
}

// Unregister убирает клиента из комнат и закрывает его очередь; writePump
// после этого закрывает соединение. Повторный вызов безопасен.
func (h *Hub) Unregister(c *Client) {
	h.mu.Lock()
	for _, room := range c.rooms {
		if set := h.rooms[room]; set != nil {
			delete(set, c)
			if len(set) == 0 {
				delete(h.rooms, room)
			}
		}
	}
	c.closeOnce.Do(func() { close(c.send) })
	h.mu.Unlock()
}

// RoomSize возвращает число клиентов в комнате
func (h *Hub) RoomSize(room string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.rooms[room])
}

// Broadcast ставит событие в очередь каждому клиенту комнаты и не ждет записи.
// Клиент с переполненной очередью отключается.
func (h *Hub) Broadcast(room, event string, payload any) {
	msg, err := json.Marshal(Message{Event: event, Data: payload})
	if err != nil {
		h.logger.WithError(err).WithField("event", event).Error("Failed to marshal realtime message")
		return
	}

	var slow []*Client
	h.mu.RLock()
	for c := range h.rooms[room] {
		select {
		case c.send <- msg:
		default:
			slow = append(slow, c)
		}
	}
	h.mu.RUnlock()

	for _, c := range slow {
		h.logger.WithField("room", room).Warn("Dropping slow websocket client")
		h.Unregister(c)
	}
}

func (h *Hub) BroadcastToAdmins(event string, payload any) {
	h.Broadcast(AdminRoom, event, payload)
}

func (h *Hub) SendToTourist(touristID uuid.UUID, event string, payload any) {
	h.Broadcast(TouristRoom(touristID), event, payload)
}

// writePump - единственный писатель соединения: события из очереди и ping
func (h *Hub) writePump(c *Client) {
	t := time.NewTicker(pingInterval)
	defer func() {
		t.Stop()
		_ = c.conn.Close()
	}()

	for {
		select {
		case msg, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				h.logger.WithError(err).Debug("Dropping websocket client after write error")
				h.Unregister(c)
				return
			}
		case <-t.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				h.Unregister(c)
				return
			}
		}
	}
}

// Serve регистрирует соединение и блокируется до его закрытия.
// Входящие сообщения клиента игнорируются, ошибка чтения завершает сессию.
func (h *Hub) Serve(conn *websocket.Conn, rooms ...string) {
	c := NewClient(conn, rooms...)
	h.Register(c)
	go h.writePump(c)

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			h.Unregister(c)
			return
		}
	}
}
