package services

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// Notification levels.
const (
	NotifySuccess = "success"
	NotifyInfo    = "info"
	NotifyError   = "error"
)

// Notification is a transient message pushed to a user's open editors.
type Notification struct {
	ID          string    `json:"id"`
	Level       string    `json:"level"`
	Action      string    `json:"action"`
	Message     string    `json:"message"`
	ProjectID   string    `json:"project_id,omitempty"`
	ComponentID string    `json:"component_id,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// Notifier delivers notifications to a user.
type Notifier interface {
	Publish(userID string, n Notification)
}

type subscriber struct {
	userID string
	ch     chan Notification
}

// NotificationHub fans notifications out to the SSE connections of a user.
type NotificationHub struct {
	clients map[string]*subscriber
	mu      sync.RWMutex
}

func NewNotificationHub() *NotificationHub {
	return &NotificationHub{
		clients: make(map[string]*subscriber),
	}
}

// Subscribe registers a connection of userID and returns its event channel.
func (h *NotificationHub) Subscribe(clientID, userID string) <-chan Notification {
	h.mu.Lock()
	defer h.mu.Unlock()

	if old, ok := h.clients[clientID]; ok {
		close(old.ch)
	}
	// Buffered so a slow reader never blocks a publisher
	ch := make(chan Notification, 100)
	h.clients[clientID] = &subscriber{userID: userID, ch: ch}
	return ch
}

// Unsubscribe removes a connection and closes its channel.
func (h *NotificationHub) Unsubscribe(clientID string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if sub, ok := h.clients[clientID]; ok {
		close(sub.ch)
		delete(h.clients, clientID)
	}
}

// Publish sends n to every connection of userID. Full buffers drop the event.
func (h *NotificationHub) Publish(userID string, n Notification) {
	if n.ID == "" {
		n.ID = uuid.New().String()
	}
	if n.CreatedAt.IsZero() {
		n.CreatedAt = time.Now()
	}

	h.mu.RLock()
	defer h.mu.RUnlock()

	for _, sub := range h.clients {
		if sub.userID != userID {
			continue
		}
		select {
		case sub.ch <- n:
		default:
		}
	}
}

// ClientCount returns the number of open connections.
func (h *NotificationHub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}
