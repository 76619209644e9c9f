package calendar

import (
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

// FeedEvent is pushed to every connected calendar when an appointment
// changes, so open staff views refresh without polling.
type FeedEvent struct {
	Type          string    `json:"type"`
	AppointmentID string    `json:"appointment_id"`
	BarberID      string    `json:"barber_id"`
	At            time.Time `json:"at"`
}

type Hub struct {
	connections map[*websocket.Conn]bool
	mutex       sync.RWMutex
}

func NewHub() *Hub {
	return &Hub{
		connections: make(map[*websocket.Conn]bool),
	}
}

func (h *Hub) Register(conn *websocket.Conn) {
	h.mutex.Lock()
	defer h.mutex.Unlock()

	h.connections[conn] = true
}

func (h *Hub) Unregister(conn *websocket.Conn) {
	h.mutex.Lock()
	defer h.mutex.Unlock()

	if _, exists := h.connections[conn]; exists {
		_ = conn.Close()
		delete(h.connections, conn)
	}
}

// AppointmentChanged fans the event out to every subscriber. Writes that
// fail drop the connection; the client is expected to reconnect.
func (h *Hub) AppointmentChanged(appointmentID, barberID, event string) {
	msg := FeedEvent{
		Type:          event,
		AppointmentID: appointmentID,
		BarberID:      barberID,
		At:            time.Now().UTC(),
	}

	h.mutex.RLock()
	conns := make([]*websocket.Conn, 0, len(h.connections))
	for conn := range h.connections {
		conns = append(conns, conn)
	}
	h.mutex.RUnlock()

	for _, conn := range conns {
		if err := conn.WriteJSON(msg); err != nil {
			h.Unregister(conn)
		}
	}
}

func (h *Hub) SubscriberCount() int {
	h.mutex.RLock()
	defer h.mutex.RUnlock()

	return len(h.connections)
}

func (h *Hub) Close() {
	h.mutex.Lock()
	defer h.mutex.Unlock()

	for conn := range h.connections {
		_ = conn.Close()
		delete(h.connections, conn)
	}
}
