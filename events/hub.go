package events

import (
	"encoding/json"
	"sync"

	"github.com/gorilla/websocket"
	"github.com/yeremiapane/restaurant-menu/models"
	"github.com/yeremiapane/restaurant-menu/utils"
)

const (
	EventVersionActivated = "menu_version_activated"
)

type Message struct {
	Event string      `json:"event"`
	Data  interface{} `json:"data"`
}

// Hub keeps the connected websocket clients and fans messages out to them.
type Hub struct {
	clients map[*websocket.Conn]struct{}
	mutex   sync.Mutex
}

func NewHub() *Hub {
	return &Hub{clients: make(map[*websocket.Conn]struct{})}
}

func (h *Hub) Register(conn *websocket.Conn) {
	h.mutex.Lock()
	defer h.mutex.Unlock()
	h.clients[conn] = struct{}{}
}

func (h *Hub) Unregister(conn *websocket.Conn) {
	h.mutex.Lock()
	defer h.mutex.Unlock()
	delete(h.clients, conn)
	conn.Close()
}

func (h *Hub) ClientCount() int {
	h.mutex.Lock()
	defer h.mutex.Unlock()
	return len(h.clients)
}

// VersionActivated implements services.Notifier.
func (h *Hub) VersionActivated(version models.MenuVersion) {
	h.Broadcast(Message{
		Event: EventVersionActivated,
		Data: map[string]interface{}{
			"menu_id":        version.MenuID,
			"version_id":     version.ID,
			"version_number": version.VersionNumber,
		},
	})
}

// Broadcast sends msg to every client. Clients that fail the write are
// dropped.
func (h *Hub) Broadcast(msg Message) {
	data, err := json.Marshal(msg)
	if err != nil {
		utils.ErrorLogger.WithError(err).Error("marshal hub message")
		return
	}

	h.mutex.Lock()
	defer h.mutex.Unlock()

	utils.InfoLogger.WithField("event", msg.Event).WithField("clients", len(h.clients)).Debug("broadcasting")
	for conn := range h.clients {
		if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
			utils.ErrorLogger.WithError(err).Error("send hub message")
			delete(h.clients, conn)
			conn.Close()
		}
	}
}
