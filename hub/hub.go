package hub

import (
	"encoding/json"
	"log"
	"sync"

	"github.com/gorilla/websocket"
)

// Event types untuk big screen dan dashboard moderasi
const (
	EventNewMessage    = "newMessage"
	EventDeleteMessage = "deleteMessage"
	EventClearChat     = "clearChat"
)

type Message struct {
	Event string      `json:"event"`
	Data  interface{} `json:"data"`
}

// Publisher adalah kontrak fan-out yang dipakai chat service. Dipisah dari
// transport websocket supaya test bisa merekam event tanpa koneksi hidup.
type Publisher interface {
	Publish(event string, data interface{})
}

// Hub menampung semua subscriber real-time (big screen, dashboard admin).
// Semua event dikirim ke semua koneksi; scoping per meja bukan tujuan sistem.
type Hub struct {
	clients map[*websocket.Conn]string // conn -> role
	mutex   sync.Mutex
}

func New() *Hub {
	return &Hub{
		clients: make(map[*websocket.Conn]string),
	}
}

// RegisterClient -> menambahkan connection ke set dengan role
func (h *Hub) RegisterClient(conn *websocket.Conn, role string) {
	h.mutex.Lock()
	defer h.mutex.Unlock()
	h.clients[conn] = role
}

// UnregisterClient -> melepaskan connection
func (h *Hub) UnregisterClient(conn *websocket.Conn) {
	h.mutex.Lock()
	defer h.mutex.Unlock()
	delete(h.clients, conn)
	conn.Close()
}

// ClientCount jumlah subscriber yang sedang terhubung.
func (h *Hub) ClientCount() int {
	h.mutex.Lock()
	defer h.mutex.Unlock()
	return len(h.clients)
}

// Publish menyiarkan satu event ke semua subscriber. Best-effort: kegagalan
// kirim ke satu koneksi tidak menghentikan yang lain dan tidak dikembalikan
// ke caller; subscriber bisa recover lewat history endpoint.
func (h *Hub) Publish(event string, data interface{}) {
	h.mutex.Lock()
	defer h.mutex.Unlock()

	payload, err := json.Marshal(Message{Event: event, Data: data})
	if err != nil {
		log.Printf("Error marshaling event %s: %v", event, err)
		return
	}

	for conn, role := range h.clients {
		if err := conn.WriteMessage(websocket.TextMessage, payload); err != nil {
			log.Printf("Error sending %s to %s client: %v", event, role, err)
			continue
		}
	}
}
