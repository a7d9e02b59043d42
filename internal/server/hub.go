// internal/server/hub.go
package server

import (
	"log"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"
)

const reloadMessage = "reload"

// The dev server only listens on localhost, so any origin may connect.
var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// reloadHub tracks the browser tabs waiting for a rebuild.
type reloadHub struct {
	mu      sync.Mutex
	clients map[*websocket.Conn]struct{}
}

func newReloadHub() *reloadHub {
	return &reloadHub{clients: make(map[*websocket.Conn]struct{})}
}

func (h *reloadHub) add(conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.clients[conn] = struct{}{}
}

func (h *reloadHub) remove(conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.clients[conn]; ok {
		delete(h.clients, conn)
		conn.Close()
	}
}

// len is the number of connected tabs.
func (h *reloadHub) len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

// reload tells every connected tab to refresh. Tabs that cannot be written
// to are dropped.
func (h *reloadHub) reload() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for conn := range h.clients {
		if err := conn.WriteMessage(websocket.TextMessage, []byte(reloadMessage)); err != nil {
			log.Printf("Dropping live-reload client: %v", err)
			conn.Close()
			delete(h.clients, conn)
		}
	}
}

// ServeHTTP upgrades the request and holds the connection until the tab
// goes away. Tabs never send anything; reads only detect the close.
func (h *reloadHub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Println("WebSocket upgrade error:", err)
		return
	}
	h.add(conn)
	defer h.remove(conn)
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}
