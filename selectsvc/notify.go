package selectsvc

import (
	"net/http"
	"sync"

	"github.com/gorilla/websocket"
	log "github.com/sirupsen/logrus"
)

// ImproveEvent is pushed to every subscriber each time a run_bnb search
// finds a better score than it had before, so a caller watching a
// long-running search doesn't have to poll.
type ImproveEvent struct {
	RequestID string  `json:"request_id"`
	Score     float64 `json:"score"`
}

// Hub fans ImproveEvents out to any number of websocket subscribers,
// mirroring the role ocean's NotificationService plays for its own domain
// events (one channel-based publisher, many consumers) but adapted to a
// websocket transport since this repo has no gRPC streaming surface.
type Hub struct {
	upgrader websocket.Upgrader

	mu   sync.Mutex
	subs map[*websocket.Conn]struct{}
}

// NewHub builds an empty Hub.
func NewHub() *Hub {
	return &Hub{
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
		subs: make(map[*websocket.Conn]struct{}),
	}
}

// Broadcast pushes ev as a JSON text frame to every current subscriber,
// dropping any connection that errors on write.
func (h *Hub) Broadcast(ev ImproveEvent) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for conn := range h.subs {
		if err := conn.WriteJSON(ev); err != nil {
			log.WithError(err).Debug("selectsvc: dropping notification subscriber")
			conn.Close()
			delete(h.subs, conn)
		}
	}
}

// ServeHTTP upgrades the request to a websocket and registers it as a
// subscriber until the client disconnects.
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.WithError(err).Warn("selectsvc: websocket upgrade failed")
		return
	}

	h.mu.Lock()
	h.subs[conn] = struct{}{}
	h.mu.Unlock()

	defer func() {
		h.mu.Lock()
		delete(h.subs, conn)
		h.mu.Unlock()
		conn.Close()
	}()

	// The stream is write-only from the server's side; read in a loop
	// purely to notice the client going away (a closed/errored read).
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}

// SubscriberCount reports how many subscribers are currently connected, used
// by tests and by the profiler's periodic stats log.
func (h *Hub) SubscriberCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.subs)
}
