package web

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"clean-energy-predictor/internal/present"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
)

const feedWriteTimeout = 2 * time.Second

// Feed pushes every served prediction to connected websocket clients.
type Feed struct {
	upgrader  websocket.Upgrader
	clients   map[*websocket.Conn]bool
	clientsMu sync.Mutex // also serialises writes; gorilla allows one writer per conn
	metrics   Metrics
}

func NewFeed(metrics Metrics) *Feed {
	if metrics == nil {
		metrics = noopMetrics{}
	}
	return &Feed{
		upgrader: websocket.Upgrader{CheckOrigin: func(r *http.Request) bool { return true }},
		clients:  make(map[*websocket.Conn]bool),
		metrics:  metrics,
	}
}

// ServeHTTP upgrades the connection and holds it until the client leaves.
func (f *Feed) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := f.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Error().Err(err).Msg("Failed to upgrade WebSocket connection")
		return
	}
	defer conn.Close()

	f.clientsMu.Lock()
	f.clients[conn] = true
	f.metrics.FeedClientsSet(len(f.clients))
	f.clientsMu.Unlock()

	// Clients only listen; reading detects the close
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}

	f.remove(conn)
}

// Broadcast sends res to every client, dropping the ones that fail.
func (f *Feed) Broadcast(res present.Result) {
	data, err := json.Marshal(res)
	if err != nil {
		log.Error().Err(err).Msg("Failed to marshal prediction for broadcast")
		return
	}

	f.clientsMu.Lock()
	defer f.clientsMu.Unlock()

	for client := range f.clients {
		client.SetWriteDeadline(time.Now().Add(feedWriteTimeout))
		if err := client.WriteMessage(websocket.TextMessage, data); err != nil {
			log.Warn().Err(err).Msg("Failed to send prediction to WebSocket client")
			client.Close()
			delete(f.clients, client)
		}
	}
	f.metrics.FeedClientsSet(len(f.clients))
}

// Clients returns the number of connected clients.
func (f *Feed) Clients() int {
	f.clientsMu.Lock()
	defer f.clientsMu.Unlock()
	return len(f.clients)
}

// Close disconnects every client.
func (f *Feed) Close() {
	f.clientsMu.Lock()
	defer f.clientsMu.Unlock()

	for client := range f.clients {
		client.Close()
	}
	f.clients = make(map[*websocket.Conn]bool)
	f.metrics.FeedClientsSet(0)
}

func (f *Feed) remove(conn *websocket.Conn) {
	f.clientsMu.Lock()
	defer f.clientsMu.Unlock()
	delete(f.clients, conn)
	f.metrics.FeedClientsSet(len(f.clients))
}
