package server

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"sync"
	"time"

	"sixteen/internal/game"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

const (
	clientSendBuffer = 256
	maxFrameBytes    = 4096
)

type wsClient struct {
	id   string
	conn *websocket.Conn
	send chan []byte
}

type wsHub struct {
	mu           sync.Mutex
	clients      map[string]*wsClient
	writeTimeout time.Duration
}

func newWSHub(writeTimeout time.Duration) *wsHub {
	if writeTimeout <= 0 {
		writeTimeout = 5 * time.Second
	}
	return &wsHub{
		clients:      make(map[string]*wsClient),
		writeTimeout: writeTimeout,
	}
}

func (h *wsHub) Add(conn *websocket.Conn) *wsClient {
	client := &wsClient{
		id:   uuid.NewString(),
		conn: conn,
		send: make(chan []byte, clientSendBuffer),
	}
	h.mu.Lock()
	h.clients[client.id] = client
	h.mu.Unlock()
	go h.writePump(client)
	return client
}

func (h *wsHub) Remove(id string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.removeLocked(id)
}

func (h *wsHub) removeLocked(id string) {
	client, ok := h.clients[id]
	if !ok {
		return
	}
	delete(h.clients, id)
	close(client.send)
	_ = client.conn.Close()
}

func (h *wsHub) CloseAll() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for id := range h.clients {
		h.removeLocked(id)
	}
}

func (h *wsHub) Count() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

// Send queues events for a single client.
func (h *wsHub) Send(client *wsClient, events ...game.Event) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.clients[client.id]; !ok {
		return
	}
	for _, event := range events {
		data, err := json.Marshal(event)
		if err != nil {
			log.Printf("ws encode failed event=%s error=%v", event.Name, err)
			continue
		}
		if !h.enqueueLocked(client, data) {
			return
		}
	}
}

// Broadcast queues event for every client without waiting on any of them.
// A client whose queue is full is dropped.
func (h *wsHub) Broadcast(event game.Event) {
	data, err := json.Marshal(event)
	if err != nil {
		log.Printf("ws encode failed event=%s error=%v", event.Name, err)
		return
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	for _, client := range h.clients {
		h.enqueueLocked(client, data)
	}
}

func (h *wsHub) enqueueLocked(client *wsClient, data []byte) bool {
	select {
	case client.send <- data:
		return true
	default:
		log.Printf("ws client too slow conn_id=%s", client.id)
		h.removeLocked(client.id)
		return false
	}
}

func (h *wsHub) writePump(client *wsClient) {
	for data := range client.send {
		_ = client.conn.SetWriteDeadline(time.Now().Add(h.writeTimeout))
		if err := client.conn.WriteMessage(websocket.TextMessage, data); err != nil {
			log.Printf("ws write failed conn_id=%s error=%v", client.id, err)
			h.Remove(client.id)
			return
		}
	}
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

func (s *Server) handleWebsocket(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		return
	}
	conn.SetReadLimit(maxFrameBytes)
	client := s.ws.Add(conn)
	log.Printf("ws connected conn_id=%s remote=%s", client.id, c.Request.RemoteAddr)
	if err := s.submit(context.Background(), welcomeCommand{Client: client}); err != nil {
		s.ws.Remove(client.id)
		return
	}
	go s.readWS(client)
}

func (s *Server) readWS(client *wsClient) {
	defer s.ws.Remove(client.id)
	for {
		_, payload, err := client.conn.ReadMessage()
		if err != nil {
			log.Printf("ws disconnected conn_id=%s error=%v", client.id, err)
			return
		}
		var frame inboundFrame
		if err := json.Unmarshal(payload, &frame); err != nil {
			continue
		}
		cmd, ok := commandForFrame(client.id, frame)
		if !ok {
			continue
		}
		if err := s.submit(context.Background(), cmd); err != nil {
			return
		}
	}
}
