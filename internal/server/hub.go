package server

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/zeusync/volley/internal/core/observability/log"
)

// client is one websocket connection. Only its write pump writes to conn.
type client struct {
	id    uuid.UUID
	conn  *websocket.Conn
	codec Codec
	send  chan []byte
	done  chan struct{}
	once  sync.Once
}

func newClient(conn *websocket.Conn, codec Codec, buffer int) *client {
	return &client{
		id:    uuid.New(),
		conn:  conn,
		codec: codec,
		send:  make(chan []byte, buffer),
		done:  make(chan struct{}),
	}
}

// enqueue hands an encoded frame to the write pump without blocking.
func (c *client) enqueue(data []byte) bool {
	select {
	case <-c.done:
		return false
	default:
	}
	select {
	case c.send <- data:
		return true
	default:
		return false
	}
}

func (c *client) close() {
	c.once.Do(func() {
		close(c.done)
		_ = c.conn.Close()
	})
}

// writePump serializes all writes to the connection.
func (c *client) writePump(timeout time.Duration) error {
	for {
		select {
		case <-c.done:
			return nil
		case data := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(timeout))
			if err := c.conn.WriteMessage(c.codec.MessageType(), data); err != nil {
				return err
			}
		}
	}
}

// hub tracks connected clients and fans frames out to them.
type hub struct {
	mu      sync.RWMutex
	clients map[uuid.UUID]*client
	history []Frame
	limit   int
	logger  log.Log
}

func newHub(limit int, logger log.Log) *hub {
	return &hub{
		clients: make(map[uuid.UUID]*client),
		limit:   limit,
		logger:  logger,
	}
}

// add registers c and queues the remembered frames for it.
func (h *hub) add(c *client) {
	h.mu.Lock()
	h.clients[c.id] = c
	history := append([]Frame(nil), h.history...)
	total := len(h.clients)
	h.mu.Unlock()

	for _, f := range history {
		data, err := c.codec.Marshal(f)
		if err != nil {
			continue
		}
		c.enqueue(data)
	}
	h.logger.Info("Client connected",
		log.String("client_id", c.id.String()),
		log.String("codec", c.codec.Name()),
		log.Int("total_clients", total))
}

func (h *hub) remove(c *client) {
	h.mu.Lock()
	_, ok := h.clients[c.id]
	delete(h.clients, c.id)
	total := len(h.clients)
	h.mu.Unlock()

	c.close()
	if ok {
		h.logger.Info("Client disconnected",
			log.String("client_id", c.id.String()),
			log.Int("total_clients", total))
	}
}

// remember keeps f for clients that connect later.
func (h *hub) remember(f Frame) {
	if h.limit == 0 {
		return
	}
	h.mu.Lock()
	h.history = append(h.history, f)
	if over := len(h.history) - h.limit; over > 0 {
		h.history = append(h.history[:0], h.history[over:]...)
	}
	h.mu.Unlock()
}

// broadcast encodes f once per codec and queues it for every client. Clients
// whose buffer is full are disconnected. A codec that fails to encode f is
// skipped for all of its clients.
func (h *hub) broadcast(f Frame) {
	h.mu.RLock()
	clients := make([]*client, 0, len(h.clients))
	for _, c := range h.clients {
		clients = append(clients, c)
	}
	h.mu.RUnlock()

	// nil marks a codec that failed.
	encoded := make(map[string][]byte, 2)
	for _, c := range clients {
		data, ok := encoded[c.codec.Name()]
		if !ok {
			var err error
			if data, err = c.codec.Marshal(f); err != nil {
				h.logger.Error("Failed to encode frame",
					log.String("codec", c.codec.Name()),
					log.String("type", f.Type),
					log.Error(err))
				data = nil
			}
			encoded[c.codec.Name()] = data
		}
		if data == nil {
			continue
		}
		if !c.enqueue(data) {
			h.logger.Warn("Dropping client", log.String("client_id", c.id.String()), log.Error(ErrSlowConsumer))
			h.remove(c)
		}
	}
}

func (h *hub) count() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

func (h *hub) closeAll() {
	h.mu.RLock()
	clients := make([]*client, 0, len(h.clients))
	for _, c := range h.clients {
		clients = append(clients, c)
	}
	h.mu.RUnlock()

	for _, c := range clients {
		h.remove(c)
	}
}
