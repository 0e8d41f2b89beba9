package server

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gorilla/websocket"
	"github.com/zeusync/volley/internal/core/observability/log"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(*http.Request) bool { return true },
}

// handleWebSocket upgrades /ws?codec=json|msgpack&token=... and serves the
// connection until it closes.
func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	if err := s.authorize(r); err != nil {
		http.Error(w, err.Error(), http.StatusUnauthorized)
		return
	}

	codec, err := CodecByName(r.URL.Query().Get("codec"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn("WebSocket upgrade failed", log.Error(err))
		return
	}

	c := newClient(conn, codec, s.cfg.SendBuffer)
	s.hub.add(c)
	defer s.hub.remove(c)

	go func() {
		if err := c.writePump(s.cfg.WriteTimeout); err != nil {
			s.logger.Debug("Write failed", log.String("client_id", c.id.String()), log.Error(err))
			s.hub.remove(c)
		}
	}()

	s.readPump(r, c)
}

// readPump decodes client messages and submits them to the simulation. Bad
// messages are answered with an error frame and do not close the connection.
func (s *Server) readPump(r *http.Request, c *client) {
	c.conn.SetReadLimit(s.cfg.MaxMessageSize)

	for {
		messageType, data, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				s.logger.Debug("Read failed", log.String("client_id", c.id.String()), log.Error(err))
			}
			return
		}

		var msg ClientMessage
		decoder, ok := decoderFor(messageType)
		if !ok {
			s.reply(c, fmt.Errorf("%w: unsupported message type %d", ErrInvalidMessage, messageType))
			continue
		}
		if err = decoder.Unmarshal(data, &msg); err != nil {
			s.reply(c, fmt.Errorf("%w: %w", ErrInvalidMessage, err))
			continue
		}

		err = s.submit(r.Context(), msg)
		if errors.Is(err, ErrServerNotRunning) {
			s.reply(c, err)
			return
		}
		if err != nil {
			s.logger.Debug("Rejected client message",
				log.String("client_id", c.id.String()),
				log.String("type", msg.Type),
				log.Error(err))
			s.reply(c, err)
		}
	}
}

func (s *Server) reply(c *client, err error) {
	data, merr := c.codec.Marshal(errorFrame(err))
	if merr != nil {
		s.logger.Error("Failed to encode error frame", log.Error(merr))
		return
	}
	c.enqueue(data)
}
