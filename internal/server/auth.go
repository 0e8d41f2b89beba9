package server

import (
	"crypto/subtle"
	"net/http"
)

// authorize checks the token query parameter against the configured token.
// Connections are open to everyone when no token is configured.
func (s *Server) authorize(r *http.Request) error {
	if s.cfg.Token == "" {
		return nil
	}
	token := r.URL.Query().Get("token")
	if subtle.ConstantTimeCompare([]byte(token), []byte(s.cfg.Token)) != 1 {
		return ErrUnauthorized
	}
	return nil
}
