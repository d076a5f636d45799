package notify

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"

	"github.com/gorilla/websocket"

	"github.com/Tyrowin/goboard/internal/wire"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     checkOrigin,
}

// Registrar is the slice of the domain store the registration endpoint
// needs.
type Registrar interface {
	Register(nickname, password string) wire.Reply
}

// EventsHandler upgrades the connection and registers it as a subscriber;
// the hub seeds it with the current user and project snapshots.
func EventsHandler(hub *Hub) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			http.Error(w, "Method not allowed. Events endpoint only accepts GET requests.", http.StatusMethodNotAllowed)
			return
		}

		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			log.Printf("Events upgrade failed: %v", err)
			return
		}

		sub := newSubscriber(conn, hub, r.RemoteAddr)
		select {
		case hub.register <- sub:
		case <-hub.ctx.Done():
			_ = conn.Close()
		}
	}
}

// registerRequest is the body of a POST /register call.
type registerRequest struct {
	Nickname string `json:"nickname"`
	Password string `json:"password"`
}

type registerResponse struct {
	Reply wire.Reply `json:"reply"`
}

// RegisterHandler creates a user account. Registration rides on the HTTP
// side rather than the framed TCP protocol: an account must exist before a
// client can open a session.
func RegisterHandler(reg Registrar) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "Method not allowed. Registration only accepts POST requests.", http.StatusMethodNotAllowed)
			return
		}

		var req registerRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "Invalid registration body", http.StatusBadRequest)
			return
		}
		if req.Nickname == "" || req.Password == "" {
			http.Error(w, "Nickname and password are required", http.StatusBadRequest)
			return
		}

		reply := reg.Register(req.Nickname, req.Password)
		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(registerResponse{Reply: reply}); err != nil {
			log.Printf("Error writing registration response: %v", err)
		}
	}
}

// HealthHandler reports that the server is running.
func HealthHandler(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain")
	_, _ = fmt.Fprintf(w, "goboard server is running!")
}
