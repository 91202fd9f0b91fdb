package handlers

import (
	"log"
	"net/http"

	"github.com/gorilla/websocket"
	"github.com/kidstats/kidstats-server/live"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// Single-user local deployment; no origin restrictions.
		return true
	},
}

type WebSocketHandler struct {
	hub *live.Hub
}

func NewWebSocketHandler(hub *live.Hub) *WebSocketHandler {
	return &WebSocketHandler{hub: hub}
}

// ServeWs subscribes a client to the live updates of one game.
// Clients connect to /ws/games/{gameID}.
func (h *WebSocketHandler) ServeWs(w http.ResponseWriter, r *http.Request) {
	gameID, err := getIDFromURL(r, "gameID")
	if err != nil {
		http.Error(w, "invalid gameID", http.StatusBadRequest)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade already wrote an HTTP error to the client.
		log.Printf("Failed to upgrade connection for game %d: %v", gameID, err)
		return
	}

	roomID := live.GameRoom(gameID)

	client := &live.Client{
		Hub:  h.hub,
		Conn: conn,
		Send: make(chan []byte, 256),
		Room: roomID,
	}
	client.Hub.Register <- client

	go client.WritePump()
	go client.ReadPump()

	log.Printf("Client registered and pumps started for room %s", roomID)
}
