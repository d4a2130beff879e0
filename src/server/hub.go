package server

import (
	"encoding/json"
	"net/http"
	"time"

	"token-scanner/src/models"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

// -----------------------------------------------------------------------------
// Hub Pattern Implementation
// -----------------------------------------------------------------------------

// handleWebsockets is the main Hub loop. It is the only goroutine that writes
// to clients or closes their send channels.
func (s *FastAPIServer) handleWebsockets() {
	for {
		select {
		case <-s.done:
			s.stateMutex.Lock()
			for client := range s.clients {
				delete(s.clients, client)
				close(client.send)
			}
			s.stateMutex.Unlock()
			return

		case client := <-s.register:
			s.stateMutex.Lock()
			s.clients[client] = struct{}{}
			latest, ok := s.history.Last()
			s.stateMutex.Unlock()

			// Send the last analysis on connect
			if ok {
				initial := *latest
				initial.Type = EventInitial
				s.deliver(client, &initial)
			}

		case client := <-s.unregister:
			s.drop(client)

		case client := <-s.subscribed:
			s.stateMutex.RLock()
			_, ok := s.clients[client]
			s.stateMutex.RUnlock()
			if ok {
				s.deliver(client, &models.MAnalysisEvent{Type: EventSubscribed, Timestamp: time.Now().Unix()})
			}

		case event := <-s.broadcast:
			s.stateMutex.Lock()
			s.history.Append(event)
			targets := make([]*Client, 0, len(s.clients))
			for client := range s.clients {
				targets = append(targets, client)
			}
			s.stateMutex.Unlock()

			for _, client := range targets {
				if client.wants(event.Analysis.Tier) {
					s.deliver(client, event)
				}
			}
		}
	}
}

// -----------------------------------------------------------------------------

// deliver never blocks the hub; a client whose buffer is full is dropped.
func (s *FastAPIServer) deliver(client *Client, event *models.MAnalysisEvent) {
	select {
	case client.send <- event:
	default:
		s.Logger.Warning("Dropping slow websocket client")
		s.drop(client)
	}
}

func (s *FastAPIServer) drop(client *Client) {
	s.stateMutex.Lock()
	defer s.stateMutex.Unlock()
	if _, ok := s.clients[client]; ok {
		delete(s.clients, client)
		close(client.send)
	}
}

// -----------------------------------------------------------------------------
// Data Exchange Interface Implementation
// -----------------------------------------------------------------------------

// Publish queues an event for every connected client. When the queue is full
// the event is dropped rather than stalling the request that produced it.
func (s *FastAPIServer) Publish(event *models.MAnalysisEvent) {
	select {
	case s.broadcast <- event:
	default:
		s.Logger.Warning("Live feed queue full, dropping event for %s", event.Analysis.Identifier)
	}
}

// -----------------------------------------------------------------------------
// WebSocket Handlers
// -----------------------------------------------------------------------------

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// -----------------------------------------------------------------------------

func (s *FastAPIServer) handleWebSocket(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		s.Logger.Info("Failed to upgrade websocket: %v", err)
		return
	}

	client := newClient(s, conn)

	select {
	case s.register <- client:
	case <-s.done:
		conn.Close()
		return
	}

	go client.writePump()
	go client.readPump()
}

// -----------------------------------------------------------------------------
// Client Message Handling
// -----------------------------------------------------------------------------

// HandleClientMessage applies a subscribe command. An empty tier list means
// every tier; unknown tiers are ignored. A command naming only unknown tiers
// leaves the current filter in place.
func (s *FastAPIServer) HandleClientMessage(client *Client, message []byte) {
	var cmd models.MSubscribeCommand
	if err := json.Unmarshal(message, &cmd); err != nil {
		s.Logger.Info("Failed to parse client command: %v, disconnecting client", err)
		client.conn.Close()
		return
	}

	if cmd.Command != "subscribe" {
		return
	}

	tiers := knownTiers(cmd.Tiers)
	if len(cmd.Tiers) > 0 && len(tiers) == 0 {
		s.Logger.Info("Ignoring subscribe with no known tier: %v", cmd.Tiers)
		return
	}
	client.setTiers(tiers)

	select {
	case s.subscribed <- client:
	case <-s.done:
	}
}
