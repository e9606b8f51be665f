package connection

import (
	"sync"

	"github.com/gorilla/websocket"
)

// Client represents one connected operator console.
type Client struct {
	ID         string
	Conn       *websocket.Conn
	Send       chan []byte
	SessionIDs []string // shoe sessions the client is watching
}

// Manager handles all client connections and their session subscriptions.
type Manager struct {
	clients    map[string]*Client
	Register   chan *Client
	Unregister chan *Client
	mutex      sync.RWMutex
}

// NewManager creates a new connection manager.
func NewManager() *Manager {
	return &Manager{
		clients:    make(map[string]*Client),
		Register:   make(chan *Client),
		Unregister: make(chan *Client),
	}
}

// Start begins processing connection events.
func (m *Manager) Start() {
	for {
		select {
		case client := <-m.Register:
			m.mutex.Lock()
			m.clients[client.ID] = client
			m.mutex.Unlock()
		case client := <-m.Unregister:
			m.mutex.Lock()
			if _, ok := m.clients[client.ID]; ok {
				delete(m.clients, client.ID)
				close(client.Send)
			}
			m.mutex.Unlock()
		}
	}
}

// SendToClient sends a message to a specific client. The send never blocks:
// a client whose buffer is full has the message dropped, so one stalled
// connection cannot hold the manager's lock and freeze every dispatch, and
// Unregister can never close Send mid-send.
func (m *Manager) SendToClient(clientID string, message []byte) bool {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	client, ok := m.clients[clientID]
	if !ok {
		return false
	}
	return trySend(client, message)
}

// SendToSession sends a message to every client watching a session. Slow
// clients are skipped, not waited for.
func (m *Manager) SendToSession(sessionID string, message []byte) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	for _, client := range m.clients {
		for _, id := range client.SessionIDs {
			if id == sessionID {
				trySend(client, message)
				break
			}
		}
	}
}

func trySend(client *Client, message []byte) bool {
	select {
	case client.Send <- message:
		return true
	default:
		return false
	}
}

// WatchSession subscribes a client to a session's events.
func (m *Manager) WatchSession(clientID, sessionID string) bool {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	client, ok := m.clients[clientID]
	if !ok {
		return false
	}
	for _, id := range client.SessionIDs {
		if id == sessionID {
			return true
		}
	}
	client.SessionIDs = append(client.SessionIDs, sessionID)
	return true
}

// UnwatchSession removes a client's subscription to a session.
func (m *Manager) UnwatchSession(clientID, sessionID string) bool {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	client, ok := m.clients[clientID]
	if !ok {
		return false
	}
	for i, id := range client.SessionIDs {
		if id == sessionID {
			client.SessionIDs = append(client.SessionIDs[:i], client.SessionIDs[i+1:]...)
			return true
		}
	}
	return false
}

// IsWatching checks if a client is subscribed to a session.
func (m *Manager) IsWatching(clientID, sessionID string) bool {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	if client, ok := m.clients[clientID]; ok {
		for _, id := range client.SessionIDs {
			if id == sessionID {
				return true
			}
		}
	}
	return false
}
