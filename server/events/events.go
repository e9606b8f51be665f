package events

import (
	"encoding/json"
	"log"

	"shoe-advisor/domain/events"
	"shoe-advisor/server/connection"
)

// EventEnvelope wraps an event with its name for client consumption.
type EventEnvelope struct {
	Name    string          `json:"name"`
	Payload json.RawMessage `json:"payload"`
}

// Dispatcher routes domain events to the clients watching their session.
type Dispatcher struct {
	connMgr *connection.Manager
}

// NewDispatcher creates a new event dispatcher.
func NewDispatcher(connMgr *connection.Manager) *Dispatcher {
	return &Dispatcher{
		connMgr: connMgr,
	}
}

// HandleEvent wraps a domain event in an envelope and sends it to every
// client watching the session it belongs to.
func (d *Dispatcher) HandleEvent(event events.Event) {
	eventPayload, err := json.Marshal(event)
	if err != nil {
		log.Println("Failed to marshal event payload:", err)
		return
	}

	envelope := EventEnvelope{
		Name:    event.Name(),
		Payload: eventPayload,
	}

	envelopeData, err := json.Marshal(envelope)
	if err != nil {
		log.Println("Failed to marshal event envelope:", err)
		return
	}

	switch e := event.(type) {
	case events.SessionOpened:
		d.connMgr.SendToSession(e.SessionID, envelopeData)

	case events.SessionClosed:
		d.connMgr.SendToSession(e.SessionID, envelopeData)

	case events.CardDealt:
		d.connMgr.SendToSession(e.SessionID, envelopeData)

	case events.ShoeReset:
		d.connMgr.SendToSession(e.SessionID, envelopeData)

	case events.EvaluationCompleted:
		d.connMgr.SendToSession(e.SessionID, envelopeData)

	default:
		if sessionID := events.ExtractSessionID(event); sessionID != "" {
			d.connMgr.SendToSession(sessionID, envelopeData)
		}
	}
}
