package server

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"shoe-advisor/cards"
	"shoe-advisor/domain"
	"shoe-advisor/domain/commands"
	"shoe-advisor/eventlog"
	"shoe-advisor/server/connection"
	"shoe-advisor/server/events"
	"shoe-advisor/server/handlers"
	"shoe-advisor/simulation"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // In production, implement proper origin checks
	},
}

// Config holds the server's runtime settings.
type Config struct {
	Port         string
	DefaultDecks int // decks in a freshly opened session's shoe
	SimTrials    int // Monte Carlo trials per action
	SimWorkers   int // concurrent simulation workers; 0 means GOMAXPROCS
	Debug        bool
}

// Server exposes the shoe tracker over REST and WebSocket.
type Server struct {
	cfg        Config
	floor      *domain.Floor
	sim        *simulation.Simulator
	log        eventlog.Store
	connMgr    *connection.Manager
	cmdRouter  *handlers.CommandRouter
	dispatcher *events.Dispatcher
}

// SessionResponse represents a session in API responses
type SessionResponse struct {
	ID           string    `json:"id"`
	NumDecks     int       `json:"numDecks"`
	OpenedAt     time.Time `json:"openedAt"`
	RunningCount int       `json:"runningCount"`
	TrueCount    float64   `json:"trueCount"`
	Penetration  float64   `json:"penetration"`
}

func sessionResponse(session *domain.Session) SessionResponse {
	status := session.Shoe.Status()
	return SessionResponse{
		ID:           session.ID,
		NumDecks:     status.NumDecks,
		OpenedAt:     session.OpenedAt,
		RunningCount: status.RunningCount,
		TrueCount:    status.TrueCount,
		Penetration:  status.Penetration,
	}
}

// OpenSessionRequest represents the request to open a new session
type OpenSessionRequest struct {
	NumDecks int `json:"numDecks"`
}

// DealCardRequest represents the request to record a dealt card
type DealCardRequest struct {
	Rank string `json:"rank"`
}

// ResetShoeRequest represents the request to swap in a fresh shoe
type ResetShoeRequest struct {
	NumDecks int `json:"numDecks"`
}

// EvaluateRequest describes the hand to run the simulator against
type EvaluateRequest struct {
	PlayerTotal  int    `json:"playerTotal"`
	DealerUpcard string `json:"dealerUpcard"`
	Soft         bool   `json:"soft"`
	Pair         bool   `json:"pair"`
	Trials       int    `json:"trials"`
}

// corsMiddleware adds CORS headers to all responses
func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Set CORS headers
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		// Handle preflight requests
		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		// Call the next handler
		next.ServeHTTP(w, r)
	})
}

// NewServer creates a new shoe-advisor server
func NewServer(cfg Config) *Server {
	floor := domain.NewFloor()
	floor.Debug = cfg.Debug
	store := eventlog.NewInMemoryStore()
	floor.Log = store
	connMgr := connection.NewManager()

	sim := &simulation.Simulator{
		Trials:  cfg.SimTrials,
		Workers: cfg.SimWorkers,
	}

	dispatcher := events.NewDispatcher(connMgr)
	cmdRouter := handlers.NewCommandRouter(floor, sim, connMgr)

	// Register dispatcher as event handler for the floor
	floor.AddEventHandler(dispatcher.HandleEvent)

	return &Server{
		cfg:        cfg,
		floor:      floor,
		sim:        sim,
		log:        store,
		connMgr:    connMgr,
		cmdRouter:  cmdRouter,
		dispatcher: dispatcher,
	}
}

// Routes builds the HTTP router.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(corsMiddleware)

	r.Get("/ws", s.handleWebSocket)

	r.Route("/api/sessions", func(r chi.Router) {
		r.Get("/", s.handleListSessions)
		r.Post("/", s.handleOpenSession)

		r.Route("/{sessionID}", func(r chi.Router) {
			r.Delete("/", s.handleCloseSession)
			r.Get("/status", s.handleGetStatus)
			r.Get("/betting", s.handleGetBetting)
			r.Get("/events", s.handleGetEvents)
			r.Post("/deal", s.handleDealCard)
			r.Post("/reset", s.handleResetShoe)
			r.Post("/evaluate", s.handleEvaluate)
		})
	})

	return r
}

// Start begins the server on the configured port
func (s *Server) Start() error {
	// Start connection manager in its own goroutine
	go s.connMgr.Start()

	log.Printf("Starting server on port %s", s.cfg.Port)
	return http.ListenAndServe("0.0.0.0:"+s.cfg.Port, s.Routes())
}

// handleWebSocket handles incoming WebSocket connections
func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("Error upgrading to WebSocket: %v", err)
		return
	}

	// Create a new client with a unique ID
	clientID := uuid.NewString()
	log.Printf("New client connected: %s with ID: %s", r.RemoteAddr, clientID)

	client := &connection.Client{
		ID:   clientID,
		Conn: conn,
		Send: make(chan []byte, 256),
	}

	// Register with connection manager
	s.connMgr.Register <- client

	// Handle reading and writing in separate goroutines
	go s.readPump(client)
	go s.writePump(client)
}

// readPump reads messages from the WebSocket connection
func (s *Server) readPump(client *connection.Client) {
	defer func() {
		s.connMgr.Unregister <- client
		client.Conn.Close()
	}()

	for {
		_, message, err := client.Conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("Error: %v", err)
			}
			break
		}

		// Process the message through the command router
		if err := s.cmdRouter.HandleCommand(client, message); err != nil {
			log.Printf("Error handling command: %v", err)
			s.sendError(client, err)
		}
	}
}

// writePump sends messages to the WebSocket connection
func (s *Server) writePump(client *connection.Client) {
	defer func() {
		client.Conn.Close()
	}()

	for {
		message, ok := <-client.Send
		if !ok {
			// Channel closed
			client.Conn.WriteMessage(websocket.CloseMessage, []byte{})
			return
		}

		err := client.Conn.WriteMessage(websocket.TextMessage, message)
		if err != nil {
			log.Printf("Error writing message: %v", err)
			return
		}
	}
}

func (s *Server) sendError(client *connection.Client, cmdErr error) {
	envelope, err := json.Marshal(struct {
		Name    string `json:"name"`
		Payload struct {
			Error string `json:"error"`
		} `json:"payload"`
	}{
		Name: "ERROR",
		Payload: struct {
			Error string `json:"error"`
		}{Error: cmdErr.Error()},
	})
	if err != nil {
		return
	}
	s.connMgr.SendToClient(client.ID, envelope)
}

// handleListSessions returns all open sessions
func (s *Server) handleListSessions(w http.ResponseWriter, r *http.Request) {
	sessions := s.floor.Sessions()
	responses := make([]SessionResponse, 0, len(sessions))
	for _, session := range sessions {
		responses = append(responses, sessionResponse(session))
	}

	writeJSON(w, http.StatusOK, responses)
}

// handleOpenSession opens a session over a fresh shoe
func (s *Server) handleOpenSession(w http.ResponseWriter, r *http.Request) {
	var req OpenSessionRequest
	if r.ContentLength > 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "Invalid request body", http.StatusBadRequest)
			return
		}
	}

	if req.NumDecks <= 0 {
		req.NumDecks = s.cfg.DefaultDecks
	}

	session, err := s.floor.OpenSession(req.NumDecks)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusCreated, sessionResponse(session))
}

// handleCloseSession removes a session from the floor
func (s *Server) handleCloseSession(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")
	if err := s.floor.CloseSession(sessionID); err != nil {
		s.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleGetStatus returns the session's shoe status and betting advice
func (s *Server) handleGetStatus(w http.ResponseWriter, r *http.Request) {
	session, err := s.floor.GetSession(chi.URLParam(r, "sessionID"))
	if err != nil {
		s.writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, struct {
		SessionID string               `json:"sessionId"`
		Status    domain.ShoeStatus    `json:"status"`
		Betting   domain.BettingAdvice `json:"betting"`
	}{
		SessionID: session.ID,
		Status:    session.Shoe.Status(),
		Betting:   session.Shoe.BettingRecommendation(),
	})
}

// handleGetBetting returns just the count-derived bet advice
func (s *Server) handleGetBetting(w http.ResponseWriter, r *http.Request) {
	session, err := s.floor.GetSession(chi.URLParam(r, "sessionID"))
	if err != nil {
		s.writeError(w, err)
		return
	}

	status := session.Shoe.Status()
	writeJSON(w, http.StatusOK, struct {
		SessionID string               `json:"sessionId"`
		TrueCount float64              `json:"trueCount"`
		Betting   domain.BettingAdvice `json:"betting"`
	}{
		SessionID: session.ID,
		TrueCount: status.TrueCount,
		Betting:   session.Shoe.BettingRecommendation(),
	})
}

// handleDealCard records one observed card
func (s *Server) handleDealCard(w http.ResponseWriter, r *http.Request) {
	session, err := s.floor.GetSession(chi.URLParam(r, "sessionID"))
	if err != nil {
		s.writeError(w, err)
		return
	}

	var req DealCardRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	update, err := session.DealCard(req.Rank)
	if err != nil {
		s.writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, update)
}

// handleResetShoe swaps in a fresh full shoe
func (s *Server) handleResetShoe(w http.ResponseWriter, r *http.Request) {
	session, err := s.floor.GetSession(chi.URLParam(r, "sessionID"))
	if err != nil {
		s.writeError(w, err)
		return
	}

	var req ResetShoeRequest
	if r.ContentLength > 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "Invalid request body", http.StatusBadRequest)
			return
		}
	}
	if req.NumDecks <= 0 {
		req.NumDecks = session.Shoe.NumDecks()
	}

	session.ResetShoe(req.NumDecks)

	writeJSON(w, http.StatusOK, session.Shoe.Status())
}

// handleEvaluate runs the EV simulator against the session's current shoe
func (s *Server) handleEvaluate(w http.ResponseWriter, r *http.Request) {
	session, err := s.floor.GetSession(chi.URLParam(r, "sessionID"))
	if err != nil {
		s.writeError(w, err)
		return
	}

	var req EvaluateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	evaluation, err := handlers.RunEvaluation(session, s.sim, commands.Evaluate{
		SessionID:    session.ID,
		PlayerTotal:  req.PlayerTotal,
		DealerUpcard: req.DealerUpcard,
		Soft:         req.Soft,
		Pair:         req.Pair,
		Trials:       req.Trials,
	})
	if err != nil {
		s.writeError(w, err)
		return
	}

	session.RecordEvaluation(evaluation)

	writeJSON(w, http.StatusOK, evaluation)
}

// handleGetEvents returns the session's full event history. The history
// outlives the session, so a closed shoe can still be reviewed.
func (s *Server) handleGetEvents(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")
	history, err := s.log.LoadEvents(sessionID)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	type envelope struct {
		Name    string          `json:"name"`
		Payload json.RawMessage `json:"payload"`
	}
	envelopes := make([]envelope, 0, len(history))
	for _, event := range history {
		payload, err := json.Marshal(event)
		if err != nil {
			continue
		}
		envelopes = append(envelopes, envelope{Name: event.Name(), Payload: payload})
	}

	writeJSON(w, http.StatusOK, envelopes)
}

// writeError maps domain errors onto HTTP status codes.
func (s *Server) writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, domain.ErrSessionNotFound):
		status = http.StatusNotFound
	case errors.Is(err, cards.ErrInvalidRank), errors.Is(err, simulation.ErrInvalidHand):
		status = http.StatusBadRequest
	case errors.Is(err, domain.ErrShoeExhausted), errors.Is(err, simulation.ErrUpcardUnavailable):
		status = http.StatusConflict
	}
	http.Error(w, err.Error(), status)
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}
