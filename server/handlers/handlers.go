package handlers

import (
	"encoding/json"
	"errors"
	"fmt"

	"shoe-advisor/cards"
	"shoe-advisor/domain"
	"shoe-advisor/domain/commands"
	"shoe-advisor/domain/events"
	"shoe-advisor/server/connection"
	"shoe-advisor/simulation"
	"shoe-advisor/strategy"
)

// CommandRouter routes incoming commands to the appropriate handler
type CommandRouter struct {
	floor   *domain.Floor
	sim     *simulation.Simulator
	connMgr *connection.Manager
}

// NewCommandRouter creates a new command router
func NewCommandRouter(floor *domain.Floor, sim *simulation.Simulator, connMgr *connection.Manager) *CommandRouter {
	return &CommandRouter{
		floor:   floor,
		sim:     sim,
		connMgr: connMgr,
	}
}

// HandleCommand processes an incoming command message
func (r *CommandRouter) HandleCommand(client *connection.Client, message []byte) error {
	// First determine command type
	var baseCmd struct {
		Name string `json:"name"`
	}
	if err := json.Unmarshal(message, &baseCmd); err != nil {
		return err
	}

	// Route to appropriate handler based on command type
	switch baseCmd.Name {
	case commands.OpenSession{}.Name():
		var cmd commands.OpenSession
		if err := json.Unmarshal(message, &cmd); err != nil {
			return err
		}
		return r.handleOpenSession(client, cmd)

	case commands.CloseSession{}.Name():
		var cmd commands.CloseSession
		if err := json.Unmarshal(message, &cmd); err != nil {
			return err
		}
		return r.handleCloseSession(client, cmd)

	case commands.WatchSession{}.Name():
		var cmd commands.WatchSession
		if err := json.Unmarshal(message, &cmd); err != nil {
			return err
		}
		return r.handleWatchSession(client, cmd)

	case commands.DealCard{}.Name():
		var cmd commands.DealCard
		if err := json.Unmarshal(message, &cmd); err != nil {
			return err
		}
		return r.handleDealCard(client, cmd)

	case commands.ResetShoe{}.Name():
		var cmd commands.ResetShoe
		if err := json.Unmarshal(message, &cmd); err != nil {
			return err
		}
		return r.handleResetShoe(client, cmd)

	case commands.GetStatus{}.Name():
		var cmd commands.GetStatus
		if err := json.Unmarshal(message, &cmd); err != nil {
			return err
		}
		return r.handleGetStatus(client, cmd)

	case commands.Evaluate{}.Name():
		var cmd commands.Evaluate
		if err := json.Unmarshal(message, &cmd); err != nil {
			return err
		}
		return r.handleEvaluate(client, cmd)

	default:
		fmt.Println("unknown command type", baseCmd.Name)
		return errors.New("unknown command type")
	}
}

func (r *CommandRouter) handleOpenSession(client *connection.Client, cmd commands.OpenSession) error {
	session, err := r.floor.OpenSession(cmd.NumDecks)
	if err != nil {
		return err
	}

	// The SessionOpened event fires before anyone watches the new session,
	// so the opener gets a direct copy.
	r.connMgr.WatchSession(client.ID, session.ID)
	return r.sendToClient(client, "SESSION_OPENED", events.SessionOpened{
		SessionID: session.ID,
		NumDecks:  session.Shoe.NumDecks(),
		At:        session.OpenedAt,
	})
}

func (r *CommandRouter) handleCloseSession(client *connection.Client, cmd commands.CloseSession) error {
	if err := r.floor.CloseSession(cmd.SessionID); err != nil {
		return err
	}
	r.connMgr.UnwatchSession(client.ID, cmd.SessionID)
	return nil
}

func (r *CommandRouter) handleWatchSession(client *connection.Client, cmd commands.WatchSession) error {
	session, err := r.floor.GetSession(cmd.SessionID)
	if err != nil {
		return err
	}

	r.connMgr.WatchSession(client.ID, session.ID)

	// New watchers start from the current shoe state.
	return r.sendToClient(client, "SHOE_STATUS", statusPayload(session))
}

func (r *CommandRouter) handleDealCard(client *connection.Client, cmd commands.DealCard) error {
	session, err := r.floor.GetSession(cmd.SessionID)
	if err != nil {
		return err
	}

	if _, err := session.DealCard(cmd.Rank); err != nil {
		return err
	}
	return nil
}

func (r *CommandRouter) handleResetShoe(client *connection.Client, cmd commands.ResetShoe) error {
	session, err := r.floor.GetSession(cmd.SessionID)
	if err != nil {
		return err
	}

	numDecks := cmd.NumDecks
	if numDecks <= 0 {
		numDecks = session.Shoe.NumDecks()
	}
	session.ResetShoe(numDecks)
	return nil
}

func (r *CommandRouter) handleGetStatus(client *connection.Client, cmd commands.GetStatus) error {
	session, err := r.floor.GetSession(cmd.SessionID)
	if err != nil {
		return err
	}
	return r.sendToClient(client, "SHOE_STATUS", statusPayload(session))
}

func (r *CommandRouter) handleEvaluate(client *connection.Client, cmd commands.Evaluate) error {
	session, err := r.floor.GetSession(cmd.SessionID)
	if err != nil {
		return err
	}

	evaluation, err := RunEvaluation(session, r.sim, cmd)
	if err != nil {
		return err
	}

	// RecordEvaluation broadcasts to watchers; a non-watching requester
	// still gets a direct copy.
	session.RecordEvaluation(evaluation)
	if !r.connMgr.IsWatching(client.ID, session.ID) {
		return r.sendToClient(client, evaluation.Name(), evaluation)
	}
	return nil
}

// RunEvaluation snapshots the session's shoe, runs the Monte Carlo simulator
// for the described hand, and pairs the result with the count-indexed chart
// move. Shared by the WebSocket and REST surfaces.
func RunEvaluation(session *domain.Session, sim *simulation.Simulator, cmd commands.Evaluate) (events.EvaluationCompleted, error) {
	upcard, err := cards.RankFromString(cmd.DealerUpcard)
	if err != nil {
		return events.EvaluationCompleted{}, err
	}

	hand := simulation.Hand{
		PlayerTotal:  cmd.PlayerTotal,
		DealerUpcard: upcard,
		Soft:         cmd.Soft,
		Pair:         cmd.Pair,
	}

	simulator := *sim
	if cmd.Trials > 0 {
		simulator.Trials = cmd.Trials
	}

	snap := simulation.SnapshotShoe(session.Shoe)
	result, err := simulator.Evaluate(snap, hand)
	if err != nil {
		return events.EvaluationCompleted{}, err
	}

	evs := make(map[string]float64, len(result.EVs))
	for action, ev := range result.EVs {
		evs[string(action)] = ev
	}

	trueCount := session.Shoe.Status().TrueCount
	tableMove := strategy.Recommend(cmd.PlayerTotal, upcard, cmd.Soft, cmd.Pair, trueCount)

	return events.EvaluationCompleted{
		SessionID:    session.ID,
		PlayerTotal:  cmd.PlayerTotal,
		DealerUpcard: upcard,
		Soft:         cmd.Soft,
		Pair:         cmd.Pair,
		Trials:       result.Trials,
		EVs:          evs,
		Best:         string(result.Best),
		TableMove:    string(tableMove),
	}, nil
}

// StatusPayload is the shoe state plus betting advice sent to clients.
type StatusPayload struct {
	SessionID string               `json:"sessionId"`
	Status    domain.ShoeStatus    `json:"status"`
	Betting   domain.BettingAdvice `json:"betting"`
}

func statusPayload(session *domain.Session) StatusPayload {
	return StatusPayload{
		SessionID: session.ID,
		Status:    session.Shoe.Status(),
		Betting:   session.Shoe.BettingRecommendation(),
	}
}

func (r *CommandRouter) sendToClient(client *connection.Client, name string, payload any) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	envelope, err := json.Marshal(struct {
		Name    string          `json:"name"`
		Payload json.RawMessage `json:"payload"`
	}{Name: name, Payload: data})
	if err != nil {
		return err
	}
	r.connMgr.SendToClient(client.ID, envelope)
	return nil
}
