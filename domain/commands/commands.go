package commands

type Command interface {
	Name() string
}

type OpenSession struct {
	NumDecks int
}

func (o OpenSession) Name() string { return "OPEN_SESSION" }

type CloseSession struct {
	SessionID string
}

func (c CloseSession) Name() string { return "CLOSE_SESSION" }

// WatchSession subscribes the sending client to a session's event stream.
type WatchSession struct {
	SessionID string
}

func (w WatchSession) Name() string { return "WATCH_SESSION" }

type DealCard struct {
	SessionID string
	Rank      string
}

func (d DealCard) Name() string { return "DEAL_CARD" }

type ResetShoe struct {
	SessionID string
	NumDecks  int
}

func (r ResetShoe) Name() string { return "RESET_SHOE" }

type GetStatus struct {
	SessionID string
}

func (g GetStatus) Name() string { return "GET_STATUS" }

type Evaluate struct {
	SessionID    string
	PlayerTotal  int
	DealerUpcard string
	Soft         bool
	Pair         bool
	Trials       int
}

func (e Evaluate) Name() string { return "EVALUATE" }
