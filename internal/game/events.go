package game

// Outbound event names. They match what browser clients already listen for.
const (
	EventLogMessage       = "logMessage"
	EventUpdatePlayers    = "updatePlayers"
	EventUpdateGameStats  = "updateGameStats"
	EventRollResult       = "rollResult"
	EventPlayerEliminated = "playerEliminated"
	EventGameOver         = "gameOver"
	EventLifeSacrificed   = "lifeSacrificed"
	EventResetGame        = "resetGame"
	EventReceiveMessage   = "receiveMessage"
)

// Event is a single broadcast produced by a coordinator handler. Payload is
// JSON-encodable and owned by the event; it never aliases coordinator state.
type Event struct {
	Name    string `json:"event"`
	Payload any    `json:"data,omitempty"`
}

type RollResult struct {
	Player     string `json:"player"`
	Roll       int    `json:"roll"`
	TotalValue int    `json:"totalValue"`
	RiskToLose string `json:"riskToLose"`
}

type LifeSacrificed struct {
	Player string `json:"player"`
	Life   int    `json:"life"`
}

func logEvent(text string) Event {
	return Event{Name: EventLogMessage, Payload: text}
}
