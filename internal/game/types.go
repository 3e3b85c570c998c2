package game

const (
	// BustThreshold is the running total at which the rolling player is eliminated.
	BustThreshold = 16
	DieSides      = 6
	// MinPlayers is the smallest roster that can leave life determination.
	MinPlayers = 2

	skippedFace     = 3
	maxMessageBytes = 500
	maxNameLength   = 20
)

const (
	PhaseLobby  = "lobby"
	PhaseLife   = "life"
	PhaseActive = "active"
	PhaseOver   = "over"
)

type Player struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	Life          int    `json:"life"`
	IsTurn        bool   `json:"isTurn"`
	HasSacrificed bool   `json:"hasSacrificed"`
	Eliminated    bool   `json:"eliminated"`
}

type Record struct {
	Wins   int `json:"wins"`
	Losses int `json:"losses"`
}

type Snapshot struct {
	Phase       string            `json:"phase"`
	Players     []Player          `json:"players"`
	Stats       map[string]Record `json:"stats"`
	TotalValue  int               `json:"totalValue"`
	CurrentTurn int               `json:"currentTurn"`
}
