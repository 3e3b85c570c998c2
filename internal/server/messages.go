package server

import "sixteen/internal/game"

// Commands accepted by the loop in dispatcher.go.

type joinCommand struct {
	ConnID string
	Name   string
}

type determineLifeCommand struct {
	ConnID string
}

type rollDiceCommand struct {
	ConnID string
}

type sacrificeLifeCommand struct {
	ConnID string
}

type newRoundCommand struct{}

type chatCommand struct {
	Message string
}

type logCommand struct {
	Message string
}

// welcomeCommand sends the current roster and stats to a freshly connected
// observer from inside the loop, so nothing broadcast afterwards can overtake it.
type welcomeCommand struct {
	Client *wsClient
}

type snapshotQuery struct {
	Reply chan<- game.Snapshot
}

// inboundFrame is what observers send over the websocket.
type inboundFrame struct {
	Event   string `json:"event"`
	Name    string `json:"name"`
	Message string `json:"message"`
}

const eventWelcome = "welcome"

func commandForFrame(connID string, frame inboundFrame) (any, bool) {
	switch frame.Event {
	case "join", "newPlayer":
		return joinCommand{ConnID: connID, Name: frame.Name}, true
	case "determineLife":
		return determineLifeCommand{ConnID: connID}, true
	case "rollDice":
		return rollDiceCommand{ConnID: connID}, true
	case "sacrificeLife":
		return sacrificeLifeCommand{ConnID: connID}, true
	case "newRound":
		return newRoundCommand{}, true
	case "chat", "sendMessage":
		return chatCommand{Message: frame.Message}, true
	case "log", "logMessage":
		return logCommand{Message: frame.Message}, true
	default:
		return nil, false
	}
}
