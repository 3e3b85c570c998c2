package server

import (
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"sixteen/internal/game"

	"github.com/gorilla/websocket"
)

func TestWebsocketWelcomeSendsState(t *testing.T) {
	srv := newScriptedServer(t)
	ts := newTestServer(t, srv.Handler())
	t.Cleanup(ts.Close)

	conn := dialWS(t, ts)
	if msg := readWS(t, conn, 5*time.Second); msg.Event != eventWelcome {
		t.Fatalf("expected welcome first, got %s", msg.Event)
	}
	if msg := readWS(t, conn, 5*time.Second); msg.Event != game.EventUpdatePlayers {
		t.Fatalf("expected roster second, got %s", msg.Event)
	}
	if msg := readWS(t, conn, 5*time.Second); msg.Event != game.EventUpdateGameStats {
		t.Fatalf("expected stats third, got %s", msg.Event)
	}
}

func TestWebsocketJoinBroadcastsToEveryone(t *testing.T) {
	srv := newScriptedServer(t)
	ts := newTestServer(t, srv.Handler())
	t.Cleanup(ts.Close)

	ada := dialWS(t, ts)
	watcher := dialWS(t, ts)
	waitForEvent(t, ada, game.EventUpdateGameStats)
	waitForEvent(t, watcher, game.EventUpdateGameStats)

	if err := ada.WriteMessage(websocket.TextMessage, []byte("not json")); err != nil {
		t.Fatalf("write: %v", err)
	}
	sendFrame(t, ada, "join", map[string]string{"name": "Ada"})

	waitForLog(t, watcher, "Ada joined")
	var stats map[string]game.Record
	if err := json.Unmarshal(waitForEvent(t, watcher, game.EventUpdateGameStats), &stats); err != nil {
		t.Fatalf("decode stats: %v", err)
	}
	if _, ok := stats["Ada"]; !ok {
		t.Fatalf("expected Ada in stats, got %#v", stats)
	}
	var players []game.Player
	if err := json.Unmarshal(waitForEvent(t, watcher, game.EventUpdatePlayers), &players); err != nil {
		t.Fatalf("decode players: %v", err)
	}
	if len(players) != 1 || players[0].Name != "Ada" || players[0].Life != 0 {
		t.Fatalf("unexpected roster %#v", players)
	}

	sendFrame(t, watcher, "chat", map[string]string{"message": "good luck"})
	var chat string
	if err := json.Unmarshal(waitForEvent(t, ada, game.EventReceiveMessage), &chat); err != nil {
		t.Fatalf("decode chat: %v", err)
	}
	if chat != "good luck" {
		t.Fatalf("expected chat relayed verbatim, got %q", chat)
	}
}

func TestWebsocketFullRound(t *testing.T) {
	srv := newScriptedServer(t, 2, 5, 4, 6, 6)
	ts := newTestServer(t, srv.Handler())
	t.Cleanup(ts.Close)

	ada := dialWS(t, ts)
	ben := dialWS(t, ts)

	sendFrame(t, ada, "join", map[string]string{"name": "Ada"})
	waitForLog(t, ada, "Ada joined")
	sendFrame(t, ben, "join", map[string]string{"name": "Ben"})
	waitForLog(t, ada, "Ben joined")

	sendFrame(t, ada, "determineLife", nil)
	waitForLog(t, ada, "Ada rolled 2 lives")
	sendFrame(t, ben, "determineLife", nil)
	waitForLog(t, ada, "Ben rolled 5 lives")
	waitForLog(t, ada, "Ada starts the game")

	rolls := []struct {
		conn  *websocket.Conn
		total int
	}{
		{conn: ada, total: 4},
		{conn: ben, total: 10},
		{conn: ada, total: 16},
	}
	for _, step := range rolls {
		sendFrame(t, step.conn, "rollDice", nil)
		var result game.RollResult
		if err := json.Unmarshal(waitForEvent(t, ada, game.EventRollResult), &result); err != nil {
			t.Fatalf("decode roll: %v", err)
		}
		if result.TotalValue != step.total {
			t.Fatalf("expected total %d, got %#v", step.total, result)
		}
	}

	var loser, winner string
	if err := json.Unmarshal(waitForEvent(t, ada, game.EventPlayerEliminated), &loser); err != nil {
		t.Fatalf("decode elimination: %v", err)
	}
	if err := json.Unmarshal(waitForEvent(t, ada, game.EventGameOver), &winner); err != nil {
		t.Fatalf("decode game over: %v", err)
	}
	if loser != "Ada" || winner != "Ben" {
		t.Fatalf("expected Ada out and Ben winning, got loser=%s winner=%s", loser, winner)
	}
	waitForEvent(t, ada, game.EventUpdatePlayers)

	resp := doRequest(t, ts, http.MethodGet, "/api/state")
	var snap game.Snapshot
	decodeBody(t, resp, &snap)
	if snap.Phase != game.PhaseOver {
		t.Fatalf("expected over phase, got %s", snap.Phase)
	}
	if snap.Stats["Ada"].Losses != 1 || snap.Stats["Ben"].Wins != 1 {
		t.Fatalf("unexpected stats %#v", snap.Stats)
	}
	if len(snap.Players) != 1 || snap.Players[0].Name != "Ben" {
		t.Fatalf("expected only Ben seated, got %#v", snap.Players)
	}

	sendFrame(t, ben, "newRound", nil)
	waitForEvent(t, ada, game.EventResetGame)
	waitForLog(t, ada, "new game begins")
}
