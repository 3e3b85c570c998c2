package server

import (
	"context"
	"log"
	"time"

	"sixteen/internal/game"
)

// run is the only goroutine that touches the coordinator. Each command is
// applied and fanned out before the next one is taken from the inbox.
func (s *Server) run() {
	defer close(s.done)
	for {
		select {
		case <-s.quit:
			return
		case cmd := <-s.inbox:
			s.handleCommand(cmd)
		}
	}
}

func (s *Server) handleCommand(cmd any) {
	var events []game.Event
	switch c := cmd.(type) {
	case joinCommand:
		events = s.coord.Join(c.ConnID, c.Name)
	case determineLifeCommand:
		events = s.coord.DetermineLife(c.ConnID)
	case rollDiceCommand:
		events = s.coord.RollDice(c.ConnID)
	case sacrificeLifeCommand:
		events = s.coord.SacrificeLife(c.ConnID)
	case newRoundCommand:
		events = s.coord.NewRound()
	case chatCommand:
		events = s.coord.Chat(c.Message)
	case logCommand:
		events = s.coord.Log(c.Message)
	case welcomeCommand:
		s.ws.Send(c.Client,
			game.Event{Name: eventWelcome, Payload: map[string]string{"id": c.Client.id}},
			s.coord.PlayersEvent(),
			s.coord.StatsEvent(),
		)
		return
	case snapshotQuery:
		c.Reply <- s.coord.Snapshot()
		return
	default:
		log.Printf("unknown command type=%T", cmd)
		return
	}
	s.dispatch(events)
}

func (s *Server) dispatch(events []game.Event) {
	if len(events) == 0 {
		return
	}
	for _, event := range events {
		s.ws.Broadcast(event)
	}
	s.journal.Record(journalEntry{
		Events:  events,
		Phase:   s.coord.Phase(),
		Players: s.coord.Players(),
		At:      time.Now().UTC(),
	})
}

func (s *Server) submit(ctx context.Context, cmd any) error {
	select {
	case s.inbox <- cmd:
		return nil
	case <-s.quit:
		return errServerClosed
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (s *Server) snapshot(ctx context.Context) (game.Snapshot, error) {
	reply := make(chan game.Snapshot, 1)
	if err := s.submit(ctx, snapshotQuery{Reply: reply}); err != nil {
		return game.Snapshot{}, err
	}
	select {
	case snap := <-reply:
		return snap, nil
	case <-s.done:
		return game.Snapshot{}, errServerClosed
	case <-ctx.Done():
		return game.Snapshot{}, ctx.Err()
	}
}
