package game

import (
	"fmt"
	"sort"
)

// Coordinator owns the roster, the lifetime stats and the round scalars. It is
// not safe for concurrent use: callers serialize every method on one goroutine.
// Handlers never fail; commands that are out of phase, out of turn or from an
// unknown connection produce no events or a single notice.
type Coordinator struct {
	roller      Roller
	players     []*Player
	stats       map[string]*Record
	turn        int
	total       int
	lifePhase   bool
	roundActive bool
}

func NewCoordinator(roller Roller) *Coordinator {
	if roller == nil {
		roller = NewRoller(0)
	}
	return &Coordinator{
		roller:    roller,
		stats:     make(map[string]*Record),
		lifePhase: true,
	}
}

func (c *Coordinator) Join(id, name string) []Event {
	name = NormalizeName(name)
	if name == "" || id == "" {
		return nil
	}
	if c.playerByName(name) != nil {
		return []Event{logEvent(fmt.Sprintf("The name %s is already taken.", name))}
	}
	if _, err := ValidateName(name); err != nil {
		return []Event{logEvent(fmt.Sprintf("Cannot join as %q: %v.", name, err))}
	}
	if existing := c.playerByID(id); existing != nil {
		return []Event{logEvent(fmt.Sprintf("%s is already seated at the table.", existing.Name))}
	}

	events := make([]Event, 0, 3)
	if c.roundActive {
		events = append(events, logEvent(fmt.Sprintf("%s can only play from the next game on.", name)))
	} else {
		c.players = append(c.players, &Player{ID: id, Name: name})
		events = append(events, logEvent(fmt.Sprintf("%s joined and is waiting for the next game.", name)))
	}
	c.record(name)
	return append(events, c.statsEvent(), c.playersEvent())
}

func (c *Coordinator) DetermineLife(id string) []Event {
	if !c.lifePhase {
		return nil
	}
	player := c.playerByID(id)
	if player == nil || player.Life > 0 {
		return nil
	}
	player.Life = clampFace(c.roller.Roll())
	events := []Event{
		logEvent(fmt.Sprintf("%s rolled %d lives.", player.Name, player.Life)),
		c.playersEvent(),
	}
	if !c.everyoneHasLife() {
		return events
	}

	c.lifePhase = false
	c.roundActive = true
	c.total = 0
	sort.SliceStable(c.players, func(i, j int) bool {
		return c.players[i].Life < c.players[j].Life
	})
	c.turn = 0
	c.assignTurn()
	return append(events,
		logEvent(fmt.Sprintf("%s starts the game with the fewest lives.", c.players[0].Name)),
		c.playersEvent(),
	)
}

func (c *Coordinator) RollDice(id string) []Event {
	player := c.currentPlayer(id)
	if player == nil {
		return nil
	}
	face := clampFace(c.roller.Roll())
	c.total += scoredValue(face)

	events := []Event{
		{Name: EventRollResult, Payload: RollResult{
			Player:     player.Name,
			Roll:       face,
			TotalValue: c.total,
			RiskToLose: FormatRisk(RiskToLose(c.total)),
		}},
		logEvent(fmt.Sprintf("%s rolled a %d. Current total: %d", player.Name, face, c.total)),
	}

	if c.total < BustThreshold {
		c.turn = (c.turn + 1) % len(c.players)
		c.assignTurn()
		return append(events, c.playersEvent())
	}

	events = append(events,
		Event{Name: EventPlayerEliminated, Payload: player.Name},
		logEvent(fmt.Sprintf("%s is out.", player.Name)),
	)
	player.Eliminated = true
	player.IsTurn = false
	c.record(player.Name).Losses++
	c.players = append(c.players[:c.turn], c.players[c.turn+1:]...)
	c.total = 0

	switch {
	case len(c.players) > 1:
		c.turn %= len(c.players)
		c.assignTurn()
		return append(events, c.playersEvent())
	case len(c.players) == 1:
		winner := c.players[0]
		winner.IsTurn = false
		c.record(winner.Name).Wins++
		c.roundActive = false
		c.turn = 0
		return append(events,
			Event{Name: EventGameOver, Payload: winner.Name},
			c.statsEvent(),
			c.playersEvent(),
		)
	default:
		c.roundActive = false
		c.turn = 0
		return append(events, c.playersEvent())
	}
}

func (c *Coordinator) SacrificeLife(id string) []Event {
	player := c.currentPlayer(id)
	if player == nil {
		return nil
	}
	if player.Life <= 1 {
		return []Event{logEvent(fmt.Sprintf("%s cannot sacrifice a life with only 1 left.", player.Name))}
	}
	player.Life--
	c.total = 0
	return []Event{
		{Name: EventLifeSacrificed, Payload: LifeSacrificed{Player: player.Name, Life: player.Life}},
		logEvent(fmt.Sprintf("%s sacrificed a life and starts again at 0. Lives left: %d", player.Name, player.Life)),
		c.playersEvent(),
	}
}

// NewRound reseats whoever is still on the roster. Players eliminated in the
// previous round stay out until they join again.
func (c *Coordinator) NewRound() []Event {
	for _, player := range c.players {
		player.Life = 0
		player.IsTurn = false
		player.HasSacrificed = false
		player.Eliminated = false
	}
	c.turn = 0
	c.total = 0
	c.lifePhase = true
	c.roundActive = false
	return []Event{
		{Name: EventResetGame},
		logEvent("The game was reset. A new game begins."),
		c.playersEvent(),
	}
}

func (c *Coordinator) Chat(message string) []Event {
	if !relayable(message) {
		return nil
	}
	return []Event{{Name: EventReceiveMessage, Payload: message}}
}

func (c *Coordinator) Log(message string) []Event {
	if !relayable(message) {
		return nil
	}
	return []Event{logEvent(message)}
}

func (c *Coordinator) Phase() string {
	switch {
	case c.roundActive:
		return PhaseActive
	case c.lifePhase:
		for _, player := range c.players {
			if player.Life > 0 {
				return PhaseLife
			}
		}
		return PhaseLobby
	default:
		return PhaseOver
	}
}

func (c *Coordinator) Players() []Player {
	list := make([]Player, 0, len(c.players))
	for _, player := range c.players {
		list = append(list, *player)
	}
	return list
}

func (c *Coordinator) Stats() map[string]Record {
	stats := make(map[string]Record, len(c.stats))
	for name, record := range c.stats {
		stats[name] = *record
	}
	return stats
}

func (c *Coordinator) TotalValue() int {
	return c.total
}

func (c *Coordinator) Snapshot() Snapshot {
	return Snapshot{
		Phase:       c.Phase(),
		Players:     c.Players(),
		Stats:       c.Stats(),
		TotalValue:  c.total,
		CurrentTurn: c.turn,
	}
}

func (c *Coordinator) PlayersEvent() Event {
	return c.playersEvent()
}

func (c *Coordinator) StatsEvent() Event {
	return c.statsEvent()
}

func (c *Coordinator) playersEvent() Event {
	return Event{Name: EventUpdatePlayers, Payload: c.Players()}
}

func (c *Coordinator) statsEvent() Event {
	return Event{Name: EventUpdateGameStats, Payload: c.Stats()}
}

func (c *Coordinator) record(name string) *Record {
	record, ok := c.stats[name]
	if !ok {
		record = &Record{}
		c.stats[name] = record
	}
	return record
}

func (c *Coordinator) currentPlayer(id string) *Player {
	if !c.roundActive || c.turn < 0 || c.turn >= len(c.players) {
		return nil
	}
	player := c.players[c.turn]
	if player.ID != id || player.Eliminated {
		return nil
	}
	return player
}

func (c *Coordinator) assignTurn() {
	for i, player := range c.players {
		player.IsTurn = i == c.turn
	}
}

func (c *Coordinator) everyoneHasLife() bool {
	if len(c.players) < MinPlayers {
		return false
	}
	for _, player := range c.players {
		if player.Life <= 0 {
			return false
		}
	}
	return true
}

func (c *Coordinator) playerByID(id string) *Player {
	if id == "" {
		return nil
	}
	for _, player := range c.players {
		if player.ID == id {
			return player
		}
	}
	return nil
}

func (c *Coordinator) playerByName(name string) *Player {
	for _, player := range c.players {
		if player.Name == name {
			return player
		}
	}
	return nil
}

func relayable(message string) bool {
	return message != "" && len(message) <= maxMessageBytes
}
