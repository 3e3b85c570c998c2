package server

import (
	"encoding/json"
	"errors"
	"log"
	"sync"
	"time"

	"sixteen/internal/db"
	"sixteen/internal/game"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type journalEntry struct {
	Events  []game.Event
	Phase   string
	Players []game.Player
	At      time.Time
}

// journal writes broadcast events to the database on its own goroutine so the
// command loop never waits on I/O. It only ever writes; nothing is read back
// into the coordinator.
type journal struct {
	db        *gorm.DB
	queue     chan journalEntry
	wg        sync.WaitGroup
	closeOnce sync.Once

	// Owned by the worker goroutine.
	round   *db.Round
	players map[string]uint
}

func newJournal(conn *gorm.DB, size int) *journal {
	if conn == nil {
		return nil
	}
	if size <= 0 {
		size = 512
	}
	j := &journal{
		db:      conn,
		queue:   make(chan journalEntry, size),
		players: make(map[string]uint),
	}
	j.wg.Add(1)
	go j.work()
	return j
}

func (j *journal) Record(entry journalEntry) {
	if j == nil {
		return
	}
	select {
	case j.queue <- entry:
	default:
		log.Printf("journal queue full dropped_events=%d", len(entry.Events))
	}
}

func (j *journal) Close() {
	if j == nil {
		return
	}
	j.closeOnce.Do(func() {
		close(j.queue)
		j.wg.Wait()
	})
}

func (j *journal) work() {
	defer j.wg.Done()
	for entry := range j.queue {
		if err := j.persist(entry); err != nil {
			log.Printf("journal write failed error=%v", err)
		}
	}
}

func (j *journal) persist(entry journalEntry) error {
	if j.round == nil && entry.Phase == game.PhaseActive {
		if err := j.openRound(entry); err != nil {
			return err
		}
	}
	for _, event := range entry.Events {
		if err := j.persistEvent(event, entry.At); err != nil {
			return err
		}
		if err := j.applyEvent(event, entry.At); err != nil {
			return err
		}
	}
	return nil
}

func (j *journal) applyEvent(event game.Event, at time.Time) error {
	switch event.Name {
	case game.EventUpdateGameStats:
		stats, ok := event.Payload.(map[string]game.Record)
		if !ok {
			return nil
		}
		for name := range stats {
			if _, err := j.ensurePlayer(name); err != nil {
				return err
			}
		}
	case game.EventPlayerEliminated:
		name, _ := event.Payload.(string)
		if err := j.bumpPlayer(name, "losses"); err != nil {
			return err
		}
		if j.round != nil {
			j.round.Eliminated = append(j.round.Eliminated, name)
			return j.db.Model(j.round).Update("eliminated", j.round.Eliminated).Error
		}
	case game.EventGameOver:
		name, _ := event.Payload.(string)
		if err := j.bumpPlayer(name, "wins"); err != nil {
			return err
		}
		return j.closeRound(db.RoundStatusFinished, name, at)
	case game.EventResetGame:
		return j.closeRound(db.RoundStatusAborted, "", at)
	}
	return nil
}

func (j *journal) openRound(entry journalEntry) error {
	participants := make([]string, 0, len(entry.Players))
	for _, player := range entry.Players {
		participants = append(participants, player.Name)
	}
	round := db.Round{
		Status:       db.RoundStatusActive,
		Participants: datatypes.JSONSlice[string](participants),
		Eliminated:   datatypes.JSONSlice[string]{},
		StartedAt:    entry.At,
	}
	if err := j.db.Create(&round).Error; err != nil {
		return err
	}
	j.round = &round
	log.Printf("round started round_id=%d players=%d", round.ID, len(participants))
	return nil
}

func (j *journal) closeRound(status, winner string, at time.Time) error {
	if j.round == nil {
		return nil
	}
	round := j.round
	j.round = nil
	updates := map[string]any{
		"status":   status,
		"winner":   winner,
		"ended_at": at,
	}
	if err := j.db.Model(&db.Round{}).Where("id = ?", round.ID).Updates(updates).Error; err != nil {
		return err
	}
	log.Printf("round closed round_id=%d status=%s winner=%s", round.ID, status, winner)
	return nil
}

func (j *journal) persistEvent(event game.Event, at time.Time) error {
	data, err := json.Marshal(event.Payload)
	if err != nil {
		return err
	}
	record := db.Event{
		Type:      event.Name,
		Payload:   datatypes.JSON(data),
		CreatedAt: at,
	}
	if j.round != nil {
		id := j.round.ID
		record.RoundID = &id
	}
	return j.db.Create(&record).Error
}

func (j *journal) bumpPlayer(name, column string) error {
	if name == "" {
		return nil
	}
	id, err := j.ensurePlayer(name)
	if err != nil {
		return err
	}
	return j.db.Model(&db.Player{}).
		Where("id = ?", id).
		Update(column, gorm.Expr(column+" + ?", 1)).Error
}

func (j *journal) ensurePlayer(name string) (uint, error) {
	if id, ok := j.players[name]; ok {
		return id, nil
	}
	record := db.Player{Name: name}
	err := j.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "name"}},
		DoNothing: true,
	}).Create(&record).Error
	if err != nil && !isUniqueViolation(err) {
		return 0, err
	}
	if record.ID == 0 {
		existing, err := db.FindPlayerByName(j.db, name)
		if err != nil {
			return 0, err
		}
		record.ID = existing.ID
	}
	j.players[name] = record.ID
	return record.ID, nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	return false
}
