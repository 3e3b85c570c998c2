package db

import (
	"time"

	"gorm.io/datatypes"
)

// Player holds lifetime results for a display name across every round the
// server has journaled.
type Player struct {
	ID        uint      `gorm:"primaryKey"`
	Name      string    `gorm:"size:64;uniqueIndex;not null"`
	Wins      int       `gorm:"not null;default:0"`
	Losses    int       `gorm:"not null;default:0"`
	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

type Round struct {
	ID           uint                        `gorm:"primaryKey"`
	Status       string                      `gorm:"size:32;not null"`
	Winner       string                      `gorm:"size:64"`
	Participants datatypes.JSONSlice[string] `gorm:"type:jsonb;not null"`
	Eliminated   datatypes.JSONSlice[string] `gorm:"type:jsonb;not null"`
	StartedAt    time.Time                   `gorm:"not null"`
	EndedAt      *time.Time
	CreatedAt    time.Time `gorm:"not null"`
	UpdatedAt    time.Time `gorm:"not null"`
	Events       []Event
}

type Event struct {
	ID        uint           `gorm:"primaryKey"`
	RoundID   *uint          `gorm:"index"`
	Type      string         `gorm:"size:64;not null"`
	Payload   datatypes.JSON `gorm:"type:jsonb;not null"`
	CreatedAt time.Time      `gorm:"not null"`
}

const (
	RoundStatusActive   = "active"
	RoundStatusFinished = "finished"
	RoundStatusAborted  = "aborted"
)
