package server

import (
	"context"
	"errors"
	"log"
	"net/http"
	"time"

	"sixteen/internal/db"

	"github.com/gin-gonic/gin"
)

const stateTimeout = 5 * time.Second

type roundSummary struct {
	ID           uint       `json:"id"`
	Status       string     `json:"status"`
	Winner       string     `json:"winner,omitempty"`
	Participants []string   `json:"participants"`
	Eliminated   []string   `json:"eliminated"`
	StartedAt    time.Time  `json:"started_at"`
	EndedAt      *time.Time `json:"ended_at,omitempty"`
}

type playerSummary struct {
	Name   string `json:"name"`
	Wins   int    `json:"wins"`
	Losses int    `json:"losses"`
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) handleState(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), stateTimeout)
	defer cancel()
	snap, err := s.snapshot(ctx)
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "game unavailable"})
		return
	}
	c.JSON(http.StatusOK, snap)
}

func (s *Server) handleHistory(c *gin.Context) {
	var query historyQuery
	if !bindQuery(c, &query) {
		return
	}
	if s.db == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "database not configured"})
		return
	}
	page, perPage := resolvePagination(query, s.cfg.HistoryPerPage, maxHistoryPerPage)
	conn := s.db.WithContext(c.Request.Context())
	rounds, total, err := db.ListRounds(conn, page, perPage)
	if err != nil {
		log.Printf("history query failed error=%v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load history"})
		return
	}
	items := make([]roundSummary, 0, len(rounds))
	for _, round := range rounds {
		items = append(items, roundSummary{
			ID:           round.ID,
			Status:       round.Status,
			Winner:       round.Winner,
			Participants: round.Participants,
			Eliminated:   round.Eliminated,
			StartedAt:    round.StartedAt,
			EndedAt:      round.EndedAt,
		})
	}
	c.JSON(http.StatusOK, gin.H{
		"rounds":     items,
		"pagination": buildPaginationData(page, perPage, total),
	})
}

func (s *Server) handleLeaderboard(c *gin.Context) {
	if s.db == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "database not configured"})
		return
	}
	players, err := db.ListPlayers(s.db.WithContext(c.Request.Context()))
	if err != nil {
		log.Printf("leaderboard query failed error=%v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load players"})
		return
	}
	items := make([]playerSummary, 0, len(players))
	for _, player := range players {
		items = append(items, playerSummary{Name: player.Name, Wins: player.Wins, Losses: player.Losses})
	}
	c.JSON(http.StatusOK, gin.H{"players": items})
}

func (s *Server) handlePlayerStats(c *gin.Context) {
	var uri playerURI
	if !bindURI(c, &uri) {
		return
	}
	name, _ := validateName(uri.Name)
	if s.db == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "database not configured"})
		return
	}
	player, err := db.FindPlayerByName(s.db.WithContext(c.Request.Context()), name)
	if errors.Is(err, db.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "player not found"})
		return
	}
	if err != nil {
		log.Printf("player query failed name=%s error=%v", name, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load player"})
		return
	}
	c.JSON(http.StatusOK, playerSummary{Name: player.Name, Wins: player.Wins, Losses: player.Losses})
}
