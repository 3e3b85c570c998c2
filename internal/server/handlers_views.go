package server

import (
	"context"
	"log"

	"sixteen/internal/game"
	"sixteen/internal/web"

	"github.com/a-h/templ"
	"github.com/gin-gonic/gin"
)

func (s *Server) handleHome(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), stateTimeout)
	defer cancel()
	snap, err := s.snapshot(ctx)
	if err != nil {
		log.Printf("home snapshot failed error=%v", err)
	}
	templ.Handler(web.Home(snap.Phase, buildPlayerListItems(snap))).ServeHTTP(c.Writer, c.Request)
}

func buildPlayerListItems(snap game.Snapshot) []web.PlayerListItem {
	items := make([]web.PlayerListItem, 0, len(snap.Players))
	for _, player := range snap.Players {
		record := snap.Stats[player.Name]
		items = append(items, web.PlayerListItem{
			Name:   player.Name,
			Life:   player.Life,
			IsTurn: player.IsTurn,
			Wins:   record.Wins,
			Losses: record.Losses,
		})
	}
	return items
}
