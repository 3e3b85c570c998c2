package web

type PlayerListItem struct {
	Name   string
	Life   int
	IsTurn bool
	Wins   int
	Losses int
}
