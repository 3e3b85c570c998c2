package main

import (
	"encoding/csv"
	"flag"
	"io"
	"log"
	"os"
	"strconv"

	"sixteen/internal/config"
	"sixteen/internal/db"
)

func main() {
	filePath := flag.String("file", "stats.csv", "path to write, or - for stdout")
	flag.Parse()

	if err := config.LoadDotEnv(".env"); err != nil {
		log.Printf("failed to load .env: %v", err)
	}

	conn, err := db.Open()
	if err != nil {
		log.Fatalf("database connection failed: %v", err)
	}

	players, err := db.ListPlayers(conn)
	if err != nil {
		log.Fatalf("failed to read players: %v", err)
	}

	out := io.Writer(os.Stdout)
	if *filePath != "-" {
		file, err := os.Create(*filePath)
		if err != nil {
			log.Fatalf("failed to create %s: %v", *filePath, err)
		}
		defer file.Close()
		out = file
	}
	if err := writeStats(out, players); err != nil {
		log.Fatalf("failed to write stats: %v", err)
	}
	log.Printf("exported %d players", len(players))
}

func writeStats(w io.Writer, players []db.Player) error {
	writer := csv.NewWriter(w)
	if err := writer.Write([]string{"name", "wins", "losses", "games"}); err != nil {
		return err
	}
	for _, player := range players {
		row := []string{
			player.Name,
			strconv.Itoa(player.Wins),
			strconv.Itoa(player.Losses),
			strconv.Itoa(player.Wins + player.Losses),
		}
		if err := writer.Write(row); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}
