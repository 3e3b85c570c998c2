package db

import (
	"errors"

	"gorm.io/gorm"
)

var ErrNotFound = errors.New("record not found")

func FindPlayerByName(conn *gorm.DB, name string) (*Player, error) {
	var record Player
	if err := conn.Where("name = ?", name).First(&record).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &record, nil
}

// ListPlayers returns every player ordered by wins, then fewest losses.
func ListPlayers(conn *gorm.DB) ([]Player, error) {
	var players []Player
	if err := conn.Order("wins desc, losses asc, name asc").Find(&players).Error; err != nil {
		return nil, err
	}
	return players, nil
}

// ListRounds returns one page of rounds, newest first, and the total count.
func ListRounds(conn *gorm.DB, page, perPage int) ([]Round, int64, error) {
	var total int64
	if err := conn.Model(&Round{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}
	if page < 1 {
		page = 1
	}
	var rounds []Round
	err := conn.Order("id desc").
		Offset((page - 1) * perPage).
		Limit(perPage).
		Find(&rounds).Error
	if err != nil {
		return nil, 0, err
	}
	return rounds, total, nil
}
