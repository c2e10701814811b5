package models

import "time"

type TableStatus string

const (
	TableStatusAvailable TableStatus = "available"
	TableStatusOccupied  TableStatus = "occupied"
)

type Table struct {
	ID        uint        `gorm:"primaryKey"`
	Number    int         `gorm:"not null;uniqueIndex"`
	Status    TableStatus `gorm:"size:20;not null;default:available"`
	CreatedAt time.Time
	UpdatedAt time.Time
}
