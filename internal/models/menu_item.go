package models

import "time"

type MenuItem struct {
	ID          uint    `gorm:"primaryKey"`
	Name        string  `gorm:"size:100;not null"`
	Price       float64 `gorm:"not null"`
	Details     string  `gorm:"size:500;not null"`
	Image       *string `gorm:"size:255"` // /uploads/<dosya> formatında asset yolu
	IsAvailable bool    `gorm:"not null;default:true"`
	CategoryID  *uint
	Category    *Category `gorm:"constraint:OnDelete:SET NULL"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
