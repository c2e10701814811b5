package models

import "time"

// Sale ödeme alındığında sipariş kalemi başına bir kayıt olarak yazılır.
// Günlük satış raporu bu tablodan beslenir.
type Sale struct {
	ID         uint    `gorm:"primaryKey"`
	MenuID     uint    `gorm:"not null;index"`
	Quantity   int     `gorm:"not null"`
	TotalPrice float64 `gorm:"not null"`
	Date       time.Time
}
