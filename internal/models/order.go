package models

import "time"

type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusDelivered OrderStatus = "delivered"
)

type PaymentStatus string

const (
	PaymentStatusUnpaid PaymentStatus = "unpaid"
	PaymentStatusPaid   PaymentStatus = "paid"
)

type Order struct {
	ID            uint          `gorm:"primaryKey"`
	TableNumber   int           `gorm:"not null;index"`
	Status        OrderStatus   `gorm:"size:20;not null;default:pending"`
	PaymentStatus PaymentStatus `gorm:"size:20;not null;default:unpaid"`
	TotalAmount   float64       `gorm:"not null"`
	Items         []OrderItem   `gorm:"constraint:OnDelete:CASCADE"`
	CreatedAt     time.Time
}

// OrderItem sipariş anındaki fiyatın snapshot'ıdır, sonradan menü
// değişse bile geçmiş siparişler etkilenmez.
type OrderItem struct {
	ID        uint    `gorm:"primaryKey"`
	OrderID   uint    `gorm:"not null;index"`
	MenuID    uint    `gorm:"not null"`
	Quantity  int     `gorm:"not null"`
	UnitPrice float64 `gorm:"not null"`
}
