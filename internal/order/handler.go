package order

import (
	"errors"
	"fmt"
	"time"

	"kafe-backend/internal/database"
	"kafe-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type CreateOrderItem struct {
	MenuID   uint `json:"menuId"`
	Quantity int  `json:"quantity"`
}

type CreateOrderRequest struct {
	Table       int               `json:"table"`
	Items       []CreateOrderItem `json:"items"`
	TotalAmount float64           `json:"totalAmount"`
}

type OrderLineResponse struct {
	MenuID    uint    `json:"menuId"`
	Quantity  int     `json:"quantity"`
	UnitPrice float64 `json:"unitPrice"`
}

type OrderResponse struct {
	ID            uint                 `json:"id"`
	TableNumber   int                  `json:"table_number"`
	Items         []OrderLineResponse  `json:"items"`
	TotalAmount   float64              `json:"total_amount"`
	Status        models.OrderStatus   `json:"status"`
	PaymentStatus models.PaymentStatus `json:"payment_status"`
	Date          time.Time            `json:"date"`
}

func toOrderResponse(o models.Order) OrderResponse {
	lines := make([]OrderLineResponse, 0, len(o.Items))
	for _, it := range o.Items {
		lines = append(lines, OrderLineResponse{
			MenuID:    it.MenuID,
			Quantity:  it.Quantity,
			UnitPrice: it.UnitPrice,
		})
	}
	return OrderResponse{
		ID:            o.ID,
		TableNumber:   o.TableNumber,
		Items:         lines,
		TotalAmount:   o.TotalAmount,
		Status:        o.Status,
		PaymentStatus: o.PaymentStatus,
		Date:          o.CreatedAt,
	}
}

// POST /api/orders
// Kalem fiyatları sipariş anında menüden kopyalanır; sipariş sonradan
// menü değişse de aynı kalır. Kayıt ve masa durumu tek transaction'da.
func CreateOrderHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CreateOrderRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz istek gövdesi")
		}

		if body.Table <= 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Masa numarası zorunlu")
		}
		if len(body.Items) == 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Sipariş kalemleri boş olamaz")
		}
		if body.TotalAmount <= 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Tutar 0'dan büyük olmalı")
		}

		var order models.Order

		txErr := database.DB.Transaction(func(tx *gorm.DB) error {
			lines := make([]models.OrderItem, 0, len(body.Items))
			for _, it := range body.Items {
				if it.MenuID == 0 || it.Quantity <= 0 {
					return fiber.NewError(fiber.StatusBadRequest, "Geçersiz sipariş kalemi")
				}

				var item models.MenuItem
				if err := tx.First(&item, it.MenuID).Error; err != nil {
					if errors.Is(err, gorm.ErrRecordNotFound) {
						return fiber.NewError(fiber.StatusBadRequest, fmt.Sprintf("Menü bulunamadı: %d", it.MenuID))
					}
					return fiber.NewError(fiber.StatusInternalServerError, "Menü getirilemedi")
				}

				lines = append(lines, models.OrderItem{
					MenuID:    item.ID,
					Quantity:  it.Quantity,
					UnitPrice: item.Price,
				})
			}

			order = models.Order{
				TableNumber:   body.Table,
				Status:        models.OrderStatusPending,
				PaymentStatus: models.PaymentStatusUnpaid,
				TotalAmount:   body.TotalAmount,
				Items:         lines,
			}
			if err := tx.Create(&order).Error; err != nil {
				return fiber.NewError(fiber.StatusInternalServerError, "Sipariş kaydedilemedi")
			}

			// Masa kaydı varsa dolu işaretlenir, masa kaydı zorunlu değil
			if err := tx.Model(&models.Table{}).
				Where("number = ?", body.Table).
				Update("status", models.TableStatusOccupied).Error; err != nil {
				return fiber.NewError(fiber.StatusInternalServerError, "Masa durumu güncellenemedi")
			}

			return nil
		})
		if txErr != nil {
			return txErr
		}

		return c.Status(fiber.StatusCreated).JSON(fiber.Map{
			"id":          order.ID,
			"table":       body.Table,
			"items":       body.Items,
			"totalAmount": body.TotalAmount,
			"message":     fmt.Sprintf("Masa %d siparişi kaydedildi", body.Table),
		})
	}
}

// PUT /api/orders/:id/payment
// Tek yönlü geçiş; tekrar çağrılması hata üretmez. Satış kayıtları
// yalnızca ilk geçişte yazılır, koruma RowsAffected üzerinden.
func PaymentHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := c.ParamsInt("id")
		if err != nil || id <= 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz ID")
		}

		txErr := database.DB.Transaction(func(tx *gorm.DB) error {
			res := tx.Model(&models.Order{}).
				Where("id = ? AND payment_status <> ?", id, models.PaymentStatusPaid).
				Update("payment_status", models.PaymentStatusPaid)
			if res.Error != nil {
				return fiber.NewError(fiber.StatusInternalServerError, "Sipariş güncellenemedi")
			}

			if res.RowsAffected == 0 {
				var count int64
				if err := tx.Model(&models.Order{}).Where("id = ?", id).Count(&count).Error; err != nil {
					return fiber.NewError(fiber.StatusInternalServerError, "Sipariş getirilemedi")
				}
				if count == 0 {
					return fiber.NewError(fiber.StatusNotFound, "Sipariş bulunamadı")
				}
				return nil // zaten ödenmiş
			}

			var items []models.OrderItem
			if err := tx.Where("order_id = ?", id).Find(&items).Error; err != nil {
				return fiber.NewError(fiber.StatusInternalServerError, "Sipariş kalemleri okunamadı")
			}

			now := time.Now()
			for _, it := range items {
				sale := models.Sale{
					MenuID:     it.MenuID,
					Quantity:   it.Quantity,
					TotalPrice: float64(it.Quantity) * it.UnitPrice,
					Date:       now,
				}
				if err := tx.Create(&sale).Error; err != nil {
					return fiber.NewError(fiber.StatusInternalServerError, "Satış kaydı yazılamadı")
				}
			}

			return nil
		})
		if txErr != nil {
			return txErr
		}

		return c.JSON(fiber.Map{"success": true, "message": "Ödeme alındı"})
	}
}

// PUT /api/orders/:id/delivery, payment ile aynı idempotent kalıp
func DeliveryHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := c.ParamsInt("id")
		if err != nil || id <= 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz ID")
		}

		res := database.DB.Model(&models.Order{}).
			Where("id = ?", id).
			Update("status", models.OrderStatusDelivered)
		if res.Error != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Sipariş güncellenemedi")
		}
		if res.RowsAffected == 0 {
			return fiber.NewError(fiber.StatusNotFound, "Sipariş bulunamadı")
		}

		return c.JSON(fiber.Map{"success": true, "message": "Sipariş teslim edildi"})
	}
}

// GET /api/orders, mutfak/kasa ekranı için ödenmemiş siparişler
func ListOrdersHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var orders []models.Order
		if err := database.DB.Preload("Items").
			Where("payment_status <> ?", models.PaymentStatusPaid).
			Find(&orders).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Siparişler listelenemedi")
		}

		res := make([]OrderResponse, 0, len(orders))
		for _, o := range orders {
			res = append(res, toOrderResponse(o))
		}
		return c.JSON(res)
	}
}

// GET /api/orders/paid-orders
// Boş sonuçta 404 dönmesi eski istemcilerle korunan bir sözleşme.
func PaidOrdersHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var orders []models.Order
		if err := database.DB.Preload("Items").
			Where("payment_status = ?", models.PaymentStatusPaid).
			Find(&orders).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Siparişler listelenemedi")
		}

		if len(orders) == 0 {
			return fiber.NewError(fiber.StatusNotFound, "Ödenmiş sipariş bulunamadı")
		}

		res := make([]OrderResponse, 0, len(orders))
		for _, o := range orders {
			res = append(res, toOrderResponse(o))
		}
		return c.JSON(res)
	}
}

// GET /api/orders/:id
func GetOrderHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := c.ParamsInt("id")
		if err != nil || id <= 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz ID")
		}

		var order models.Order
		if err := database.DB.Preload("Items").First(&order, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "Sipariş bulunamadı")
			}
			return fiber.NewError(fiber.StatusInternalServerError, "Sipariş getirilemedi")
		}

		return c.JSON(toOrderResponse(order))
	}
}

// DELETE /api/orders/:id
func DeleteOrderHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := c.ParamsInt("id")
		if err != nil || id <= 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz ID")
		}

		txErr := database.DB.Transaction(func(tx *gorm.DB) error {
			res := tx.Delete(&models.Order{}, id)
			if res.Error != nil {
				return fiber.NewError(fiber.StatusInternalServerError, "Sipariş silinemedi")
			}
			if res.RowsAffected == 0 {
				return fiber.NewError(fiber.StatusNotFound, "Sipariş bulunamadı")
			}
			if err := tx.Where("order_id = ?", id).Delete(&models.OrderItem{}).Error; err != nil {
				return fiber.NewError(fiber.StatusInternalServerError, "Sipariş kalemleri silinemedi")
			}
			return nil
		})
		if txErr != nil {
			return txErr
		}

		return c.JSON(fiber.Map{"success": true, "message": "Sipariş silindi"})
	}
}

// DELETE /api/orders?table=N, hesap kapanınca masanın oturumunu temizler
func DeleteTableOrdersHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		table := c.QueryInt("table")
		if table <= 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Masa numarası zorunlu")
		}

		txErr := database.DB.Transaction(func(tx *gorm.DB) error {
			var ids []uint
			if err := tx.Model(&models.Order{}).
				Where("table_number = ?", table).
				Pluck("id", &ids).Error; err != nil {
				return fiber.NewError(fiber.StatusInternalServerError, "Siparişler getirilemedi")
			}
			if len(ids) == 0 {
				return fiber.NewError(fiber.StatusNotFound, "Bu masanın siparişi bulunamadı")
			}

			if err := tx.Where("order_id IN ?", ids).Delete(&models.OrderItem{}).Error; err != nil {
				return fiber.NewError(fiber.StatusInternalServerError, "Sipariş kalemleri silinemedi")
			}
			if err := tx.Where("table_number = ?", table).Delete(&models.Order{}).Error; err != nil {
				return fiber.NewError(fiber.StatusInternalServerError, "Siparişler silinemedi")
			}

			// Masa tekrar boşa çekilir
			if err := tx.Model(&models.Table{}).
				Where("number = ?", table).
				Update("status", models.TableStatusAvailable).Error; err != nil {
				return fiber.NewError(fiber.StatusInternalServerError, "Masa durumu güncellenemedi")
			}

			return nil
		})
		if txErr != nil {
			return txErr
		}

		return c.JSON(fiber.Map{
			"success": true,
			"message": fmt.Sprintf("Masa %d siparişleri silindi", table),
		})
	}
}
