package report

import (
	"time"

	"kafe-backend/internal/database"
	"kafe-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

type DailySalesItem struct {
	MenuID   uint    `json:"menu_id"`
	Name     string  `json:"name"`
	Quantity int     `json:"quantity"`
	Total    float64 `json:"total"`
}

// GET /api/reports/sales/daily?date=2025-12-09 (bearer)
// Tarih verilmezse bugünün satışları döner.
func DailySalesHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		day := time.Now()
		if v := c.Query("date"); v != "" {
			parsed, err := time.Parse("2006-01-02", v)
			if err != nil {
				return fiber.NewError(fiber.StatusBadRequest, "Geçersiz tarih formatı (YYYY-MM-DD)")
			}
			day = parsed
		}

		start := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
		end := start.Add(24 * time.Hour)

		items := make([]DailySalesItem, 0)
		err := database.DB.Model(&models.Sale{}).
			Select("sales.menu_id AS menu_id, menu_items.name AS name, SUM(sales.quantity) AS quantity, SUM(sales.total_price) AS total").
			Joins("LEFT JOIN menu_items ON menu_items.id = sales.menu_id").
			Where("sales.date >= ? AND sales.date < ?", start, end).
			Group("sales.menu_id, menu_items.name").
			Order("total desc").
			Scan(&items).Error
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Satış raporu oluşturulamadı")
		}

		grandTotal := 0.0
		for _, it := range items {
			grandTotal += it.Total
		}

		return c.JSON(fiber.Map{
			"success":     true,
			"date":        start.Format("2006-01-02"),
			"items":       items,
			"grand_total": grandTotal,
		})
	}
}
