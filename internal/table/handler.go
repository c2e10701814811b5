package table

import (
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"kafe-backend/internal/config"
	"kafe-backend/internal/database"
	"kafe-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type CreateTableRequest struct {
	Number int `json:"number"`
}

type TableResponse struct {
	ID        uint               `json:"id"`
	Number    int                `json:"number"`
	Status    models.TableStatus `json:"status"`
	QRCodeURL string             `json:"qrCodeUrl"`
}

// POST /api/tables
func CreateTableHandler(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CreateTableRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz istek gövdesi")
		}

		if body.Number <= 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Masa numarası zorunlu")
		}

		// Unique index ihlali 400'e çevrilir, ön kontrol yapılmaz;
		// eşzamanlı iki create'ten ikincisi de doğru cevabı alır.
		t := models.Table{Number: body.Number, Status: models.TableStatusAvailable}
		if err := database.DB.Create(&t).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return fiber.NewError(fiber.StatusBadRequest, "Bu masa numarası zaten kayıtlı")
			}
			return fiber.NewError(fiber.StatusInternalServerError, "Masa oluşturulamadı")
		}

		if err := WriteTableQR(cfg, body.Number); err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "QR kod oluşturulamadı")
		}

		return c.JSON(TableResponse{
			ID:        t.ID,
			Number:    t.Number,
			Status:    t.Status,
			QRCodeURL: qrFileURL(cfg, t.Number),
		})
	}
}

// GET /api/tables
func ListTablesHandler(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var tables []models.Table
		if err := database.DB.Order("number asc").Find(&tables).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Masalar listelenemedi")
		}

		res := make([]TableResponse, 0, len(tables))
		for _, t := range tables {
			res = append(res, TableResponse{
				ID:        t.ID,
				Number:    t.Number,
				Status:    t.Status,
				QRCodeURL: qrFileURL(cfg, t.Number),
			})
		}
		return c.JSON(res)
	}
}

// GET /api/tables/:number
func GetTableHandler(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		number, err := c.ParamsInt("number")
		if err != nil || number <= 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz masa numarası")
		}

		var t models.Table
		if err := database.DB.Where("number = ?", number).First(&t).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "Masa bulunamadı")
			}
			return fiber.NewError(fiber.StatusInternalServerError, "Masa getirilemedi")
		}

		return c.JSON(TableResponse{
			ID:        t.ID,
			Number:    t.Number,
			Status:    t.Status,
			QRCodeURL: qrFileURL(cfg, t.Number),
		})
	}
}

// DELETE /api/tables/:id
func DeleteTableHandler(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := c.ParamsInt("id")
		if err != nil || id <= 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz ID")
		}

		var t models.Table
		if err := database.DB.First(&t, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "Masa bulunamadı")
			}
			return fiber.NewError(fiber.StatusInternalServerError, "Masa getirilemedi")
		}

		if err := database.DB.Delete(&models.Table{}, id).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Masa silinemedi")
		}

		// QR dosyası best-effort silinir
		qrPath := filepath.Join(qrDir(cfg), qrFileName(t.Number))
		if err := os.Remove(qrPath); err != nil && !os.IsNotExist(err) {
			log.Printf("QR dosyası silinemedi (%s): %v", qrPath, err)
		}

		return c.JSON(fiber.Map{
			"success": true,
			"message": fmt.Sprintf("Masa %d silindi", t.Number),
		})
	}
}
