package table

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"kafe-backend/internal/config"

	"github.com/gofiber/fiber/v2"
	"github.com/skip2/go-qrcode"
)

func qrDir(cfg *config.Config) string {
	return filepath.Join(cfg.UploadPath, "qr_codes")
}

func qrFileName(number int) string {
	return fmt.Sprintf("table_%d.png", number)
}

func qrFileURL(cfg *config.Config, number int) string {
	return fmt.Sprintf("%s/uploads/qr_codes/%s", cfg.PublicBaseURL, qrFileName(number))
}

// WriteTableQR masaya ait join linkini 512px PNG olarak yazar.
// Masa başına tek dosya vardır, tekrar üretimde üstüne yazılır.
func WriteTableQR(cfg *config.Config, number int) error {
	if err := os.MkdirAll(qrDir(cfg), 0o755); err != nil {
		return err
	}
	data := fmt.Sprintf("%s/?table=%d", cfg.PublicBaseURL, number)
	return qrcode.WriteFile(data, qrcode.Medium, 512, filepath.Join(qrDir(cfg), qrFileName(number)))
}

// GET /generate-qr/:table
func GenerateQRHandler(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		number, err := c.ParamsInt("table")
		if err != nil || number <= 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz masa numarası")
		}

		if err := WriteTableQR(cfg, number); err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "QR kod oluşturulamadı")
		}

		return c.JSON(fiber.Map{
			"table":     number,
			"qrCodeUrl": qrFileURL(cfg, number),
		})
	}
}

// GET /list-qr
func ListQRHandler(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		entries, err := os.ReadDir(qrDir(cfg))
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "QR klasörü okunamadı")
		}

		res := make([]fiber.Map, 0, len(entries))
		for _, entry := range entries {
			name := entry.Name()
			if entry.IsDir() || !strings.HasPrefix(name, "table_") || !strings.HasSuffix(name, ".png") {
				continue
			}
			number, err := strconv.Atoi(strings.TrimSuffix(strings.TrimPrefix(name, "table_"), ".png"))
			if err != nil {
				continue
			}
			res = append(res, fiber.Map{
				"table":     number,
				"qrCodeUrl": qrFileURL(cfg, number),
			})
		}

		return c.JSON(res)
	}
}
