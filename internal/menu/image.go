package menu

import (
	"fmt"
	"log"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"
	"time"

	"kafe-backend/internal/config"

	"github.com/gofiber/fiber/v2"
)

var allowedImageTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
}

var allowedImageExts = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
}

// saveImage yüklenen dosyayı <timestamp>_<orijinal ad> olarak kaydeder.
// Dönen değer /uploads/<dosya> formatında asset yoludur.
func saveImage(cfg *config.Config, c *fiber.Ctx, file *multipart.FileHeader) (string, error) {
	ext := strings.ToLower(filepath.Ext(file.Filename))
	if !allowedImageExts[ext] || !allowedImageTypes[file.Header.Get("Content-Type")] {
		return "", fiber.NewError(fiber.StatusBadRequest, "Sadece jpeg veya png yüklenebilir")
	}

	if err := os.MkdirAll(cfg.UploadPath, 0o755); err != nil {
		return "", fiber.NewError(fiber.StatusInternalServerError, "Upload klasörü oluşturulamadı")
	}

	name := fmt.Sprintf("%d_%s", time.Now().UnixMilli(), filepath.Base(file.Filename))
	if err := c.SaveFile(file, filepath.Join(cfg.UploadPath, name)); err != nil {
		return "", fiber.NewError(fiber.StatusInternalServerError, "Dosya kaydedilemedi")
	}

	return "/uploads/" + name, nil
}

// removeImage best-effort çalışır: dosya silinemezse sadece loglanır,
// asıl kayıt işlemi bundan etkilenmez.
func removeImage(cfg *config.Config, imagePath string) {
	rel := strings.TrimPrefix(imagePath, "/uploads/")
	if rel == "" || rel == imagePath {
		return
	}
	full := filepath.Join(cfg.UploadPath, rel)
	if err := os.Remove(full); err != nil && !os.IsNotExist(err) {
		log.Printf("Asset silinemedi (%s): %v", full, err)
	}
}
