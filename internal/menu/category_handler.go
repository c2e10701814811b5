package menu

import (
	"errors"
	"strings"

	"kafe-backend/internal/database"
	"kafe-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type CategoryResponse struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

type CreateCategoryRequest struct {
	Name string `json:"name"`
}

// GET /api/menu/categories
func ListCategoriesHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var categories []models.Category
		if err := database.DB.Order("name asc").Find(&categories).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Kategoriler listelenemedi")
		}

		res := make([]CategoryResponse, 0, len(categories))
		for _, cat := range categories {
			res = append(res, CategoryResponse{ID: cat.ID, Name: cat.Name})
		}
		return c.JSON(fiber.Map{"success": true, "data": res})
	}
}

// POST /api/menu/categories (bearer)
func CreateCategoryHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CreateCategoryRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz istek gövdesi")
		}

		body.Name = strings.TrimSpace(body.Name)
		if body.Name == "" {
			return fiber.NewError(fiber.StatusBadRequest, "Kategori adı zorunlu")
		}

		cat := models.Category{Name: body.Name}
		if err := database.DB.Create(&cat).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return fiber.NewError(fiber.StatusBadRequest, "Bu kategori zaten var")
			}
			return fiber.NewError(fiber.StatusInternalServerError, "Kategori oluşturulamadı")
		}

		return c.Status(fiber.StatusCreated).JSON(fiber.Map{
			"success": true,
			"data":    CategoryResponse{ID: cat.ID, Name: cat.Name},
		})
	}
}

// DELETE /api/menu/categories/:id (bearer)
// Kategorisi silinen menüler aynı transaction içinde kategorisiz bırakılır.
func DeleteCategoryHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := c.ParamsInt("id")
		if err != nil || id <= 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz ID")
		}

		txErr := database.DB.Transaction(func(tx *gorm.DB) error {
			var cat models.Category
			if err := tx.First(&cat, id).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return fiber.NewError(fiber.StatusNotFound, "Kategori bulunamadı")
				}
				return fiber.NewError(fiber.StatusInternalServerError, "Kategori getirilemedi")
			}

			if err := tx.Model(&models.MenuItem{}).
				Where("category_id = ?", id).
				Update("category_id", nil).Error; err != nil {
				return fiber.NewError(fiber.StatusInternalServerError, "Menüler güncellenemedi")
			}

			if err := tx.Delete(&models.Category{}, id).Error; err != nil {
				return fiber.NewError(fiber.StatusInternalServerError, "Kategori silinemedi")
			}
			return nil
		})
		if txErr != nil {
			return txErr
		}

		return c.JSON(fiber.Map{"success": true, "message": "Kategori silindi"})
	}
}
