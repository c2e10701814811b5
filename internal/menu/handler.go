package menu

import (
	"errors"
	"strconv"
	"strings"
	"time"

	"kafe-backend/internal/config"
	"kafe-backend/internal/database"
	"kafe-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type MenuItemResponse struct {
	ID          uint      `json:"id"`
	Name        string    `json:"name"`
	Price       float64   `json:"price"`
	Details     string    `json:"details"`
	Image       *string   `json:"image"`
	IsAvailable bool      `json:"isAvailable"`
	CategoryID  *uint     `json:"categoryId"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func toMenuItemResponse(m models.MenuItem) MenuItemResponse {
	return MenuItemResponse{
		ID:          m.ID,
		Name:        m.Name,
		Price:       m.Price,
		Details:     m.Details,
		Image:       m.Image,
		IsAvailable: m.IsAvailable,
		CategoryID:  m.CategoryID,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

// GET /api/menu?only_available=true&page=1&limit=20 (bearer)
func ListMenuHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		dbq := database.DB.Model(&models.MenuItem{})

		if c.Query("only_available") == "true" {
			dbq = dbq.Where("is_available = ?", true)
		}

		// page/limit verilmezse tüm satırlar döner
		if limit := c.QueryInt("limit"); limit > 0 {
			page := c.QueryInt("page", 1)
			if page < 1 {
				page = 1
			}
			dbq = dbq.Offset((page - 1) * limit).Limit(limit)
		}

		var items []models.MenuItem
		if err := dbq.Find(&items).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Menüler listelenemedi")
		}

		res := make([]MenuItemResponse, 0, len(items))
		for _, m := range items {
			res = append(res, toMenuItemResponse(m))
		}
		return c.JSON(fiber.Map{"success": true, "data": res})
	}
}

// GET /api/menu/public-menu (açık, sadece satışta olanlar)
func PublicMenuHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var items []models.MenuItem
		if err := database.DB.Where("is_available = ?", true).Find(&items).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Menüler listelenemedi")
		}

		res := make([]MenuItemResponse, 0, len(items))
		for _, m := range items {
			res = append(res, toMenuItemResponse(m))
		}
		return c.JSON(fiber.Map{"success": true, "data": res})
	}
}

// GET /api/menu/:id
func GetMenuHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := c.ParamsInt("id")
		if err != nil || id <= 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz ID")
		}

		var item models.MenuItem
		if err := database.DB.First(&item, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "Menü bulunamadı")
			}
			return fiber.NewError(fiber.StatusInternalServerError, "Menü getirilemedi")
		}

		return c.JSON(fiber.Map{"success": true, "data": toMenuItemResponse(item)})
	}
}

// POST /api/menu/add-menu (bearer, multipart: name, price, details, image?, isAvailable?, categoryId?)
func AddMenuHandler(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		name := strings.TrimSpace(c.FormValue("name"))
		details := strings.TrimSpace(c.FormValue("details"))
		priceStr := c.FormValue("price")

		if name == "" || details == "" || priceStr == "" {
			return fiber.NewError(fiber.StatusBadRequest, "İsim, fiyat ve açıklama zorunlu")
		}

		price, err := strconv.ParseFloat(priceStr, 64)
		if err != nil || price <= 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Fiyat 0'dan büyük olmalı")
		}

		isAvailable := true
		if v := c.FormValue("isAvailable"); v != "" {
			b, err := strconv.ParseBool(v)
			if err != nil {
				return fiber.NewError(fiber.StatusBadRequest, "isAvailable boolean olmalı")
			}
			isAvailable = b
		}

		var categoryID *uint
		if v := c.FormValue("categoryId"); v != "" {
			cid, err := strconv.Atoi(v)
			if err != nil || cid <= 0 {
				return fiber.NewError(fiber.StatusBadRequest, "Geçersiz categoryId")
			}
			u := uint(cid)
			categoryID = &u
		}

		var image *string
		if file, err := c.FormFile("image"); err == nil && file != nil {
			path, err := saveImage(cfg, c, file)
			if err != nil {
				return err
			}
			image = &path
		}

		item := models.MenuItem{
			Name:        name,
			Price:       price,
			Details:     details,
			Image:       image,
			IsAvailable: isAvailable,
			CategoryID:  categoryID,
		}

		if err := database.DB.Create(&item).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Menü eklenemedi")
		}

		return c.Status(fiber.StatusCreated).JSON(fiber.Map{
			"success": true,
			"message": "Menü eklendi",
			"data":    toMenuItemResponse(item),
		})
	}
}

// PUT /api/menu/update-menu/:id (bearer, multipart, kısmi güncelleme)
// Oku-değiştir-yaz sırası transaction içinde; eşzamanlı silme araya giremez.
func UpdateMenuHandler(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := c.ParamsInt("id")
		if err != nil || id <= 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz ID")
		}

		// Yeni görsel transaction'dan önce diske yazılır; güncelleme
		// başarısız olursa geri silinir ki artık dosya kalmasın.
		var newImage *string
		if file, err := c.FormFile("image"); err == nil && file != nil {
			path, err := saveImage(cfg, c, file)
			if err != nil {
				return err
			}
			newImage = &path
		}

		var oldImage *string
		var updated models.MenuItem

		txErr := database.DB.Transaction(func(tx *gorm.DB) error {
			var item models.MenuItem
			if err := tx.First(&item, id).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return fiber.NewError(fiber.StatusNotFound, "Menü bulunamadı")
				}
				return fiber.NewError(fiber.StatusInternalServerError, "Menü getirilemedi")
			}

			// Gönderilmeyen alanlar eski değerini korur
			if v := strings.TrimSpace(c.FormValue("name")); v != "" {
				item.Name = v
			}
			if v := c.FormValue("price"); v != "" {
				price, err := strconv.ParseFloat(v, 64)
				if err != nil || price <= 0 {
					return fiber.NewError(fiber.StatusBadRequest, "Fiyat 0'dan büyük olmalı")
				}
				item.Price = price
			}
			if v := strings.TrimSpace(c.FormValue("details")); v != "" {
				item.Details = v
			}
			if v := c.FormValue("isAvailable"); v != "" {
				b, err := strconv.ParseBool(v)
				if err != nil {
					return fiber.NewError(fiber.StatusBadRequest, "isAvailable boolean olmalı")
				}
				item.IsAvailable = b
			}
			if v := c.FormValue("categoryId"); v != "" {
				cid, err := strconv.Atoi(v)
				if err != nil || cid <= 0 {
					return fiber.NewError(fiber.StatusBadRequest, "Geçersiz categoryId")
				}
				u := uint(cid)
				item.CategoryID = &u
			}

			if newImage != nil {
				oldImage = item.Image
				item.Image = newImage
			}

			if err := tx.Save(&item).Error; err != nil {
				return fiber.NewError(fiber.StatusInternalServerError, "Menü güncellenemedi")
			}

			updated = item
			return nil
		})
		if txErr != nil {
			if newImage != nil {
				removeImage(cfg, *newImage)
			}
			return txErr
		}

		// Eski görsel ancak yenisi kalıcı olduktan sonra silinir
		if oldImage != nil {
			removeImage(cfg, *oldImage)
		}

		return c.JSON(fiber.Map{
			"success": true,
			"message": "Menü güncellendi",
			"data":    toMenuItemResponse(updated),
		})
	}
}

type availabilityRequest struct {
	IsAvailable *bool `json:"isAvailable"`
}

// PUT /api/menu/availability/:id (bearer), tekrar çağrılması güvenlidir
func AvailabilityHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := c.ParamsInt("id")
		if err != nil || id <= 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz ID")
		}

		var body availabilityRequest
		if err := c.BodyParser(&body); err != nil || body.IsAvailable == nil {
			return fiber.NewError(fiber.StatusBadRequest, "isAvailable boolean olmalı")
		}

		res := database.DB.Model(&models.MenuItem{}).
			Where("id = ?", id).
			Update("is_available", *body.IsAvailable)
		if res.Error != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Menü güncellenemedi")
		}
		if res.RowsAffected == 0 {
			return fiber.NewError(fiber.StatusNotFound, "Menü bulunamadı")
		}

		return c.JSON(fiber.Map{"success": true, "message": "Menü durumu güncellendi"})
	}
}

// DELETE /api/menu/delete-menu/:id (bearer)
func DeleteMenuHandler(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := c.ParamsInt("id")
		if err != nil || id <= 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz ID")
		}

		var item models.MenuItem
		if err := database.DB.First(&item, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "Menü bulunamadı")
			}
			return fiber.NewError(fiber.StatusInternalServerError, "Menü getirilemedi")
		}

		if err := database.DB.Delete(&models.MenuItem{}, id).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Menü silinemedi")
		}

		// Asset temizliği best-effort, kayıt zaten silindi
		if item.Image != nil {
			removeImage(cfg, *item.Image)
		}

		return c.JSON(fiber.Map{"success": true, "message": "Menü silindi"})
	}
}
