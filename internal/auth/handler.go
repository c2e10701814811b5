package auth

import (
	"log"
	"strings"

	"kafe-backend/internal/config"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"
)

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Tek operatör kimliği config'den gelir, kullanıcı tablosu yok.
// Şifre startup'ta bir kere hashlenir ki login her zaman bcrypt
// karşılaştırmasından geçsin.
func LoginHandler(cfg *config.Config) fiber.Handler {
	hash, err := bcrypt.GenerateFromPassword([]byte(cfg.AdminPassword), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("Admin şifresi hashlenemedi: %v", err)
	}

	return func(c *fiber.Ctx) error {
		var body LoginRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz istek gövdesi")
		}

		body.Email = strings.TrimSpace(strings.ToLower(body.Email))

		if body.Email == "" || body.Password == "" {
			return fiber.NewError(fiber.StatusBadRequest, "Email ve şifre zorunlu")
		}

		// Bcrypt karşılaştırması email tutmasa da çalışır; bilinmeyen
		// email ile yanlış şifre aynı cevabı aynı sürede alır.
		emailOK := body.Email == strings.ToLower(cfg.AdminEmail)
		passwordErr := bcrypt.CompareHashAndPassword(hash, []byte(body.Password))
		if !emailOK || passwordErr != nil {
			return fiber.NewError(fiber.StatusUnauthorized, "Email veya şifre hatalı")
		}

		token, err := GenerateToken(cfg.JWTSecret, body.Email)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Token oluşturulamadı")
		}

		return c.JSON(fiber.Map{
			"success": true,
			"message": "Giriş başarılı",
			"token":   token,
		})
	}
}

// Geçerli bir bearer için yeni token üretir, middleware arkasında çalışır.
func RefreshHandler(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		email, ok := c.Locals(CtxEmailKey).(string)
		if !ok || email == "" {
			return fiber.NewError(fiber.StatusUnauthorized, "Token çözümlenemedi")
		}

		token, err := GenerateToken(cfg.JWTSecret, email)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Token oluşturulamadı")
		}

		return c.JSON(fiber.Map{
			"success": true,
			"token":   token,
		})
	}
}

// Logout stateless'tır, token doğal süresi dolana kadar geçerli kalır.
func LogoutHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"success": true,
			"message": "Çıkış yapıldı",
		})
	}
}
