package main

import (
	"log"
	"os"
	"path/filepath"
	"strings"

	"kafe-backend/internal/auth"
	"kafe-backend/internal/config"
	"kafe-backend/internal/database"
	"kafe-backend/internal/menu"
	"kafe-backend/internal/order"
	"kafe-backend/internal/report"
	"kafe-backend/internal/table"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
)

func main() {
	cfg := config.Load()
	database.Init(cfg)
	defer database.Close()

	// Upload ve QR klasörleri yoksa oluştur
	if err := os.MkdirAll(filepath.Join(cfg.UploadPath, "qr_codes"), 0o755); err != nil {
		log.Fatalf("Upload klasörü oluşturulamadı: %v", err)
	}

	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			if e, ok := err.(*fiber.Error); ok {
				return c.Status(e.Code).JSON(fiber.Map{
					"success": false,
					"message": e.Message,
				})
			}
			log.Println("Beklenmeyen hata:", err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"success": false,
				"message": "Beklenmeyen sunucu hatası",
			})
		},
	})

	// CORS origins'i virgülle ayrılmış string'den array'e çevir
	corsOrigins := strings.Split(cfg.CORSOrigins, ",")
	for i := range corsOrigins {
		corsOrigins[i] = strings.TrimSpace(corsOrigins[i])
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins: strings.Join(corsOrigins, ","),
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
	}))

	// Yüklenen görseller ve QR kodlar doğrudan servis edilir
	app.Static("/uploads", cfg.UploadPath)

	app.Get("/", func(c *fiber.Ctx) error {
		return c.SendString("Kafe API'ye hoş geldiniz!")
	})

	// QR endpoint'leri eski istemcilerle uyumluluk için prefix'siz
	app.Get("/generate-qr/:table", table.GenerateQRHandler(cfg))
	app.Get("/list-qr", table.ListQRHandler(cfg))

	api := app.Group("/api")
	bearer := auth.JWTMiddleware(cfg)

	// Auth
	api.Post("/auth/login", auth.LoginHandler(cfg))
	api.Post("/auth/refresh", bearer, auth.RefreshHandler(cfg))
	api.Post("/auth/logout", auth.LogoutHandler())

	// Menü
	api.Get("/menu/public-menu", menu.PublicMenuHandler())
	api.Get("/menu/categories", menu.ListCategoriesHandler())
	api.Post("/menu/categories", bearer, menu.CreateCategoryHandler())
	api.Delete("/menu/categories/:id", bearer, menu.DeleteCategoryHandler())
	api.Get("/menu", bearer, menu.ListMenuHandler())
	api.Get("/menu/:id", menu.GetMenuHandler())
	api.Post("/menu/add-menu", bearer, menu.AddMenuHandler(cfg))
	api.Put("/menu/update-menu/:id", bearer, menu.UpdateMenuHandler(cfg))
	api.Put("/menu/availability/:id", bearer, menu.AvailabilityHandler())
	api.Delete("/menu/delete-menu/:id", bearer, menu.DeleteMenuHandler(cfg))

	// Siparişler
	api.Post("/orders", order.CreateOrderHandler())
	api.Get("/orders/paid-orders", order.PaidOrdersHandler())
	api.Get("/orders", order.ListOrdersHandler())
	api.Get("/orders/:id", order.GetOrderHandler())
	api.Put("/orders/:id/payment", order.PaymentHandler())
	api.Put("/orders/:id/delivery", order.DeliveryHandler())
	api.Delete("/orders", order.DeleteTableOrdersHandler())
	api.Delete("/orders/:id", order.DeleteOrderHandler())

	// Masalar
	api.Post("/tables", table.CreateTableHandler(cfg))
	api.Get("/tables", table.ListTablesHandler(cfg))
	api.Get("/tables/:number", table.GetTableHandler(cfg))
	api.Delete("/tables/:id", table.DeleteTableHandler(cfg))

	// Raporlar
	api.Get("/reports/sales/daily", bearer, report.DailySalesHandler())

	log.Println("Server çalışıyor port:", cfg.HTTPPort)
	if err := app.Listen(":" + cfg.HTTPPort); err != nil {
		log.Fatal(err)
	}
}
