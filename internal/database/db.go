package database

import (
	"log"

	"kafe-backend/internal/config"
	"kafe-backend/internal/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

func Init(cfg *config.Config) {
	var err error

	// TranslateError: unique index ihlalleri sürücüden bağımsız
	// gorm.ErrDuplicatedKey olarak döner, handler'lar 400'e çevirir.
	DB, err = gorm.Open(postgres.Open(cfg.DatabaseDSN), &gorm.Config{TranslateError: true})
	if err != nil {
		log.Fatalf("Veritabanına bağlanılamadı: %v", err)
	}

	if err := Migrate(DB); err != nil {
		log.Fatalf("AutoMigrate hatası: %v", err)
	}

	SeedCategories(DB)

	log.Println("Veritabanı bağlantısı başarılı. Migration tamamlandı.")
}

// Migrate testlerde sqlite üzerinde de kullanılıyor, o yüzden ayrı fonksiyon.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.Category{},
		&models.MenuItem{},
		&models.Table{},
		&models.Order{},
		&models.OrderItem{},
		&models.Sale{},
	)
}

// SeedCategories varsayılan kategorileri bir kere ekler, tekrar çalıştırmak güvenlidir.
func SeedCategories(db *gorm.DB) {
	defaults := []string{"İçecekler", "Yemekler", "Tatlılar"}
	for _, name := range defaults {
		var cat models.Category
		if err := db.FirstOrCreate(&cat, models.Category{Name: name}).Error; err != nil {
			log.Printf("Varsayılan kategori eklenemedi (%s): %v", name, err)
		}
	}
}

func Close() {
	if DB == nil {
		return
	}
	sqlDB, err := DB.DB()
	if err != nil {
		log.Printf("Veritabanı bağlantısı alınamadı: %v", err)
		return
	}
	if err := sqlDB.Close(); err != nil {
		log.Printf("Veritabanı bağlantısı kapatılamadı: %v", err)
	}
}
