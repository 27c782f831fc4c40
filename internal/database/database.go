package database

import (
	"log"

	"github.com/srishti-farm/farmstay-api/internal/config"
	"github.com/srishti-farm/farmstay-api/internal/models"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func Connect(cfg *config.Config) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(cfg.DatabasePath), &gorm.Config{})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Auto Migrate
	err = db.AutoMigrate(&models.Booking{}, &models.Contact{}, &models.User{})
	if err != nil {
		log.Fatalf("Failed to auto migrate: %v", err)
	}

	return db
}

// SeedAdmin creates the admin account from config if it does not exist yet.
func SeedAdmin(db *gorm.DB, cfg *config.Config) error {
	var existing models.User
	err := db.Where("email = ?", cfg.AdminEmail).First(&existing).Error
	if err == nil {
		return nil
	}
	if err != gorm.ErrRecordNotFound {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(cfg.AdminPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	admin := models.User{
		Email:        cfg.AdminEmail,
		PasswordHash: string(hash),
		Role:         "admin",
		IsActive:     true,
	}
	if err := db.Create(&admin).Error; err != nil {
		return err
	}

	log.Printf("Admin user created: %s", admin.Email)
	return nil
}
