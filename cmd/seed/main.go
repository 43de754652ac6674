package main

import (
	"log"
	"os"

	"github.com/coverpoint/clubhouse/internal/config"
	"github.com/coverpoint/clubhouse/internal/database"
	"github.com/coverpoint/clubhouse/internal/models"
	"github.com/coverpoint/clubhouse/internal/utils"
	"github.com/google/uuid"
)

func main() {
	cfg := config.Load()
	db := database.Get(cfg)
	database.Migrate(db)
	defer database.Close()

	adminName := os.Getenv("ADMIN_NAME")
	adminPhone := os.Getenv("ADMIN_PHONE")
	adminEmail := os.Getenv("ADMIN_EMAIL")
	adminPassword := os.Getenv("ADMIN_PASSWORD")

	if adminName == "" || adminPhone == "" || adminPassword == "" {
		log.Fatal("Missing environment variables: ADMIN_NAME, ADMIN_PHONE, ADMIN_PASSWORD")
	}

	// Check if admin with this phone already exists
	var admin models.Account
	result := db.Where("phone = ?", adminPhone).First(&admin)
	if result.Error == nil {
		log.Println("Admin account already exists:", admin.Username)
		return
	}

	passwordHash, err := utils.HashPassword(adminPassword)
	if err != nil {
		log.Fatal("Failed to hash password:", err)
	}

	admin = models.Account{
		ID:           uuid.New(),
		Name:         adminName,
		Username:     utils.SlugifyName(adminName),
		Phone:        adminPhone,
		Email:        adminEmail,
		PasswordHash: passwordHash,
		Role:         models.RoleAdmin,
		Status:       models.StatusApproved,
	}

	if err := db.Create(&admin).Error; err != nil {
		log.Fatal("Failed to create admin:", err)
	}

	log.Println("Admin account created successfully!")
	log.Println("   Username:", admin.Username)
	log.Println("   Phone:", admin.Phone)
}
