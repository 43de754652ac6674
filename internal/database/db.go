package database

import (
	"log"
	"sync"

	"github.com/coverpoint/clubhouse/internal/config"
	"github.com/coverpoint/clubhouse/internal/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var (
	db   *gorm.DB
	once sync.Once
)

// Get returns the process-wide connection handle, opening it on first
// use. The handle is reused across requests and closed via Close on
// shutdown.
func Get(cfg *config.Config) *gorm.DB {
	once.Do(func() {
		var err error
		db, err = gorm.Open(postgres.Open(cfg.DatabaseURL), &gorm.Config{})
		if err != nil {
			log.Fatal("Failed to connect database:", err)
		}
		log.Println("Database connected successfully")
	})
	return db
}

// Migrate creates or updates the schema for all collections.
func Migrate(db *gorm.DB) {
	err := db.AutoMigrate(
		&models.Account{},
		&models.VerificationCode{},
		&models.Match{},
		&models.GalleryItem{},
	)
	if err != nil {
		log.Fatal("Migration failed:", err)
	}
	log.Println("Database migration completed")
}

// Close releases the underlying connection pool.
func Close() error {
	if db == nil {
		return nil
	}
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
