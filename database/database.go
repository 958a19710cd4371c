package database

import (
	"log"

	"github.com/KatsuoTomino/KoutaArtsite/internal/domain/news"
	"github.com/KatsuoTomino/KoutaArtsite/internal/domain/users"
	"github.com/KatsuoTomino/KoutaArtsite/internal/domain/works"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// Init opens the database and runs migrations. The returned handle is the
// single process-wide connection, passed explicitly to every component that
// needs data access.
func Init(dsn string) *gorm.DB {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	if err := Migrate(db); err != nil {
		log.Fatal("AutoMigrate error:", err)
	}

	return db
}

// Migrate creates or updates the schema for all domain models. Tests reuse it
// against their own database.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&users.User{},
		&works.Work{},
		&news.Item{},
	)
}

// EnsureAdmin creates the admin console account if no user exists with the
// given email. An existing account is left untouched.
func EnsureAdmin(db *gorm.DB, email, password string) error {
	var count int64
	if err := db.Model(&users.User{}).Where("email = ?", email).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	return db.Create(&users.User{
		Email:    email,
		Password: string(hashed),
		Role:     "admin",
	}).Error
}
