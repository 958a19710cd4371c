package main

import (
	"log"
	"time"

	"github.com/KatsuoTomino/KoutaArtsite/config"
	"github.com/KatsuoTomino/KoutaArtsite/database"
	routes "github.com/KatsuoTomino/KoutaArtsite/internal/app/http"
	"github.com/KatsuoTomino/KoutaArtsite/internal/storage"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func main() {
	// gin.SetMode(gin.ReleaseMode) uncomment only in production
	config.LoadEnv()
	db := database.Init(config.DB_URL)

	store, err := storage.New(config.STORAGE_DIR, config.PUBLIC_BASE_URL)
	if err != nil {
		log.Fatal("Failed to initialize blob storage:", err)
	}

	if config.ADMIN_EMAIL != "" && config.ADMIN_PASSWORD != "" {
		if err := database.EnsureAdmin(db, config.ADMIN_EMAIL, config.ADMIN_PASSWORD); err != nil {
			log.Fatal("Failed to ensure admin account:", err)
		}
	} else {
		log.Println("ADMIN_EMAIL/ADMIN_PASSWORD not set; no admin account created")
	}

	if config.DO_SEED {
		if err := database.SeedContent(db); err != nil {
			log.Fatal("Failed to seed content:", err)
		}
	}

	r := gin.Default()

	// CORS middleware before registering routes
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{config.CORS_ORIGIN},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	routes.RegisterRoutes(r, db, store)

	r.Run(":" + config.PORT)
}
