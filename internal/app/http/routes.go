package routes

import (
	authapi "github.com/KatsuoTomino/KoutaArtsite/internal/api/auth"
	newsapi "github.com/KatsuoTomino/KoutaArtsite/internal/api/news"
	siteapi "github.com/KatsuoTomino/KoutaArtsite/internal/api/site"
	worksapi "github.com/KatsuoTomino/KoutaArtsite/internal/api/works"
	"github.com/KatsuoTomino/KoutaArtsite/internal/app/http/middleware"
	"github.com/KatsuoTomino/KoutaArtsite/internal/storage"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func RegisterRoutes(r *gin.Engine, db *gorm.DB, store *storage.Store) {
	authH := authapi.NewHandler(db)
	worksH := worksapi.NewHandler(db, store)
	newsH := newsapi.NewHandler(db, store)
	siteH := siteapi.NewHandler(db)

	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// Uploaded blobs are public by URL.
	r.Static("/storage", store.Root())

	// Public, read-only
	r.GET("/home", siteH.Home)
	r.GET("/works", worksH.List)
	r.GET("/works/:id", worksH.Get)
	r.GET("/works/:id/tiles", worksH.Tiles)
	r.GET("/news", newsH.List)
	r.GET("/news/:id", newsH.Get)

	public := r.Group("/")
	public.Use(middleware.SanitizeAndCleanInputMiddleware())
	public.POST("/auth/login", authH.Login)

	// Admin console: every data mutation sits behind the session guard, not
	// just a client-side redirect.
	admin := r.Group("/admin")
	admin.Use(middleware.SessionGuard(), middleware.RequireRole("admin"))
	admin.Use(middleware.SanitizeAndCleanInputMiddleware())

	session := r.Group("/auth")
	session.Use(middleware.SessionGuard())
	session.GET("/session", authH.Session)
	session.POST("/logout", authH.Logout)

	admin.GET("/works", worksH.List)
	admin.GET("/works/:id", worksH.Get)
	admin.POST("/works", worksH.Create)
	admin.PUT("/works/:id", worksH.Update)
	admin.DELETE("/works/:id", worksH.Delete)

	admin.GET("/news", newsH.List)
	admin.GET("/news/:id", newsH.GetForEdit)
	admin.POST("/news", newsH.Create)
	admin.PUT("/news/:id", newsH.Update)
	admin.DELETE("/news/:id", newsH.Delete)
}
