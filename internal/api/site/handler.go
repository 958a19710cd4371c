package siteapi

import (
	"log/slog"
	"net/http"

	"github.com/KatsuoTomino/KoutaArtsite/internal/apperror"
	"github.com/KatsuoTomino/KoutaArtsite/internal/domain/news"
	"github.com/KatsuoTomino/KoutaArtsite/internal/domain/works"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// HomeNewsLimit is how many news items the landing page shows.
const HomeNewsLimit = 3

type Handler struct {
	db *gorm.DB
}

func NewHandler(db *gorm.DB) *Handler {
	return &Handler{db: db}
}

// Home serves the landing page data: the full portfolio plus the most recent
// news, both newest first.
//
// GET /home
func (h *Handler) Home(c *gin.Context) {
	var allWorks []works.Work
	if err := h.db.Order("id DESC").Find(&allWorks).Error; err != nil {
		slog.Error("failed to load works for home", "error", err)
		fail(c, apperror.Query(err))
		return
	}

	var latestNews []news.Item
	if err := h.db.Order("id DESC").Limit(HomeNewsLimit).Find(&latestNews).Error; err != nil {
		slog.Error("failed to load news for home", "error", err)
		fail(c, apperror.Query(err))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"works": allWorks,
		"news":  latestNews,
	})
}

func fail(c *gin.Context, err error) {
	c.JSON(apperror.HTTPStatus(err), gin.H{"error": err.Error()})
}
