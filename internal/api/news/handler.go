package news

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/KatsuoTomino/KoutaArtsite/internal/apperror"
	"github.com/KatsuoTomino/KoutaArtsite/internal/domain/news"
	"github.com/KatsuoTomino/KoutaArtsite/internal/editor"
	"github.com/KatsuoTomino/KoutaArtsite/internal/storage"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type Handler struct {
	db   *gorm.DB
	flow editor.Workflow
}

func NewHandler(db *gorm.DB, store *storage.Store) *Handler {
	return &Handler{
		db:   db,
		flow: editor.Workflow{Blobs: store.Bucket(news.ImageBucket)},
	}
}

func fail(c *gin.Context, err error) {
	c.JSON(apperror.HTTPStatus(err), gin.H{"error": err.Error()})
}

func paramID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		fail(c, apperror.ValidationFailed("invalid id"))
		return 0, false
	}
	return uint(id), true
}

// ------------------------------
// GET /news, GET /admin/news
// ------------------------------
func (h *Handler) List(c *gin.Context) {
	var items []news.Item
	if err := h.db.Order("id DESC").Find(&items).Error; err != nil {
		slog.Error("failed to load news", "error", err)
		fail(c, apperror.Query(err))
		return
	}
	c.JSON(http.StatusOK, gin.H{"news": items})
}

// GET /news/:id
func (h *Handler) Get(c *gin.Context) {
	item, ok := h.load(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, item)
}

// GetForEdit additionally carries the content paragraphs joined back into a
// single text block for the edit textarea.
//
// GET /admin/news/:id
func (h *Handler) GetForEdit(c *gin.Context) {
	item, ok := h.load(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, editViewDTO{
		Item:        item,
		ContentText: news.JoinParagraphs(item.Content),
	})
}

func (h *Handler) load(c *gin.Context) (news.Item, bool) {
	var item news.Item

	id, ok := paramID(c)
	if !ok {
		return item, false
	}

	err := h.db.First(&item, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		fail(c, apperror.NotFound("news item", id))
		return item, false
	}
	if err != nil {
		slog.Error("failed to load news item", "id", id, "error", err)
		fail(c, apperror.Query(err))
		return item, false
	}
	return item, true
}

// POST /admin/news
func (h *Handler) Create(c *gin.Context) {
	title := strings.TrimSpace(c.PostForm("title"))
	if title == "" {
		fail(c, apperror.ValidationFailed("title is required"))
		return
	}

	date := strings.TrimSpace(c.PostForm("date"))
	if date == "" {
		date = time.Now().Format("2006.01.02")
	}

	item := news.Item{
		Title:       title,
		Date:        date,
		Category:    nilIfEmpty(c.PostForm("category")),
		Description: nilIfEmpty(c.PostForm("description")),
		Content:     news.SplitParagraphs(c.PostForm("content")),
	}

	file, err := c.FormFile("image")
	if err != nil {
		file = nil // image is optional for news
	}

	_, err = h.flow.Save(file, "", func(imageURL string) error {
		item.ImageURL = nilIfEmpty(imageURL)
		return h.db.Create(&item).Error
	})
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusCreated, item)
}

// PUT /admin/news/:id
func (h *Handler) Update(c *gin.Context) {
	item, ok := h.load(c)
	if !ok {
		return
	}

	title := strings.TrimSpace(c.PostForm("title"))
	if title == "" {
		fail(c, apperror.ValidationFailed("title is required"))
		return
	}

	date := strings.TrimSpace(c.PostForm("date"))
	if date == "" {
		fail(c, apperror.ValidationFailed("date is required"))
		return
	}

	item.Title = title
	item.Date = date
	item.Category = nilIfEmpty(c.PostForm("category"))
	item.Description = nilIfEmpty(c.PostForm("description"))
	item.Content = news.SplitParagraphs(c.PostForm("content"))

	file, err := c.FormFile("image")
	if err != nil {
		file = nil
	}

	oldURL := ""
	if item.ImageURL != nil {
		oldURL = *item.ImageURL
	}

	_, err = h.flow.Save(file, oldURL, func(imageURL string) error {
		item.ImageURL = nilIfEmpty(imageURL)
		return h.db.Save(&item).Error
	})
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, item)
}

// DELETE /admin/news/:id
func (h *Handler) Delete(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	res := h.db.Delete(&news.Item{}, id)
	if res.Error != nil {
		fail(c, apperror.Persist(res.Error))
		return
	}
	if res.RowsAffected == 0 {
		fail(c, apperror.NotFound("news item", id))
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "News item deleted"})
}

func nilIfEmpty(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}
