package works

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/KatsuoTomino/KoutaArtsite/internal/apperror"
	"github.com/KatsuoTomino/KoutaArtsite/internal/domain/works"
	"github.com/KatsuoTomino/KoutaArtsite/internal/editor"
	"github.com/KatsuoTomino/KoutaArtsite/internal/storage"
	"github.com/KatsuoTomino/KoutaArtsite/internal/tiling"

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
		flow: editor.Workflow{Blobs: store.Bucket(works.ImageBucket)},
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
// GET /works, GET /admin/works
// ------------------------------
func (h *Handler) List(c *gin.Context) {
	var items []works.Work
	if err := h.db.Order("id DESC").Find(&items).Error; err != nil {
		slog.Error("failed to load works", "error", err)
		fail(c, apperror.Query(err))
		return
	}
	c.JSON(http.StatusOK, gin.H{"works": items})
}

// GET /works/:id
func (h *Handler) Get(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	var work works.Work
	err := h.db.First(&work, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		fail(c, apperror.NotFound("work", id))
		return
	}
	if err != nil {
		slog.Error("failed to load work", "id", id, "error", err)
		fail(c, apperror.Query(err))
		return
	}

	c.JSON(http.StatusOK, work)
}

// GET /works/:id/tiles — entrance animation plan for the detail image.
func (h *Handler) Tiles(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	var count int64
	if err := h.db.Model(&works.Work{}).Where("id = ?", id).Count(&count).Error; err != nil {
		fail(c, apperror.Query(err))
		return
	}
	if count == 0 {
		fail(c, apperror.NotFound("work", id))
		return
	}

	cols, _ := strconv.Atoi(c.DefaultQuery("cols", "0"))
	rows, _ := strconv.Atoi(c.DefaultQuery("rows", "0"))
	c.JSON(http.StatusOK, tiling.NewPlan(cols, rows))
}

// POST /admin/works
func (h *Handler) Create(c *gin.Context) {
	title := strings.TrimSpace(c.PostForm("title"))
	if title == "" {
		fail(c, apperror.ValidationFailed("title is required"))
		return
	}

	// The work form requires an image; news does not.
	file, err := c.FormFile("image")
	if err != nil {
		fail(c, apperror.ValidationFailed("image is required"))
		return
	}

	work := works.Work{
		Title:   title,
		Year:    nilIfEmpty(c.PostForm("year")),
		Details: collectDetails(c),
	}

	_, err = h.flow.Save(file, "", func(imageURL string) error {
		work.ImageURL = imageURL
		return h.db.Create(&work).Error
	})
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusCreated, work)
}

// PUT /admin/works/:id
func (h *Handler) Update(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	var work works.Work
	err := h.db.First(&work, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		fail(c, apperror.NotFound("work", id))
		return
	}
	if err != nil {
		fail(c, apperror.Query(err))
		return
	}

	title := strings.TrimSpace(c.PostForm("title"))
	if title == "" {
		fail(c, apperror.ValidationFailed("title is required"))
		return
	}
	work.Title = title
	work.Year = nilIfEmpty(c.PostForm("year"))
	if details, given := c.GetPostFormArray("details"); given {
		work.Details = trimDetails(details)
	}

	file, err := c.FormFile("image")
	if err != nil {
		file = nil // image replace is optional on edit
	}

	_, err = h.flow.Save(file, work.ImageURL, func(imageURL string) error {
		work.ImageURL = imageURL
		return h.db.Save(&work).Error
	})
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, work)
}

// DELETE /admin/works/:id
func (h *Handler) Delete(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	res := h.db.Delete(&works.Work{}, id)
	if res.Error != nil {
		fail(c, apperror.Persist(res.Error))
		return
	}
	if res.RowsAffected == 0 {
		fail(c, apperror.NotFound("work", id))
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Work deleted"})
}

func collectDetails(c *gin.Context) []string {
	details, given := c.GetPostFormArray("details")
	if !given {
		return nil
	}
	return trimDetails(details)
}

func trimDetails(details []string) []string {
	var out []string
	for _, d := range details {
		d = strings.TrimSpace(d)
		if d == "" {
			continue
		}
		out = append(out, d)
	}
	return out
}

func nilIfEmpty(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}
