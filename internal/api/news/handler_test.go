package news

import (
	"bytes"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/KatsuoTomino/KoutaArtsite/database"
	"github.com/KatsuoTomino/KoutaArtsite/internal/domain/news"
	"github.com/KatsuoTomino/KoutaArtsite/internal/storage"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setup(t *testing.T) (*gin.Engine, *gorm.DB, *storage.Store) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))

	store, err := storage.New(t.TempDir(), "http://test.local")
	require.NoError(t, err)

	h := NewHandler(db, store)
	r := gin.New()
	r.GET("/news", h.List)
	r.GET("/news/:id", h.Get)
	r.GET("/admin/news/:id", h.GetForEdit)
	r.POST("/admin/news", h.Create)
	r.PUT("/admin/news/:id", h.Update)
	r.DELETE("/admin/news/:id", h.Delete)
	return r, db, store
}

func formRequest(t *testing.T, method, target string, fields url.Values, imageName string) *http.Request {
	t.Helper()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for key, vals := range fields {
		for _, v := range vals {
			require.NoError(t, w.WriteField(key, v))
		}
	}
	if imageName != "" {
		fw, err := w.CreateFormFile("image", imageName)
		require.NoError(t, err)
		_, err = fw.Write([]byte("image bytes for " + imageName))
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())

	req := httptest.NewRequest(method, target, &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	return req
}

func do(r *gin.Engine, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

// News creation without an image is valid; the stored image_url is NULL, not
// an empty string.
func TestCreateWithoutImage(t *testing.T) {
	r, db, _ := setup(t)

	rec := do(r, formRequest(t, "POST", "/admin/news", url.Values{
		"title":   {"Exhibition announcement"},
		"date":    {"2025.01.15"},
		"content": {"First paragraph.\n\nSecond paragraph.\n\n\n"},
	}, ""))
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var stored news.Item
	require.NoError(t, db.First(&stored).Error)
	assert.Nil(t, stored.ImageURL)
	assert.Nil(t, stored.Category)
	assert.Equal(t, []string{"First paragraph.", "Second paragraph."}, stored.Content)
}

func TestCreateDefaultsDate(t *testing.T) {
	r, db, _ := setup(t)

	rec := do(r, formRequest(t, "POST", "/admin/news", url.Values{
		"title": {"Dated today"},
	}, ""))
	require.Equal(t, http.StatusCreated, rec.Code)

	var stored news.Item
	require.NoError(t, db.First(&stored).Error)
	assert.Equal(t, time.Now().Format("2006.01.02"), stored.Date)
}

func TestCreateRequiresTitle(t *testing.T) {
	r, _, _ := setup(t)
	rec := do(r, formRequest(t, "POST", "/admin/news", url.Values{"date": {"2025.01.01"}}, ""))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetForEditJoinsContent(t *testing.T) {
	r, db, _ := setup(t)
	require.NoError(t, db.Create(&news.Item{
		Title:   "With body",
		Date:    "2024.10.01",
		Content: []string{"A", "B", "C"},
	}).Error)

	rec := do(r, httptest.NewRequest("GET", "/admin/news/1", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Title       string   `json:"title"`
		Content     []string `json:"content"`
		ContentText string   `json:"content_text"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "With body", body.Title)
	assert.Equal(t, "A\n\nB\n\nC", body.ContentText)
}

func TestUpdateRederivesContentAndNormalizes(t *testing.T) {
	r, db, _ := setup(t)
	cat := "イベント"
	require.NoError(t, db.Create(&news.Item{
		Title:    "Old title",
		Date:     "2024.10.01",
		Category: &cat,
		Content:  []string{"old"},
	}).Error)

	rec := do(r, formRequest(t, "PUT", "/admin/news/1", url.Values{
		"title":    {"New title"},
		"date":     {"2024.10.02"},
		"category": {""},
		"content":  {"   \n\n  "},
	}, ""))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var stored news.Item
	require.NoError(t, db.First(&stored).Error)
	assert.Equal(t, "New title", stored.Title)
	assert.Equal(t, "2024.10.02", stored.Date)
	assert.Nil(t, stored.Category, "blanked category becomes NULL")
	assert.Empty(t, stored.Content, "whitespace-only textarea yields no paragraphs")
}

func TestUpdateReplacesImage(t *testing.T) {
	r, _, store := setup(t)

	rec := do(r, formRequest(t, "POST", "/admin/news", url.Values{
		"title": {"Pictured"},
	}, "first.png"))
	require.Equal(t, http.StatusCreated, rec.Code)

	var created news.Item
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	require.NotNil(t, created.ImageURL)
	oldName := (*created.ImageURL)[strings.LastIndex(*created.ImageURL, "/")+1:]
	oldBlob := filepath.Join(store.Root(), news.ImageBucket, oldName)
	_, err := os.Stat(oldBlob)
	require.NoError(t, err)

	rec = do(r, formRequest(t, "PUT", fmt.Sprintf("/admin/news/%d", created.ID), url.Values{
		"title": {"Pictured"},
		"date":  {created.Date},
	}, "second.jpg"))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var updated news.Item
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &updated))
	require.NotNil(t, updated.ImageURL)
	assert.True(t, strings.HasSuffix(*updated.ImageURL, ".jpg"))

	_, err = os.Stat(oldBlob)
	assert.True(t, os.IsNotExist(err), "replaced blob was cleaned up")
}

func TestListOrdersByIDDescending(t *testing.T) {
	r, db, _ := setup(t)
	for _, title := range []string{"oldest", "middle", "newest"} {
		require.NoError(t, db.Create(&news.Item{Title: title, Date: "2024.01.01"}).Error)
	}

	rec := do(r, httptest.NewRequest("GET", "/news", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		News []news.Item `json:"news"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body.News, 3)
	assert.Equal(t, "newest", body.News[0].Title)
}

func TestDeleteNotFoundLeavesNothingChanged(t *testing.T) {
	r, db, _ := setup(t)
	require.NoError(t, db.Create(&news.Item{Title: "Survivor", Date: "2024.01.01"}).Error)

	rec := do(r, httptest.NewRequest("DELETE", "/admin/news/99", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)

	var count int64
	require.NoError(t, db.Model(&news.Item{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}
