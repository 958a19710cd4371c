package middleware

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/microcosm-cc/bluemonday"
)

const maxMultipartMemory = 32 << 20

// SanitizeAndCleanInputMiddleware strips markup from all string fields of
// mutating requests using bluemonday. JSON bodies are sanitized value by
// value; multipart and urlencoded forms are parsed and sanitized in place so
// later PostForm reads see the cleaned values. File parts are left untouched.
func SanitizeAndCleanInputMiddleware() gin.HandlerFunc {
	policy := bluemonday.StrictPolicy()

	return func(c *gin.Context) {
		if c.Request.Method != http.MethodPost &&
			c.Request.Method != http.MethodPut &&
			c.Request.Method != http.MethodPatch {
			c.Next()
			return
		}

		contentType := c.ContentType()
		switch {
		case contentType == "application/json":
			sanitizeJSON(c, policy)
		case contentType == "multipart/form-data",
			strings.HasPrefix(contentType, "application/x-www-form-urlencoded"):
			sanitizeForm(c, policy)
		}

		c.Next()
	}
}

func sanitizeJSON(c *gin.Context, policy *bluemonday.Policy) {
	var body map[string]interface{}
	buf, err := io.ReadAll(c.Request.Body)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid body"})
		return
	}
	if err := json.Unmarshal(buf, &body); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Malformed JSON"})
		return
	}

	for k, v := range body {
		if str, ok := v.(string); ok {
			body[k] = policy.Sanitize(str)
		}
	}

	newBody, _ := json.Marshal(body)
	c.Request.Body = io.NopCloser(bytes.NewBuffer(newBody))
	c.Request.ContentLength = int64(len(newBody))
}

func sanitizeForm(c *gin.Context, policy *bluemonday.Policy) {
	if err := c.Request.ParseMultipartForm(maxMultipartMemory); err != nil &&
		err != http.ErrNotMultipart {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid form"})
		return
	}

	for key, vals := range c.Request.PostForm {
		for i, v := range vals {
			c.Request.PostForm[key][i] = policy.Sanitize(v)
		}
	}
	if c.Request.MultipartForm != nil {
		for key, vals := range c.Request.MultipartForm.Value {
			for i, v := range vals {
				c.Request.MultipartForm.Value[key][i] = policy.Sanitize(v)
			}
		}
	}
}
