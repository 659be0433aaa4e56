package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRouter(mw ...gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(mw...)
	r.GET("/ok", func(c *gin.Context) { c.Status(http.StatusOK) })
	r.GET("/missing", func(c *gin.Context) { c.Status(http.StatusNotFound) })
	r.GET("/broken", func(c *gin.Context) { c.Status(http.StatusInternalServerError) })
	return r
}

func serve(r *gin.Engine, path string, header map[string]string) int {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	for k, v := range header {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w.Code
}

func TestRequestLogger_Levels(t *testing.T) {
	logger, hook := test.NewNullLogger()
	r := newRouter(RequestLogger(logger))

	tests := []struct {
		path  string
		level logrus.Level
	}{
		{"/ok", logrus.InfoLevel},
		{"/missing", logrus.WarnLevel},
		{"/broken", logrus.ErrorLevel},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			hook.Reset()
			serve(r, tt.path, nil)

			entry := hook.LastEntry()
			require.NotNil(t, entry)
			assert.Equal(t, tt.level, entry.Level)
			assert.Equal(t, tt.path, entry.Data["path"])
			assert.Equal(t, http.MethodGet, entry.Data["method"])
		})
	}
}

func TestRequireAdminToken(t *testing.T) {
	r := newRouter(RequireAdminToken("s3cret"))

	assert.Equal(t, http.StatusUnauthorized, serve(r, "/ok", nil))
	assert.Equal(t, http.StatusUnauthorized, serve(r, "/ok", map[string]string{AdminTokenHeader: "wrong"}))
	assert.Equal(t, http.StatusOK, serve(r, "/ok", map[string]string{AdminTokenHeader: "s3cret"}))
}

func TestRequireAdminToken_EmptyTokenIsOpen(t *testing.T) {
	r := newRouter(RequireAdminToken(""))
	assert.Equal(t, http.StatusOK, serve(r, "/ok", nil))
}
