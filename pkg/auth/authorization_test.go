package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func setupRouter(middleware gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	group := router.Group("/admin/v1")
	group.Use(middleware)
	group.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})
	return router
}

func TestAdminMiddlewareSharedSecret(t *testing.T) {
	router := setupRouter(AdminMiddleware(nil, "s3cret"))

	req := httptest.NewRequest(http.MethodGet, "/admin/v1/ping", nil)
	req.Header.Set("x-admin-secret", "s3cret")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestAdminMiddlewareWrongSecret(t *testing.T) {
	router := setupRouter(AdminMiddleware(nil, "s3cret"))

	req := httptest.NewRequest(http.MethodGet, "/admin/v1/ping", nil)
	req.Header.Set("x-admin-secret", "wrong")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAdminMiddlewareMissingHeader(t *testing.T) {
	router := setupRouter(AdminMiddleware(nil, "s3cret"))

	req := httptest.NewRequest(http.MethodGet, "/admin/v1/ping", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAdminMiddlewareBearerWithoutFirebase(t *testing.T) {
	router := setupRouter(AdminMiddleware(nil, ""))

	req := httptest.NewRequest(http.MethodGet, "/admin/v1/ping", nil)
	req.Header.Set("Authorization", "Bearer some-token")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestCronMiddleware(t *testing.T) {
	router := setupRouter(CronMiddleware("cron-secret"))

	req := httptest.NewRequest(http.MethodGet, "/admin/v1/ping", nil)
	req.Header.Set("Authorization", "Bearer cron-secret")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	req = httptest.NewRequest(http.MethodGet, "/admin/v1/ping?secret=cron-secret", nil)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	req = httptest.NewRequest(http.MethodGet, "/admin/v1/ping", nil)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestCronMiddlewareUnconfigured(t *testing.T) {
	router := setupRouter(CronMiddleware(""))

	req := httptest.NewRequest(http.MethodGet, "/admin/v1/ping?secret=", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
