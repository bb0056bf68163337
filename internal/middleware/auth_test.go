package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"cityportal/internal/pkg/authz"
	"cityportal/internal/pkg/jwt"
)

func testRouter(mw ...gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(mw...)
	router.GET("/protected", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"user_id": UserID(c),
			"role":    c.GetString("role"),
		})
	})
	return router
}

func TestAuth_ValidToken(t *testing.T) {
	jwtService := jwt.New("test-secret-123", time.Hour, 24*time.Hour)
	validToken, _ := jwtService.GenerateToken("u-42", authz.RoleMember)

	router := testRouter(Auth(jwtService))

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+validToken)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "u-42")
	assert.Contains(t, w.Body.String(), authz.RoleMember)
}

func TestAuth_InvalidToken(t *testing.T) {
	jwtService := jwt.New("test-secret-123", time.Hour, 24*time.Hour)
	router := testRouter(Auth(jwtService))

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer not-a-jwt")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuth_MissingHeader(t *testing.T) {
	jwtService := jwt.New("test-secret-123", time.Hour, 24*time.Hour)
	router := testRouter(Auth(jwtService))

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/protected", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuth_RefreshTokenRejected(t *testing.T) {
	jwtService := jwt.New("test-secret-123", time.Hour, 24*time.Hour)
	refresh, _ := jwtService.GenerateRefreshToken("u-42", authz.RoleMember)

	router := testRouter(Auth(jwtService))

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+refresh)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequirePermission(t *testing.T) {
	jwtService := jwt.New("test-secret-123", time.Hour, 24*time.Hour)
	memberToken, _ := jwtService.GenerateToken("u-42", authz.RoleMember)
	adminToken, _ := jwtService.GenerateToken("u-1", authz.RoleAdmin)

	router := testRouter(Auth(jwtService), RequirePermission("news", authz.ActionCreate))

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+memberToken)
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = httptest.NewRecorder()
	req = httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+adminToken)
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
}
