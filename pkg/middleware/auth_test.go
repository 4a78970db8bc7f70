package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Bentshims/Fastmoney/internal/domain"
)

const testSecret = "test-secret"

func signTestToken(t *testing.T, secret string) string {
	t.Helper()
	claims := Claims{
		Email:      "owner@example.com",
		Role:       domain.RoleOwner,
		BusinessID: "biz-1",
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "user-1",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return token
}

func newTestRouter(handlers ...gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/protected", append(handlers, func(c *gin.Context) {
		principal := CurrentPrincipal(c)
		c.JSON(http.StatusOK, principal)
	})...)
	return router
}

func TestAuthInjectsPrincipal(t *testing.T) {
	router := newTestRouter(Auth(testSecret))

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+signTestToken(t, testSecret))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "biz-1")
	assert.Contains(t, w.Body.String(), "user-1")
}

func TestAuthRejectsMissingAndForgedTokens(t *testing.T) {
	router := newTestRouter(Auth(testSecret))

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	req = httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+signTestToken(t, "other-secret"))
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequireRole(t *testing.T) {
	router := newTestRouter(Auth(testSecret), RequireRole(domain.RoleOwner, domain.RoleManager))

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+signTestToken(t, testSecret))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	cashierRouter := newTestRouter(Auth(testSecret), RequireRole(domain.RoleManager))
	req = httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+signTestToken(t, testSecret))
	w = httptest.NewRecorder()
	cashierRouter.ServeHTTP(w, req)
	assert.Equal(t, http.StatusForbidden, w.Code)
}
