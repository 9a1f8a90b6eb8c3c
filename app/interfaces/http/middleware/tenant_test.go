package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"campuskit.io/school-api-gateway/config/environment_variables"
)

func newTenantTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	router := gin.New()
	router.GET("/protected", TenantAuthMiddleware(), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"tenant_id": TenantFromContext(c)})
	})
	return router
}

func signToken(t *testing.T, method jwt.SigningMethod, claims TenantClaims, secret string) string {
	t.Helper()
	token, err := jwt.NewWithClaims(method, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return token
}

func TestTenantAuthMiddleware(t *testing.T) {
	environment_variables.EnvironmentVariables.JWT_SECRET = "test-secret"
	router := newTenantTestRouter(t)

	token := signToken(t, jwt.SigningMethodHS256, TenantClaims{
		TenantID: "tenant-a",
		Role:     "admin",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}, "test-secret")

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "tenant-a")
}

func TestTenantAuthMiddlewareMissingHeader(t *testing.T) {
	environment_variables.EnvironmentVariables.JWT_SECRET = "test-secret"
	router := newTenantTestRouter(t)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/protected", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestTenantAuthMiddlewareBadSignature(t *testing.T) {
	environment_variables.EnvironmentVariables.JWT_SECRET = "test-secret"
	router := newTenantTestRouter(t)

	token := signToken(t, jwt.SigningMethodHS256, TenantClaims{TenantID: "tenant-a"}, "wrong-secret")

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestTenantAuthMiddlewareMissingTenantClaim(t *testing.T) {
	environment_variables.EnvironmentVariables.JWT_SECRET = "test-secret"
	router := newTenantTestRouter(t)

	token := signToken(t, jwt.SigningMethodHS256, TenantClaims{Role: "admin"}, "test-secret")

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestTenantAuthMiddlewareExpiredToken(t *testing.T) {
	environment_variables.EnvironmentVariables.JWT_SECRET = "test-secret"
	router := newTenantTestRouter(t)

	token := signToken(t, jwt.SigningMethodHS256, TenantClaims{
		TenantID: "tenant-a",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
		},
	}, "test-secret")

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
