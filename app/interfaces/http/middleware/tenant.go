package middleware

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"campuskit.io/school-api-gateway/app/interfaces/http/responses"
	"campuskit.io/school-api-gateway/app/utils/contextkeys"
	"campuskit.io/school-api-gateway/config/environment_variables"
)

// TenantClaims is the token payload issued by the auth provider.
// Token issuance itself is external; this layer only verifies the
// signature and propagates the tenant id into the request context so
// every query below stays tenant-scoped.
type TenantClaims struct {
	TenantID string `json:"tenant_id"`
	Role     string `json:"role"`
	jwt.RegisteredClaims
}

func TenantAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, responses.ErrorResponse{
				Code:  "7f1a2c44-93be-44c7-9e0a-51d32a0c7d2e",
				Error: "missing bearer token",
			})
			return
		}

		tokenString := strings.TrimPrefix(header, "Bearer ")
		claims := &TenantClaims{}
		token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
			}
			return []byte(environment_variables.EnvironmentVariables.JWT_SECRET), nil
		})
		if err != nil || !token.Valid || claims.TenantID == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, responses.ErrorResponse{
				Code:  "b92cf1de-6a5c-4f9e-8df2-9b4f1d4a6c03",
				Error: "invalid token",
			})
			return
		}

		ctx := c.Request.Context()
		ctx = context.WithValue(ctx, contextkeys.TenantId{}, claims.TenantID)
		ctx = context.WithValue(ctx, contextkeys.UserRole{}, claims.Role)
		c.Request = c.Request.WithContext(ctx)
		c.Set("tenant_id", claims.TenantID)
		c.Set("role", claims.Role)
		c.Next()
	}
}

// TenantFromContext returns the tenant id the middleware stored.
func TenantFromContext(c *gin.Context) string {
	return c.GetString("tenant_id")
}
