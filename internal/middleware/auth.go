package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

// Permission levels carried in the token's permission_level claim.
// They mirror the portal's user roles; department admin and above may
// administer the reward catalog.
const (
	PermissionMember          = 0
	PermissionStaff           = 1
	PermissionDepartmentAdmin = 2
	PermissionSystemAdmin     = 3
)

// RequireAdmin verifies the bearer token and aborts with 403 unless the
// caller holds an elevated role. Authorization runs before any request
// validation so an unauthorized caller learns nothing else.
func RequireAdmin(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"ok": false, "error": "authorization header is required"})
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"ok": false, "error": "invalid authorization header format"})
			return
		}

		token, err := jwt.Parse(parts[1], func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrSignatureInvalid
			}
			return []byte(secret), nil
		})
		if err != nil || !token.Valid {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"ok": false, "error": "invalid or expired token"})
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"ok": false, "error": "invalid or expired token"})
			return
		}

		level, ok := claims["permission_level"].(float64)
		if !ok || int(level) < PermissionDepartmentAdmin {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"ok": false, "error": "not authorized"})
			return
		}

		if sub, ok := claims["sub"].(string); ok {
			c.Set("userId", sub)
		}

		c.Next()
	}
}
