package middleware

import (
	"net/http"
	"strings"

	"ecohaven_backend/internal/models"
	"ecohaven_backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

const principalKey = "principal"

// TokenValidator verifies bearer tokens.
type TokenValidator interface {
	Validate(tokenString string) (*utils.Claims, error)
}

// AuthMiddleware creates a Gin middleware for JWT authentication.
// On success the caller is available through CurrentPrincipal.
func AuthMiddleware(tokens TokenValidator) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusUnauthorized, utils.ErrCodeUnauthorized, "Authorization header required", nil))
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusUnauthorized, utils.ErrCodeUnauthorized, "Invalid authorization header format. Use Bearer <token>", nil))
			return
		}

		claims, err := tokens.Validate(parts[1])
		if err != nil {
			utils.LogDebug("Rejected token", map[string]interface{}{"error": err.Error(), "path": c.Request.URL.Path})
			utils.RespondWithError(c, utils.NewAPIError(http.StatusUnauthorized, utils.ErrCodeUnauthorized, "Invalid or expired token", nil))
			return
		}
		id, _ := claims.ID()

		c.Set(principalKey, &models.Principal{
			ID:         id,
			Kind:       claims.Kind,
			Email:      claims.Email,
			FullName:   claims.FullName,
			Role:       claims.Role,
			ProfilePic: claims.ProfilePic,
		})
		c.Next()
	}
}

// CurrentPrincipal returns the authenticated caller, or nil when
// AuthMiddleware did not run.
func CurrentPrincipal(c *gin.Context) *models.Principal {
	value, exists := c.Get(principalKey)
	if !exists {
		return nil
	}
	principal, _ := value.(*models.Principal)
	return principal
}

func forbidden(c *gin.Context, message string) {
	utils.RespondWithError(c, utils.NewAPIError(http.StatusForbidden, utils.ErrCodeForbidden, message, nil))
}

// RequireStaff allows only back-office users.
func RequireStaff() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !CurrentPrincipal(c).IsStaff() {
			forbidden(c, "Staff access required")
			return
		}
		c.Next()
	}
}

// RequireAccount allows only public accounts.
func RequireAccount() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !CurrentPrincipal(c).IsAccount() {
			forbidden(c, "Account access required")
			return
		}
		c.Next()
	}
}

// RoleAuthMiddleware creates a Gin middleware for role-based authorization.
// It checks if the staff role (from JWT claims) is one of the allowed roles.
func RoleAuthMiddleware(allowedRoles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		principal := CurrentPrincipal(c)
		if !principal.IsStaff() {
			forbidden(c, "Staff access required")
			return
		}

		for _, r := range allowedRoles {
			if strings.EqualFold(principal.Role, r) {
				c.Next()
				return
			}
		}
		forbidden(c, "You do not have permission to access this resource. Required roles: "+strings.Join(allowedRoles, ", "))
	}
}
