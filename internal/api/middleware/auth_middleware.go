package middleware

import (
	"net/http"
	"strings"

	"github.com/piyukr2/Bed-Manager/internal/domain"
	"github.com/piyukr2/Bed-Manager/internal/service"

	"github.com/gin-gonic/gin"
)

const (
	AuthorizationHeaderKey  = "Authorization"
	AuthorizationTypeBearer = "Bearer"
	UserIDKey               = "userID"
	UsernameKey             = "username"
	UserNameKey             = "userName"
	UserRoleKey             = "userRole"
	UserWardKey             = "userWard"
	AccessScopeKey          = "accessScope"
)

type AuthMiddleware struct {
	authService *service.AuthService
}

func NewAuthMiddleware(authService *service.AuthService) *AuthMiddleware {
	return &AuthMiddleware{authService: authService}
}

// Authenticate validates the bearer token and stores the caller's identity
// and AccessScope in the gin context. The scope is computed once here and
// used by every handler.
func (m *AuthMiddleware) Authenticate() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader(AuthorizationHeaderKey)
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Missing authorization header"})
			return
		}

		fields := strings.Fields(authHeader)
		if len(fields) < 2 || !strings.EqualFold(fields[0], AuthorizationTypeBearer) {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid authorization header format"})
			return
		}

		_, claims, err := m.authService.ValidateToken(fields[1])
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Token is invalid or expired", "details": err.Error()})
			return
		}

		userID, okUserID := claims["sub"].(string)
		username, okUsername := claims["username"].(string)
		role, okRole := claims["role"].(string)
		if !okUserID || !okUsername || !okRole {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid user information in token"})
			return
		}
		name, _ := claims["name"].(string)
		ward, _ := claims["ward"].(string)

		c.Set(UserIDKey, userID)
		c.Set(UsernameKey, username)
		c.Set(UserNameKey, name)
		c.Set(UserRoleKey, role)
		c.Set(UserWardKey, ward)
		c.Set(AccessScopeKey, domain.ScopeForUser(role, ward))

		c.Next()
	}
}

// AuthorizeRole allows the request through only when the caller has one of
// the required roles.
func (m *AuthMiddleware) AuthorizeRole(requiredRoles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		roleVal, exists := c.Get(UserRoleKey)
		if !exists {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Insufficient permissions"})
			return
		}
		role, ok := roleVal.(string)
		if !ok {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Insufficient permissions"})
			return
		}

		for _, required := range requiredRoles {
			if role == required {
				c.Next()
				return
			}
		}
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Insufficient permissions"})
	}
}

// ScopeFromContext returns the AccessScope stored by Authenticate. Missing
// scope (unauthenticated path) reads as unrestricted.
func ScopeFromContext(c *gin.Context) domain.AccessScope {
	if scopeVal, exists := c.Get(AccessScopeKey); exists {
		if scope, ok := scopeVal.(domain.AccessScope); ok {
			return scope
		}
	}
	return domain.Unrestricted()
}

// ActorFromContext returns who is making the request, for audit messages.
func ActorFromContext(c *gin.Context) domain.Actor {
	return domain.Actor{
		Username: c.GetString(UsernameKey),
		Name:     c.GetString(UserNameKey),
	}
}
