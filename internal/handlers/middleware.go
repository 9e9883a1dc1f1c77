package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/quizhub/quiz-service/internal/auth"
	"github.com/quizhub/quiz-service/internal/services"
)

// Middlewares holds the request guards shared by all route groups
type Middlewares struct {
	BaseHandler
	authService services.AuthService
	policy      auth.Policy
}

func NewMiddlewares(authService services.AuthService, policy auth.Policy, base BaseHandler) *Middlewares {
	return &Middlewares{
		BaseHandler: base,
		authService: authService,
		policy:      policy,
	}
}

// Authenticate requires a valid "Authorization: Bearer <token>" header and
// stores the caller's identity on the context.
func (m *Middlewares) Authenticate() gin.HandlerFunc {
	return func(c *gin.Context) {
		identity, err := m.authService.Authenticate(c.Request.Context(), bearerToken(c))
		if err != nil {
			m.handleServiceError(c, err)
			return
		}

		c.Set(identityKey, identity)
		c.Set(userIDKey, identity.UserID)
		c.Next()
	}
}

// Authorize checks the authenticated identity against the policy table.
// It must run after Authenticate.
func (m *Middlewares) Authorize(op auth.Operation) gin.HandlerFunc {
	return func(c *gin.Context) {
		identity, ok := currentIdentity(c)
		if !ok {
			m.RespondWithError(c, http.StatusUnauthorized, "Unauthorized request")
			return
		}
		if err := m.policy.Authorize(op, *identity); err != nil {
			m.LogInfo(c, "Access denied", "operation", op, "role", identity.Role)
			m.handleServiceError(c, err)
			return
		}
		c.Next()
	}
}

// Guard is Authenticate followed by Authorize for op
func (m *Middlewares) Guard(op auth.Operation) []gin.HandlerFunc {
	return []gin.HandlerFunc{m.Authenticate(), m.Authorize(op)}
}

func bearerToken(c *gin.Context) string {
	header := strings.TrimSpace(c.GetHeader("Authorization"))
	if header == "" {
		return ""
	}
	scheme, token, found := strings.Cut(header, " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return ""
	}
	return strings.TrimSpace(token)
}

// CORS answers preflight requests and tags responses for the allowed origins.
// A "*" entry allows any origin.
func CORS(allowedOrigins []string) gin.HandlerFunc {
	allowAll := false
	allowed := make(map[string]struct{}, len(allowedOrigins))
	for _, o := range allowedOrigins {
		if o == "*" {
			allowAll = true
		}
		allowed[o] = struct{}{}
	}

	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")
		if origin != "" {
			_, ok := allowed[origin]
			switch {
			case allowAll:
				c.Header("Access-Control-Allow-Origin", "*")
			case ok:
				c.Header("Access-Control-Allow-Origin", origin)
				c.Header("Vary", "Origin")
			}
			c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
			c.Header("Access-Control-Allow-Headers", "Authorization, Content-Type, X-Request-ID")
			c.Header("Access-Control-Expose-Headers", "X-Request-ID, Content-Disposition")
		}

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}
