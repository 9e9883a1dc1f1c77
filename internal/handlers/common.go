package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/quizhub/quiz-service/internal/auth"
	"github.com/quizhub/quiz-service/internal/services"
	"github.com/quizhub/quiz-service/internal/utils"
)

const (
	identityKey = "identity"
	userIDKey   = "user_id"
)

// ===== COMMON RESPONSE STRUCTURES =====

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error   string      `json:"error"`
	Details interface{} `json:"details,omitempty"`
}

// MessageResponse is the body of mutations that return no resource
type MessageResponse struct {
	Message string `json:"message"`
}

// ===== BASE HANDLER STRUCT =====

// BaseHandler provides common logging functionality for all handlers
type BaseHandler struct {
	logger utils.Logger
}

func NewBaseHandler(logger utils.Logger) BaseHandler {
	return BaseHandler{logger: logger}
}

// requestLogger prefers the request scoped logger set by utils.ContextLogger
func (h *BaseHandler) requestLogger(c *gin.Context) utils.Logger {
	if logger, exists := c.Get("logger"); exists {
		if typed, ok := logger.(utils.Logger); ok {
			return typed
		}
	}
	return h.logger
}

func (h *BaseHandler) LogInfo(c *gin.Context, message string, fields ...interface{}) {
	h.requestLogger(c).Info(message, append([]interface{}{"user_id", c.GetString(userIDKey)}, fields...)...)
}

func (h *BaseHandler) LogError(c *gin.Context, err error, message string, fields ...interface{}) {
	h.requestLogger(c).LogError(err, message, append([]interface{}{"user_id", c.GetString(userIDKey)}, fields...)...)
}

// RespondWithError sends a consistent error response
func (h *BaseHandler) RespondWithError(c *gin.Context, statusCode int, message string, details ...interface{}) {
	resp := ErrorResponse{Error: message}
	if len(details) > 0 {
		resp.Details = details[0]
	}
	c.AbortWithStatusJSON(statusCode, resp)
}

// bindJSON decodes the body; malformed JSON is a validation failure.
func (h *BaseHandler) bindJSON(c *gin.Context, dst interface{}) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		h.RespondWithError(c, http.StatusBadRequest, "Invalid request payload", err.Error())
		return false
	}
	return true
}

// handleServiceError maps the service error taxonomy onto HTTP status codes.
// Unclassified errors are logged and reported as a generic 500.
func (h *BaseHandler) handleServiceError(c *gin.Context, err error) {
	var validationErrors services.ValidationErrors
	if errors.As(err, &validationErrors) {
		h.RespondWithError(c, http.StatusBadRequest, "Validation failed", validationErrors)
		return
	}
	var validationError *services.ValidationError
	if errors.As(err, &validationError) {
		h.RespondWithError(c, http.StatusBadRequest, "Validation failed", services.ValidationErrors{*validationError})
		return
	}

	switch {
	case services.IsNotFound(err):
		h.RespondWithError(c, http.StatusNotFound, "Question not found")
	case services.IsUnauthenticated(err):
		h.RespondWithError(c, http.StatusUnauthorized, "Unauthorized request")
	case services.IsForbidden(err):
		h.RespondWithError(c, http.StatusForbidden, "Access denied")
	case services.IsTooManyRequests(err):
		h.RespondWithError(c, http.StatusTooManyRequests, "Too many failed login attempts, try again later")
	case services.IsInvalidCredentials(err):
		h.RespondWithError(c, http.StatusBadRequest, "Invalid credentials")
	case services.IsConflict(err):
		h.RespondWithError(c, http.StatusBadRequest, conflictMessage(err))
	case services.IsValidation(err):
		h.RespondWithError(c, http.StatusBadRequest, "Validation failed", err.Error())
	default:
		h.LogError(c, err, "Unexpected service error")
		h.RespondWithError(c, http.StatusInternalServerError, "Internal server error")
	}
}

func conflictMessage(err error) string {
	switch {
	case errors.Is(err, services.ErrUsernameTaken):
		return "Username already exists"
	case errors.Is(err, services.ErrAlreadyUpvoted):
		return "You already upvoted this question"
	case errors.Is(err, services.ErrAlreadyDownvoted):
		return "You already downvoted this question"
	case errors.Is(err, services.ErrVoteFlipConflict):
		return "Vote was changed by another request"
	default:
		return "Resource conflict"
	}
}

// currentIdentity returns the identity stored by the Authenticate middleware
func currentIdentity(c *gin.Context) (*auth.Identity, bool) {
	value, exists := c.Get(identityKey)
	if !exists {
		return nil, false
	}
	identity, ok := value.(*auth.Identity)
	return identity, ok && identity != nil
}

// optionalQuery returns nil for an absent or empty query parameter
func optionalQuery(c *gin.Context, key string) *string {
	value := strings.TrimSpace(c.Query(key))
	if value == "" {
		return nil
	}
	return &value
}

// queryList accepts both repeated parameters and comma separated values
func queryList(c *gin.Context, key string) []string {
	var out []string
	for _, raw := range c.QueryArray(key) {
		for _, part := range strings.Split(raw, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}

// HealthCheck reports liveness
func HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "quiz-service",
	})
}
