package handlers

import (
	"net/http"
	"strings"

	"todo_service/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	currentUserKey  = "currentUser"
	requestIDKey    = "requestID"
	requestIDHeader = "X-Request-ID"
)

// identityMiddleware resolves the bearer token to a live account and stores
// it in the request context. All ownership decisions downstream read from
// that resolved identity, never from client input.
func (h *Handler) identityMiddleware(c *gin.Context) {
	header := c.GetHeader("Authorization")
	if header == "" {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
			"error": "missing Authorization header",
		})
		return
	}

	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
			"error": "invalid Authorization header format",
		})
		return
	}

	user, err := h.services.Authorization.AuthorizeToken(c.Request.Context(), parts[1])
	if err != nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
			"error": "invalid or expired token",
		})
		return
	}

	// store in Gin context
	c.Set(currentUserKey, user)
	c.Next()
}

// currentUser fetches the identity resolved by identityMiddleware.
func (h *Handler) currentUser(c *gin.Context) (*models.User, bool) {
	v, ok := c.Get(currentUserKey)
	if !ok {
		return nil, false
	}
	u, ok := v.(*models.User)
	return u, ok && u != nil
}

// requestIDMiddleware tags every request with an id, honoring one supplied
// by the caller, and echoes it back in the response headers.
func (h *Handler) requestIDMiddleware(c *gin.Context) {
	id := c.GetHeader(requestIDHeader)
	if id == "" {
		id = uuid.NewString()
	}
	c.Set(requestIDKey, id)
	c.Writer.Header().Set(requestIDHeader, id)
	c.Next()
}
