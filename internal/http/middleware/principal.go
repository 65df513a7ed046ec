package middleware

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"pathlight.app/interviews/common/logger"
	"pathlight.app/interviews/internal/model"
)

const principalKey = "principal"

// Principal extracts the authenticated caller from the identity headers the
// gateway sets after session resolution. Auth itself happens upstream; this
// service only consumes the result.
func Principal() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, err := strconv.ParseInt(c.GetHeader("X-User-ID"), 10, 64)
		if err != nil || userID <= 0 {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing or invalid user identity"})
			return
		}

		role := model.Role(c.GetHeader("X-User-Role"))
		if !role.IsValid() {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing or invalid role"})
			return
		}

		c.Set(principalKey, model.Principal{UserID: userID, Role: role})

		ctx := logger.WithLogFields(c.Request.Context(), logger.LogFields{
			ActorID:   logger.Ptr(userID),
			ActorRole: logger.Ptr(string(role)),
		})
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}

// GetPrincipal returns the caller stored by the Principal middleware.
func GetPrincipal(c *gin.Context) model.Principal {
	p, _ := c.Get(principalKey)
	principal, _ := p.(model.Principal)
	return principal
}
