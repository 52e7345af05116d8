package auth

import "github.com/gin-gonic/gin"

// Identity verification happens upstream; by the time a request reaches this
// service the gateway has already validated the token and forwarded the
// subject in X-User-Id.
const (
	userIDHeader  = "X-User-Id"
	userIDCtxKey  = "user_id"
	SystemActorID = "system"
)

// GetUserID returns the authenticated actor id for the request, or "" when
// the header is absent.
func GetUserID(c *gin.Context) string {
	if val, ok := c.Get(userIDCtxKey); ok {
		if s, ok := val.(string); ok && s != "" {
			return s
		}
	}
	return c.GetHeader(userIDHeader)
}

// RequireUser aborts with 401 when no actor id is present.
func RequireUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetHeader(userIDHeader)
		if userID == "" {
			c.AbortWithStatusJSON(401, gin.H{"success": false, "message": "missing user identity"})
			return
		}
		c.Set(userIDCtxKey, userID)
		c.Next()
	}
}
