package handler

import (
	"github.com/gin-gonic/gin"

	"classroom-hub/pkg/response"
)

// MustGetUserID extracts user_id from the Gin context. If the JWT
// middleware did not inject it, a 401 is written and ok is false;
// callers should return immediately in that case.
func MustGetUserID(c *gin.Context) (string, bool) {
	v, exists := c.Get("user_id")
	if !exists {
		response.Unauthorized(c, 10002, "unauthenticated")
		return "", false
	}
	s, ok := v.(string)
	if !ok || s == "" {
		response.Unauthorized(c, 10002, "unauthenticated")
		return "", false
	}
	return s, true
}
