package controllers

import "github.com/gin-gonic/gin"

// userIDFromCtx pulls the identity the auth middleware stored on the
// request.
func userIDFromCtx(c *gin.Context) (uint, bool) {
	v, ok := c.Get("userID")
	if !ok {
		return 0, false
	}
	id, ok := v.(uint)
	return id, ok
}
