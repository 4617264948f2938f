package middleware

import (
	"littlelemon/internal/auth" // Authorization policy table
	"net/http"                  // HTTP status codes

	"github.com/gin-gonic/gin" // Gin web framework
)

// Authorize gates a route on the policy table for the given resource. The
// action is derived from the HTTP method, the role comes from the token
// middleware, so every permission decision is one table consult.
func Authorize(resource auth.Resource) gin.HandlerFunc {
	return func(c *gin.Context) {
		role := CurrentRole(c)                            // Role resolved by TokenAuthMiddleware
		action := auth.ActionForMethod(c.Request.Method) // Action class for this request
		// Consult the policy table
		if !auth.Allow(role, resource, action) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": auth.DenyMessage(resource, action)})
			return
		}
		c.Next() // Permitted, proceed to the handler
	}
}
