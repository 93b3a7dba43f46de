package middlewares

import "github.com/gin-gonic/gin"

// Surface tags requests with the ordering surface (kiosk or cashier) of the
// route group.
func Surface(name string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("surface", name)
		c.Next()
	}
}
