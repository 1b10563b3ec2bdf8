package middleware

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
)

// ErrorHandler recovers from handler panics with a JSON 500 and logs any
// errors handlers attached to the context.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				log.Printf("panic recovered: %v", err)
				c.AbortWithStatusJSON(http.StatusInternalServerError,
					gin.H{"error": "Internal Server Error"})
			}
		}()

		c.Next()

		for _, err := range c.Errors {
			log.Printf("%s %s: %v", c.Request.Method, c.Request.URL.Path, err.Err)
		}
	}
}
