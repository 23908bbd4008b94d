package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/documind-ai/documind/app/response"
	"github.com/documind-ai/documind/pkg/errors"
)

const USER_CONTEXT_KEY = "user"

func Cors(c *gin.Context) {
	method := c.Request.Method
	origin := c.Request.Header.Get("Origin")
	if origin != "" {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "POST, GET, OPTIONS, PUT, DELETE, UPDATE")
		c.Header("Access-Control-Allow-Headers", "Origin, X-Requested-With, Content-Type, Accept, Authorization, X-User-ID")
		c.Header("Access-Control-Expose-Headers", "Content-Length, Access-Control-Allow-Origin, Access-Control-Allow-Headers, Cache-Control, Content-Language, Content-Type")
		c.Header("Access-Control-Allow-Credentials", "true")
	}
	if method == "OPTIONS" {
		c.AbortWithStatus(http.StatusNoContent)
	}
	c.Next()
}

// Identity resolves the caller from the X-User-ID header. The gateway in
// front of this service authenticates, here the id only scopes sessions.
func Identity() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.Request.Header.Get("X-User-ID")
		if userID == "" {
			response.APIError(c, errors.New("middleware.Identity", "missing user identity", nil).
				Code(http.StatusUnauthorized).Kind(errors.KIND_INVALID_ARGUMENT))
			return
		}
		c.Set(USER_CONTEXT_KEY, userID)
		c.Next()
	}
}

func InjectUser(c *gin.Context) string {
	return c.GetString(USER_CONTEXT_KEY)
}
