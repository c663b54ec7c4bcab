package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/khaliljaouani/gestion-factures-rouen/internal/core/appctx"
)

const (
	HeaderCallerName  = "X-Caller-Name"
	HeaderCallerEmail = "X-Caller-Email"
)

// CallerContext carries the identity resolved by the desktop shell
// into the request context. The shell authenticates before the
// request reaches this service; these headers are trusted input on
// the loopback interface.
func CallerContext() gin.HandlerFunc {
	return func(c *gin.Context) {
		name := c.GetHeader(HeaderCallerName)
		email := c.GetHeader(HeaderCallerEmail)

		if name != "" || email != "" {
			ctx := appctx.WithCaller(c.Request.Context(), &appctx.Caller{
				DisplayName: name,
				Email:       email,
			})
			c.Request = c.Request.WithContext(ctx)
		}

		c.Next()
	}
}
