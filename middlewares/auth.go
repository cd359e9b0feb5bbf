package middlewares

import (
	"github.com/gin-gonic/gin"

	apperrors "storefront-gateway/errors"
	"storefront-gateway/session"
)

// RequireSession rejects requests carrying no session cookie before any
// upstream call is made. The token is not validated locally; it is stashed
// in the request context for the forwarder to re-derive the upstream
// Authorization header from.
func RequireSession(store *session.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := store.Get(c)
		if !ok {
			apperrors.AbortWith(c, apperrors.ErrUnauthorized)
			return
		}
		c.Set(session.TokenContextKey, token)
		c.Next()
	}
}
