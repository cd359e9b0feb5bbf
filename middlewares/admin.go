package middlewares

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/gin-gonic/gin"

	apperrors "storefront-gateway/errors"
	"storefront-gateway/session"
)

// AdminGate guards the admin path prefix before route resolution. It only
// checks that a session credential exists: privilege level is enforced
// upstream, this is defense-in-depth. Browser navigations are redirected to
// the login page, API calls get a 401.
func AdminGate(store *session.Store, loginPath string) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := store.Get(c)
		if !ok {
			if wantsHTML(c.Request) {
				next := url.QueryEscape(c.Request.URL.RequestURI())
				c.Redirect(http.StatusFound, loginPath+"?next="+next)
				c.Abort()
				return
			}
			apperrors.AbortWith(c, apperrors.ErrUnauthorized)
			return
		}
		c.Set(session.TokenContextKey, token)
		c.Next()
	}
}

// wantsHTML distinguishes a browser navigation from an API call.
func wantsHTML(r *http.Request) bool {
	accept := r.Header.Get("Accept")
	return strings.Contains(accept, "text/html")
}
