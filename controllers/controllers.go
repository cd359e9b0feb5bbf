package controllers

import (
	"context"
	"io"
	"net/url"

	"github.com/gin-gonic/gin"

	apperrors "storefront-gateway/errors"
	"storefront-gateway/utils"
)

// Upstream is the one round trip a workflow makes against the commerce
// backend. *utils.Forwarder satisfies it; tests swap in counting fakes.
type Upstream interface {
	Exchange(ctx context.Context, method, path string, query url.Values, contentType string, body io.Reader, token string) (*utils.Result, error)
}

// respondResult relays a normalized upstream response to the client:
// JSON passes through with the upstream status, anything else is wrapped
// so the client never has to parse an HTML error page.
func respondResult(c *gin.Context, res *utils.Result) {
	if !res.IsJSON {
		apperrors.Respond(c, apperrors.UpstreamRejected(res.StatusCode, "Backend Error"))
		return
	}
	c.Data(res.StatusCode, "application/json", res.Body)
}

func respondUnavailable(c *gin.Context) {
	apperrors.Respond(c, apperrors.ErrUpstreamUnavailable)
}
