package controllers

import (
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"storefront-gateway/logger"
	"storefront-gateway/session"
)

// ApprovalController flips a business from pending to approved. Admin-only
// and one-way: there is no reject/unapprove path through the gateway.
type ApprovalController struct {
	upstream Upstream
}

func NewApprovalController(upstream Upstream) *ApprovalController {
	return &ApprovalController{upstream: upstream}
}

// Approve forwards the approval to upstream. The gateway does not pre-check
// isVerified: whether approving twice is an error or a no-op is upstream's
// call, and its answer passes through unchanged.
func (a *ApprovalController) Approve(c *gin.Context) {
	businessID := c.Param("id")
	if businessID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Missing business id"})
		return
	}

	token, _ := session.FromContext(c)

	path := "/business/" + url.PathEscape(businessID) + "/approve"
	res, err := a.upstream.Exchange(c.Request.Context(), http.MethodPost, path, nil, "", nil, token)
	if err != nil {
		logger.Log.Error("Business approval failed",
			zap.String("request_id", logger.RequestID(c)),
			zap.String("business_id", businessID),
			zap.Error(err),
		)
		respondUnavailable(c)
		return
	}

	if res.Ok() {
		logger.Log.Info("Business approved",
			zap.String("request_id", logger.RequestID(c)),
			zap.String("business_id", businessID),
		)
	}
	respondResult(c, res)
}
