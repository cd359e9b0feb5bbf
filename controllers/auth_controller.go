package controllers

import (
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"storefront-gateway/logger"
	"storefront-gateway/session"
)

// AuthController forwards credential operations and owns the session
// cookie lifetime: set on login success, cleared on logout.
type AuthController struct {
	upstream Upstream
	store    *session.Store
}

func NewAuthController(upstream Upstream, store *session.Store) *AuthController {
	return &AuthController{upstream: upstream, store: store}
}

// Login forwards the credentials upstream and, when upstream accepts them,
// moves the returned token into the HTTP-only session cookie.
func (a *AuthController) Login(c *gin.Context) {
	res, err := a.upstream.Exchange(c.Request.Context(), http.MethodPost, "/auth/login", nil, c.GetHeader("Content-Type"), c.Request.Body, "")
	if err != nil {
		logger.Log.Error("Login forward failed",
			zap.String("request_id", logger.RequestID(c)),
			zap.Error(err),
		)
		respondUnavailable(c)
		return
	}

	if res.Ok() {
		var payload struct {
			Token string `json:"token"`
		}
		if err := json.Unmarshal(res.Body, &payload); err == nil && payload.Token != "" {
			a.store.Set(c, payload.Token)
		} else {
			logger.Log.Warn("Login succeeded upstream but no token in response",
				zap.String("request_id", logger.RequestID(c)),
			)
		}
	}

	respondResult(c, res)
}

// Logout clears the cookie unconditionally and tells upstream to end the
// session. An unreachable upstream does not keep the browser logged in.
func (a *AuthController) Logout(c *gin.Context) {
	token, hadToken := a.store.Get(c)
	a.store.Clear(c)

	if hadToken {
		if _, err := a.upstream.Exchange(c.Request.Context(), http.MethodPost, "/auth/logout", nil, "", nil, token); err != nil {
			logger.Log.Warn("Logout forward failed, cookie cleared locally",
				zap.String("request_id", logger.RequestID(c)),
				zap.Error(err),
			)
		}
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Logged out"})
}
