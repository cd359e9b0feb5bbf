package controllers

import (
	"bytes"
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	apperrors "storefront-gateway/errors"
	"storefront-gateway/logger"
	"storefront-gateway/models"
	"storefront-gateway/session"
)

// PaymentController drives a checkout attempt through
// Initiated → Redirected → Verifying → {Verified, Rejected}.
//
// The provider-reported status on the return URL only decides whether a
// verify call is worth making. The paid/unpaid outcome always comes from
// the upstream verify response, never from the query string.
type PaymentController struct {
	upstream Upstream
	store    *session.Store
}

func NewPaymentController(upstream Upstream, store *session.Store) *PaymentController {
	return &PaymentController{upstream: upstream, store: store}
}

// Initiate forwards the order draft to the upstream payment-initiate
// endpoint. Upstream answers with the provider redirect URL and the
// transaction handle (pidx) the client returns with.
func (p *PaymentController) Initiate(c *gin.Context) {
	token, _ := session.FromContext(c)

	res, err := p.upstream.Exchange(c.Request.Context(), http.MethodPost, "/payment/initiate", nil, c.GetHeader("Content-Type"), c.Request.Body, token)
	if err != nil {
		logger.Log.Error("Payment initiate failed",
			zap.String("request_id", logger.RequestID(c)),
			zap.Error(err),
		)
		respondUnavailable(c)
		return
	}

	if res.Ok() {
		logger.Log.Info("Payment initiated",
			zap.String("request_id", logger.RequestID(c)),
			zap.String("state", string(models.StateRedirected)),
		)
	}
	respondResult(c, res)
}

// Verify handles the return leg from the payment provider. Query
// parameters: pidx, purchase_order_id, status.
func (p *PaymentController) Verify(c *gin.Context) {
	// A session can expire while the user is on the provider's pages.
	// That is recoverable: signal re-authentication, distinct from a
	// business rejection, so the client can log in and retry the same URL.
	token, ok := p.store.Get(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{
			"success": false,
			"message": apperrors.ErrReauthRequired.Message,
			"reauth":  true,
		})
		return
	}

	pidx := c.Query("pidx")
	orderID := c.Query("purchase_order_id")
	status := models.PaymentStatus(c.Query("status"))

	switch status {
	case models.PaymentCompleted:
		if pidx == "" || orderID == "" {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Missing pidx or purchase_order_id"})
			return
		}
		p.verifyUpstream(c, token, pidx, orderID)

	case models.PaymentFailed, models.PaymentCancelled:
		// Nothing to verify: the provider already reported a terminal
		// failure for this attempt.
		p.logTransition(c, models.StateRejected, string(status))
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"state":   models.StateRejected,
			"message": "Payment " + string(status),
		})

	default:
		p.logTransition(c, models.StateRejected, string(status))
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"state":   models.StateRejected,
			"message": "Invalid payment response",
		})
	}
}

func (p *PaymentController) verifyUpstream(c *gin.Context, token, pidx, orderID string) {
	p.logTransition(c, models.StateVerifying, string(models.PaymentCompleted))

	payload, _ := json.Marshal(gin.H{"pidx": pidx, "order_id": orderID})
	res, err := p.upstream.Exchange(c.Request.Context(), http.MethodPost, "/payment/verify", nil, "application/json", bytes.NewReader(payload), token)
	if err != nil {
		logger.Log.Error("Payment verify failed",
			zap.String("request_id", logger.RequestID(c)),
			zap.String("pidx", pidx),
			zap.String("order_id", orderID),
			zap.Error(err),
		)
		respondUnavailable(c)
		return
	}

	if res.Ok() {
		p.logTransition(c, models.StateVerified, string(models.PaymentCompleted))
		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"state":   models.StateVerified,
			"orderId": orderID,
			"message": "Payment verified",
		})
		return
	}

	if !res.IsJSON {
		c.JSON(res.StatusCode, gin.H{"success": false, "message": "Backend Error"})
		return
	}

	// Upstream rejected the verification: its message goes through
	// verbatim so the user sees why.
	p.logTransition(c, models.StateRejected, string(models.PaymentCompleted))
	message := res.Envelope.Message
	if message == "" {
		message = "Payment verification failed"
	}
	c.JSON(res.StatusCode, gin.H{
		"success": false,
		"state":   models.StateRejected,
		"message": message,
	})
}

// Webhook forwards a provider-pushed notification verbatim. It carries no
// user session by design, and duplicate deliveries are harmless: the
// forward is stateless and upstream dedups by transaction id.
func (p *PaymentController) Webhook(c *gin.Context) {
	res, err := p.upstream.Exchange(c.Request.Context(), http.MethodPost, "/payment/webhook", nil, c.GetHeader("Content-Type"), c.Request.Body, "")
	if err != nil {
		logger.Log.Error("Webhook forward failed",
			zap.String("request_id", logger.RequestID(c)),
			zap.Error(err),
		)
		respondUnavailable(c)
		return
	}
	respondResult(c, res)
}

func (p *PaymentController) logTransition(c *gin.Context, state models.CheckoutState, providerStatus string) {
	logger.Log.Info("Payment state transition",
		zap.String("request_id", logger.RequestID(c)),
		zap.String("state", string(state)),
		zap.String("provider_status", providerStatus),
	)
}
