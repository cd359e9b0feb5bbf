package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"storefront-gateway/config"
	"storefront-gateway/controllers"
	apperrors "storefront-gateway/errors"
	"storefront-gateway/middlewares"
	"storefront-gateway/session"
	"storefront-gateway/utils"
)

// Table is the declarative route table: every plain proxied operation the
// gateway exposes, in match order. Workflow endpoints (auth cookie
// plumbing, payment verification, business approval) have dedicated
// controllers and are registered alongside.
func Table() []utils.Operation {
	return []utils.Operation{
		// Public storefront surface
		{Name: "catalog.list", Method: http.MethodGet, Pattern: "/products", Upstream: "/products", Auth: utils.AuthNone, Body: utils.BodyNone},
		{Name: "catalog.get", Method: http.MethodGet, Pattern: "/products/:id", Upstream: "/products/:id", Auth: utils.AuthNone, Body: utils.BodyNone},
		{Name: "catalog.categories", Method: http.MethodGet, Pattern: "/categories", Upstream: "/categories", Auth: utils.AuthNone, Body: utils.BodyNone},

		// Profile
		{Name: "users.me", Method: http.MethodGet, Pattern: "/users/me", Upstream: "/users/me", Auth: utils.AuthSession, Body: utils.BodyNone},
		{Name: "users.update", Method: http.MethodPut, Pattern: "/users/me", Upstream: "/users/me", Auth: utils.AuthSession, Body: utils.BodyMultipart},

		// Cart
		{Name: "cart.get", Method: http.MethodGet, Pattern: "/cart", Upstream: "/cart", Auth: utils.AuthSession, Body: utils.BodyNone},
		{Name: "cart.add", Method: http.MethodPost, Pattern: "/cart/items", Upstream: "/cart/items", Auth: utils.AuthSession, Body: utils.BodyJSON},
		{Name: "cart.update", Method: http.MethodPut, Pattern: "/cart/items/:id", Upstream: "/cart/items/:id", Auth: utils.AuthSession, Body: utils.BodyJSON},
		{Name: "cart.remove", Method: http.MethodDelete, Pattern: "/cart/items/:id", Upstream: "/cart/items/:id", Auth: utils.AuthSession, Body: utils.BodyNone},

		// Orders
		{Name: "orders.create", Method: http.MethodPost, Pattern: "/orders", Upstream: "/orders", Auth: utils.AuthSession, Body: utils.BodyJSON},
		{Name: "orders.list", Method: http.MethodGet, Pattern: "/orders", Upstream: "/orders", Auth: utils.AuthSession, Body: utils.BodyNone},
		{Name: "orders.get", Method: http.MethodGet, Pattern: "/orders/:id", Upstream: "/orders/:id", Auth: utils.AuthSession, Body: utils.BodyNone},
		{Name: "orders.status", Method: http.MethodPut, Pattern: "/orders/:id/status", Upstream: "/orders/:id/status", Auth: utils.AuthSession, Body: utils.BodyJSON},

		// Seller surface; role checks happen upstream
		{Name: "products.create", Method: http.MethodPost, Pattern: "/products", Upstream: "/products", Auth: utils.AuthSession, Body: utils.BodyMultipart},
		{Name: "products.update", Method: http.MethodPut, Pattern: "/products/:id", Upstream: "/products/:id", Auth: utils.AuthSession, Body: utils.BodyMultipart},
		{Name: "business.register", Method: http.MethodPost, Pattern: "/business/register", Upstream: "/business/register", Auth: utils.AuthSession, Body: utils.BodyMultipart},

		// Admin surface, behind AdminGate
		{Name: "admin.businesses", Method: http.MethodGet, Pattern: "/admin/businesses", Upstream: "/admin/businesses", Auth: utils.AuthAdmin, Body: utils.BodyNone},
		{Name: "admin.orders", Method: http.MethodGet, Pattern: "/admin/orders", Upstream: "/admin/orders", Auth: utils.AuthAdmin, Body: utils.BodyNone},
	}
}

// RegisterAll wires the route table and the workflow controllers onto the
// engine.
func RegisterAll(r *gin.Engine, cfg *config.Config, store *session.Store, forwarder *utils.Forwarder) {
	proxy := func(op utils.Operation) gin.HandlerFunc {
		return func(c *gin.Context) {
			forwarder.Proxy(c, op)
		}
	}

	requireSession := middlewares.RequireSession(store)
	adminGate := middlewares.AdminGate(store, cfg.LoginPath)

	for _, op := range Table() {
		switch op.Auth {
		case utils.AuthSession:
			r.Handle(op.Method, op.Pattern, requireSession, proxy(op))
		case utils.AuthAdmin:
			r.Handle(op.Method, op.Pattern, adminGate, proxy(op))
		default:
			r.Handle(op.Method, op.Pattern, proxy(op))
		}
	}

	authCtrl := controllers.NewAuthController(forwarder, store)
	paymentCtrl := controllers.NewPaymentController(forwarder, store)
	approvalCtrl := controllers.NewApprovalController(forwarder)

	authGroup := r.Group("/auth")
	authGroup.Use(middlewares.RateLimitMiddleware())
	authGroup.POST("/register", proxy(utils.Operation{
		Name: "auth.register", Method: http.MethodPost,
		Pattern: "/auth/register", Upstream: "/auth/register",
		Auth: utils.AuthNone, Body: utils.BodyJSON,
	}))
	authGroup.POST("/login", authCtrl.Login)
	authGroup.POST("/logout", authCtrl.Logout)

	r.POST("/payment/initiate", requireSession, paymentCtrl.Initiate)
	// Verify checks the session itself so an expired session surfaces a
	// re-authentication signal instead of a plain 401.
	r.GET("/payment/verify", paymentCtrl.Verify)
	// Provider-pushed, unauthenticated by design.
	r.POST("/payment/webhook", paymentCtrl.Webhook)

	r.POST("/admin/businesses/:id/approve", adminGate, approvalCtrl.Approve)

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// Unknown paths 404 here instead of guessing an upstream path.
	r.NoRoute(func(c *gin.Context) {
		apperrors.Respond(c, apperrors.ErrNotFound)
	})
}
