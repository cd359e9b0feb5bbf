package middlewares_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"storefront-gateway/middlewares"
	"storefront-gateway/session"
)

func setupAdmin() *gin.Engine {
	gin.SetMode(gin.TestMode)
	store := session.NewStore("session_token", 3600, false)
	r := gin.New()
	admin := r.Group("/admin")
	admin.Use(middlewares.AdminGate(store, "/login"))
	admin.GET("/businesses", func(c *gin.Context) {
		token, _ := session.FromContext(c)
		c.JSON(http.StatusOK, gin.H{"token": token})
	})
	return r
}

func TestAdminGate_RedirectsBrowser(t *testing.T) {
	r := setupAdmin()

	req := httptest.NewRequest(http.MethodGet, "/admin/businesses?page=2", nil)
	req.Header.Set("Accept", "text/html")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/login?next=%2Fadmin%2Fbusinesses%3Fpage%3D2", w.Header().Get("Location"))
}

func TestAdminGate_401ForAPIClients(t *testing.T) {
	r := setupAdmin()

	req := httptest.NewRequest(http.MethodGet, "/admin/businesses", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.JSONEq(t, `{"success":false,"message":"Unauthorized"}`, w.Body.String())
}

func TestAdminGate_PassesTokenThrough(t *testing.T) {
	r := setupAdmin()

	req := httptest.NewRequest(http.MethodGet, "/admin/businesses", nil)
	req.AddCookie(&http.Cookie{Name: "session_token", Value: "admin-tok"})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"token":"admin-tok"}`, w.Body.String())
}

func TestRequireSession_BlocksAndStashes(t *testing.T) {
	gin.SetMode(gin.TestMode)
	store := session.NewStore("session_token", 3600, false)
	r := gin.New()
	r.GET("/cart", middlewares.RequireSession(store), func(c *gin.Context) {
		token, _ := session.FromContext(c)
		c.JSON(http.StatusOK, gin.H{"token": token})
	})

	req := httptest.NewRequest(http.MethodGet, "/cart", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	req = httptest.NewRequest(http.MethodGet, "/cart", nil)
	req.AddCookie(&http.Cookie{Name: "session_token", Value: "tok-1"})
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"token":"tok-1"}`, w.Body.String())
}
