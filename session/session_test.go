package session_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"storefront-gateway/session"
)

func newTestContext() (*gin.Context, *httptest.ResponseRecorder) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	return c, w
}

func TestGet_AbsentIsNormal(t *testing.T) {
	store := session.NewStore("session_token", 3600, false)
	c, _ := newTestContext()

	token, ok := store.Get(c)
	assert.False(t, ok)
	assert.Empty(t, token)
}

func TestGet_ReadsCookie(t *testing.T) {
	store := session.NewStore("session_token", 3600, false)
	c, _ := newTestContext()
	c.Request.AddCookie(&http.Cookie{Name: "session_token", Value: "tok-1"})

	token, ok := store.Get(c)
	assert.True(t, ok)
	assert.Equal(t, "tok-1", token)
}

func TestSet_WritesHTTPOnlyCookie(t *testing.T) {
	store := session.NewStore("session_token", 3600, false)
	c, w := newTestContext()

	store.Set(c, "tok-2")

	cookies := w.Result().Cookies()
	assert.Len(t, cookies, 1)
	assert.Equal(t, "session_token", cookies[0].Name)
	assert.Equal(t, "tok-2", cookies[0].Value)
	assert.True(t, cookies[0].HttpOnly)
	assert.Equal(t, 3600, cookies[0].MaxAge)
}

func TestClear_ExpiresCookie(t *testing.T) {
	store := session.NewStore("session_token", 3600, false)
	c, w := newTestContext()

	store.Clear(c)

	cookies := w.Result().Cookies()
	assert.Len(t, cookies, 1)
	assert.Empty(t, cookies[0].Value)
	assert.Negative(t, cookies[0].MaxAge)
}

func TestFromContext(t *testing.T) {
	c, _ := newTestContext()

	_, ok := session.FromContext(c)
	assert.False(t, ok)

	c.Set(session.TokenContextKey, "tok-3")
	token, ok := session.FromContext(c)
	assert.True(t, ok)
	assert.Equal(t, "tok-3", token)
}
