package middlewares

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/jatenner/Snap2Healthmain-sub005/config"
	"github.com/jatenner/Snap2Healthmain-sub005/utils"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAuthRouter(t *testing.T, policy string) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	old := config.App
	config.App.JWTSecret = "test-secret"
	config.App.AuthPolicy = policy
	config.App.BypassUserID = 99
	t.Cleanup(func() { config.App = old })

	r := gin.New()
	r.GET("/protected", AuthMiddleware(), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"userID": c.GetUint("userID")})
	})
	r.GET("/optional", OptionalAuthMiddleware(), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"userID": c.GetUint("userID")})
	})
	return r
}

func getWithToken(r *gin.Engine, path, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuthMiddlewareStrictRejectsAnonymous(t *testing.T) {
	r := newAuthRouter(t, config.AuthPolicyStrict)

	w := getWithToken(r, "/protected", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthMiddlewareStrictRejectsGarbageToken(t *testing.T) {
	r := newAuthRouter(t, config.AuthPolicyStrict)

	w := getWithToken(r, "/protected", "not-a-jwt")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthMiddlewareAcceptsValidToken(t *testing.T) {
	r := newAuthRouter(t, config.AuthPolicyStrict)

	token, err := utils.GenerateJWT(42, "u@example.com")
	require.NoError(t, err)

	w := getWithToken(r, "/protected", token)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"userID": 42}`, w.Body.String())
}

func TestAuthMiddlewareBypassSubstitutesFixedIdentity(t *testing.T) {
	r := newAuthRouter(t, config.AuthPolicyBypass)

	w := getWithToken(r, "/protected", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"userID": 99}`, w.Body.String())
}

func TestAuthMiddlewareBypassPrefersRealToken(t *testing.T) {
	r := newAuthRouter(t, config.AuthPolicyBypass)

	token, err := utils.GenerateJWT(42, "u@example.com")
	require.NoError(t, err)

	w := getWithToken(r, "/protected", token)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"userID": 42}`, w.Body.String())
}

func TestOptionalAuthMiddlewareAllowsAnonymous(t *testing.T) {
	r := newAuthRouter(t, config.AuthPolicyStrict)

	w := getWithToken(r, "/optional", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"userID": 0}`, w.Body.String())
}

func TestOptionalAuthMiddlewareResolvesToken(t *testing.T) {
	r := newAuthRouter(t, config.AuthPolicyStrict)

	token, err := utils.GenerateJWT(7, "u@example.com")
	require.NoError(t, err)

	w := getWithToken(r, "/optional", token)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"userID": 7}`, w.Body.String())
}
