package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/DaUnderlord/monday-sippin-sub000/auth"
	"github.com/DaUnderlord/monday-sippin-sub000/config"
	"github.com/DaUnderlord/monday-sippin-sub000/model"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/humatest"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newLimitedEngine(enabled bool) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(RateLimiter(config.NewConfigManager(&model.EnvConfig{RateLimiter: enabled})))
	ok := func(c *gin.Context) { c.Status(http.StatusOK) }
	r.POST(VisualizePath, ok)
	r.OPTIONS(VisualizePath, ok)
	r.GET("/api/filters/tree", ok)
	return r
}

func send(r *gin.Engine, method, path, ip string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	req.RemoteAddr = ip + ":4000"
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRateLimiter_VisualizeBucket(t *testing.T) {
	r := newLimitedEngine(true)
	ip := "198.51.100.10"

	for i := range visualizePolicy.burst {
		w := send(r, http.MethodPost, VisualizePath, ip)
		require.Equal(t, http.StatusOK, w.Code, "request %d", i)
	}

	w := send(r, http.MethodPost, VisualizePath, ip)
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Equal(t, visualizePolicy.retry, w.Header().Get("Retry-After"))

	// the general bucket is untouched
	w = send(r, http.MethodGet, "/api/filters/tree", ip)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRateLimiter_SkipsPreflightAndDisabled(t *testing.T) {
	limited := newLimitedEngine(true)
	open := newLimitedEngine(false)

	for range 20 {
		assert.NotEqual(t, http.StatusTooManyRequests, send(limited, http.MethodOptions, VisualizePath, "198.51.100.11").Code)
		assert.Equal(t, http.StatusOK, send(open, http.MethodPost, VisualizePath, "198.51.100.12").Code)
	}
}

func TestRecoveryMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(RecoveryMiddleware)
	r.GET("/boom", func(*gin.Context) { panic("boom") })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/boom", nil))
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "unexpected_panic")
}

type whoAmIOutput struct {
	Body struct {
		UserID string `json:"userId"`
	}
}

func registerWhoAmI(api huma.API, admin bool) {
	mws := huma.Middlewares{HumaAuthMiddleware(api, false)}
	if admin {
		mws = append(mws, HumaAdminOnly(api))
	}
	huma.Register(api, huma.Operation{
		OperationID: "whoami",
		Method:      http.MethodGet,
		Path:        "/whoami",
		Middlewares: mws,
	}, func(ctx context.Context, _ *struct{}) (*whoAmIOutput, error) {
		user, ok := UserFromContext(ctx)
		if !ok {
			return nil, huma.Error401Unauthorized("no user")
		}
		out := &whoAmIOutput{}
		out.Body.UserID = user.UserID
		return out, nil
	})
}

func tokenExpiringIn(t *testing.T, user model.UserDto, d time.Duration) string {
	t.Helper()
	claims := &auth.Claims{
		User: user,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(d)),
			Subject:   user.UserID,
			Issuer:    auth.Issuer,
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(auth.SecretKey)
	require.NoError(t, err)
	return token
}

func withSecret(t *testing.T) {
	prev := auth.SecretKey
	auth.SetSecret("middleware-secret")
	t.Cleanup(func() { auth.SecretKey = prev })
}

func TestHumaAuthMiddleware(t *testing.T) {
	withSecret(t)
	editor := model.UserDto{UserID: "u-7", Role: model.RoleEditor}

	_, api := humatest.New(t)
	registerWhoAmI(api, false)

	resp := api.Get("/whoami")
	assert.Equal(t, http.StatusUnauthorized, resp.Code)

	resp = api.Get("/whoami", "Authorization: Bearer not-a-jwt")
	assert.Equal(t, http.StatusUnauthorized, resp.Code)

	fresh, err := auth.GenerateToken(editor)
	require.NoError(t, err)
	resp = api.Get("/whoami", "Cookie: "+model.AuthCookieName+"="+fresh)
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())
	assert.Contains(t, resp.Body.String(), "u-7")
	assert.Empty(t, resp.Header().Get("Set-Cookie"))

	expiring := tokenExpiringIn(t, editor, 5*time.Minute)
	resp = api.Get("/whoami", "Cookie: theme=dark; "+model.AuthCookieName+"="+expiring)
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())
	assert.Contains(t, resp.Header().Get("Set-Cookie"), model.AuthCookieName+"=")

	resp = api.Get("/whoami", "Authorization: Bearer "+expiring)
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())
	assert.Empty(t, resp.Header().Get("Set-Cookie"))
}

func TestHumaAdminOnly(t *testing.T) {
	withSecret(t)

	_, api := humatest.New(t)
	registerWhoAmI(api, true)

	editorToken, err := auth.GenerateToken(model.UserDto{UserID: "u-1", Role: model.RoleEditor})
	require.NoError(t, err)
	adminToken, err := auth.GenerateToken(model.UserDto{UserID: "u-2", Role: model.RoleAdmin})
	require.NoError(t, err)

	assert.Equal(t, http.StatusForbidden, api.Get("/whoami", "Authorization: Bearer "+editorToken).Code)
	assert.Equal(t, http.StatusOK, api.Get("/whoami", "Authorization: Bearer "+adminToken).Code)
}
