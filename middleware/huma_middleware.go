package middleware

import (
	"context"
	"net/http"
	"time"

	"github.com/DaUnderlord/monday-sippin-sub000/auth"
	"github.com/DaUnderlord/monday-sippin-sub000/model"

	"github.com/danielgtaylor/huma/v2"
)

type contextKey string

const userKey contextKey = "user"

// HumaAuthMiddleware requires a valid session token, read from the session
// cookie or an Authorization bearer header.
func HumaAuthMiddleware(api huma.API, isProduction bool) func(huma.Context, func(huma.Context)) {
	return func(ctx huma.Context, next func(huma.Context)) {
		token := auth.CookieValue(ctx.Header("Cookie"), model.AuthCookieName)
		fromCookie := token != ""
		if !fromCookie {
			token, _ = auth.BearerToken(ctx.Header("Authorization"))
		}

		if token == "" {
			huma.WriteErr(api, ctx, http.StatusUnauthorized, "Unauthorized")
			return
		}

		claims, err := auth.ValidateToken(token)
		if err != nil {
			huma.WriteErr(api, ctx, http.StatusUnauthorized, "Invalid session")
			return
		}

		// sliding expiry only applies to cookie sessions
		if fromCookie && claims.ExpiresAt != nil && time.Until(claims.ExpiresAt.Time) < 15*time.Minute {
			if newToken, err := auth.GenerateToken(claims.User); err == nil {
				ctx.AppendHeader("Set-Cookie", auth.SessionCookie(newToken, auth.SessionMaxAge, isProduction))
			}
		}

		ctx = huma.WithValue(ctx, userKey, claims.User)
		next(ctx)
	}
}

func HumaAdminOnly(api huma.API) func(huma.Context, func(huma.Context)) {
	return func(ctx huma.Context, next func(huma.Context)) {
		user, ok := UserFromContext(ctx.Context())
		if !ok || user.Role != model.RoleAdmin {
			huma.WriteErr(api, ctx, http.StatusForbidden, "Forbidden: Admin access required")
			return
		}
		next(ctx)
	}
}

// UserFromContext returns the identity stored by HumaAuthMiddleware.
func UserFromContext(ctx context.Context) (model.UserDto, bool) {
	user, ok := ctx.Value(userKey).(model.UserDto)
	return user, ok
}
