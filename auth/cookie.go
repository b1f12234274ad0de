package auth

import (
	"net/http"

	"github.com/DaUnderlord/monday-sippin-sub000/model"
)

// SessionMaxAge matches the token lifetime set by GenerateToken.
const SessionMaxAge = 1800

// SessionCookie renders the Set-Cookie value for token. A negative maxAge
// clears the cookie.
func SessionCookie(token string, maxAge int, secure bool) string {
	cookie := http.Cookie{
		Name:     model.AuthCookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   maxAge,
		Secure:   secure,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
	return cookie.String()
}
