package auth

import (
	"context"
	"strings"

	"github.com/DaUnderlord/monday-sippin-sub000/model"

	"github.com/rs/zerolog/log"
)

// TokenResolver yields a bearer token for the upstream AI call, if it has one.
type TokenResolver interface {
	Resolve(ctx context.Context, creds model.Credentials) (string, bool)
}

// ResolverFunc adapts a function to TokenResolver.
type ResolverFunc func(ctx context.Context, creds model.Credentials) (string, bool)

func (f ResolverFunc) Resolve(ctx context.Context, creds model.Credentials) (string, bool) {
	return f(ctx, creds)
}

// FirstToken tries resolvers in order and returns the first token found.
func FirstToken(ctx context.Context, creds model.Credentials, resolvers ...TokenResolver) (string, bool) {
	for _, r := range resolvers {
		if token, ok := r.Resolve(ctx, creds); ok && token != "" {
			return token, true
		}
	}
	return "", false
}

// SessionResolver returns the session cookie when it carries a valid token.
type SessionResolver struct{}

func (SessionResolver) Resolve(_ context.Context, creds model.Credentials) (string, bool) {
	token := CookieValue(creds.Cookie, model.AuthCookieName)
	if token == "" {
		return "", false
	}
	if _, err := ValidateToken(token); err != nil {
		log.Debug().Err(err).Msg("Ignoring invalid session cookie")
		return "", false
	}
	return token, true
}

// BearerResolver returns the token from an "Authorization: Bearer" header.
type BearerResolver struct{}

func (BearerResolver) Resolve(_ context.Context, creds model.Credentials) (string, bool) {
	return BearerToken(creds.Authorization)
}

// AnonKeyResolver falls back to the public anonymous key.
type AnonKeyResolver struct {
	Key func() string
}

func (r AnonKeyResolver) Resolve(_ context.Context, _ model.Credentials) (string, bool) {
	if r.Key == nil {
		return "", false
	}
	key := strings.TrimSpace(r.Key())
	return key, key != ""
}

// BearerToken extracts the token of a "Bearer <token>" header value.
func BearerToken(header string) (string, bool) {
	scheme, token, ok := strings.Cut(strings.TrimSpace(header), " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}

// CookieValue reads one cookie out of a raw Cookie header.
func CookieValue(header, name string) string {
	for part := range strings.SplitSeq(header, ";") {
		part = strings.TrimSpace(part)
		if after, ok := strings.CutPrefix(part, name+"="); ok {
			return after
		}
	}
	return ""
}
