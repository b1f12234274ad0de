package auth

import (
	"context"
	"testing"

	"github.com/DaUnderlord/monday-sippin-sub000/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func withSecret(t *testing.T, secret string) {
	t.Helper()
	prev := SecretKey
	SetSecret(secret)
	t.Cleanup(func() { SecretKey = prev })
}

func TestGenerateAndValidateToken(t *testing.T) {
	withSecret(t, "test-secret")
	user := model.UserDto{UserID: "u-1", Email: "ed@example.com", Role: model.RoleAdmin}

	token, err := GenerateToken(user)
	require.NoError(t, err)

	claims, err := ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, user, claims.User)
	assert.Equal(t, Issuer, claims.Issuer)
}

func TestValidateToken_WrongSecret(t *testing.T) {
	withSecret(t, "one")
	token, err := GenerateToken(model.UserDto{UserID: "u-1"})
	require.NoError(t, err)

	SetSecret("two")
	_, err = ValidateToken(token)
	assert.Error(t, err)
}

func TestFirstToken_Priority(t *testing.T) {
	withSecret(t, "test-secret")
	session, err := GenerateToken(model.UserDto{UserID: "u-1"})
	require.NoError(t, err)

	resolvers := []TokenResolver{
		SessionResolver{},
		BearerResolver{},
		AnonKeyResolver{Key: func() string { return "anon" }},
	}
	ctx := context.Background()

	tests := []struct {
		name  string
		creds model.Credentials
		want  string
	}{
		{
			name:  "session wins",
			creds: model.Credentials{Cookie: "theme=dark; auth_token=" + session, Authorization: "Bearer header"},
			want:  session,
		},
		{
			name:  "invalid session falls through to header",
			creds: model.Credentials{Cookie: "auth_token=garbage", Authorization: "Bearer header"},
			want:  "header",
		},
		{
			name:  "anonymous key last",
			creds: model.Credentials{Authorization: "Basic abc"},
			want:  "anon",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := FirstToken(ctx, tt.creds, resolvers...)
			require.True(t, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFirstToken_None(t *testing.T) {
	_, ok := FirstToken(context.Background(), model.Credentials{},
		SessionResolver{},
		BearerResolver{},
		AnonKeyResolver{Key: func() string { return "  " }},
	)
	assert.False(t, ok)
}

func TestBearerToken(t *testing.T) {
	token, ok := BearerToken("bearer abc.def")
	assert.True(t, ok)
	assert.Equal(t, "abc.def", token)

	_, ok = BearerToken("Bearer ")
	assert.False(t, ok)
	_, ok = BearerToken("")
	assert.False(t, ok)
}

func TestCookieValue(t *testing.T) {
	assert.Equal(t, "x", CookieValue("a=1; auth_token=x; b=2", "auth_token"))
	assert.Equal(t, "", CookieValue("a=1", "auth_token"))
}
