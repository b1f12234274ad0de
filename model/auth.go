package model

// UserRole represents the account access level
type UserRole string

const (
	RoleAdmin  UserRole = "ADMIN"
	RoleEditor UserRole = "EDITOR"
	RoleUser   UserRole = "USER"
)

// AuthCookieName is the session cookie issued by the identity provider.
const AuthCookieName = "auth_token"

// UserDto is the identity carried inside a session token.
type UserDto struct {
	UserID string   `json:"userId"`
	Email  string   `json:"email"`
	Role   UserRole `json:"role"`
}

// Credentials are the request-scoped inputs to token resolution.
type Credentials struct {
	Authorization string
	Cookie        string
}
