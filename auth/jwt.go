package auth

import (
	"fmt"
	"time"

	"github.com/DaUnderlord/monday-sippin-sub000/model"

	"github.com/golang-jwt/jwt/v5"
)

const Issuer = "monday-sippin"

var SecretKey = []byte("")

// SetSecret installs the HMAC key used to sign and verify session tokens.
func SetSecret(secret string) {
	SecretKey = []byte(secret)
}

type Claims struct {
	User model.UserDto `json:"user"`
	jwt.RegisteredClaims
}

func GenerateToken(user model.UserDto) (string, error) {
	now := time.Now()
	expirationTime := now.Add(30 * time.Minute)

	claims := &Claims{
		User: user,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expirationTime),
			IssuedAt:  jwt.NewNumericDate(now),
			Subject:   user.UserID,
			Issuer:    Issuer,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(SecretKey)
}

func ValidateToken(tokenString string) (*Claims, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return SecretKey, nil
	})

	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, fmt.Errorf("invalid token")
	}

	if claims.Issuer != Issuer {
		return nil, fmt.Errorf("invalid issuer")
	}

	if claims.Subject != claims.User.UserID {
		return nil, fmt.Errorf("subject mismatch: identity integrity compromised")
	}

	return claims, nil
}
