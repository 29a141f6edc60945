package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const (
	RoleCustomer = "customer"
	RoleAdmin    = "admin"
)

type Claim struct {
	Metadata Metadata `json:"metadata"`
	jwt.RegisteredClaims
}

type Metadata struct {
	UserID   string `json:"user_id"`
	FullName string `json:"full_name"`
	Role     string `json:"role"`
}

// Parse verifies an HS256 bearer token and returns its claims.
func Parse(tokenString string, secret []byte) (*Claim, error) {
	claim := new(Claim)
	parsed, err := jwt.ParseWithClaims(tokenString, claim, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, err
	}
	if !parsed.Valid {
		return nil, errors.New("invalid token")
	}
	if claim.Metadata.UserID == "" {
		return nil, errors.New("token has no user id")
	}
	return claim, nil
}

// Sign issues a token; used by tests and local tooling.
func Sign(metadata Metadata, secret []byte, ttl time.Duration) (string, error) {
	now := time.Now()
	claim := Claim{
		Metadata: metadata,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   metadata.UserID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claim).SignedString(secret)
}
