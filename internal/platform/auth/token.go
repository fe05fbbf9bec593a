package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Claims are the session token claims. The access group is embedded so the
// middleware can build a Principal without a user lookup per request; group
// membership changes take effect at the next login or token refresh.
type Claims struct {
	jwt.RegisteredClaims
	Role          string `json:"role"`
	AccessGroupID string `json:"access_group_id,omitempty"`
}

// TokenIssuer signs and verifies session tokens with an HMAC key.
type TokenIssuer struct {
	secret []byte
	ttl    time.Duration
}

func NewTokenIssuer(secret []byte, ttl time.Duration) *TokenIssuer {
	return &TokenIssuer{secret: secret, ttl: ttl}
}

// Issue signs a session token for the principal.
func (t *TokenIssuer) Issue(p Principal) (string, error) {
	now := time.Now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   p.UserID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(t.ttl)),
		},
		Role: p.Role,
	}
	if p.AccessGroupID != nil {
		claims.AccessGroupID = p.AccessGroupID.String()
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(t.secret)
}

// Verify parses and validates a session token and rebuilds the Principal.
func (t *TokenIssuer) Verify(tokenStr string) (Principal, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(tk *jwt.Token) (interface{}, error) {
		return t.secret, nil
	}, jwt.WithValidMethods([]string{"HS256"}))
	if err != nil || !token.Valid {
		return Principal{}, fmt.Errorf("invalid token: %w", err)
	}

	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return Principal{}, fmt.Errorf("invalid subject: %w", err)
	}

	p := Principal{UserID: userID, Role: claims.Role}
	if claims.AccessGroupID != "" {
		gid, err := uuid.Parse(claims.AccessGroupID)
		if err != nil {
			return Principal{}, fmt.Errorf("invalid access group claim: %w", err)
		}
		p.AccessGroupID = &gid
	}
	return p, nil
}
