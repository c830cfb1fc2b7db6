package utils

import (
	"errors"
	"fmt"
	"time"

	"github.com/dgrijalva/jwt-go"
	"github.com/google/uuid"
)

// DefaultTokenTTL applies when Tokens is built with a non-positive ttl.
const DefaultTokenTTL = 24 * time.Hour

var (
	ErrInvalidToken = errors.New("invalid or expired token")
	ErrTokenPayload = errors.New("invalid token payload")
)

// Claims is the subset of a verified token the server relies on.
type Claims struct {
	UserID    uint
	ID        string
	ExpiresAt time.Time
}

// Tokens issues and verifies HS256 bearer tokens.
type Tokens struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewTokens(secret string, ttl time.Duration) *Tokens {
	if ttl <= 0 {
		ttl = DefaultTokenTTL
	}
	return &Tokens{secret: []byte(secret), ttl: ttl, now: time.Now}
}

// Issue signs a token for userID that expires after the configured ttl.
func (t *Tokens) Issue(userID uint) (string, error) {
	now := t.now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": userID,
		"jti":     uuid.NewString(),
		"iat":     now.Unix(),
		"exp":     now.Add(t.ttl).Unix(),
	})
	signed, err := token.SignedString(t.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Parse verifies raw and extracts its claims.
func (t *Tokens) Parse(raw string) (Claims, error) {
	claims := jwt.MapClaims{}
	_, err := jwt.ParseWithClaims(raw, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", token.Header["alg"])
		}
		return t.secret, nil
	})
	if err != nil {
		return Claims{}, ErrInvalidToken
	}

	// Numbers decode as float64.
	rawID, ok := claims["user_id"].(float64)
	if !ok || rawID <= 0 {
		return Claims{}, ErrTokenPayload
	}
	jti, _ := claims["jti"].(string)
	exp, ok := claims["exp"].(float64)
	if !ok || jti == "" {
		return Claims{}, ErrTokenPayload
	}
	return Claims{
		UserID:    uint(rawID),
		ID:        jti,
		ExpiresAt: time.Unix(int64(exp), 0),
	}, nil
}
