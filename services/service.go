// Package services holds the domain operations of the backend: account
// registration, controller assignment and entry ingestion. Every write runs
// inside a single transaction on the injected gorm handle.
package services

import (
	"context"
	"net/mail"
	"strings"

	"gorm.io/gorm"
)

// TokenIssuer mints bearer tokens scoped to a user.
type TokenIssuer interface {
	Issue(userID uint) (string, error)
}

type Service struct {
	db     *gorm.DB
	tokens TokenIssuer
}

func New(db *gorm.DB, tokens TokenIssuer) *Service {
	return &Service{db: db, tokens: tokens}
}

// transact runs fn in one transaction. Any error returned by fn, or by the
// commit itself, rolls the transaction back and is classified by kind.
func (s *Service) transact(ctx context.Context, op string, fn func(tx *gorm.DB) error) error {
	return classify(op, s.db.WithContext(ctx).Transaction(fn))
}

func normalizeEmail(raw string) (string, error) {
	email := strings.ToLower(strings.TrimSpace(raw))
	if email == "" {
		return "", invalidInput("email is required")
	}
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return "", invalidInput("email is malformed")
	}
	return email, nil
}
