package domain

import (
	"context"
	"time"
)

// VerificationToken is a pending email-confirmation challenge. At most one
// useful token per candidate exists at a time; stale ones are deleted before
// a new one is issued. Expiry is enforced lazily at read time.
type VerificationToken struct {
	ID          int64
	Token       string
	CandidateID int64
	ExpiryDate  time.Time
	CreatedAt   time.Time
}

func (t *VerificationToken) Expired(now time.Time) bool {
	return now.After(t.ExpiryDate)
}

// PasswordResetToken is a pending single-use password-reset challenge.
type PasswordResetToken struct {
	ID          int64
	Token       string
	CandidateID int64
	ExpiryDate  time.Time
	CreatedAt   time.Time
}

func (t *PasswordResetToken) Expired(now time.Time) bool {
	return now.After(t.ExpiryDate)
}

type TokenRepository interface {
	CreateVerification(ctx context.Context, token *VerificationToken) error
	GetVerificationByToken(ctx context.Context, token string) (*VerificationToken, error)
	GetVerificationByCandidate(ctx context.Context, candidateID int64) (*VerificationToken, error)
	// CountVerificationSince counts tokens created for the candidate after
	// the given instant; it backs the resend throttle.
	CountVerificationSince(ctx context.Context, candidateID int64, since time.Time) (int64, error)
	DeleteVerification(ctx context.Context, id int64) error

	CreateReset(ctx context.Context, token *PasswordResetToken) error
	GetResetByToken(ctx context.Context, token string) (*PasswordResetToken, error)
	GetResetByCandidate(ctx context.Context, candidateID int64) (*PasswordResetToken, error)
	DeleteReset(ctx context.Context, id int64) error
}
