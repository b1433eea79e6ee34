package usecase

import (
	"context"
	"time"

	"go-candidate-backend/internal/domain"
	"go-candidate-backend/pkg/apperror"
	"go-candidate-backend/pkg/email"
	"go-candidate-backend/pkg/hash"
	"go-candidate-backend/pkg/logger"

	"github.com/google/uuid"
)

const resetTokenTTL = 30 * time.Minute

type passwordResetUsecase struct {
	candidates domain.CandidateRepository
	tokens     domain.TokenRepository
	mailer     email.Sender
	hasher     hash.PasswordHasher
}

func NewPasswordResetUsecase(candidates domain.CandidateRepository, tokens domain.TokenRepository, mailer email.Sender, hasher hash.PasswordHasher) domain.PasswordResetUsecase {
	return &passwordResetUsecase{
		candidates: candidates,
		tokens:     tokens,
		mailer:     mailer,
		hasher:     hasher,
	}
}

// RequestReset reports success whether or not the account exists, so the
// endpoint cannot be used to enumerate registered emails.
func (u *passwordResetUsecase) RequestReset(ctx context.Context, emailAddr string) error {
	candidate, err := u.candidates.GetByEmail(ctx, emailAddr)
	if err != nil {
		return apperror.Internal(err)
	}
	if candidate == nil {
		logger.Log.Info("reset requested for unknown email", "email", emailAddr)
		return nil
	}

	existing, err := u.tokens.GetResetByCandidate(ctx, candidate.ID)
	if err != nil {
		return apperror.Internal(err)
	}
	if existing != nil {
		if err := u.tokens.DeleteReset(ctx, existing.ID); err != nil {
			return apperror.Internal(err)
		}
	}

	token := &domain.PasswordResetToken{
		Token:       uuid.NewString(),
		CandidateID: candidate.ID,
		ExpiryDate:  time.Now().Add(resetTokenTTL),
		CreatedAt:   time.Now(),
	}
	if err := u.tokens.CreateReset(ctx, token); err != nil {
		return apperror.Internal(err)
	}

	if err := u.mailer.SendResetPasswordEmail(candidate.Email, token.Token); err != nil {
		logger.Log.Error("reset email delivery failed", "candidateID", candidate.ID, "error", err)
		return apperror.BadGateway("Failed to send reset email", err)
	}

	logger.Log.Info("reset token issued", "candidateID", candidate.ID)
	return nil
}

func (u *passwordResetUsecase) getValidResetToken(ctx context.Context, tokenString string) (*domain.PasswordResetToken, error) {
	token, err := u.tokens.GetResetByToken(ctx, tokenString)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	if token == nil {
		return nil, apperror.BadRequest("Invalid token")
	}
	if token.Expired(time.Now()) {
		return nil, apperror.BadRequest("Expired token")
	}
	return token, nil
}

// VerifyResetToken is the read-only check backing the reset form; it never
// consumes the token.
func (u *passwordResetUsecase) VerifyResetToken(ctx context.Context, tokenString string) error {
	_, err := u.getValidResetToken(ctx, tokenString)
	return err
}

// ResetPassword consumes the token: the password is re-hashed, the account
// is force-enabled and the token deleted so it cannot be replayed.
func (u *passwordResetUsecase) ResetPassword(ctx context.Context, tokenString, newPassword string) error {
	token, err := u.getValidResetToken(ctx, tokenString)
	if err != nil {
		return err
	}

	candidate, err := u.candidates.GetByID(ctx, token.CandidateID)
	if err != nil {
		return apperror.Internal(err)
	}
	if candidate == nil {
		return apperror.BadRequest("Invalid token")
	}

	hashed, err := u.hasher.Hash(newPassword)
	if err != nil {
		return apperror.Internal(err)
	}

	candidate.Password = hashed
	candidate.Enabled = true
	if err := u.candidates.Update(ctx, candidate); err != nil {
		return err
	}
	if err := u.tokens.DeleteReset(ctx, token.ID); err != nil {
		return apperror.Internal(err)
	}

	logger.Log.Info("password reset completed", "candidateID", candidate.ID)
	return nil
}
