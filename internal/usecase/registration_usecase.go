package usecase

import (
	"context"
	"time"

	"go-candidate-backend/internal/domain"
	"go-candidate-backend/pkg/apperror"
	"go-candidate-backend/pkg/email"
	"go-candidate-backend/pkg/hash"
	"go-candidate-backend/pkg/logger"
	"go-candidate-backend/pkg/phone"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

const (
	verificationTokenTTL = 24 * time.Hour
	resendWindow         = time.Hour
	resendLimit          = 3
)

type registrationUsecase struct {
	candidates domain.CandidateRepository
	tokens     domain.TokenRepository
	mailer     email.Sender
	hasher     hash.PasswordHasher
	validate   *validator.Validate
}

func NewRegistrationUsecase(candidates domain.CandidateRepository, tokens domain.TokenRepository, mailer email.Sender, hasher hash.PasswordHasher, validate *validator.Validate) domain.RegistrationUsecase {
	return &registrationUsecase{
		candidates: candidates,
		tokens:     tokens,
		mailer:     mailer,
		hasher:     hasher,
		validate:   validate,
	}
}

func (u *registrationUsecase) Register(ctx context.Context, input domain.RegistrationInput) (*domain.Candidate, error) {
	if err := u.validate.Struct(input); err != nil {
		return nil, apperror.BadRequest(err.Error())
	}

	phoneNumber, err := phone.NormalizeE164(input.CallingCode, input.PhoneNumber)
	if err != nil {
		return nil, apperror.BadRequest("Invalid phone number")
	}

	exists, err := u.candidates.ExistsByEmail(ctx, input.Email)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	if exists {
		return nil, apperror.Conflict("Candidate with this email already exists")
	}

	hashed, err := u.hasher.Hash(input.Password)
	if err != nil {
		return nil, apperror.Internal(err)
	}

	candidate := &domain.Candidate{
		Email:       input.Email,
		Password:    hashed,
		FirstName:   input.FirstName,
		LastName:    input.LastName,
		PhoneNumber: phoneNumber,
		Enabled:     false,
	}
	if err := u.candidates.Create(ctx, candidate); err != nil {
		return nil, err
	}

	if err := u.issueVerificationToken(ctx, candidate); err != nil {
		return nil, err
	}

	logger.Log.Info("candidate registered", "candidateID", candidate.ID, "email", candidate.Email)
	return candidate, nil
}

func (u *registrationUsecase) issueVerificationToken(ctx context.Context, candidate *domain.Candidate) error {
	token := &domain.VerificationToken{
		Token:       uuid.NewString(),
		CandidateID: candidate.ID,
		ExpiryDate:  time.Now().Add(verificationTokenTTL),
		CreatedAt:   time.Now(),
	}
	if err := u.tokens.CreateVerification(ctx, token); err != nil {
		return apperror.Internal(err)
	}

	if err := u.mailer.SendVerificationEmail(candidate.Email, token.Token); err != nil {
		logger.Log.Error("verification email delivery failed", "candidateID", candidate.ID, "error", err)
		return apperror.BadGateway("Failed to send verification email", err)
	}
	return nil
}

func (u *registrationUsecase) VerifyToken(ctx context.Context, tokenString string) error {
	token, err := u.tokens.GetVerificationByToken(ctx, tokenString)
	if err != nil {
		return apperror.Internal(err)
	}
	if token == nil {
		return apperror.BadRequest("Invalid token")
	}
	if token.Expired(time.Now()) {
		return apperror.BadRequest("Expired token")
	}

	candidate, err := u.candidates.GetByID(ctx, token.CandidateID)
	if err != nil {
		return apperror.Internal(err)
	}
	if candidate == nil {
		return apperror.BadRequest("Invalid token")
	}

	// The token is consumed but kept; a repeat verify with the same token
	// stays a no-op success. Stale tokens are only removed on resend.
	candidate.Enabled = true
	if err := u.candidates.Update(ctx, candidate); err != nil {
		return err
	}

	logger.Log.Info("candidate verified", "candidateID", candidate.ID)
	return nil
}

func (u *registrationUsecase) ResendVerification(ctx context.Context, emailAddr string) error {
	candidate, err := u.candidates.GetByEmail(ctx, emailAddr)
	if err != nil {
		return apperror.Internal(err)
	}
	if candidate == nil {
		return apperror.BadRequest("Account not found")
	}
	if candidate.Enabled {
		return apperror.BadRequest("Account is already verified")
	}

	existing, err := u.tokens.GetVerificationByCandidate(ctx, candidate.ID)
	if err != nil {
		return apperror.Internal(err)
	}
	if existing != nil {
		issued, err := u.tokens.CountVerificationSince(ctx, candidate.ID, time.Now().Add(-resendWindow))
		if err != nil {
			return apperror.Internal(err)
		}
		if issued >= resendLimit {
			logger.Log.Warn("verification resend throttled", "candidateID", candidate.ID)
			return apperror.TooManyRequests("Too many verification emails requested, try again later")
		}
		if !existing.Expired(time.Now()) {
			return apperror.BadRequest("An active verification token already exists")
		}
		if err := u.tokens.DeleteVerification(ctx, existing.ID); err != nil {
			return apperror.Internal(err)
		}
	}

	return u.issueVerificationToken(ctx, candidate)
}
