package usecase

import (
	"context"

	"go-candidate-backend/internal/domain"
	"go-candidate-backend/pkg/apperror"
	"go-candidate-backend/pkg/auth"
	"go-candidate-backend/pkg/hash"
	"go-candidate-backend/pkg/logger"
)

type authUsecase struct {
	candidates domain.CandidateRepository
	hasher     hash.PasswordHasher
	tokens     *auth.Manager
}

func NewAuthUsecase(candidates domain.CandidateRepository, hasher hash.PasswordHasher, tokens *auth.Manager) domain.AuthUsecase {
	return &authUsecase{
		candidates: candidates,
		hasher:     hasher,
		tokens:     tokens,
	}
}

// Login authenticates by email and password. Unknown email, wrong password
// and disabled accounts all fail with the same message so callers cannot
// probe which emails are registered.
func (u *authUsecase) Login(ctx context.Context, email, password, clientIP string) (string, error) {
	candidate, err := u.candidates.GetByEmail(ctx, email)
	if err != nil {
		return "", apperror.Internal(err)
	}
	if candidate == nil {
		logger.Log.Warn("login failed", "email", email, "ip", clientIP, "reason", "unknown email")
		return "", apperror.Unauthorized("Invalid credentials")
	}

	if err := u.hasher.Compare(candidate.Password, password); err != nil {
		logger.Log.Warn("login failed", "email", email, "ip", clientIP, "reason", "password mismatch")
		return "", apperror.Unauthorized("Invalid credentials")
	}

	if !candidate.Enabled {
		logger.Log.Warn("login failed", "email", email, "ip", clientIP, "reason", "account not verified")
		return "", apperror.Unauthorized("Invalid credentials")
	}

	token, err := u.tokens.Generate(candidate.Email)
	if err != nil {
		return "", apperror.Internal(err)
	}

	logger.Log.Info("login succeeded", "candidateID", candidate.ID, "ip", clientIP)
	return token, nil
}
