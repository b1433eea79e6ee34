package usecase_test

import (
	"context"
	"testing"
	"time"

	"go-candidate-backend/internal/domain"
	"go-candidate-backend/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestRequestReset(t *testing.T) {
	ctx := context.Background()

	t.Run("Should succeed silently for unknown email", func(t *testing.T) {
		candidates := new(MockCandidateRepo)
		tokens := new(MockTokenRepo)
		mailer := new(MockSender)
		uc := usecase.NewPasswordResetUsecase(candidates, tokens, mailer, new(MockHasher))

		candidates.On("GetByEmail", ctx, "ghost@doe.org").Return(nil, nil)

		require.NoError(t, uc.RequestReset(ctx, "ghost@doe.org"))
		tokens.AssertNotCalled(t, "CreateReset", mock.Anything, mock.Anything)
		mailer.AssertNotCalled(t, "SendResetPasswordEmail", mock.Anything, mock.Anything)
	})

	t.Run("Should replace any prior token and email a 30-minute one", func(t *testing.T) {
		candidates := new(MockCandidateRepo)
		tokens := new(MockTokenRepo)
		mailer := new(MockSender)
		uc := usecase.NewPasswordResetUsecase(candidates, tokens, mailer, new(MockHasher))

		candidates.On("GetByEmail", ctx, "jane@doe.org").Return(&domain.Candidate{ID: 7, Email: "jane@doe.org"}, nil)
		tokens.On("GetResetByCandidate", ctx, int64(7)).Return(&domain.PasswordResetToken{ID: 11, CandidateID: 7}, nil)
		tokens.On("DeleteReset", ctx, int64(11)).Return(nil)
		tokens.On("CreateReset", ctx, mock.AnythingOfType("*domain.PasswordResetToken")).Return(nil).Run(func(args mock.Arguments) {
			tok := args.Get(1).(*domain.PasswordResetToken)
			assert.WithinDuration(t, time.Now().Add(30*time.Minute), tok.ExpiryDate, time.Minute)
		})
		mailer.On("SendResetPasswordEmail", "jane@doe.org", mock.AnythingOfType("string")).Return(nil)

		require.NoError(t, uc.RequestReset(ctx, "jane@doe.org"))
		tokens.AssertCalled(t, "DeleteReset", ctx, int64(11))
		mailer.AssertExpectations(t)
	})
}

func TestResetPassword(t *testing.T) {
	ctx := context.Background()

	t.Run("Should rehash, force enable and consume the token", func(t *testing.T) {
		candidates := new(MockCandidateRepo)
		tokens := new(MockTokenRepo)
		hasher := new(MockHasher)
		uc := usecase.NewPasswordResetUsecase(candidates, tokens, new(MockSender), hasher)

		tokens.On("GetResetByToken", ctx, "tok-9").Return(&domain.PasswordResetToken{
			ID: 9, Token: "tok-9", CandidateID: 7, ExpiryDate: time.Now().Add(10 * time.Minute),
		}, nil)
		candidates.On("GetByID", ctx, int64(7)).Return(&domain.Candidate{
			ID: 7, Password: "$2a$10$old", Enabled: false,
		}, nil)
		hasher.On("Hash", "new-s3cret").Return("$2a$10$new", nil)
		candidates.On("Update", ctx, mock.AnythingOfType("*domain.Candidate")).Return(nil).Run(func(args mock.Arguments) {
			c := args.Get(1).(*domain.Candidate)
			assert.Equal(t, "$2a$10$new", c.Password)
			assert.True(t, c.Enabled)
		})
		tokens.On("DeleteReset", ctx, int64(9)).Return(nil)

		require.NoError(t, uc.ResetPassword(ctx, "tok-9", "new-s3cret"))
		tokens.AssertCalled(t, "DeleteReset", ctx, int64(9))
	})

	t.Run("Should never touch the stored hash on expired token", func(t *testing.T) {
		candidates := new(MockCandidateRepo)
		tokens := new(MockTokenRepo)
		hasher := new(MockHasher)
		uc := usecase.NewPasswordResetUsecase(candidates, tokens, new(MockSender), hasher)

		tokens.On("GetResetByToken", ctx, "stale").Return(&domain.PasswordResetToken{
			ID: 9, Token: "stale", CandidateID: 7, ExpiryDate: time.Now().Add(-time.Minute),
		}, nil)

		err := uc.ResetPassword(ctx, "stale", "new-s3cret")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "Expired token")
		hasher.AssertNotCalled(t, "Hash", mock.Anything)
		candidates.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})

	t.Run("Should reject unknown token", func(t *testing.T) {
		tokens := new(MockTokenRepo)
		uc := usecase.NewPasswordResetUsecase(new(MockCandidateRepo), tokens, new(MockSender), new(MockHasher))

		tokens.On("GetResetByToken", ctx, "missing").Return(nil, nil)

		err := uc.ResetPassword(ctx, "missing", "new-s3cret")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "Invalid token")
	})
}

func TestVerifyResetToken(t *testing.T) {
	ctx := context.Background()

	t.Run("Should pass a live token without consuming it", func(t *testing.T) {
		tokens := new(MockTokenRepo)
		uc := usecase.NewPasswordResetUsecase(new(MockCandidateRepo), tokens, new(MockSender), new(MockHasher))

		tokens.On("GetResetByToken", ctx, "tok-9").Return(&domain.PasswordResetToken{
			ID: 9, Token: "tok-9", CandidateID: 7, ExpiryDate: time.Now().Add(10 * time.Minute),
		}, nil)

		require.NoError(t, uc.VerifyResetToken(ctx, "tok-9"))
		tokens.AssertNotCalled(t, "DeleteReset", mock.Anything, mock.Anything)
	})
}
