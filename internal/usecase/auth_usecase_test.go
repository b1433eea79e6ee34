package usecase_test

import (
	"context"
	"testing"
	"time"

	"go-candidate-backend/internal/domain"
	"go-candidate-backend/internal/usecase"
	"go-candidate-backend/pkg/auth"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestLogin(t *testing.T) {
	ctx := context.Background()
	manager, err := auth.NewManager("test-signing-key-not-for-production", time.Hour)
	require.NoError(t, err)

	t.Run("Should return a token whose subject is the email", func(t *testing.T) {
		candidates := new(MockCandidateRepo)
		hasher := new(MockHasher)
		uc := usecase.NewAuthUsecase(candidates, hasher, manager)

		candidates.On("GetByEmail", ctx, "jane@doe.org").Return(&domain.Candidate{
			ID: 7, Email: "jane@doe.org", Password: "$2a$10$hash", Enabled: true,
		}, nil)
		hasher.On("Compare", "$2a$10$hash", "s3cret-pass").Return(nil)

		token, err := uc.Login(ctx, "jane@doe.org", "s3cret-pass", "203.0.113.9")
		require.NoError(t, err)

		subject, err := manager.ExtractSubject(token)
		require.NoError(t, err)
		assert.Equal(t, "jane@doe.org", subject)
		assert.Equal(t, auth.StatusValid, manager.Validate(token))
	})

	t.Run("Should not reveal whether the email exists", func(t *testing.T) {
		candidates := new(MockCandidateRepo)
		hasher := new(MockHasher)
		uc := usecase.NewAuthUsecase(candidates, hasher, manager)

		candidates.On("GetByEmail", ctx, "ghost@doe.org").Return(nil, nil)
		candidates.On("GetByEmail", ctx, "jane@doe.org").Return(&domain.Candidate{
			ID: 7, Email: "jane@doe.org", Password: "$2a$10$hash", Enabled: true,
		}, nil)
		hasher.On("Compare", "$2a$10$hash", "wrong-pass").Return(assert.AnError)

		_, errUnknown := uc.Login(ctx, "ghost@doe.org", "whatever", "203.0.113.9")
		_, errWrongPass := uc.Login(ctx, "jane@doe.org", "wrong-pass", "203.0.113.9")

		require.Error(t, errUnknown)
		require.Error(t, errWrongPass)
		assert.Equal(t, errUnknown.Error(), errWrongPass.Error())
		assert.Equal(t, statusCode(t, errUnknown), statusCode(t, errWrongPass))
	})

	t.Run("Should treat an unverified account like bad credentials", func(t *testing.T) {
		candidates := new(MockCandidateRepo)
		hasher := new(MockHasher)
		uc := usecase.NewAuthUsecase(candidates, hasher, manager)

		candidates.On("GetByEmail", ctx, "jane@doe.org").Return(&domain.Candidate{
			ID: 7, Email: "jane@doe.org", Password: "$2a$10$hash", Enabled: false,
		}, nil)
		hasher.On("Compare", mock.Anything, mock.Anything).Return(nil)

		_, err := uc.Login(ctx, "jane@doe.org", "s3cret-pass", "203.0.113.9")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "Invalid credentials")
		assert.Equal(t, 401, statusCode(t, err))
	})
}
