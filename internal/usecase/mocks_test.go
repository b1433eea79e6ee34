package usecase_test

import (
	"context"
	"os"
	"testing"
	"time"

	"go-candidate-backend/internal/domain"
	"go-candidate-backend/internal/extraction"
	"go-candidate-backend/pkg/logger"

	"github.com/stretchr/testify/mock"
)

func TestMain(m *testing.M) {
	logger.Init()
	os.Exit(m.Run())
}

// Mock Repositories

type MockCandidateRepo struct {
	mock.Mock
}

func (m *MockCandidateRepo) Create(ctx context.Context, candidate *domain.Candidate) error {
	return m.Called(ctx, candidate).Error(0)
}

func (m *MockCandidateRepo) Update(ctx context.Context, candidate *domain.Candidate) error {
	return m.Called(ctx, candidate).Error(0)
}

func (m *MockCandidateRepo) GetByID(ctx context.Context, id int64) (*domain.Candidate, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Candidate), args.Error(1)
}

func (m *MockCandidateRepo) GetByIDWithRelations(ctx context.Context, id int64) (*domain.Candidate, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Candidate), args.Error(1)
}

func (m *MockCandidateRepo) GetByEmail(ctx context.Context, email string) (*domain.Candidate, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Candidate), args.Error(1)
}

func (m *MockCandidateRepo) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	args := m.Called(ctx, email)
	return args.Bool(0), args.Error(1)
}

func (m *MockCandidateRepo) AppendCVData(ctx context.Context, candidate *domain.Candidate, educations []domain.Education, experiences []domain.Experience, skills []domain.Skill, languages []domain.Language) error {
	return m.Called(ctx, candidate, educations, experiences, skills, languages).Error(0)
}

func (m *MockCandidateRepo) GetEducationByID(ctx context.Context, id int64) (*domain.Education, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Education), args.Error(1)
}

func (m *MockCandidateRepo) UpdateEducation(ctx context.Context, education *domain.Education) error {
	return m.Called(ctx, education).Error(0)
}

func (m *MockCandidateRepo) GetExperienceByID(ctx context.Context, id int64) (*domain.Experience, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Experience), args.Error(1)
}

func (m *MockCandidateRepo) UpdateExperience(ctx context.Context, experience *domain.Experience) error {
	return m.Called(ctx, experience).Error(0)
}

func (m *MockCandidateRepo) GetSkillByID(ctx context.Context, id int64) (*domain.Skill, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Skill), args.Error(1)
}

func (m *MockCandidateRepo) UpdateSkill(ctx context.Context, skill *domain.Skill) error {
	return m.Called(ctx, skill).Error(0)
}

func (m *MockCandidateRepo) GetLanguageByID(ctx context.Context, id int64) (*domain.Language, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Language), args.Error(1)
}

func (m *MockCandidateRepo) UpdateLanguage(ctx context.Context, language *domain.Language) error {
	return m.Called(ctx, language).Error(0)
}

type MockTokenRepo struct {
	mock.Mock
}

func (m *MockTokenRepo) CreateVerification(ctx context.Context, token *domain.VerificationToken) error {
	return m.Called(ctx, token).Error(0)
}

func (m *MockTokenRepo) GetVerificationByToken(ctx context.Context, token string) (*domain.VerificationToken, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.VerificationToken), args.Error(1)
}

func (m *MockTokenRepo) GetVerificationByCandidate(ctx context.Context, candidateID int64) (*domain.VerificationToken, error) {
	args := m.Called(ctx, candidateID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.VerificationToken), args.Error(1)
}

func (m *MockTokenRepo) CountVerificationSince(ctx context.Context, candidateID int64, since time.Time) (int64, error) {
	args := m.Called(ctx, candidateID, since)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockTokenRepo) DeleteVerification(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockTokenRepo) CreateReset(ctx context.Context, token *domain.PasswordResetToken) error {
	return m.Called(ctx, token).Error(0)
}

func (m *MockTokenRepo) GetResetByToken(ctx context.Context, token string) (*domain.PasswordResetToken, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PasswordResetToken), args.Error(1)
}

func (m *MockTokenRepo) GetResetByCandidate(ctx context.Context, candidateID int64) (*domain.PasswordResetToken, error) {
	args := m.Called(ctx, candidateID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PasswordResetToken), args.Error(1)
}

func (m *MockTokenRepo) DeleteReset(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

// Mock Collaborators

type MockSender struct {
	mock.Mock
}

func (m *MockSender) SendVerificationEmail(to, token string) error {
	return m.Called(to, token).Error(0)
}

func (m *MockSender) SendResetPasswordEmail(to, token string) error {
	return m.Called(to, token).Error(0)
}

type MockHasher struct {
	mock.Mock
}

func (m *MockHasher) Hash(password string) (string, error) {
	args := m.Called(password)
	return args.String(0), args.Error(1)
}

func (m *MockHasher) Compare(hashed, password string) error {
	return m.Called(hashed, password).Error(0)
}

type MockExtractor struct {
	mock.Mock
}

func (m *MockExtractor) ExtractProfile(ctx context.Context, cvText string) (*extraction.CandidateData, error) {
	args := m.Called(ctx, cvText)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*extraction.CandidateData), args.Error(1)
}
