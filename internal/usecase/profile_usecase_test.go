package usecase_test

import (
	"bytes"
	"context"
	"testing"

	"go-candidate-backend/internal/domain"
	"go-candidate-backend/internal/extraction"
	"go-candidate-backend/internal/usecase"
	"go-candidate-backend/pkg/docparse"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func extractedFixture() *extraction.CandidateData {
	return &extraction.CandidateData{
		Email:     "jane@doe.org",
		Phone:     "+12025550123",
		FirstName: "Jane",
		LastName:  "Doe",
		Address:   "12 Main St",
		Education: []extraction.EducationData{
			{Level: "BSc", Institution: "Politehnica", Period: "2015-2019"},
		},
		Experience: []extraction.ExperienceData{
			{Title: "Engineer", Company: "Acme", Period: "2019-2023"},
		},
		Skills:    []extraction.SkillData{{Name: "Go"}},
		Languages: []extraction.LanguageData{{Language: "English", Level: "C1"}},
	}
}

func TestUploadCV(t *testing.T) {
	ctx := context.Background()
	cvText := "Jane Doe\nEngineer at Acme since 2019."
	cvBytes := []byte(cvText)

	t.Run("Should extract, merge and persist in one pass", func(t *testing.T) {
		candidates := new(MockCandidateRepo)
		extractor := new(MockExtractor)
		uc := usecase.NewProfileUsecase(candidates, extractor)

		stored := &domain.Candidate{ID: 7, Email: "jane@doe.org", FirstName: "Jane"}
		candidates.On("GetByEmail", ctx, "jane@doe.org").Return(stored, nil)
		extractor.On("ExtractProfile", ctx, mock.AnythingOfType("string")).Return(extractedFixture(), nil)
		candidates.On("AppendCVData", ctx, stored,
			mock.AnythingOfType("[]domain.Education"),
			mock.AnythingOfType("[]domain.Experience"),
			mock.AnythingOfType("[]domain.Skill"),
			mock.AnythingOfType("[]domain.Language"),
		).Return(nil).Run(func(args mock.Arguments) {
			c := args.Get(1).(*domain.Candidate)
			assert.Equal(t, cvBytes, c.CVFile)
			assert.Equal(t, "12 Main St", c.Address)
			assert.Len(t, args.Get(2).([]domain.Education), 1)
			assert.Len(t, args.Get(3).([]domain.Experience), 1)
			assert.Len(t, args.Get(4).([]domain.Skill), 1)
			assert.Len(t, args.Get(5).([]domain.Language), 1)
		})
		candidates.On("GetByIDWithRelations", ctx, int64(7)).Return(&domain.Candidate{
			ID: 7, Email: "jane@doe.org", Address: "12 Main St",
			Educations: []domain.Education{{ID: 1, CandidateID: 7, Institution: "Politehnica"}},
		}, nil)

		profile, err := uc.UploadCV(ctx, "jane@doe.org", "cv.txt", cvBytes, docparse.MIMEText)
		require.NoError(t, err)
		assert.Equal(t, "12 Main St", profile.Address)
		require.Len(t, profile.Education, 1)
		assert.NotNil(t, profile.Skills)
	})

	t.Run("Should keep stored address on blank or sentinel value", func(t *testing.T) {
		for _, addr := range []string{"", "  ", extraction.NotAvailable} {
			candidates := new(MockCandidateRepo)
			extractor := new(MockExtractor)
			uc := usecase.NewProfileUsecase(candidates, extractor)

			stored := &domain.Candidate{ID: 7, Email: "jane@doe.org", Address: "Old Town 1"}
			extracted := extractedFixture()
			extracted.Address = addr

			candidates.On("GetByEmail", ctx, "jane@doe.org").Return(stored, nil)
			extractor.On("ExtractProfile", ctx, mock.Anything).Return(extracted, nil)
			candidates.On("AppendCVData", ctx, stored, mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil).Run(func(args mock.Arguments) {
				assert.Equal(t, "Old Town 1", args.Get(1).(*domain.Candidate).Address)
			})
			candidates.On("GetByIDWithRelations", ctx, int64(7)).Return(stored, nil)

			_, err := uc.UploadCV(ctx, "jane@doe.org", "cv.txt", cvBytes, docparse.MIMEText)
			require.NoError(t, err)
		}
	})

	t.Run("Should reject oversized file", func(t *testing.T) {
		candidates := new(MockCandidateRepo)
		uc := usecase.NewProfileUsecase(candidates, new(MockExtractor))

		big := bytes.Repeat([]byte("a"), 10<<20+1)
		_, err := uc.UploadCV(ctx, "jane@doe.org", "cv.txt", big, docparse.MIMEText)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "too large")
		candidates.AssertNotCalled(t, "GetByEmail", mock.Anything, mock.Anything)
	})

	t.Run("Should reject unsupported type and leave candidate untouched", func(t *testing.T) {
		candidates := new(MockCandidateRepo)
		uc := usecase.NewProfileUsecase(candidates, new(MockExtractor))

		png := []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n', 0, 0, 0, 0}
		_, err := uc.UploadCV(ctx, "jane@doe.org", "cv.png", png, "image/png")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "Unsupported file type")
		candidates.AssertNotCalled(t, "AppendCVData", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Should surface extraction failure as bad gateway", func(t *testing.T) {
		candidates := new(MockCandidateRepo)
		extractor := new(MockExtractor)
		uc := usecase.NewProfileUsecase(candidates, extractor)

		candidates.On("GetByEmail", ctx, "jane@doe.org").Return(&domain.Candidate{ID: 7, Email: "jane@doe.org"}, nil)
		extractor.On("ExtractProfile", ctx, mock.Anything).Return(nil, assert.AnError)

		_, err := uc.UploadCV(ctx, "jane@doe.org", "cv.txt", cvBytes, docparse.MIMEText)
		require.Error(t, err)
		assert.Equal(t, 502, statusCode(t, err))
		candidates.AssertNotCalled(t, "AppendCVData", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Sequential uploads keep appending child entries", func(t *testing.T) {
		candidates := new(MockCandidateRepo)
		extractor := new(MockExtractor)
		uc := usecase.NewProfileUsecase(candidates, extractor)

		stored := &domain.Candidate{ID: 7, Email: "jane@doe.org"}
		candidates.On("GetByEmail", ctx, "jane@doe.org").Return(stored, nil)
		extractor.On("ExtractProfile", ctx, mock.Anything).Return(extractedFixture(), nil)

		var appended int
		candidates.On("AppendCVData", ctx, stored, mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil).Run(func(args mock.Arguments) {
			appended += len(args.Get(2).([]domain.Education))
		})
		candidates.On("GetByIDWithRelations", ctx, int64(7)).Return(stored, nil)

		_, err := uc.UploadCV(ctx, "jane@doe.org", "cv.txt", cvBytes, docparse.MIMEText)
		require.NoError(t, err)
		_, err = uc.UploadCV(ctx, "jane@doe.org", "cv.txt", cvBytes, docparse.MIMEText)
		require.NoError(t, err)

		assert.Equal(t, 2, appended)
	})
}

func TestGetProfile(t *testing.T) {
	ctx := context.Background()

	t.Run("Should return empty collections, never null", func(t *testing.T) {
		candidates := new(MockCandidateRepo)
		uc := usecase.NewProfileUsecase(candidates, new(MockExtractor))

		candidates.On("GetByIDWithRelations", ctx, int64(7)).Return(&domain.Candidate{ID: 7, Email: "jane@doe.org"}, nil)

		profile, err := uc.GetProfile(ctx, 7)
		require.NoError(t, err)
		assert.NotNil(t, profile.Education)
		assert.NotNil(t, profile.Experience)
		assert.NotNil(t, profile.Skills)
		assert.NotNil(t, profile.Languages)
	})

	t.Run("Should return not found for missing candidate", func(t *testing.T) {
		candidates := new(MockCandidateRepo)
		uc := usecase.NewProfileUsecase(candidates, new(MockExtractor))

		candidates.On("GetByIDWithRelations", ctx, int64(99)).Return(nil, nil)

		_, err := uc.GetProfile(ctx, 99)
		require.Error(t, err)
		assert.Equal(t, 404, statusCode(t, err))
	})
}

func TestUpdateProfile(t *testing.T) {
	ctx := context.Background()

	t.Run("Should overwrite only supplied fields", func(t *testing.T) {
		candidates := new(MockCandidateRepo)
		uc := usecase.NewProfileUsecase(candidates, new(MockExtractor))

		stored := &domain.Candidate{ID: 7, Email: "jane@doe.org", LastName: "Doe", PhoneNumber: "+12025550123"}
		candidates.On("GetByID", ctx, int64(7)).Return(stored, nil)
		candidates.On("Update", ctx, mock.AnythingOfType("*domain.Candidate")).Return(nil).Run(func(args mock.Arguments) {
			c := args.Get(1).(*domain.Candidate)
			assert.Equal(t, "Smith", c.LastName)
			assert.Equal(t, "jane@doe.org", c.Email)
			assert.Equal(t, "+12025550123", c.PhoneNumber)
		})
		candidates.On("GetByIDWithRelations", ctx, int64(7)).Return(stored, nil)

		newName := "Smith"
		_, err := uc.UpdateProfile(ctx, 7, domain.ProfileUpdate{LastName: &newName})
		require.NoError(t, err)
	})

	t.Run("Should append a new address to the stored CV text", func(t *testing.T) {
		candidates := new(MockCandidateRepo)
		uc := usecase.NewProfileUsecase(candidates, new(MockExtractor))

		stored := &domain.Candidate{ID: 7, Email: "jane@doe.org", CVText: "Jane Doe, engineer."}
		candidates.On("GetByID", ctx, int64(7)).Return(stored, nil)
		candidates.On("Update", ctx, mock.AnythingOfType("*domain.Candidate")).Return(nil).Run(func(args mock.Arguments) {
			c := args.Get(1).(*domain.Candidate)
			assert.Equal(t, "9 Elm St", c.Address)
			assert.Contains(t, c.CVText, "Address: 9 Elm St")
		})
		candidates.On("GetByIDWithRelations", ctx, int64(7)).Return(stored, nil)

		addr := "9 Elm St"
		_, err := uc.UpdateProfile(ctx, 7, domain.ProfileUpdate{Address: &addr})
		require.NoError(t, err)
	})
}

func TestUpdateChildEntries(t *testing.T) {
	ctx := context.Background()

	t.Run("Should overwrite an education entry by id", func(t *testing.T) {
		candidates := new(MockCandidateRepo)
		uc := usecase.NewProfileUsecase(candidates, new(MockExtractor))

		candidates.On("GetEducationByID", ctx, int64(3)).Return(&domain.Education{ID: 3, CandidateID: 7, Level: "BSc"}, nil)
		candidates.On("UpdateEducation", ctx, mock.AnythingOfType("*domain.Education")).Return(nil)

		updated, err := uc.UpdateEducation(ctx, 3, domain.Education{Level: "MSc", Institution: "MIT", Period: "2023-2025"})
		require.NoError(t, err)
		assert.Equal(t, int64(3), updated.ID)
		assert.Equal(t, int64(7), updated.CandidateID)
		assert.Equal(t, "MSc", updated.Level)
	})

	t.Run("Should return not found for a missing skill", func(t *testing.T) {
		candidates := new(MockCandidateRepo)
		uc := usecase.NewProfileUsecase(candidates, new(MockExtractor))

		candidates.On("GetSkillByID", ctx, int64(42)).Return(nil, nil)

		_, err := uc.UpdateSkill(ctx, 42, domain.Skill{Name: "Rust"})
		require.Error(t, err)
		assert.Equal(t, 404, statusCode(t, err))
	})
}
