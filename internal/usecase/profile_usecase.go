package usecase

import (
	"context"
	"fmt"
	"strings"

	"go-candidate-backend/internal/domain"
	"go-candidate-backend/internal/extraction"
	"go-candidate-backend/pkg/apperror"
	"go-candidate-backend/pkg/docparse"
	"go-candidate-backend/pkg/logger"
)

const maxCVSize = 10 << 20 // 10 MB

type profileUsecase struct {
	candidates domain.CandidateRepository
	extractor  extraction.Extractor
}

func NewProfileUsecase(candidates domain.CandidateRepository, extractor extraction.Extractor) domain.ProfileUsecase {
	return &profileUsecase{
		candidates: candidates,
		extractor:  extractor,
	}
}

// UploadCV runs the full pipeline: size and type checks, text extraction,
// the external structured-extraction call, then a single-transaction merge
// into the aggregate. Any failure before the merge leaves the stored CV
// untouched.
func (u *profileUsecase) UploadCV(ctx context.Context, email, filename string, data []byte, declaredMIME string) (*domain.CandidateProfile, error) {
	if len(data) == 0 {
		return nil, apperror.BadRequest("Uploaded file is empty")
	}
	if len(data) > maxCVSize {
		return nil, apperror.BadRequest("File is too large (max 10 MB)")
	}

	mimeType, err := docparse.ResolveType(declaredMIME, data)
	if err != nil {
		logger.Log.Warn("CV upload rejected", "email", email, "filename", filename, "declaredMIME", declaredMIME)
		return nil, apperror.BadRequest("Unsupported file type")
	}

	text, err := docparse.ExtractText(data, mimeType)
	if err != nil {
		return nil, apperror.UnprocessableEntity("Could not extract text from the document", err)
	}

	candidate, err := u.candidates.GetByEmail(ctx, email)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	if candidate == nil {
		return nil, apperror.NotFound("Candidate not found")
	}

	extracted, err := u.extractor.ExtractProfile(ctx, text)
	if err != nil {
		return nil, apperror.BadGateway("CV extraction failed", err)
	}

	candidate.CVFile = data
	candidate.CVText = text
	if addr := strings.TrimSpace(extracted.Address); addr != "" && addr != extraction.NotAvailable {
		candidate.Address = addr
	}

	educations := make([]domain.Education, 0, len(extracted.Education))
	for _, e := range extracted.Education {
		educations = append(educations, domain.Education{
			Level:       e.Level,
			Institution: e.Institution,
			Period:      e.Period,
		})
	}
	experiences := make([]domain.Experience, 0, len(extracted.Experience))
	for _, e := range extracted.Experience {
		experiences = append(experiences, domain.Experience{
			Title:   e.Title,
			Company: e.Company,
			Period:  e.Period,
		})
	}
	skills := make([]domain.Skill, 0, len(extracted.Skills))
	for _, s := range extracted.Skills {
		skills = append(skills, domain.Skill{Name: s.Name})
	}
	languages := make([]domain.Language, 0, len(extracted.Languages))
	for _, l := range extracted.Languages {
		languages = append(languages, domain.Language{
			Language: l.Language,
			Level:    l.Level,
		})
	}

	if err := u.candidates.AppendCVData(ctx, candidate, educations, experiences, skills, languages); err != nil {
		return nil, err
	}

	logger.Log.Info("CV processed", "candidateID", candidate.ID,
		"mimeType", mimeType, "educations", len(educations), "experiences", len(experiences),
		"skills", len(skills), "languages", len(languages))

	return u.GetProfile(ctx, candidate.ID)
}

func (u *profileUsecase) GetProfile(ctx context.Context, id int64) (*domain.CandidateProfile, error) {
	candidate, err := u.candidates.GetByIDWithRelations(ctx, id)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	if candidate == nil {
		return nil, apperror.NotFound("Candidate not found")
	}
	return assembleProfile(candidate), nil
}

func assembleProfile(c *domain.Candidate) *domain.CandidateProfile {
	profile := &domain.CandidateProfile{
		ID:         c.ID,
		Email:      c.Email,
		Phone:      c.PhoneNumber,
		FirstName:  c.FirstName,
		LastName:   c.LastName,
		Address:    c.Address,
		Education:  c.Educations,
		Experience: c.Experiences,
		Skills:     c.Skills,
		Languages:  c.Languages,
	}
	if profile.Education == nil {
		profile.Education = []domain.Education{}
	}
	if profile.Experience == nil {
		profile.Experience = []domain.Experience{}
	}
	if profile.Skills == nil {
		profile.Skills = []domain.Skill{}
	}
	if profile.Languages == nil {
		profile.Languages = []domain.Language{}
	}
	return profile
}

// UpdateProfile overwrites only the supplied fields. A new address is also
// appended to the stored CV text so later re-extractions can see it.
func (u *profileUsecase) UpdateProfile(ctx context.Context, id int64, update domain.ProfileUpdate) (*domain.CandidateProfile, error) {
	candidate, err := u.candidates.GetByID(ctx, id)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	if candidate == nil {
		return nil, apperror.NotFound("Candidate not found")
	}

	if update.Email != nil {
		candidate.Email = *update.Email
	}
	if update.Phone != nil {
		candidate.PhoneNumber = *update.Phone
	}
	if update.LastName != nil {
		candidate.LastName = *update.LastName
	}
	if update.Address != nil {
		candidate.Address = *update.Address
		if candidate.CVText != "" {
			candidate.CVText += fmt.Sprintf("\nAddress: %s", *update.Address)
		}
	}

	if err := u.candidates.Update(ctx, candidate); err != nil {
		return nil, err
	}
	return u.GetProfile(ctx, id)
}

func (u *profileUsecase) UpdateEducation(ctx context.Context, id int64, education domain.Education) (*domain.Education, error) {
	existing, err := u.candidates.GetEducationByID(ctx, id)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	if existing == nil {
		return nil, apperror.NotFound("Education entry not found")
	}

	existing.Level = education.Level
	existing.Institution = education.Institution
	existing.Period = education.Period
	if err := u.candidates.UpdateEducation(ctx, existing); err != nil {
		return nil, apperror.Internal(err)
	}
	return existing, nil
}

func (u *profileUsecase) UpdateExperience(ctx context.Context, id int64, experience domain.Experience) (*domain.Experience, error) {
	existing, err := u.candidates.GetExperienceByID(ctx, id)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	if existing == nil {
		return nil, apperror.NotFound("Experience entry not found")
	}

	existing.Title = experience.Title
	existing.Company = experience.Company
	existing.Period = experience.Period
	if err := u.candidates.UpdateExperience(ctx, existing); err != nil {
		return nil, apperror.Internal(err)
	}
	return existing, nil
}

func (u *profileUsecase) UpdateSkill(ctx context.Context, id int64, skill domain.Skill) (*domain.Skill, error) {
	existing, err := u.candidates.GetSkillByID(ctx, id)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	if existing == nil {
		return nil, apperror.NotFound("Skill entry not found")
	}

	existing.Name = skill.Name
	if err := u.candidates.UpdateSkill(ctx, existing); err != nil {
		return nil, apperror.Internal(err)
	}
	return existing, nil
}

func (u *profileUsecase) UpdateLanguage(ctx context.Context, id int64, language domain.Language) (*domain.Language, error) {
	existing, err := u.candidates.GetLanguageByID(ctx, id)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	if existing == nil {
		return nil, apperror.NotFound("Language entry not found")
	}

	existing.Language = language.Language
	existing.Level = language.Level
	if err := u.candidates.UpdateLanguage(ctx, existing); err != nil {
		return nil, apperror.Internal(err)
	}
	return existing, nil
}
