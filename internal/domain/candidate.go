package domain

import (
	"context"
)

// Candidate is the identity aggregate. Email and phone number are unique
// across all candidates; Enabled stays false until email verification
// succeeds. Child collections are owned exclusively by the candidate and are
// only ever mutated through the aggregate.
type Candidate struct {
	ID          int64        `json:"id"`
	Email       string       `json:"email"`
	Password    string       `json:"-"`
	FirstName   string       `json:"first_name"`
	LastName    string       `json:"last_name"`
	PhoneNumber string       `json:"phone_number"` // E.164
	Address     string       `json:"address"`
	Enabled     bool         `json:"enabled"`
	CVFile      []byte       `json:"-"`
	CVText      string       `json:"-"`
	Educations  []Education  `json:"educations"`
	Experiences []Experience `json:"experiences"`
	Skills      []Skill      `json:"skills"`
	Languages   []Language   `json:"languages"`
}

type Education struct {
	ID          int64  `json:"id"`
	CandidateID int64  `json:"-"`
	Level       string `json:"level"`
	Institution string `json:"institution"`
	Period      string `json:"period"`
}

type Experience struct {
	ID          int64  `json:"id"`
	CandidateID int64  `json:"-"`
	Title       string `json:"title"`
	Company     string `json:"company"`
	Period      string `json:"period"`
}

type Skill struct {
	ID          int64  `json:"id"`
	CandidateID int64  `json:"-"`
	Name        string `json:"name"`
}

type Language struct {
	ID          int64  `json:"id"`
	CandidateID int64  `json:"-"`
	Language    string `json:"language"`
	Level       string `json:"level"`
}

// CandidateProfile is the assembled profile view served by the API.
type CandidateProfile struct {
	ID         int64        `json:"id"`
	Email      string       `json:"email"`
	Phone      string       `json:"phone"`
	FirstName  string       `json:"firstName"`
	LastName   string       `json:"lastName"`
	Address    string       `json:"address"`
	Education  []Education  `json:"education"`
	Experience []Experience `json:"experience"`
	Skills     []Skill      `json:"skills"`
	Languages  []Language   `json:"languages"`
}

// ProfileUpdate carries a partial profile edit; only non-nil fields
// overwrite the stored values.
type ProfileUpdate struct {
	Email    *string `json:"email"`
	Phone    *string `json:"phone"`
	LastName *string `json:"lastName"`
	Address  *string `json:"address"`
}

type CandidateRepository interface {
	Create(ctx context.Context, candidate *Candidate) error
	Update(ctx context.Context, candidate *Candidate) error
	GetByID(ctx context.Context, id int64) (*Candidate, error)
	GetByIDWithRelations(ctx context.Context, id int64) (*Candidate, error)
	GetByEmail(ctx context.Context, email string) (*Candidate, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)

	// AppendCVData persists the CV bytes/text plus the freshly extracted
	// child entries in a single transaction. Child slices are appended,
	// never deduplicated.
	AppendCVData(ctx context.Context, candidate *Candidate, educations []Education, experiences []Experience, skills []Skill, languages []Language) error

	GetEducationByID(ctx context.Context, id int64) (*Education, error)
	UpdateEducation(ctx context.Context, education *Education) error
	GetExperienceByID(ctx context.Context, id int64) (*Experience, error)
	UpdateExperience(ctx context.Context, experience *Experience) error
	GetSkillByID(ctx context.Context, id int64) (*Skill, error)
	UpdateSkill(ctx context.Context, skill *Skill) error
	GetLanguageByID(ctx context.Context, id int64) (*Language, error)
	UpdateLanguage(ctx context.Context, language *Language) error
}

type RegistrationInput struct {
	Email       string `validate:"required,email"`
	Password    string `validate:"required,min=8"`
	FirstName   string `validate:"required"`
	LastName    string `validate:"required"`
	CallingCode string `validate:"required"`
	PhoneNumber string `validate:"required"`
}

type RegistrationUsecase interface {
	Register(ctx context.Context, input RegistrationInput) (*Candidate, error)
	VerifyToken(ctx context.Context, token string) error
	ResendVerification(ctx context.Context, email string) error
}

type AuthUsecase interface {
	// Login returns a signed session token. Unknown email and wrong
	// password are indistinguishable to the caller.
	Login(ctx context.Context, email, password, clientIP string) (string, error)
}

type PasswordResetUsecase interface {
	RequestReset(ctx context.Context, email string) error
	VerifyResetToken(ctx context.Context, token string) error
	ResetPassword(ctx context.Context, token, newPassword string) error
}

type ProfileUsecase interface {
	UploadCV(ctx context.Context, email, filename string, data []byte, declaredMIME string) (*CandidateProfile, error)
	GetProfile(ctx context.Context, id int64) (*CandidateProfile, error)
	UpdateProfile(ctx context.Context, id int64, update ProfileUpdate) (*CandidateProfile, error)
	UpdateEducation(ctx context.Context, id int64, education Education) (*Education, error)
	UpdateExperience(ctx context.Context, id int64, experience Experience) (*Experience, error)
	UpdateSkill(ctx context.Context, id int64, skill Skill) (*Skill, error)
	UpdateLanguage(ctx context.Context, id int64, language Language) (*Language, error)
}
