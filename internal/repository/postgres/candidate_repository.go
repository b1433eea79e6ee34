package postgres

import (
	"context"
	"errors"

	"go-candidate-backend/internal/domain"
	"go-candidate-backend/pkg/apperror"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgreSQL error codes
const (
	pgUniqueViolation = "23505"
)

type candidateRepo struct {
	db *pgxpool.Pool
}

func NewCandidateRepository(db *pgxpool.Pool) domain.CandidateRepository {
	return &candidateRepo{db: db}
}

func (r *candidateRepo) Create(ctx context.Context, candidate *domain.Candidate) error {
	query := `
		INSERT INTO candidates (email, password, first_name, last_name, phone_number, address, enabled)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id`

	err := r.db.QueryRow(ctx, query,
		candidate.Email,
		candidate.Password,
		candidate.FirstName,
		candidate.LastName,
		candidate.PhoneNumber,
		candidate.Address,
		candidate.Enabled,
	).Scan(&candidate.ID)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			return apperror.Conflict("Candidate with this email already exists")
		}
		return apperror.Internal(err)
	}
	return nil
}

func (r *candidateRepo) Update(ctx context.Context, candidate *domain.Candidate) error {
	query := `
		UPDATE candidates
		SET email = $2, password = $3, first_name = $4, last_name = $5,
		    phone_number = $6, address = $7, enabled = $8, cv_file = $9, cv_text = $10
		WHERE id = $1`

	_, err := r.db.Exec(ctx, query,
		candidate.ID,
		candidate.Email,
		candidate.Password,
		candidate.FirstName,
		candidate.LastName,
		candidate.PhoneNumber,
		candidate.Address,
		candidate.Enabled,
		candidate.CVFile,
		candidate.CVText,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			return apperror.Conflict("Candidate with this email already exists")
		}
		return apperror.Internal(err)
	}
	return nil
}

const candidateColumns = `id, email, password, first_name, last_name, phone_number, address, enabled, cv_file, cv_text`

func (r *candidateRepo) scanCandidate(row pgx.Row) (*domain.Candidate, error) {
	var c domain.Candidate
	err := row.Scan(
		&c.ID, &c.Email, &c.Password, &c.FirstName, &c.LastName,
		&c.PhoneNumber, &c.Address, &c.Enabled, &c.CVFile, &c.CVText,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &c, nil
}

func (r *candidateRepo) GetByID(ctx context.Context, id int64) (*domain.Candidate, error) {
	query := `SELECT ` + candidateColumns + ` FROM candidates WHERE id = $1`
	return r.scanCandidate(r.db.QueryRow(ctx, query, id))
}

func (r *candidateRepo) GetByEmail(ctx context.Context, email string) (*domain.Candidate, error) {
	query := `SELECT ` + candidateColumns + ` FROM candidates WHERE email = $1`
	return r.scanCandidate(r.db.QueryRow(ctx, query, email))
}

func (r *candidateRepo) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM candidates WHERE email = $1)`, email).Scan(&exists)
	if err != nil {
		return false, err
	}
	return exists, nil
}

// GetByIDWithRelations loads the candidate plus all owned child collections.
func (r *candidateRepo) GetByIDWithRelations(ctx context.Context, id int64) (*domain.Candidate, error) {
	candidate, err := r.GetByID(ctx, id)
	if err != nil || candidate == nil {
		return candidate, err
	}

	if candidate.Educations, err = r.listEducations(ctx, id); err != nil {
		return nil, err
	}
	if candidate.Experiences, err = r.listExperiences(ctx, id); err != nil {
		return nil, err
	}
	if candidate.Skills, err = r.listSkills(ctx, id); err != nil {
		return nil, err
	}
	if candidate.Languages, err = r.listLanguages(ctx, id); err != nil {
		return nil, err
	}
	return candidate, nil
}

func (r *candidateRepo) listEducations(ctx context.Context, candidateID int64) ([]domain.Education, error) {
	query := `SELECT id, candidate_id, level, institution, period FROM educations WHERE candidate_id = $1 ORDER BY id`
	rows, err := r.db.Query(ctx, query, candidateID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []domain.Education
	for rows.Next() {
		var e domain.Education
		if err := rows.Scan(&e.ID, &e.CandidateID, &e.Level, &e.Institution, &e.Period); err != nil {
			return nil, err
		}
		items = append(items, e)
	}
	return items, rows.Err()
}

func (r *candidateRepo) listExperiences(ctx context.Context, candidateID int64) ([]domain.Experience, error) {
	query := `SELECT id, candidate_id, title, company, period FROM experiences WHERE candidate_id = $1 ORDER BY id`
	rows, err := r.db.Query(ctx, query, candidateID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []domain.Experience
	for rows.Next() {
		var e domain.Experience
		if err := rows.Scan(&e.ID, &e.CandidateID, &e.Title, &e.Company, &e.Period); err != nil {
			return nil, err
		}
		items = append(items, e)
	}
	return items, rows.Err()
}

func (r *candidateRepo) listSkills(ctx context.Context, candidateID int64) ([]domain.Skill, error) {
	query := `SELECT id, candidate_id, name FROM skills WHERE candidate_id = $1 ORDER BY id`
	rows, err := r.db.Query(ctx, query, candidateID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []domain.Skill
	for rows.Next() {
		var s domain.Skill
		if err := rows.Scan(&s.ID, &s.CandidateID, &s.Name); err != nil {
			return nil, err
		}
		items = append(items, s)
	}
	return items, rows.Err()
}

func (r *candidateRepo) listLanguages(ctx context.Context, candidateID int64) ([]domain.Language, error) {
	query := `SELECT id, candidate_id, language, level FROM languages WHERE candidate_id = $1 ORDER BY id`
	rows, err := r.db.Query(ctx, query, candidateID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []domain.Language
	for rows.Next() {
		var l domain.Language
		if err := rows.Scan(&l.ID, &l.CandidateID, &l.Language, &l.Level); err != nil {
			return nil, err
		}
		items = append(items, l)
	}
	return items, rows.Err()
}

// AppendCVData writes the CV payload and the extracted child rows in one
// transaction. Existing child rows are never touched.
func (r *candidateRepo) AppendCVData(ctx context.Context, candidate *domain.Candidate, educations []domain.Education, experiences []domain.Experience, skills []domain.Skill, languages []domain.Language) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return apperror.Internal(err)
	}
	defer tx.Rollback(ctx)

	query := `
		UPDATE candidates
		SET email = $2, phone_number = $3, first_name = $4, last_name = $5,
		    address = $6, cv_file = $7, cv_text = $8
		WHERE id = $1`
	_, err = tx.Exec(ctx, query,
		candidate.ID,
		candidate.Email,
		candidate.PhoneNumber,
		candidate.FirstName,
		candidate.LastName,
		candidate.Address,
		candidate.CVFile,
		candidate.CVText,
	)
	if err != nil {
		return apperror.Internal(err)
	}

	for i := range educations {
		educations[i].CandidateID = candidate.ID
		err = tx.QueryRow(ctx,
			`INSERT INTO educations (candidate_id, level, institution, period) VALUES ($1, $2, $3, $4) RETURNING id`,
			candidate.ID, educations[i].Level, educations[i].Institution, educations[i].Period,
		).Scan(&educations[i].ID)
		if err != nil {
			return apperror.Internal(err)
		}
	}

	for i := range experiences {
		experiences[i].CandidateID = candidate.ID
		err = tx.QueryRow(ctx,
			`INSERT INTO experiences (candidate_id, title, company, period) VALUES ($1, $2, $3, $4) RETURNING id`,
			candidate.ID, experiences[i].Title, experiences[i].Company, experiences[i].Period,
		).Scan(&experiences[i].ID)
		if err != nil {
			return apperror.Internal(err)
		}
	}

	for i := range skills {
		skills[i].CandidateID = candidate.ID
		err = tx.QueryRow(ctx,
			`INSERT INTO skills (candidate_id, name) VALUES ($1, $2) RETURNING id`,
			candidate.ID, skills[i].Name,
		).Scan(&skills[i].ID)
		if err != nil {
			return apperror.Internal(err)
		}
	}

	for i := range languages {
		languages[i].CandidateID = candidate.ID
		err = tx.QueryRow(ctx,
			`INSERT INTO languages (candidate_id, language, level) VALUES ($1, $2, $3) RETURNING id`,
			candidate.ID, languages[i].Language, languages[i].Level,
		).Scan(&languages[i].ID)
		if err != nil {
			return apperror.Internal(err)
		}
	}

	return tx.Commit(ctx)
}

func (r *candidateRepo) GetEducationByID(ctx context.Context, id int64) (*domain.Education, error) {
	var e domain.Education
	err := r.db.QueryRow(ctx,
		`SELECT id, candidate_id, level, institution, period FROM educations WHERE id = $1`, id,
	).Scan(&e.ID, &e.CandidateID, &e.Level, &e.Institution, &e.Period)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &e, nil
}

func (r *candidateRepo) UpdateEducation(ctx context.Context, education *domain.Education) error {
	_, err := r.db.Exec(ctx,
		`UPDATE educations SET level = $2, institution = $3, period = $4 WHERE id = $1`,
		education.ID, education.Level, education.Institution, education.Period,
	)
	return err
}

func (r *candidateRepo) GetExperienceByID(ctx context.Context, id int64) (*domain.Experience, error) {
	var e domain.Experience
	err := r.db.QueryRow(ctx,
		`SELECT id, candidate_id, title, company, period FROM experiences WHERE id = $1`, id,
	).Scan(&e.ID, &e.CandidateID, &e.Title, &e.Company, &e.Period)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &e, nil
}

func (r *candidateRepo) UpdateExperience(ctx context.Context, experience *domain.Experience) error {
	_, err := r.db.Exec(ctx,
		`UPDATE experiences SET title = $2, company = $3, period = $4 WHERE id = $1`,
		experience.ID, experience.Title, experience.Company, experience.Period,
	)
	return err
}

func (r *candidateRepo) GetSkillByID(ctx context.Context, id int64) (*domain.Skill, error) {
	var s domain.Skill
	err := r.db.QueryRow(ctx,
		`SELECT id, candidate_id, name FROM skills WHERE id = $1`, id,
	).Scan(&s.ID, &s.CandidateID, &s.Name)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &s, nil
}

func (r *candidateRepo) UpdateSkill(ctx context.Context, skill *domain.Skill) error {
	_, err := r.db.Exec(ctx, `UPDATE skills SET name = $2 WHERE id = $1`, skill.ID, skill.Name)
	return err
}

func (r *candidateRepo) GetLanguageByID(ctx context.Context, id int64) (*domain.Language, error) {
	var l domain.Language
	err := r.db.QueryRow(ctx,
		`SELECT id, candidate_id, language, level FROM languages WHERE id = $1`, id,
	).Scan(&l.ID, &l.CandidateID, &l.Language, &l.Level)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &l, nil
}

func (r *candidateRepo) UpdateLanguage(ctx context.Context, language *domain.Language) error {
	_, err := r.db.Exec(ctx,
		`UPDATE languages SET language = $2, level = $3 WHERE id = $1`,
		language.ID, language.Language, language.Level,
	)
	return err
}
