package postgres

import (
	"context"
	"errors"
	"time"

	"go-candidate-backend/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type tokenRepo struct {
	db *pgxpool.Pool
}

func NewTokenRepository(db *pgxpool.Pool) domain.TokenRepository {
	return &tokenRepo{db: db}
}

func (r *tokenRepo) CreateVerification(ctx context.Context, token *domain.VerificationToken) error {
	query := `
		INSERT INTO verification_tokens (token, candidate_id, expiry_date, created_at)
		VALUES ($1, $2, $3, $4)
		RETURNING id`

	if token.CreatedAt.IsZero() {
		token.CreatedAt = time.Now()
	}
	return r.db.QueryRow(ctx, query,
		token.Token, token.CandidateID, token.ExpiryDate, token.CreatedAt,
	).Scan(&token.ID)
}

func (r *tokenRepo) GetVerificationByToken(ctx context.Context, token string) (*domain.VerificationToken, error) {
	query := `SELECT id, token, candidate_id, expiry_date, created_at FROM verification_tokens WHERE token = $1`
	var t domain.VerificationToken
	err := r.db.QueryRow(ctx, query, token).Scan(
		&t.ID, &t.Token, &t.CandidateID, &t.ExpiryDate, &t.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &t, nil
}

func (r *tokenRepo) GetVerificationByCandidate(ctx context.Context, candidateID int64) (*domain.VerificationToken, error) {
	query := `
		SELECT id, token, candidate_id, expiry_date, created_at
		FROM verification_tokens
		WHERE candidate_id = $1
		ORDER BY created_at DESC
		LIMIT 1`
	var t domain.VerificationToken
	err := r.db.QueryRow(ctx, query, candidateID).Scan(
		&t.ID, &t.Token, &t.CandidateID, &t.ExpiryDate, &t.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &t, nil
}

func (r *tokenRepo) CountVerificationSince(ctx context.Context, candidateID int64, since time.Time) (int64, error) {
	var count int64
	err := r.db.QueryRow(ctx,
		`SELECT COUNT(*) FROM verification_tokens WHERE candidate_id = $1 AND created_at > $2`,
		candidateID, since,
	).Scan(&count)
	if err != nil {
		return 0, err
	}
	return count, nil
}

func (r *tokenRepo) DeleteVerification(ctx context.Context, id int64) error {
	_, err := r.db.Exec(ctx, `DELETE FROM verification_tokens WHERE id = $1`, id)
	return err
}

func (r *tokenRepo) CreateReset(ctx context.Context, token *domain.PasswordResetToken) error {
	query := `
		INSERT INTO password_reset_tokens (token, candidate_id, expiry_date, created_at)
		VALUES ($1, $2, $3, $4)
		RETURNING id`

	if token.CreatedAt.IsZero() {
		token.CreatedAt = time.Now()
	}
	return r.db.QueryRow(ctx, query,
		token.Token, token.CandidateID, token.ExpiryDate, token.CreatedAt,
	).Scan(&token.ID)
}

func (r *tokenRepo) GetResetByToken(ctx context.Context, token string) (*domain.PasswordResetToken, error) {
	query := `SELECT id, token, candidate_id, expiry_date, created_at FROM password_reset_tokens WHERE token = $1`
	var t domain.PasswordResetToken
	err := r.db.QueryRow(ctx, query, token).Scan(
		&t.ID, &t.Token, &t.CandidateID, &t.ExpiryDate, &t.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &t, nil
}

func (r *tokenRepo) GetResetByCandidate(ctx context.Context, candidateID int64) (*domain.PasswordResetToken, error) {
	query := `
		SELECT id, token, candidate_id, expiry_date, created_at
		FROM password_reset_tokens
		WHERE candidate_id = $1
		ORDER BY created_at DESC
		LIMIT 1`
	var t domain.PasswordResetToken
	err := r.db.QueryRow(ctx, query, candidateID).Scan(
		&t.ID, &t.Token, &t.CandidateID, &t.ExpiryDate, &t.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &t, nil
}

func (r *tokenRepo) DeleteReset(ctx context.Context, id int64) error {
	_, err := r.db.Exec(ctx, `DELETE FROM password_reset_tokens WHERE id = $1`, id)
	return err
}
