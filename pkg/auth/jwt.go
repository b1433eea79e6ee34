package auth

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenStatus classifies the outcome of validating a session token. The
// request-authentication middleware treats only StatusValid as authenticated;
// every other status is reported as an unauthorized access attempt.
type TokenStatus int

const (
	StatusValid TokenStatus = iota
	StatusExpired
	StatusInvalidSignature
	StatusMalformed
	StatusUnsupported
	StatusEmpty
	StatusUnknown
)

func (s TokenStatus) String() string {
	switch s {
	case StatusValid:
		return "VALID"
	case StatusExpired:
		return "EXPIRED"
	case StatusInvalidSignature:
		return "INVALID_SIGNATURE"
	case StatusMalformed:
		return "MALFORMED"
	case StatusUnsupported:
		return "UNSUPPORTED"
	case StatusEmpty:
		return "EMPTY"
	default:
		return "UNKNOWN"
	}
}

// Manager mints and verifies HS256 session tokens carrying subject=email,
// issued-at and expiry claims.
type Manager struct {
	signingKey []byte
	tokenTTL   time.Duration
}

func NewManager(signingKey string, tokenTTL time.Duration) (*Manager, error) {
	if signingKey == "" {
		return nil, errors.New("empty signing key")
	}
	if tokenTTL <= 0 {
		tokenTTL = time.Hour
	}
	return &Manager{
		signingKey: []byte(signingKey),
		tokenTTL:   tokenTTL,
	}, nil
}

func (m *Manager) Generate(email string) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   email,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(m.tokenTTL)),
	})

	signed, err := token.SignedString(m.signingKey)
	if err != nil {
		return "", fmt.Errorf("sign session token: %w", err)
	}
	return signed, nil
}

func (m *Manager) keyFunc(token *jwt.Token) (interface{}, error) {
	if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
		return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
	}
	return m.signingKey, nil
}

// Validate checks signature, structure and expiry, and maps each failure
// category to a TokenStatus.
func (m *Manager) Validate(tokenString string) TokenStatus {
	if strings.TrimSpace(tokenString) == "" {
		return StatusEmpty
	}

	_, err := jwt.Parse(tokenString, m.keyFunc)
	switch {
	case err == nil:
		return StatusValid
	case errors.Is(err, jwt.ErrTokenExpired):
		return StatusExpired
	case errors.Is(err, jwt.ErrTokenSignatureInvalid):
		return StatusInvalidSignature
	case errors.Is(err, jwt.ErrTokenMalformed):
		return StatusMalformed
	case errors.Is(err, jwt.ErrTokenUnverifiable):
		return StatusUnsupported
	default:
		return StatusUnknown
	}
}

// ExtractSubject decodes the subject claim after verifying the signature but
// without checking expiry. Callers that care about freshness must run
// Validate first.
func (m *Manager) ExtractSubject(tokenString string) (string, error) {
	parser := jwt.NewParser(jwt.WithoutClaimsValidation())
	token, err := parser.Parse(tokenString, m.keyFunc)
	if err != nil {
		return "", fmt.Errorf("parse session token: %w", err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", errors.New("unexpected claims type in session token")
	}
	sub, _ := claims["sub"].(string)
	if sub == "" {
		return "", errors.New("session token has no subject")
	}
	return sub, nil
}
