package tokens

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const (
	DefaultTTL = time.Hour
	TokenType  = "bearer"
)

var (
	ErrTokenInvalid = errors.New("token invalid")

	errMissingSubject   = errors.New("token has no subject")
	errUnexpectedMethod = errors.New("unexpected sign method")
)

// Claims carries the login handle in Subject.
type Claims struct {
	jwt.RegisteredClaims
}

// Issuer signs and verifies HS256 access tokens with a single process-wide key.
type Issuer struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewIssuer(secret []byte, ttl time.Duration) *Issuer {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	key := make([]byte, len(secret))
	copy(key, secret)
	return &Issuer{secret: key, ttl: ttl, now: time.Now}
}

// WithClock returns a copy of the issuer that reads time from now.
func (i *Issuer) WithClock(now func() time.Time) *Issuer {
	cp := *i
	cp.now = now
	return &cp
}

func (i *Issuer) TTL() time.Duration {
	return i.ttl
}

func (i *Issuer) Issue(subject string) (string, time.Time, error) {
	return i.IssueWithTTL(subject, i.ttl)
}

// IssueWithTTL overrides the configured lifetime. Production paths use Issue.
func (i *Issuer) IssueWithTTL(subject string, ttl time.Duration) (string, time.Time, error) {
	if subject == "" {
		return "", time.Time{}, errMissingSubject
	}
	if ttl <= 0 {
		return "", time.Time{}, fmt.Errorf("ttl must be positive, got %s", ttl)
	}

	now := i.now().UTC()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			ID:        uuid.NewString(),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(i.secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, claims.ExpiresAt.Time, nil
}

// Verify returns the claims of a well-formed, correctly signed, unexpired token.
// Every failure wraps ErrTokenInvalid.
func (i *Issuer) Verify(tokenStr string) (*Claims, error) {
	var claims Claims
	_, err := jwt.ParseWithClaims(tokenStr, &claims, func(t *jwt.Token) (any, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, errUnexpectedMethod
		}
		return i.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(i.now),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrTokenInvalid, err)
	}

	// exp is exclusive
	if !i.now().Before(claims.ExpiresAt.Time) {
		return nil, fmt.Errorf("%w: %w", ErrTokenInvalid, jwt.ErrTokenExpired)
	}
	if claims.Subject == "" {
		return nil, fmt.Errorf("%w: %w", ErrTokenInvalid, errMissingSubject)
	}
	return &claims, nil
}
