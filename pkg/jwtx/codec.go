package jwtx

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrMalformed   = errors.New("jwtx: malformed token")
	ErrInvalidSig  = errors.New("jwtx: invalid signature")
	ErrExpired     = errors.New("jwtx: token expired")
	ErrNotYetValid = errors.New("jwtx: token not yet valid")
	ErrIssuer      = errors.New("jwtx: issuer mismatch")

	errEmptySecret = errors.New("jwtx: empty signing secret")
)

// Identity is the decoded assertion carried by a verified session token.
type Identity struct {
	AccountID string
	Role      string
}

// Codec mints and verifies HS256 session tokens against a single
// process-lifetime secret. The secret is injected at construction and never
// mutated afterwards, so a Codec is safe for concurrent use without locking.
type Codec struct {
	secret []byte
	issuer string
	ttl    time.Duration
}

// NewCodec builds a Codec. The secret must be non-empty; the TTL falls back
// to DefaultSessionTTL when zero.
func NewCodec(secret []byte, issuer string, ttl time.Duration) (*Codec, error) {
	if len(secret) == 0 {
		return nil, errEmptySecret
	}
	if ttl <= 0 {
		ttl = DefaultSessionTTL
	}

	// Copy so a caller holding the original slice can't mutate our key.
	key := make([]byte, len(secret))
	copy(key, secret)

	return &Codec{secret: key, issuer: issuer, ttl: ttl}, nil
}

// TTL reports the validity window applied to issued tokens.
func (c *Codec) TTL() time.Duration { return c.ttl }

// Issue mints a signed token asserting the account id and role, expiring at
// now + TTL.
func (c *Codec) Issue(accountID, role string, now time.Time) (string, error) {
	claims := NewSessionClaims(accountID, role, c.issuer, c.ttl, now)
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString(c.secret)
}

// Verify parses and validates a token as of the supplied instant and returns
// the identity it asserts. Verification is pure: no clock reads, no shared
// state, so arbitrarily many requests can verify in parallel.
//
// Errors are normalized to ErrMalformed, ErrInvalidSig, ErrExpired,
// ErrNotYetValid or ErrIssuer.
func (c *Codec) Verify(token string, now time.Time) (Identity, error) {
	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(func() time.Time { return now }),
		jwt.WithExpirationRequired(),
	)

	claims := &Claims{}
	parsed, err := parser.ParseWithClaims(token, claims, func(t *jwt.Token) (any, error) {
		return c.secret, nil
	})
	if err != nil {
		return Identity{}, mapParseError(err)
	}
	if !parsed.Valid {
		return Identity{}, ErrMalformed
	}

	if c.issuer != "" && claims.Issuer != c.issuer {
		return Identity{}, ErrIssuer
	}

	return Identity{AccountID: claims.Subject, Role: claims.Role}, nil
}

// mapParseError normalizes golang-jwt failures into this package's taxonomy.
// Order matters: the library wraps several sentinels into one error chain and
// expiry should win over the generic invalid-claims wrapper.
func mapParseError(err error) error {
	switch {
	case errors.Is(err, jwt.ErrTokenExpired):
		return ErrExpired
	case errors.Is(err, jwt.ErrTokenNotValidYet):
		return ErrNotYetValid
	case errors.Is(err, jwt.ErrTokenSignatureInvalid):
		return ErrInvalidSig
	case errors.Is(err, jwt.ErrTokenMalformed):
		return ErrMalformed
	default:
		return ErrMalformed
	}
}
