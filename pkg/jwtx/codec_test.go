package jwtx_test

import (
	"strings"
	"testing"
	"time"

	"github.com/praetor-app/praetor/pkg/jwtx"
	"github.com/stretchr/testify/require"
)

var testSecret = []byte("0123456789abcdef0123456789abcdef")

func newTestCodec(t *testing.T, ttl time.Duration) *jwtx.Codec {
	t.Helper()
	c, err := jwtx.NewCodec(testSecret, "praetor-auth", ttl)
	require.NoError(t, err)
	return c
}

func TestNewCodecRejectsEmptySecret(t *testing.T) {
	_, err := jwtx.NewCodec(nil, "praetor-auth", time.Minute)
	require.Error(t, err)
}

func TestIssueVerifyRoundTrip(t *testing.T) {
	const ttl = 15 * time.Minute
	c := newTestCodec(t, ttl)
	t0 := time.Now().UTC()

	pairs := []struct {
		accountID string
		role      string
	}{
		{"01J9ZV4N7R4F2B9T0Q3W8XKMCE", "member"},
		{"01J9ZV4N7R4F2B9T0Q3W8XKMCF", "administrator"},
	}

	deltas := []time.Duration{0, time.Second, 5 * time.Minute, ttl - time.Second}

	for _, p := range pairs {
		token, err := c.Issue(p.accountID, p.role, t0)
		require.NoError(t, err)

		for _, d := range deltas {
			id, err := c.Verify(token, t0.Add(d))
			require.NoError(t, err, "delta %s", d)
			require.Equal(t, p.accountID, id.AccountID)
			require.Equal(t, p.role, id.Role)
		}
	}
}

func TestVerifyExpired(t *testing.T) {
	const ttl = 15 * time.Minute
	c := newTestCodec(t, ttl)
	t0 := time.Now().UTC()

	token, err := c.Issue("01J9ZV4N7R4F2B9T0Q3W8XKMCE", "member", t0)
	require.NoError(t, err)

	for _, d := range []time.Duration{ttl + time.Second, ttl + time.Hour, ttl + 24*time.Hour} {
		_, err := c.Verify(token, t0.Add(d))
		require.ErrorIs(t, err, jwtx.ErrExpired, "delta %s", d)
	}
}

func TestVerifyTamperedToken(t *testing.T) {
	c := newTestCodec(t, 15*time.Minute)
	t0 := time.Now().UTC()

	token, err := c.Issue("01J9ZV4N7R4F2B9T0Q3W8XKMCE", "member", t0)
	require.NoError(t, err)

	// Flipping any single character must break verification. The signature
	// segment specifically must surface as an invalid signature.
	sigStart := strings.LastIndex(token, ".") + 1

	for i := 0; i < len(token); i++ {
		if token[i] == '.' {
			continue
		}

		tampered := token[:i] + string(flipBase64Char(token[i])) + token[i+1:]

		_, err := c.Verify(tampered, t0)
		require.Error(t, err, "tamper position %d", i)

		if i >= sigStart {
			require.ErrorIs(t, err, jwtx.ErrInvalidSig, "tamper position %d", i)
		}
	}
}

const base64URLAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789-_"

// flipBase64Char swaps a base64url character for one whose 6-bit value
// differs in the high bit. Low-bit flips on a segment's final character can
// decode to the same bytes (trailing bits are discarded), which would make
// the tamper invisible.
func flipBase64Char(ch byte) byte {
	idx := strings.IndexByte(base64URLAlphabet, ch)
	if idx < 0 {
		return 'A'
	}
	return base64URLAlphabet[(idx+32)%64]
}

func TestVerifyWrongSecret(t *testing.T) {
	c := newTestCodec(t, 15*time.Minute)
	other, err := jwtx.NewCodec([]byte("another-secret-another-secret-ok"), "praetor-auth", 15*time.Minute)
	require.NoError(t, err)

	t0 := time.Now().UTC()
	token, err := c.Issue("01J9ZV4N7R4F2B9T0Q3W8XKMCE", "member", t0)
	require.NoError(t, err)

	_, err = other.Verify(token, t0)
	require.ErrorIs(t, err, jwtx.ErrInvalidSig)
}

func TestVerifyMalformed(t *testing.T) {
	c := newTestCodec(t, 15*time.Minute)
	now := time.Now().UTC()

	for _, tok := range []string{"", "garbage", "a.b", "a.b.c.d", "not..a-jwt"} {
		_, err := c.Verify(tok, now)
		require.ErrorIs(t, err, jwtx.ErrMalformed, "token %q", tok)
	}
}

func TestVerifyIssuerMismatch(t *testing.T) {
	minter, err := jwtx.NewCodec(testSecret, "other-service", 15*time.Minute)
	require.NoError(t, err)
	c := newTestCodec(t, 15*time.Minute)

	t0 := time.Now().UTC()
	token, err := minter.Issue("01J9ZV4N7R4F2B9T0Q3W8XKMCE", "member", t0)
	require.NoError(t, err)

	_, err = c.Verify(token, t0)
	require.ErrorIs(t, err, jwtx.ErrIssuer)
}
