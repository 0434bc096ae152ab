package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var issuedAt = time.Unix(1735689600, 0) // 2025-01-01T00:00:00Z

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func newIssuer() *Issuer {
	i := NewIssuer(Credentials{Username: "admin@portfolio.com", Password: "s3cret"}, "signing-key")
	i.nowFunc = fixedClock(issuedAt)
	return i
}

func TestIssuer_Login(t *testing.T) {
	testCases := []struct {
		name     string
		username string
		password string
		wantErr  error
	}{
		{name: "correct pair", username: "admin@portfolio.com", password: "s3cret"},
		{name: "wrong password", username: "admin@portfolio.com", password: "s3cre", wantErr: ErrInvalidCredentials},
		{name: "wrong username", username: "admin", password: "s3cret", wantErr: ErrInvalidCredentials},
		{name: "empty", wantErr: ErrInvalidCredentials},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			tok, err := newIssuer().Login(tc.username, tc.password)
			if tc.wantErr != nil {
				assert.ErrorIs(t, err, tc.wantErr)
				assert.Empty(t, tok.Value)
				return
			}
			require.NoError(t, err)
			assert.NotEmpty(t, tok.Value)
			assert.True(t, tok.ExpiresAt.Equal(issuedAt.Add(TokenTTL)))
		})
	}
}

func TestIssuer_LoginUnconfigured(t *testing.T) {
	i := NewIssuer(Credentials{}, "")
	_, err := i.Login("", "")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestVerifier_Verify(t *testing.T) {
	tok, err := newIssuer().Login("admin@portfolio.com", "s3cret")
	require.NoError(t, err)

	otherKey := NewIssuer(Credentials{Username: "a", Password: "b"}, "other-key")
	otherKey.nowFunc = fixedClock(issuedAt)
	forged, err := otherKey.Login("a", "b")
	require.NoError(t, err)

	noneAlg, err := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.RegisteredClaims{
		Issuer:    issuer,
		Subject:   "admin@portfolio.com",
		ExpiresAt: jwt.NewNumericDate(issuedAt.Add(time.Hour)),
	}).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	hs512, err := jwt.NewWithClaims(jwt.SigningMethodHS512, jwt.RegisteredClaims{
		Issuer:    issuer,
		Subject:   "admin@portfolio.com",
		ExpiresAt: jwt.NewNumericDate(issuedAt.Add(time.Hour)),
	}).SignedString([]byte("signing-key"))
	require.NoError(t, err)

	noExpiry, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Issuer:  issuer,
		Subject: "admin@portfolio.com",
	}).SignedString([]byte("signing-key"))
	require.NoError(t, err)

	testCases := []struct {
		name    string
		token   string
		now     time.Time
		want    string
		wantErr bool
	}{
		{name: "fresh token", token: tok.Value, now: issuedAt.Add(time.Minute), want: "admin@portfolio.com"},
		{name: "just inside the window", token: tok.Value, now: issuedAt.Add(23*time.Hour + 59*time.Minute), want: "admin@portfolio.com"},
		{name: "just past the window", token: tok.Value, now: issuedAt.Add(24*time.Hour + time.Minute), wantErr: true},
		{name: "exactly at expiry", token: tok.Value, now: issuedAt.Add(24 * time.Hour), wantErr: true},
		{name: "wrong secret", token: forged.Value, now: issuedAt.Add(time.Minute), wantErr: true},
		{name: "none algorithm", token: noneAlg, now: issuedAt.Add(time.Minute), wantErr: true},
		{name: "other hmac algorithm", token: hs512, now: issuedAt.Add(time.Minute), wantErr: true},
		{name: "no expiry", token: noExpiry, now: issuedAt.Add(time.Minute), wantErr: true},
		{name: "missing token", now: issuedAt, wantErr: true},
		{name: "garbage", token: "not.a.jwt", now: issuedAt, wantErr: true},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			v := NewVerifier("signing-key")
			v.nowFunc = fixedClock(tc.now)
			subject, err := v.Verify(tc.token)
			if tc.wantErr {
				assert.ErrorIs(t, err, ErrInvalidToken)
				assert.Empty(t, subject)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, subject)
		})
	}
}
