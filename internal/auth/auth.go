// Package auth checks the admin credential pair and issues and verifies the
// stateless bearer tokens that gate content writes.
package auth

import (
	"crypto/subtle"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenTTL is how long an issued token stays valid.
const TokenTTL = 24 * time.Hour

const issuer = "portfolio"

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidToken       = errors.New("invalid token")
)

type Credentials struct {
	Username string
	Password string
}

type Token struct {
	Value     string
	ExpiresAt time.Time
}

// Issuer verifies the configured credential pair and signs tokens with the
// shared secret.
type Issuer struct {
	creds   Credentials
	key     []byte
	nowFunc func() time.Time
}

func NewIssuer(creds Credentials, secret string) *Issuer {
	return &Issuer{
		creds:   creds,
		key:     []byte(secret),
		nowFunc: time.Now,
	}
}

// Login issues a token for username when the pair matches. Both halves are
// always compared so a wrong username costs the same as a wrong password.
func (i *Issuer) Login(username, password string) (Token, error) {
	if i.creds.Username == "" || i.creds.Password == "" || len(i.key) == 0 {
		return Token{}, ErrInvalidCredentials
	}
	userOK := subtle.ConstantTimeCompare([]byte(username), []byte(i.creds.Username))
	passOK := subtle.ConstantTimeCompare([]byte(password), []byte(i.creds.Password))
	if userOK&passOK != 1 {
		return Token{}, ErrInvalidCredentials
	}
	return i.GenerateToken(username, TokenTTL)
}

func (i *Issuer) GenerateToken(subject string, expire time.Duration) (Token, error) {
	now := i.nowFunc()
	exp := now.Add(expire)
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Issuer:    issuer,
		Subject:   subject,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(exp),
	})
	signed, err := token.SignedString(i.key)
	if err != nil {
		return Token{}, fmt.Errorf("sign token: %w", err)
	}
	return Token{Value: signed, ExpiresAt: jwt.NewNumericDate(exp).Time}, nil
}

// Verifier is a pure function of the token, the secret and the clock.
type Verifier struct {
	key     []byte
	nowFunc func() time.Time
}

func NewVerifier(secret string) *Verifier {
	return &Verifier{
		key:     []byte(secret),
		nowFunc: time.Now,
	}
}

// Verify returns the token subject when the HS256 signature matches and the
// current time is before the expiry.
func (v *Verifier) Verify(token string) (string, error) {
	if token == "" || len(v.key) == 0 {
		return "", ErrInvalidToken
	}
	t, err := jwt.ParseWithClaims(token, &jwt.RegisteredClaims{},
		func(*jwt.Token) (interface{}, error) {
			return v.key, nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithIssuer(issuer),
		jwt.WithTimeFunc(v.nowFunc),
	)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	clm, ok := t.Claims.(*jwt.RegisteredClaims)
	if !ok || !t.Valid {
		return "", ErrInvalidToken
	}
	return clm.Subject, nil
}
