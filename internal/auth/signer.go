package auth // package auth implements the credential and token lifecycle

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5" // JWT library for creating signed tokens
	"github.com/google/uuid"       // token identifiers (jti claim)
)

// Purpose tags a signed token with the single flow it is valid for.
// A session token must never satisfy reset verification and vice
// versa, so Verify checks the purpose claim before anything else.
type Purpose string

const (
	PurposeSession Purpose = "session"
	PurposeReset   Purpose = "reset"
)

// IssuedToken is a signed token together with its expiry instant, the
// shape handlers return to clients.
type IssuedToken struct {
	Token string    // the serialized JWT string
	Exp   time.Time // the UTC expiration time
}

// TokenClaims is the verified payload of a token. Email and Role are
// empty on reset tokens, which embed only the account id.
type TokenClaims struct {
	UserID  uint64
	Email   string
	Role    string
	TokenID string
	Exp     time.Time
}

// Signer creates and verifies HS256 tokens. The clock is injectable so
// expiry behaviour can be tested deterministically; production callers
// construct it with NewSigner which uses time.Now.
type Signer struct {
	secret []byte
	now    func() time.Time
}

// NewSigner returns a Signer backed by the wall clock.
func NewSigner(secret string) *Signer {
	return NewSignerWithClock(secret, func() time.Time { return time.Now().UTC() })
}

// NewSignerWithClock returns a Signer that reads the current instant
// from the supplied function.
func NewSignerWithClock(secret string, now func() time.Time) *Signer {
	return &Signer{secret: []byte(secret), now: now}
}

// Sign builds and signs an HS256 JWT carrying the user id, optional
// email and role, the purpose tag and a fresh jti. The JWT includes
// standard claims: subject (sub), expiration (exp) and issued at (iat).
func (s *Signer) Sign(userID uint64, email, role string, purpose Purpose, ttl time.Duration) (IssuedToken, error) {
	issued := s.now()
	exp := issued.Add(ttl)
	claims := jwt.MapClaims{
		"sub":     userID,
		"purpose": string(purpose),
		"jti":     uuid.NewString(),
		"exp":     exp.Unix(),
		"iat":     issued.Unix(),
	}
	if email != "" {
		claims["email"] = email
	}
	if role != "" {
		claims["role"] = role
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := t.SignedString(s.secret)
	if err != nil {
		return IssuedToken{}, err
	}
	return IssuedToken{Token: signed, Exp: exp}, nil
}

// Verify parses a token, enforcing the HMAC signing method, the signer's
// clock for expiry and an exact purpose match. Any failure collapses to
// ErrInvalidOrExpiredToken so callers cannot distinguish a forged token
// from a stale one.
func (s *Signer) Verify(token string, purpose Purpose) (TokenClaims, error) {
	tok, err := jwt.Parse(token, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return s.secret, nil
	}, jwt.WithTimeFunc(s.now))
	if err != nil || !tok.Valid {
		return TokenClaims{}, ErrInvalidOrExpiredToken
	}
	claims, ok := tok.Claims.(jwt.MapClaims)
	if !ok {
		return TokenClaims{}, ErrInvalidOrExpiredToken
	}
	if p, _ := claims["purpose"].(string); p != string(purpose) {
		return TokenClaims{}, ErrInvalidOrExpiredToken
	}
	out := TokenClaims{}
	switch sub := claims["sub"].(type) {
	case float64:
		out.UserID = uint64(sub)
	default:
		return TokenClaims{}, ErrInvalidOrExpiredToken
	}
	out.Email, _ = claims["email"].(string)
	out.Role, _ = claims["role"].(string)
	out.TokenID, _ = claims["jti"].(string)
	if expUnix, ok := claims["exp"].(float64); ok {
		out.Exp = time.Unix(int64(expUnix), 0).UTC()
	}
	return out, nil
}
