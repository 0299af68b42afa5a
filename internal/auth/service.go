package auth

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/sportplus/backend/internal/model"
	"github.com/sportplus/backend/internal/utils"
)

var (
	// ErrInvalidCredentials is returned by Authenticate for an unknown
	// email and for a wrong password alike; the caller must not be able
	// to tell the two apart.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrAccountNotFound is returned by IssueResetToken when no account
	// matches the email.
	ErrAccountNotFound = errors.New("account not found")

	// ErrInvalidOrExpiredToken covers every reset-token failure: bad
	// signature, wrong purpose, past expiry or an already-consumed id.
	ErrInvalidOrExpiredToken = errors.New("token invalid or expired")
)

// dummyHash is a valid bcrypt hash compared against when the email does
// not exist, so the unknown-email path costs the same as a real verify.
const dummyHash = "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"

// AccountStore is the slice of the user repository the credential
// service needs. *repository.UserRepo satisfies it.
type AccountStore interface {
	Create(ctx context.Context, email, passwordHash, role string) (uint64, error)
	GetByEmail(ctx context.Context, email string) (model.User, error)
	GetByID(ctx context.Context, id uint64) (model.User, error)
	UpdatePasswordHash(ctx context.Context, id uint64, passwordHash string) error
}

// Service implements registration, login and the password-reset token
// lifecycle. Tokens are stateless signed capabilities; when a consumed
// store is configured reset tokens additionally become single-use.
type Service struct {
	accounts   AccountStore
	signer     *Signer
	consumed   ConsumedTokenStore // nil disables single-use tracking
	bcryptCost int
	sessionTTL time.Duration
	resetTTL   time.Duration
}

// NewService wires a credential service. consumed may be nil; in that
// case a reset token stays valid until its expiry instant.
func NewService(accounts AccountStore, signer *Signer, consumed ConsumedTokenStore, bcryptCost int, sessionTTL, resetTTL time.Duration) *Service {
	return &Service{
		accounts:   accounts,
		signer:     signer,
		consumed:   consumed,
		bcryptCost: bcryptCost,
		sessionTTL: sessionTTL,
		resetTTL:   resetTTL,
	}
}

// Register hashes the password and creates a USER account. The plaintext
// never reaches the store. Duplicate emails surface as the repository's
// ErrEmailExists sentinel.
func (s *Service) Register(ctx context.Context, email, password string) (uint64, error) {
	email = normalizeEmail(email)
	hash, err := utils.HashPassword(password, s.bcryptCost)
	if err != nil {
		return 0, err
	}
	return s.accounts.Create(ctx, email, hash, model.RoleUser)
}

// Authenticate verifies the password and issues a session token carrying
// the account id and email. Unknown email and wrong password both come
// back as ErrInvalidCredentials, with a dummy bcrypt compare on the
// unknown-email path so response timing does not leak which it was.
func (s *Service) Authenticate(ctx context.Context, email, password string) (model.User, IssuedToken, error) {
	email = normalizeEmail(email)
	u, err := s.accounts.GetByEmail(ctx, email)
	if err != nil {
		utils.VerifyPassword(dummyHash, password)
		return model.User{}, IssuedToken{}, ErrInvalidCredentials
	}
	if !utils.VerifyPassword(u.PasswordHash, password) {
		return model.User{}, IssuedToken{}, ErrInvalidCredentials
	}
	tok, err := s.signer.Sign(u.ID, u.Email, u.Role, PurposeSession, s.sessionTTL)
	if err != nil {
		return model.User{}, IssuedToken{}, err
	}
	return u, tok, nil
}

// IssueResetToken signs a short-lived reset capability for the account
// matching the email. It embeds only the account id; the purpose tag
// keeps it useless as a session token.
func (s *Service) IssueResetToken(ctx context.Context, email string) (model.User, IssuedToken, error) {
	email = normalizeEmail(email)
	u, err := s.accounts.GetByEmail(ctx, email)
	if err != nil {
		return model.User{}, IssuedToken{}, ErrAccountNotFound
	}
	tok, err := s.signer.Sign(u.ID, "", "", PurposeReset, s.resetTTL)
	if err != nil {
		return model.User{}, IssuedToken{}, err
	}
	return u, tok, nil
}

// ResetPassword verifies the reset token and overwrites the account's
// password hash. With a consumed store configured the token id is
// claimed first, so presenting the same token twice fails even inside
// its validity window.
func (s *Service) ResetPassword(ctx context.Context, token, newPassword string) error {
	claims, err := s.signer.Verify(token, PurposeReset)
	if err != nil {
		return ErrInvalidOrExpiredToken
	}
	if s.consumed != nil && claims.TokenID != "" {
		fresh, err := s.consumed.Consume(ctx, claims.TokenID, time.Until(claims.Exp))
		if err != nil {
			return err
		}
		if !fresh {
			return ErrInvalidOrExpiredToken
		}
	}
	if _, err := s.accounts.GetByID(ctx, claims.UserID); err != nil {
		return ErrInvalidOrExpiredToken
	}
	hash, err := utils.HashPassword(newPassword, s.bcryptCost)
	if err != nil {
		return err
	}
	return s.accounts.UpdatePasswordHash(ctx, claims.UserID, hash)
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
