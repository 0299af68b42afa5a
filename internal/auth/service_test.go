package auth

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/sportplus/backend/internal/model"
	"github.com/sportplus/backend/internal/repository"
	"github.com/sportplus/backend/internal/utils"
)

// memAccounts is an in-memory AccountStore for exercising the service
// without a database.
type memAccounts struct {
	nextID uint64
	byID   map[uint64]model.User
}

func newMemAccounts() *memAccounts {
	return &memAccounts{byID: make(map[uint64]model.User)}
}

func (m *memAccounts) Create(_ context.Context, email, passwordHash, role string) (uint64, error) {
	for _, u := range m.byID {
		if u.Email == email {
			return 0, repository.ErrEmailExists
		}
	}
	m.nextID++
	m.byID[m.nextID] = model.User{ID: m.nextID, Email: email, PasswordHash: passwordHash, Role: role}
	return m.nextID, nil
}

func (m *memAccounts) GetByEmail(_ context.Context, email string) (model.User, error) {
	for _, u := range m.byID {
		if u.Email == email {
			return u, nil
		}
	}
	return model.User{}, repository.ErrNotFound
}

func (m *memAccounts) GetByID(_ context.Context, id uint64) (model.User, error) {
	u, ok := m.byID[id]
	if !ok {
		return model.User{}, repository.ErrNotFound
	}
	return u, nil
}

func (m *memAccounts) UpdatePasswordHash(_ context.Context, id uint64, passwordHash string) error {
	u, ok := m.byID[id]
	if !ok {
		return repository.ErrNotFound
	}
	u.PasswordHash = passwordHash
	m.byID[id] = u
	return nil
}

// memConsumed marks token ids as used in memory.
type memConsumed struct {
	seen map[string]bool
}

func (m *memConsumed) Consume(_ context.Context, tokenID string, _ time.Duration) (bool, error) {
	if m.seen == nil {
		m.seen = make(map[string]bool)
	}
	if m.seen[tokenID] {
		return false, nil
	}
	m.seen[tokenID] = true
	return true, nil
}

// cost 4 keeps the bcrypt work factor low for tests
const testBcryptCost = 4

func newTestService(consumed ConsumedTokenStore) (*Service, *memAccounts) {
	accounts := newMemAccounts()
	signer := NewSigner("test-secret")
	return NewService(accounts, signer, consumed, testBcryptCost, time.Hour, 15*time.Minute), accounts
}

func TestRegisterHashesPassword(t *testing.T) {
	svc, accounts := newTestService(nil)

	id, err := svc.Register(context.Background(), "  Ada@Example.COM ", "hunter22")
	require.NoError(t, err)

	u := accounts.byID[id]
	require.Equal(t, "ada@example.com", u.Email)
	require.Equal(t, model.RoleUser, u.Role)
	require.NotEqual(t, "hunter22", u.PasswordHash)
	require.True(t, utils.VerifyPassword(u.PasswordHash, "hunter22"))
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc, _ := newTestService(nil)
	ctx := context.Background()

	_, err := svc.Register(ctx, "ada@example.com", "hunter22")
	require.NoError(t, err)

	_, err = svc.Register(ctx, "ADA@example.com", "other")
	require.ErrorIs(t, err, repository.ErrEmailExists)
}

func TestAuthenticateSuccess(t *testing.T) {
	svc, _ := newTestService(nil)
	ctx := context.Background()

	id, err := svc.Register(ctx, "ada@example.com", "hunter22")
	require.NoError(t, err)

	u, tok, err := svc.Authenticate(ctx, "ada@example.com", "hunter22")
	require.NoError(t, err)
	require.Equal(t, id, u.ID)
	require.NotEmpty(t, tok.Token)

	claims, err := svc.signer.Verify(tok.Token, PurposeSession)
	require.NoError(t, err)
	require.Equal(t, id, claims.UserID)
	require.Equal(t, model.RoleUser, claims.Role)
}

func TestAuthenticateFailuresIndistinguishable(t *testing.T) {
	svc, _ := newTestService(nil)
	ctx := context.Background()

	_, err := svc.Register(ctx, "ada@example.com", "hunter22")
	require.NoError(t, err)

	_, _, unknownErr := svc.Authenticate(ctx, "nobody@example.com", "hunter22")
	_, _, wrongErr := svc.Authenticate(ctx, "ada@example.com", "wrong")

	require.ErrorIs(t, unknownErr, ErrInvalidCredentials)
	require.ErrorIs(t, wrongErr, ErrInvalidCredentials)
	require.Equal(t, unknownErr, wrongErr)
}

func TestResetFlow(t *testing.T) {
	svc, accounts := newTestService(nil)
	ctx := context.Background()

	id, err := svc.Register(ctx, "ada@example.com", "old-password")
	require.NoError(t, err)

	u, tok, err := svc.IssueResetToken(ctx, "ada@example.com")
	require.NoError(t, err)
	require.Equal(t, id, u.ID)

	// the reset token must not work as a session token
	_, err = svc.signer.Verify(tok.Token, PurposeSession)
	require.ErrorIs(t, err, ErrInvalidOrExpiredToken)

	require.NoError(t, svc.ResetPassword(ctx, tok.Token, "new-password"))
	require.True(t, utils.VerifyPassword(accounts.byID[id].PasswordHash, "new-password"))

	_, _, err = svc.Authenticate(ctx, "ada@example.com", "old-password")
	require.ErrorIs(t, err, ErrInvalidCredentials)
	_, _, err = svc.Authenticate(ctx, "ada@example.com", "new-password")
	require.NoError(t, err)
}

func TestResetTokenUnknownEmail(t *testing.T) {
	svc, _ := newTestService(nil)

	_, _, err := svc.IssueResetToken(context.Background(), "nobody@example.com")
	require.ErrorIs(t, err, ErrAccountNotFound)
}

func TestResetPasswordRejectsSessionToken(t *testing.T) {
	svc, _ := newTestService(nil)
	ctx := context.Background()

	_, err := svc.Register(ctx, "ada@example.com", "hunter22")
	require.NoError(t, err)
	_, tok, err := svc.Authenticate(ctx, "ada@example.com", "hunter22")
	require.NoError(t, err)

	err = svc.ResetPassword(ctx, tok.Token, "new-password")
	require.ErrorIs(t, err, ErrInvalidOrExpiredToken)
}

func TestResetPasswordSingleUse(t *testing.T) {
	svc, _ := newTestService(&memConsumed{})
	ctx := context.Background()

	_, err := svc.Register(ctx, "ada@example.com", "old-password")
	require.NoError(t, err)

	_, tok, err := svc.IssueResetToken(ctx, "ada@example.com")
	require.NoError(t, err)

	require.NoError(t, svc.ResetPassword(ctx, tok.Token, "first"))

	err = svc.ResetPassword(ctx, tok.Token, "second")
	require.ErrorIs(t, err, ErrInvalidOrExpiredToken)

	_, _, err = svc.Authenticate(ctx, "ada@example.com", "first")
	require.NoError(t, err)
}
