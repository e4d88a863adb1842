package auth

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/srm-campusmart/backend/internal/kv/memory"
	apperrors "github.com/srm-campusmart/backend/pkg/errors"
)

func newTestProvider() *Provider {
	return NewProvider(memory.NewStore(), "test-secret", time.Hour)
}

func TestCreateAndAuthenticate(t *testing.T) {
	p := newTestProvider()
	ctx := context.Background()

	userID, err := p.CreateCredentials(ctx, "a@srmist.edu.in", "hunter22")
	require.NoError(t, err)
	require.NotEmpty(t, userID)

	got, err := p.Authenticate(ctx, "a@srmist.edu.in", "hunter22")
	require.NoError(t, err)
	assert.Equal(t, userID, got)

	// Email lookup is case-insensitive.
	got, err = p.Authenticate(ctx, "A@SRMIST.edu.in", "hunter22")
	require.NoError(t, err)
	assert.Equal(t, userID, got)
}

func TestAuthenticateRejectsBadPassword(t *testing.T) {
	p := newTestProvider()
	ctx := context.Background()

	_, err := p.CreateCredentials(ctx, "a@srmist.edu.in", "hunter22")
	require.NoError(t, err)

	_, err = p.Authenticate(ctx, "a@srmist.edu.in", "wrong")
	assert.ErrorIs(t, err, apperrors.ErrBadCredentials)

	_, err = p.Authenticate(ctx, "nobody@srmist.edu.in", "hunter22")
	assert.ErrorIs(t, err, apperrors.ErrBadCredentials)
}

func TestCreateCredentialsRejectsDuplicateEmail(t *testing.T) {
	p := newTestProvider()
	ctx := context.Background()

	_, err := p.CreateCredentials(ctx, "a@srmist.edu.in", "hunter22")
	require.NoError(t, err)

	_, err = p.CreateCredentials(ctx, "A@srmist.edu.in", "other")
	assert.ErrorIs(t, err, apperrors.ErrEmailTaken)
}

func TestMintAndVerifyToken(t *testing.T) {
	p := newTestProvider()

	token, err := p.MintToken("user-123")
	require.NoError(t, err)

	userID, err := p.VerifyToken(token)
	require.NoError(t, err)
	assert.Equal(t, "user-123", userID)
}

func TestVerifyTokenRejectsGarbage(t *testing.T) {
	p := newTestProvider()

	_, err := p.VerifyToken("not-a-token")
	assert.Error(t, err)
}

func TestVerifyTokenRejectsWrongSecret(t *testing.T) {
	other := NewProvider(memory.NewStore(), "other-secret", time.Hour)
	token, err := other.MintToken("user-123")
	require.NoError(t, err)

	p := newTestProvider()
	_, err = p.VerifyToken(token)
	assert.Error(t, err)
}

func TestVerifyTokenRejectsExpired(t *testing.T) {
	p := NewProvider(memory.NewStore(), "test-secret", -time.Minute)
	token, err := p.MintToken("user-123")
	require.NoError(t, err)

	_, err = p.VerifyToken(token)
	assert.Error(t, err)
}
