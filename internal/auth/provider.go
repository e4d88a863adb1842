// Package auth is the identity provider: it owns credential records, password
// checks, and bearer-token mint/verify. User profile data lives elsewhere; a
// credential only maps a login email to a user id.
package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/srm-campusmart/backend/internal/kv"
	apperrors "github.com/srm-campusmart/backend/pkg/errors"
)

const credentialPrefix = "auth:cred:"

// Credential is the stored login record, keyed by normalized email.
type Credential struct {
	UserID       string    `json:"userId"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"passwordHash"`
	CreatedAt    time.Time `json:"createdAt"`
}

type Provider struct {
	store    kv.Store
	secret   []byte
	tokenTTL time.Duration
}

func NewProvider(store kv.Store, secret string, tokenTTL time.Duration) *Provider {
	return &Provider{store: store, secret: []byte(secret), tokenTTL: tokenTTL}
}

func credentialKey(email string) string {
	return credentialPrefix + strings.ToLower(strings.TrimSpace(email))
}

// CreateCredentials hashes the password and stores a new credential record,
// assigning and returning a fresh user id. Fails when the email is taken.
func (p *Provider) CreateCredentials(ctx context.Context, email, password string) (string, error) {
	key := credentialKey(email)
	if _, err := p.store.Get(ctx, key); err == nil {
		return "", apperrors.ErrEmailTaken
	} else if !errors.Is(err, kv.ErrNotFound) {
		return "", apperrors.ErrStoreFailure(err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}

	cred := Credential{
		UserID:       uuid.NewString(),
		Email:        strings.ToLower(strings.TrimSpace(email)),
		PasswordHash: string(hash),
		CreatedAt:    time.Now().UTC(),
	}
	raw, err := json.Marshal(cred)
	if err != nil {
		return "", err
	}
	if err := p.store.Set(ctx, key, raw); err != nil {
		return "", apperrors.ErrStoreFailure(err)
	}
	return cred.UserID, nil
}

// Authenticate checks email+password and returns the matching user id.
func (p *Provider) Authenticate(ctx context.Context, email, password string) (string, error) {
	raw, err := p.store.Get(ctx, credentialKey(email))
	if err != nil {
		if errors.Is(err, kv.ErrNotFound) {
			return "", apperrors.ErrBadCredentials
		}
		return "", apperrors.ErrStoreFailure(err)
	}
	var cred Credential
	if err := json.Unmarshal(raw, &cred); err != nil {
		return "", apperrors.ErrStoreFailure(err)
	}
	if bcrypt.CompareHashAndPassword([]byte(cred.PasswordHash), []byte(password)) != nil {
		return "", apperrors.ErrBadCredentials
	}
	return cred.UserID, nil
}

// MintToken issues a signed HS256 bearer token for the user.
func (p *Provider) MintToken(userID string) (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   userID,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(p.tokenTTL)),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(p.secret)
}

// VerifyToken validates a bearer token and returns the user id it carries.
func (p *Provider) VerifyToken(tokenString string) (string, error) {
	token, err := jwt.ParseWithClaims(tokenString, &jwt.RegisteredClaims{},
		func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
			}
			return p.secret, nil
		})
	if err != nil || !token.Valid {
		return "", apperrors.Unauthorized("invalid or expired token")
	}
	claims, ok := token.Claims.(*jwt.RegisteredClaims)
	if !ok || claims.Subject == "" {
		return "", apperrors.Unauthorized("invalid token claims")
	}
	return claims.Subject, nil
}
