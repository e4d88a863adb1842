// Package storage holds the per-entity stores built on the kv adapter. Keys
// are namespaced by prefix (user:, product:, message:, conversation:) with
// explicit secondary indices where ordering or lookup by owner is needed.
package storage

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/srm-campusmart/backend/internal/kv"
	"github.com/srm-campusmart/backend/internal/models"
	apperrors "github.com/srm-campusmart/backend/pkg/errors"
)

const userPrefix = "user:"

type UserStore struct {
	kv kv.Store
}

func NewUserStore(store kv.Store) *UserStore {
	return &UserStore{kv: store}
}

func userKey(id string) string { return userPrefix + id }

func (s *UserStore) Create(ctx context.Context, u *models.User) error {
	raw, err := json.Marshal(u)
	if err != nil {
		return err
	}
	if err := s.kv.Set(ctx, userKey(u.ID), raw); err != nil {
		return apperrors.ErrStoreFailure(err)
	}
	return nil
}

func (s *UserStore) Get(ctx context.Context, id string) (*models.User, error) {
	raw, err := s.kv.Get(ctx, userKey(id))
	if err != nil {
		if errors.Is(err, kv.ErrNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, apperrors.ErrStoreFailure(err)
	}
	var u models.User
	if err := json.Unmarshal(raw, &u); err != nil {
		return nil, apperrors.ErrStoreFailure(err)
	}
	return &u, nil
}

// Update overwrites the stored record. Last write wins.
func (s *UserStore) Update(ctx context.Context, u *models.User) error {
	return s.Create(ctx, u)
}
