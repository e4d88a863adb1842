package storage

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/srm-campusmart/backend/internal/kv/memory"
	"github.com/srm-campusmart/backend/internal/models"
	apperrors "github.com/srm-campusmart/backend/pkg/errors"
)

func newProduct(id, sellerID string, createdAt time.Time) *models.Product {
	return &models.Product{
		ID:          id,
		Title:       "Item " + id,
		Price:       100,
		Condition:   models.ConditionGood,
		SellerID:    sellerID,
		SellerName:  "Seller",
		SellerEmail: "seller@srmist.edu.in",
		Status:      "active",
		CreatedAt:   createdAt,
	}
}

func TestProductCreateAndGet(t *testing.T) {
	s := NewProductStore(memory.NewStore())
	ctx := context.Background()

	p := newProduct("p1", "u1", time.Now().UTC())
	require.NoError(t, s.Create(ctx, p))

	got, err := s.Get(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, p.Title, got.Title)
	assert.Equal(t, p.SellerEmail, got.SellerEmail)

	_, err = s.Get(ctx, "nope")
	assert.ErrorIs(t, err, apperrors.ErrProductNotFound)
}

func TestProductListNewestFirst(t *testing.T) {
	s := NewProductStore(memory.NewStore())
	ctx := context.Background()

	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	// Deliberately inserted out of creation order.
	require.NoError(t, s.Create(ctx, newProduct("p2", "u1", base.Add(2*time.Minute))))
	require.NoError(t, s.Create(ctx, newProduct("p1", "u1", base.Add(1*time.Minute))))
	require.NoError(t, s.Create(ctx, newProduct("p3", "u1", base.Add(3*time.Minute))))

	products, err := s.List(ctx)
	require.NoError(t, err)
	require.Len(t, products, 3)
	assert.Equal(t, "p3", products[0].ID)
	assert.Equal(t, "p2", products[1].ID)
	assert.Equal(t, "p1", products[2].ID)
}

func TestProductListBySeller(t *testing.T) {
	s := NewProductStore(memory.NewStore())
	ctx := context.Background()

	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	require.NoError(t, s.Create(ctx, newProduct("p1", "alice", base.Add(time.Minute))))
	require.NoError(t, s.Create(ctx, newProduct("p2", "bob", base.Add(2*time.Minute))))
	require.NoError(t, s.Create(ctx, newProduct("p3", "alice", base.Add(3*time.Minute))))

	products, err := s.ListBySeller(ctx, "alice")
	require.NoError(t, err)
	require.Len(t, products, 2)
	assert.Equal(t, "p3", products[0].ID)
	assert.Equal(t, "p1", products[1].ID)
}

func TestProductListEmpty(t *testing.T) {
	s := NewProductStore(memory.NewStore())

	products, err := s.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, products)
}
