package storage

import (
	"context"
	"encoding/json"
	"errors"
	"sort"

	"github.com/srm-campusmart/backend/internal/kv"
	"github.com/srm-campusmart/backend/internal/models"
	apperrors "github.com/srm-campusmart/backend/pkg/errors"
)

const (
	productPrefix     = "product:"
	productCreatedIdx = "idx:products:created"
	productSellerIdx  = "idx:products:seller:"
)

type ProductStore struct {
	kv kv.Store
}

func NewProductStore(store kv.Store) *ProductStore {
	return &ProductStore{kv: store}
}

func productKey(id string) string { return productPrefix + id }

// Create stores the product and its creation-time and seller indices in one
// atomic batch.
func (s *ProductStore) Create(ctx context.Context, p *models.Product) error {
	raw, err := json.Marshal(p)
	if err != nil {
		return err
	}
	ops := []kv.Op{
		{Kind: kv.OpSet, Key: productKey(p.ID), Value: raw},
		{Kind: kv.OpZAdd, Key: productCreatedIdx, Score: float64(p.CreatedAt.UnixNano()), Member: p.ID},
		{Kind: kv.OpSAdd, Key: productSellerIdx + p.SellerID, Member: p.ID},
	}
	if err := s.kv.Atomic(ctx, ops); err != nil {
		return apperrors.ErrStoreFailure(err)
	}
	return nil
}

func (s *ProductStore) Get(ctx context.Context, id string) (*models.Product, error) {
	raw, err := s.kv.Get(ctx, productKey(id))
	if err != nil {
		if errors.Is(err, kv.ErrNotFound) {
			return nil, apperrors.ErrProductNotFound
		}
		return nil, apperrors.ErrStoreFailure(err)
	}
	var p models.Product
	if err := json.Unmarshal(raw, &p); err != nil {
		return nil, apperrors.ErrStoreFailure(err)
	}
	return &p, nil
}

// List returns all products newest first, from the creation-time index.
func (s *ProductStore) List(ctx context.Context) ([]*models.Product, error) {
	ids, err := s.kv.ZRange(ctx, productCreatedIdx, true)
	if err != nil {
		return nil, apperrors.ErrStoreFailure(err)
	}
	return s.fetch(ctx, ids)
}

// ListBySeller returns one seller's products newest first.
func (s *ProductStore) ListBySeller(ctx context.Context, sellerID string) ([]*models.Product, error) {
	ids, err := s.kv.SMembers(ctx, productSellerIdx+sellerID)
	if err != nil {
		return nil, apperrors.ErrStoreFailure(err)
	}
	products, err := s.fetch(ctx, ids)
	if err != nil {
		return nil, err
	}
	sortProductsNewestFirst(products)
	return products, nil
}

func (s *ProductStore) fetch(ctx context.Context, ids []string) ([]*models.Product, error) {
	if len(ids) == 0 {
		return []*models.Product{}, nil
	}
	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = productKey(id)
	}
	raws, err := s.kv.MGet(ctx, keys)
	if err != nil {
		return nil, apperrors.ErrStoreFailure(err)
	}
	products := make([]*models.Product, 0, len(raws))
	for _, raw := range raws {
		if raw == nil {
			// Index entry pointing at a record deleted out of band.
			continue
		}
		var p models.Product
		if err := json.Unmarshal(raw, &p); err != nil {
			return nil, apperrors.ErrStoreFailure(err)
		}
		products = append(products, &p)
	}
	return products, nil
}

func sortProductsNewestFirst(products []*models.Product) {
	sort.Slice(products, func(i, j int) bool {
		return products[i].CreatedAt.After(products[j].CreatedAt)
	})
}
