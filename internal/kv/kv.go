// Package kv defines the key-value store contract the rest of the backend is
// built on: plain get/set/delete, prefix scans, a couple of explicit index
// primitives, and an atomic multi-write batch.
package kv

import (
	"context"
	"errors"
)

// ErrNotFound is returned by Get when the key is absent.
var ErrNotFound = errors.New("kv: key not found")

// OpKind identifies a write inside an atomic batch.
type OpKind int

const (
	OpSet OpKind = iota
	OpSAdd
	OpZAdd
)

// Op is a single write in an atomic batch.
type Op struct {
	Kind   OpKind
	Key    string
	Value  []byte  // OpSet
	Member string  // OpSAdd, OpZAdd
	Score  float64 // OpZAdd
}

// Store is the persistence contract. Ordering of GetByPrefix results is not
// guaranteed; callers impose their own ordering.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	GetByPrefix(ctx context.Context, prefix string) ([][]byte, error)

	// MGet returns one entry per key; absent keys yield a nil slice.
	MGet(ctx context.Context, keys []string) ([][]byte, error)

	// Set membership index (e.g. products by seller).
	SAdd(ctx context.Context, key string, members ...string) error
	SMembers(ctx context.Context, key string) ([]string, error)

	// Score-ordered index (e.g. products by creation time). ZRange returns
	// members in ascending score order, or descending when rev is true.
	ZAdd(ctx context.Context, key string, score float64, member string) error
	ZRange(ctx context.Context, key string, rev bool) ([]string, error)

	// Atomic applies all ops as a single transaction: either every write is
	// visible or none is.
	Atomic(ctx context.Context, ops []Op) error

	Close()
}
