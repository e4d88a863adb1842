package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/srm-campusmart/backend/internal/kv"
)

func TestGetSetDelete(t *testing.T) {
	s := NewStore()
	ctx := context.Background()

	_, err := s.Get(ctx, "missing")
	assert.ErrorIs(t, err, kv.ErrNotFound)

	require.NoError(t, s.Set(ctx, "k", []byte("v")))
	val, err := s.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, []byte("v"), val)

	require.NoError(t, s.Delete(ctx, "k"))
	_, err = s.Get(ctx, "k")
	assert.ErrorIs(t, err, kv.ErrNotFound)
}

func TestGetByPrefix(t *testing.T) {
	s := NewStore()
	ctx := context.Background()

	require.NoError(t, s.Set(ctx, "product:1", []byte("a")))
	require.NoError(t, s.Set(ctx, "product:2", []byte("b")))
	require.NoError(t, s.Set(ctx, "user:1", []byte("c")))

	vals, err := s.GetByPrefix(ctx, "product:")
	require.NoError(t, err)
	assert.Len(t, vals, 2)
}

func TestMGetPreservesOrderAndNils(t *testing.T) {
	s := NewStore()
	ctx := context.Background()

	require.NoError(t, s.Set(ctx, "a", []byte("1")))
	require.NoError(t, s.Set(ctx, "c", []byte("3")))

	vals, err := s.MGet(ctx, []string{"a", "b", "c"})
	require.NoError(t, err)
	require.Len(t, vals, 3)
	assert.Equal(t, []byte("1"), vals[0])
	assert.Nil(t, vals[1])
	assert.Equal(t, []byte("3"), vals[2])
}

func TestZRangeOrdering(t *testing.T) {
	s := NewStore()
	ctx := context.Background()

	require.NoError(t, s.ZAdd(ctx, "idx", 3, "c"))
	require.NoError(t, s.ZAdd(ctx, "idx", 1, "a"))
	require.NoError(t, s.ZAdd(ctx, "idx", 2, "b"))

	asc, err := s.ZRange(ctx, "idx", false)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b", "c"}, asc)

	desc, err := s.ZRange(ctx, "idx", true)
	require.NoError(t, err)
	assert.Equal(t, []string{"c", "b", "a"}, desc)
}

func TestAtomicAppliesAllOps(t *testing.T) {
	s := NewStore()
	ctx := context.Background()

	err := s.Atomic(ctx, []kv.Op{
		{Kind: kv.OpSet, Key: "k", Value: []byte("v")},
		{Kind: kv.OpSAdd, Key: "set", Member: "m"},
		{Kind: kv.OpZAdd, Key: "z", Score: 5, Member: "zm"},
	})
	require.NoError(t, err)

	val, err := s.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, []byte("v"), val)

	members, err := s.SMembers(ctx, "set")
	require.NoError(t, err)
	assert.Equal(t, []string{"m"}, members)

	zmembers, err := s.ZRange(ctx, "z", false)
	require.NoError(t, err)
	assert.Equal(t, []string{"zm"}, zmembers)
}
