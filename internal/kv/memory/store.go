// Package memory is an in-memory kv.Store used by tests and local development.
package memory

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/srm-campusmart/backend/internal/kv"
)

type Store struct {
	mu     sync.RWMutex
	data   map[string][]byte
	sets   map[string]map[string]struct{}
	sorted map[string]map[string]float64 // key -> member -> score
}

func NewStore() *Store {
	return &Store{
		data:   make(map[string][]byte),
		sets:   make(map[string]map[string]struct{}),
		sorted: make(map[string]map[string]float64),
	}
}

func (s *Store) Get(_ context.Context, key string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	val, ok := s.data[key]
	if !ok {
		return nil, kv.ErrNotFound
	}
	out := make([]byte, len(val))
	copy(out, val)
	return out, nil
}

func (s *Store) Set(_ context.Context, key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.set(key, value)
	return nil
}

func (s *Store) set(key string, value []byte) {
	stored := make([]byte, len(value))
	copy(stored, value)
	s.data[key] = stored
}

func (s *Store) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, key)
	return nil
}

func (s *Store) GetByPrefix(_ context.Context, prefix string) ([][]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out [][]byte
	for key, val := range s.data {
		if strings.HasPrefix(key, prefix) {
			cp := make([]byte, len(val))
			copy(cp, val)
			out = append(out, cp)
		}
	}
	return out, nil
}

func (s *Store) MGet(_ context.Context, keys []string) ([][]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([][]byte, len(keys))
	for i, key := range keys {
		if val, ok := s.data[key]; ok {
			cp := make([]byte, len(val))
			copy(cp, val)
			out[i] = cp
		}
	}
	return out, nil
}

func (s *Store) SAdd(_ context.Context, key string, members ...string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sadd(key, members...)
	return nil
}

func (s *Store) sadd(key string, members ...string) {
	set, ok := s.sets[key]
	if !ok {
		set = make(map[string]struct{})
		s.sets[key] = set
	}
	for _, m := range members {
		set[m] = struct{}{}
	}
}

func (s *Store) SMembers(_ context.Context, key string) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	members := make([]string, 0, len(s.sets[key]))
	for m := range s.sets[key] {
		members = append(members, m)
	}
	return members, nil
}

func (s *Store) ZAdd(_ context.Context, key string, score float64, member string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.zadd(key, score, member)
	return nil
}

func (s *Store) zadd(key string, score float64, member string) {
	zset, ok := s.sorted[key]
	if !ok {
		zset = make(map[string]float64)
		s.sorted[key] = zset
	}
	zset[member] = score
}

func (s *Store) ZRange(_ context.Context, key string, rev bool) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	zset := s.sorted[key]
	members := make([]string, 0, len(zset))
	for m := range zset {
		members = append(members, m)
	}
	sort.Slice(members, func(i, j int) bool {
		si, sj := zset[members[i]], zset[members[j]]
		if si == sj {
			return members[i] < members[j]
		}
		if rev {
			return si > sj
		}
		return si < sj
	})
	return members, nil
}

// Atomic holds the write lock across the whole batch.
func (s *Store) Atomic(_ context.Context, ops []kv.Op) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, op := range ops {
		switch op.Kind {
		case kv.OpSet:
			s.set(op.Key, op.Value)
		case kv.OpSAdd:
			s.sadd(op.Key, op.Member)
		case kv.OpZAdd:
			s.zadd(op.Key, op.Score, op.Member)
		}
	}
	return nil
}

func (s *Store) Close() {}
