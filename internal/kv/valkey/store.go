// Package valkey implements the kv.Store contract on a Valkey server. Records
// are stored as JSON strings under prefixed keys; indices use native sets and
// sorted sets; atomic batches go through MULTI/EXEC.
package valkey

import (
	"context"
	"fmt"

	vk "github.com/valkey-io/valkey-go"

	"github.com/srm-campusmart/backend/internal/kv"
)

type Store struct {
	client vk.Client
}

// NewStore connects to the Valkey server at addr.
func NewStore(addr string) (*Store, error) {
	client, err := vk.NewClient(vk.ClientOption{InitAddress: []string{addr}})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to valkey at %s: %w", addr, err)
	}
	return &Store{client: client}, nil
}

func (s *Store) Get(ctx context.Context, key string) ([]byte, error) {
	val, err := s.client.Do(ctx, s.client.B().Get().Key(key).Build()).AsBytes()
	if err != nil {
		if vk.IsValkeyNil(err) {
			return nil, kv.ErrNotFound
		}
		return nil, err
	}
	return val, nil
}

func (s *Store) Set(ctx context.Context, key string, value []byte) error {
	return s.client.Do(ctx, s.client.B().Set().Key(key).Value(string(value)).Build()).Error()
}

func (s *Store) Delete(ctx context.Context, key string) error {
	return s.client.Do(ctx, s.client.B().Del().Key(key).Build()).Error()
}

func (s *Store) GetByPrefix(ctx context.Context, prefix string) ([][]byte, error) {
	var keys []string
	var cursor uint64
	for {
		entry, err := s.client.Do(ctx,
			s.client.B().Scan().Cursor(cursor).Match(prefix+"*").Count(256).Build()).AsScanEntry()
		if err != nil {
			return nil, err
		}
		keys = append(keys, entry.Elements...)
		cursor = entry.Cursor
		if cursor == 0 {
			break
		}
	}
	if len(keys) == 0 {
		return nil, nil
	}
	return s.MGet(ctx, keys)
}

func (s *Store) MGet(ctx context.Context, keys []string) ([][]byte, error) {
	if len(keys) == 0 {
		return nil, nil
	}
	arr, err := s.client.Do(ctx, s.client.B().Mget().Key(keys...).Build()).ToArray()
	if err != nil {
		return nil, err
	}
	out := make([][]byte, len(arr))
	for i, msg := range arr {
		if msg.IsNil() {
			continue
		}
		b, err := msg.AsBytes()
		if err != nil {
			return nil, err
		}
		out[i] = b
	}
	return out, nil
}

func (s *Store) SAdd(ctx context.Context, key string, members ...string) error {
	return s.client.Do(ctx, s.client.B().Sadd().Key(key).Member(members...).Build()).Error()
}

func (s *Store) SMembers(ctx context.Context, key string) ([]string, error) {
	return s.client.Do(ctx, s.client.B().Smembers().Key(key).Build()).AsStrSlice()
}

func (s *Store) ZAdd(ctx context.Context, key string, score float64, member string) error {
	return s.client.Do(ctx,
		s.client.B().Zadd().Key(key).ScoreMember().ScoreMember(score, member).Build()).Error()
}

func (s *Store) ZRange(ctx context.Context, key string, rev bool) ([]string, error) {
	if rev {
		return s.client.Do(ctx,
			s.client.B().Zrange().Key(key).Min("0").Max("-1").Rev().Build()).AsStrSlice()
	}
	return s.client.Do(ctx,
		s.client.B().Zrange().Key(key).Min("0").Max("-1").Build()).AsStrSlice()
}

// Atomic wraps the ops in MULTI/EXEC so partial writes are never visible.
func (s *Store) Atomic(ctx context.Context, ops []kv.Op) error {
	cmds := make([]vk.Completed, 0, len(ops)+2)
	cmds = append(cmds, s.client.B().Multi().Build())
	for _, op := range ops {
		switch op.Kind {
		case kv.OpSet:
			cmds = append(cmds, s.client.B().Set().Key(op.Key).Value(string(op.Value)).Build())
		case kv.OpSAdd:
			cmds = append(cmds, s.client.B().Sadd().Key(op.Key).Member(op.Member).Build())
		case kv.OpZAdd:
			cmds = append(cmds,
				s.client.B().Zadd().Key(op.Key).ScoreMember().ScoreMember(op.Score, op.Member).Build())
		default:
			return fmt.Errorf("unknown op kind %d for key %s", op.Kind, op.Key)
		}
	}
	cmds = append(cmds, s.client.B().Exec().Build())
	for _, resp := range s.client.DoMulti(ctx, cmds...) {
		if err := resp.Error(); err != nil {
			return err
		}
	}
	return nil
}

func (s *Store) Close() {
	s.client.Close()
}
