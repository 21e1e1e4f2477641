package main

import (
	"encoding/binary"
	"fmt"
	"strings"
	"time"

	"github.com/google/btree"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/webbmaffian/go-own/bucketmap"
)

func newHasher(name string) (bucketmap.Hasher[string], error) {
	switch strings.ToUpper(name) {
	case "SUM":
		return bucketmap.CodePointSum{}, nil
	case "XXHASH":
		return bucketmap.XXHash{}, nil
	case "SIPHASH":
		seed := uuid.New()
		return bucketmap.SipHash{
			K0: binary.LittleEndian.Uint64(seed[:8]),
			K1: binary.LittleEndian.Uint64(seed[8:]),
		}, nil
	}

	return nil, fmt.Errorf("unknown hasher %q", name)
}

type ref struct {
	key string
	val int
}

// TestMap puts N random UUID keys, overwrites every other one and checks the
// result against an ordered reference.
func TestMap(c Config, logger *zap.Logger) (err error) {
	if c.OffHeap {
		logger.Warn("String keys can't live off-heap, using heap entries.")
	}

	hasher, err := newHasher(c.Hasher)

	if err != nil {
		return
	}

	m := bucketmap.New[string, int](hasher,
		bucketmap.WithBuckets(c.Buckets),
		bucketmap.WithLoadFactor(c.LoadFactor),
		bucketmap.WithLogger(logger),
	)
	defer m.Close()

	keys := make([]string, c.N)

	for i := range keys {
		keys[i] = uuid.NewString()
	}

	p := startProgress(c.Progress, "MAP put", c.N+c.N/2)
	t0 := time.Now()

	for i, key := range keys {
		m.Put(key, i)
		p.Add(1)
	}

	for i := 0; i < len(keys); i += 2 {
		m.Put(keys[i], -i)
		p.Add(1)
	}

	p.Stop()
	put := time.Since(t0)

	if c.Verify {
		if err = verifyMap(m, keys); err != nil {
			return
		}
	}

	s := m.Stats()

	logger.Info("Map done.",
		zap.Int("n", c.N),
		zap.String("hasher", c.Hasher),
		zap.Duration("put", put),
		zap.Int("len", s.Len),
		zap.Int("buckets", s.Buckets),
		zap.Int("empty_buckets", s.EmptyBuckets),
		zap.Int("longest_chain", s.LongestChain),
		zap.Float64("load_factor", s.LoadFactor))

	return
}

func verifyMap(m *bucketmap.Map[string, int], keys []string) error {
	model := btree.NewG[ref](32, func(a, b ref) bool { return a.key < b.key })

	for i, key := range keys {
		model.ReplaceOrInsert(ref{key, i})
	}

	for i := 0; i < len(keys); i += 2 {
		model.ReplaceOrInsert(ref{keys[i], -i})
	}

	if m.Len() != model.Len() {
		return fmt.Errorf("expected %d entries, got %d", model.Len(), m.Len())
	}

	var err error

	model.Ascend(func(r ref) bool {
		if v, ok := m.Get(r.key); !ok || v != r.val {
			err = fmt.Errorf("key %s: expected %d, got %d (%v)", r.key, r.val, v, ok)
			return false
		}

		return true
	})

	return err
}
