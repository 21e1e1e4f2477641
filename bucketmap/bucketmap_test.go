package bucketmap

import (
	"errors"
	"math"
	"math/rand"
	"testing"

	"github.com/fulldump/biff"
	"github.com/google/btree"
	"github.com/webbmaffian/go-own/arena"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestStringMap(t *testing.T) {

	biff.Alternative("String map with 30 buckets", func(a *biff.A) {

		m := NewStrings[int]()

		biff.AssertEqual(m.Buckets(), 30)
		biff.AssertEqual(m.Len(), 0)

		a.Alternative("Upsert", func(a *biff.A) {
			m.Put("foo", 12)
			m.Put("bar", 24)
			m.Put("foo", 36)

			biff.AssertEqual(m.Len(), 2)

			v, ok := m.Get("foo")
			biff.AssertTrue(ok)
			biff.AssertEqual(v, 36)

			v, ok = m.Get("bar")
			biff.AssertTrue(ok)
			biff.AssertEqual(v, 24)

			_, ok = m.Get("baz")
			biff.AssertFalse(ok)
			biff.AssertFalse(m.Has("baz"))

			a.Alternative("Only one entry per key", func(a *biff.A) {
				n := 0
				c := m.Chain("foo")

				for c.Next() {
					if c.Key() == "foo" {
						n++
					}
				}

				biff.AssertEqual(n, 1)
			})

			a.Alternative("Delete", func(a *biff.A) {
				biff.AssertTrue(m.Delete("foo"))
				biff.AssertFalse(m.Delete("foo"))
				biff.AssertEqual(m.Len(), 1)

				_, ok := m.Get("foo")
				biff.AssertFalse(ok)

				v, _ := m.Get("bar")
				biff.AssertEqual(v, 24)
			})

			a.Alternative("GetPtr", func(a *biff.A) {
				p, ok := m.GetPtr("bar")
				biff.AssertTrue(ok)
				*p = 48

				v, _ := m.Get("bar")
				biff.AssertEqual(v, 48)
			})

			a.Alternative("Clear", func(a *biff.A) {
				m.Clear()

				biff.AssertEqual(m.Len(), 0)
				biff.AssertFalse(m.Has("bar"))
				biff.AssertEqual(m.Buckets(), 30)

				m.Put("bar", 1)
				v, _ := m.Get("bar")
				biff.AssertEqual(v, 1)
			})
		})

		a.Alternative("Anagrams collide", func(a *biff.A) {
			m.Put("ab", 1)
			m.Put("ba", 2)

			biff.AssertEqual(m.ChainLen("ab"), 2)

			m.Put("ba", 3)

			v, _ := m.Get("ab")
			biff.AssertEqual(v, 1)

			v, _ = m.Get("ba")
			biff.AssertEqual(v, 3)

			a.Alternative("Delete head keeps tail", func(a *biff.A) {
				biff.AssertTrue(m.Delete("ab"))

				v, ok := m.Get("ba")
				biff.AssertTrue(ok)
				biff.AssertEqual(v, 3)
				biff.AssertEqual(m.ChainLen("ba"), 1)
			})

			a.Alternative("Delete tail keeps head", func(a *biff.A) {
				biff.AssertTrue(m.Delete("ba"))

				v, ok := m.Get("ab")
				biff.AssertTrue(ok)
				biff.AssertEqual(v, 1)
			})
		})
	})
}

func TestIntegerCollisions(t *testing.T) {
	m := NewIntegers[int, string]()

	// 5, 35 and 65 all land in bucket 5.
	m.Put(5, "five")
	m.Put(35, "thirty-five")
	m.Put(65, "sixty-five")

	if n := m.ChainLen(5); n != 3 {
		t.Fatalf("expected chain of 3, got %d", n)
	}

	m.Put(35, "changed")

	for key, want := range map[int]string{5: "five", 35: "changed", 65: "sixty-five"} {
		if v, ok := m.Get(key); !ok || v != want {
			t.Errorf("key %d: expected %q, got %q (%v)", key, want, v, ok)
		}
	}

	if _, ok := m.Get(95); ok {
		t.Error("expected 95 to be absent despite sharing the bucket")
	}

	// Chain keeps insertion order.
	var keys []int
	c := m.Chain(5)

	for c.Next() {
		keys = append(keys, c.Key())
	}

	if len(keys) != 3 || keys[0] != 5 || keys[1] != 35 || keys[2] != 65 {
		t.Fatalf("unexpected chain order %v", keys)
	}
}

func TestNegativeIntegerKeys(t *testing.T) {
	m := NewIntegers[int64, int]()

	m.Put(-1, 1)
	m.Put(-31, 31)

	if v, ok := m.Get(-1); !ok || v != 1 {
		t.Fatalf("expected 1, got %d (%v)", v, ok)
	}

	if v, ok := m.Get(-31); !ok || v != 31 {
		t.Fatalf("expected 31, got %d (%v)", v, ok)
	}
}

func TestFixedBucketsByDefault(t *testing.T) {
	m := NewIntegers[uint32, uint32]()

	for i := uint32(0); i < 3000; i++ {
		m.Put(i, i)
	}

	s := m.Stats()

	if s.Buckets != DefaultBuckets {
		t.Fatalf("expected %d buckets, got %d", DefaultBuckets, s.Buckets)
	}

	if s.LongestChain != 100 || s.EmptyBuckets != 0 || s.LoadFactor != 100 {
		t.Fatalf("unexpected stats %+v", s)
	}
}

func TestGrowth(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)

	m := New[string, int](XXHash{},
		WithBuckets(4),
		WithLoadFactor(2),
		WithLogger(zap.New(core)),
	)

	keys := make([]string, 1000)

	for i := range keys {
		keys[i] = randomKey(i)
		m.Put(keys[i], i)
	}

	if m.Buckets() < 500 {
		t.Fatalf("expected the map to grow to at least 500 buckets, got %d", m.Buckets())
	}

	if s := m.Stats(); s.LoadFactor > 2 {
		t.Fatalf("load factor above threshold: %+v", s)
	}

	for i, key := range keys {
		if v, ok := m.Get(key); !ok || v != i {
			t.Fatalf("key %q: expected %d, got %d (%v)", key, i, v, ok)
		}
	}

	if logs.FilterMessage("Growing bucket map.").Len() == 0 {
		t.Fatal("expected growth to be logged")
	}
}

func TestIterate(t *testing.T) {
	m := NewIntegers[int, int](WithBuckets(7))

	for i := 0; i < 100; i++ {
		m.Put(i, i*i)
	}

	seen := make(map[int]bool)
	lastBucket := -1
	it := m.Iterate()

	for it.Next() {
		if it.Bucket() < lastBucket {
			t.Fatalf("buckets visited out of order")
		}

		lastBucket = it.Bucket()

		if *it.Val() != it.Key()*it.Key() {
			t.Fatalf("key %d: unexpected value %d", it.Key(), *it.Val())
		}

		seen[it.Key()] = true
	}

	if len(seen) != 100 {
		t.Fatalf("expected 100 keys, got %d", len(seen))
	}

	n := 0

	for k, v := range m.All() {
		if v != k*k {
			t.Fatalf("key %d: unexpected value %d", k, v)
		}

		if n++; n == 10 {
			break
		}
	}
}

func TestOffHeap(t *testing.T) {
	m, err := NewOffHeap[uint64, [2]float64](Identity[uint64]{}, 4, WithLoadFactor(4))

	if err != nil {
		t.Fatal(err)
	}

	defer m.Close()

	for i := uint64(0); i < 10_000; i++ {
		m.Put(i, [2]float64{float64(i), -float64(i)})
	}

	for i := uint64(0); i < 10_000; i += 2 {
		m.Delete(i)
	}

	if m.Len() != 5_000 {
		t.Fatalf("expected 5000 entries, got %d", m.Len())
	}

	for i := uint64(1); i < 10_000; i += 2 {
		if v, ok := m.Get(i); !ok || v[0] != float64(i) {
			t.Fatalf("key %d: unexpected %v (%v)", i, v, ok)
		}
	}

	if _, err = NewOffHeap[string, int](CodePointSum{}, 4); !errors.Is(err, arena.ErrPointerType) {
		t.Fatalf("expected ErrPointerType, got %v", err)
	}
}

func TestCloseTwice(t *testing.T) {
	m := NewStrings[int]()
	m.Put("foo", 1)

	if err := m.Close(); err != nil {
		t.Fatal(err)
	}

	if err := m.Close(); err != nil {
		t.Fatal(err)
	}
}

func TestUsableAfterClose(t *testing.T) {
	m, err := NewOffHeap[uint32, uint32](Identity[uint32]{}, 4)

	if err != nil {
		t.Fatal(err)
	}

	m.Put(1, 10)

	if err = m.Close(); err != nil {
		t.Fatal(err)
	}

	if _, ok := m.Get(1); ok || m.Has(1) || m.Len() != 0 {
		t.Fatal("expected an empty map after Close")
	}

	if m.Buckets() != DefaultBuckets {
		t.Fatalf("expected %d buckets, got %d", DefaultBuckets, m.Buckets())
	}

	m.Put(2, 20)

	if v, ok := m.Get(2); !ok || v != 20 {
		t.Fatalf("expected 20, got %d (%v)", v, ok)
	}

	if err = m.Close(); err != nil {
		t.Fatal(err)
	}
}

func TestInvalidLoadFactorKeepsBucketsFixed(t *testing.T) {
	for _, f := range []float64{math.NaN(), -1, 0} {
		m := NewIntegers[int, int](WithBuckets(8), WithLoadFactor(f))

		for i := 0; i < 1000; i++ {
			m.Put(i, i)
		}

		if m.Buckets() != 8 {
			t.Fatalf("load factor %v: expected 8 buckets, got %d", f, m.Buckets())
		}
	}
}

type ref struct {
	key string
	val int
}

// Random operations against an ordered reference map.
func TestAgainstReference(t *testing.T) {
	for _, h := range []Hasher[string]{CodePointSum{}, XXHash{}, SipHash{K0: 1, K1: 2}} {
		rnd := rand.New(rand.NewSource(42))
		m := New[string, int](h, WithBuckets(13))
		model := btree.NewG[ref](8, func(a, b ref) bool { return a.key < b.key })

		for op := 0; op < 20_000; op++ {
			key := randomKey(rnd.Intn(500))

			switch rnd.Intn(4) {
			case 0, 1:
				m.Put(key, op)
				model.ReplaceOrInsert(ref{key, op})
			case 2:
				_, want := model.Delete(ref{key: key})

				if got := m.Delete(key); got != want {
					t.Fatalf("%T delete %q: expected %v, got %v", h, key, want, got)
				}
			case 3:
				want, wantOk := model.Get(ref{key: key})
				got, ok := m.Get(key)

				if ok != wantOk || (ok && got != want.val) {
					t.Fatalf("%T get %q: expected %d (%v), got %d (%v)", h, key, want.val, wantOk, got, ok)
				}
			}
		}

		if m.Len() != model.Len() {
			t.Fatalf("%T: expected %d entries, got %d", h, model.Len(), m.Len())
		}

		model.Ascend(func(r ref) bool {
			if v, ok := m.Get(r.key); !ok || v != r.val {
				t.Fatalf("%T key %q: expected %d, got %d (%v)", h, r.key, r.val, v, ok)
			}

			return true
		})
	}
}

func randomKey(i int) string {
	const alphabet = "abcdefghijklmnopqrstuvwxyz"

	b := []byte{'k'}

	for ; i > 0; i /= len(alphabet) {
		b = append(b, alphabet[i%len(alphabet)])
	}

	return string(b)
}

func BenchmarkPut(b *testing.B) {
	m := NewIntegers[uint64, uint64](WithLoadFactor(4))

	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		m.Put(uint64(i), uint64(i))
	}
}

func BenchmarkGetFixedBuckets(b *testing.B) {
	m := NewIntegers[uint64, uint64]()

	for i := 0; i < 10_000; i++ {
		m.Put(uint64(i), uint64(i))
	}

	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		m.Get(uint64(i % 10_000))
	}
}
