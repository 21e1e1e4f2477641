package bucketmap

import "github.com/webbmaffian/go-own/arena"

// Stats describes how evenly the entries are spread over the buckets.
type Stats struct {
	Len          int
	Buckets      int
	EmptyBuckets int
	LongestChain int
	LoadFactor   float64
}

func (m *Map[K, V]) Stats() (s Stats) {
	s.Len = m.Len()
	s.Buckets = len(m.buckets)

	for _, idx := range m.buckets {
		n := 0

		for ; idx != arena.Nil; idx = m.entries.At(idx).next {
			n++
		}

		if n == 0 {
			s.EmptyBuckets++
		}

		s.LongestChain = max(s.LongestChain, n)
	}

	if s.Buckets > 0 {
		s.LoadFactor = float64(s.Len) / float64(s.Buckets)
	}

	return
}
