package bucketmap

import (
	"math"

	"go.uber.org/zap"
)

// DefaultBuckets is the bucket count used unless WithBuckets says otherwise.
const DefaultBuckets = 30

type config struct {
	buckets    int
	loadFactor float64
	logger     *zap.Logger
}

func newConfig(opts []Option) config {
	c := config{
		buckets: DefaultBuckets,
		logger:  zap.NewNop(),
	}

	for _, opt := range opts {
		opt(&c)
	}

	if c.buckets < 1 {
		c.buckets = 1
	}

	return c
}

type Option func(*config)

// WithBuckets sets the number of buckets. Values below 1 are raised to 1.
func WithBuckets(n int) Option {
	return func(c *config) {
		c.buckets = n
	}
}

// WithLoadFactor lets the map double its bucket count whenever the average
// chain length would exceed f. Zero, the default, keeps the bucket count
// fixed for the lifetime of the map, and so do negative values and NaN.
func WithLoadFactor(f float64) Option {
	return func(c *config) {
		if f < 0 || math.IsNaN(f) {
			f = 0
		}

		c.loadFactor = f
	}
}

// WithLogger receives growth events at debug level.
func WithLogger(logger *zap.Logger) Option {
	return func(c *config) {
		if logger != nil {
			c.logger = logger
		}
	}
}
