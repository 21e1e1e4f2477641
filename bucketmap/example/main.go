package main

import (
	"go.uber.org/zap"

	"github.com/webbmaffian/go-own/bucketmap"
)

func main() {
	logger, err := zap.NewDevelopment()

	if err != nil {
		panic(err)
	}

	defer logger.Sync()

	m := bucketmap.NewStrings[int]()
	defer m.Close()

	m.Put("foo", 12)
	m.Put("bar", 24)
	m.Put("foo", 36) // Replaces the old value

	for _, key := range []string{"foo", "bar", "baz"} {
		if v, ok := m.Get(key); ok {
			logger.Info("found", zap.String("key", key), zap.Int("val", v))
		} else {
			logger.Info("missing", zap.String("key", key))
		}
	}

	s := m.Stats()

	logger.Info("stats",
		zap.Int("len", s.Len),
		zap.Int("buckets", s.Buckets),
		zap.Int("longest_chain", s.LongestChain))
}
