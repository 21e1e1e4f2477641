package main

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/webbmaffian/go-own/list"
)

func newList(c Config) (*list.List[uint64], error) {
	if c.OffHeap {
		return list.NewOffHeap[uint64](c.N)
	}

	return list.New[uint64](), nil
}

// TestList pushes N items and checks they come back in reverse order.
func TestList(c Config, logger *zap.Logger) (err error) {
	l, err := newList(c)

	if err != nil {
		return
	}

	defer l.Close()

	p := startProgress(c.Progress, "LIST push", c.N)
	t0 := time.Now()

	for i := 0; i < c.N; i++ {
		l.Push(uint64(i))
		p.Add(1)
	}

	p.Stop()
	pushed := time.Since(t0)

	want := uint64(c.N)
	t0 = time.Now()
	it := l.IntoIter()
	defer it.Close()

	for v, ok := it.Next(); ok; v, ok = it.Next() {
		want--

		if v != want {
			return fmt.Errorf("expected %d, popped %d", want, v)
		}
	}

	if want != 0 {
		return fmt.Errorf("drain stopped with %d items left", want)
	}

	logger.Info("List push/pop done.",
		zap.Int("n", c.N),
		zap.Bool("off_heap", c.OffHeap),
		zap.Duration("push", pushed),
		zap.Duration("drain", time.Since(t0)))

	return
}

// TestTeardown builds a list of N items and tears it down in one go.
func TestTeardown(c Config, logger *zap.Logger) (err error) {
	l, err := newList(c)

	if err != nil {
		return
	}

	for i := 0; i < c.N; i++ {
		l.Push(uint64(i))
	}

	t0 := time.Now()

	if err = l.Close(); err != nil {
		return
	}

	logger.Info("List teardown done.",
		zap.Int("n", c.N),
		zap.Bool("off_heap", c.OffHeap),
		zap.Duration("teardown", time.Since(t0)))

	return
}
