package main

import (
	"fmt"
	"sync/atomic"
	"time"

	"github.com/gosuri/uilive"
)

// progress renders a live counter of processed items until stopped.
type progress struct {
	done  atomic.Int64
	total int
	stop  chan struct{}
	ended chan struct{}
}

func startProgress(enabled bool, title string, total int) *progress {
	p := &progress{
		total: total,
		stop:  make(chan struct{}),
		ended: make(chan struct{}),
	}

	if !enabled {
		close(p.ended)
		return p
	}

	go p.render(title)

	return p
}

func (p *progress) Add(n int) {
	p.done.Add(int64(n))
}

func (p *progress) Stop() {
	select {
	case <-p.stop:
	default:
		close(p.stop)
	}

	<-p.ended
}

func (p *progress) render(title string) {
	defer close(p.ended)

	writer := uilive.New()
	line := writer.Newline()

	writer.Start()
	defer writer.Stop()

	ticker := time.NewTicker(100 * time.Millisecond)
	defer ticker.Stop()

	t0 := time.Now()

	draw := func() {
		fmt.Fprintf(writer, "%s\n", title)
		fmt.Fprintf(line, "Items: %d / %d (%s)\n", p.done.Load(), p.total, time.Since(t0).Round(time.Millisecond))
	}

	for {
		select {
		case <-p.stop:
			draw()
			return
		case <-ticker.C:
			draw()
		}
	}
}
