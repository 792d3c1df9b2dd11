package search

import (
	"fmt"
	"io"
	"sync"
	"sync/atomic"
)

// sink is the serialized output destination. Blocks are written atomically
// in the order callers acquire mu — the order workers finish formatting,
// not file-enumeration order.
type sink struct {
	w           io.Writer
	mu          sync.Mutex
	failed      atomic.Bool
	hadMatch    atomic.Bool
	matchCount  atomic.Int64
	stderr      io.Writer
}

func newSink(w io.Writer, stderr io.Writer) *sink {
	return &sink{w: w, stderr: stderr}
}

// write appends one formatted block atomically. Once a write fails it is
// reported exactly once and every subsequent write is silently discarded.
// n is the number of matches the block represents, tallied regardless of
// whether the block text is ever written (CountOnly/Quiet modes still need
// an accurate total).
func (s *sink) write(block string, n int) {
	if n > 0 {
		s.hadMatch.Store(true)
		s.matchCount.Add(int64(n))
	}
	if block == "" {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failed.Load() {
		return
	}
	if _, err := io.WriteString(s.w, block); err != nil {
		s.failed.Store(true)
		fmt.Fprintf(s.stderr, "gosearch: write error: %v\n", err)
	}
}

// hasFailed reports whether any write to this sink has failed.
func (s *sink) hasFailed() bool {
	return s.failed.Load()
}

// hasMatch reports whether any match was ever tallied via write, whether or
// not its block text was written.
func (s *sink) hasMatch() bool {
	return s.hadMatch.Load()
}

// totalMatches returns the running total of matches tallied via write.
func (s *sink) totalMatches() int64 {
	return s.matchCount.Load()
}
