package flow

import (
	"fmt"
	"strings"
)

// Strategy selects how a Process runs its tasks.
type Strategy string

const (
	// Sequential runs tasks one at a time on the caller's goroutine.
	Sequential Strategy = "sequential"
	// Parallel submits every task to a bounded worker pool.
	Parallel Strategy = "parallel"
	// Hybrid runs the first HybridSplit(n) tasks sequentially and the rest
	// in parallel.
	Hybrid Strategy = "hybrid"
)

// Strategies lists every valid strategy.
var Strategies = []Strategy{Sequential, Parallel, Hybrid}

func (s Strategy) String() string {
	return string(s)
}

func (s Strategy) Valid() bool {
	switch s {
	case Sequential, Parallel, Hybrid:
		return true
	}
	return false
}

// UsesPool reports whether the strategy needs a worker pool.
func (s Strategy) UsesPool() bool {
	return s == Parallel || s == Hybrid
}

// ParseStrategy parses a strategy name, ignoring case and surrounding space.
func ParseStrategy(name string) (Strategy, error) {
	s := Strategy(strings.ToLower(strings.TrimSpace(name)))
	if !s.Valid() {
		return "", fmt.Errorf("%w: unknown strategy %q (want one of %v)", ErrInvalidConfiguration, name, Strategies)
	}
	return s, nil
}

// HybridSplit returns how many leading tasks of n the hybrid strategy runs
// sequentially: floor(n/2). With an odd count the parallel half is the
// larger one, so five tasks run as 2 sequential then 3 parallel.
func HybridSplit(n int) int {
	if n <= 0 {
		return 0
	}
	return n / 2
}
