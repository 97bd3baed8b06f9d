package util

import (
	"runtime"

	"golang.org/x/sync/errgroup"
)

// SafeSetLimit sets the concurrency limit of g. errgroup panics on a zero limit,
// so a limit below 1 falls back to the number of CPUs. The applied limit is returned.
func SafeSetLimit(g *errgroup.Group, limit int) int {
	if limit < 1 {
		limit = runtime.NumCPU()
	}

	g.SetLimit(limit)

	return limit
}
