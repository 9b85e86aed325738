package retriever

import (
	"context"
	"fmt"
	"math"
	"sort"
	"time"
)

// cosine similarity accumulated in float64; zero-norm vectors score 0
func cosine(q []float32, qNorm float64, v []float32, vNorm float64) float64 {
	if qNorm == 0 || vNorm == 0 {
		return 0
	}

	var dot float64
	for i := range q {
		dot += float64(q[i]) * float64(v[i])
	}

	return dot / (qNorm * vNorm)
}

func norm(v []float32) float64 {
	var sum float64
	for _, f := range v {
		sum += float64(f) * float64(f)
	}

	return math.Sqrt(sum)
}

type scored struct {
	index int
	score float64
}

// sorts by descending score; candidates must arrive in ascending index order
// so the stable sort breaks ties by lower index
func topN(candidates []scored, n int) []scored {
	sort.SliceStable(candidates, func(a, b int) bool {
		return candidates[a].score > candidates[b].score
	})

	if len(candidates) > n {
		candidates = candidates[:n]
	}

	return candidates
}

// runs fn under a deadline; expiry is reported as sentinel. fn keeps running
// in the background after a timeout, so it must not publish state itself.
func withTimeout[T any](ctx context.Context, timeout time.Duration, sentinel error, fn func() (T, error)) (T, error) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	type result struct {
		value T
		err   error
	}

	done := make(chan result, 1)

	go func() {
		v, err := fn()
		done <- result{v, err}
	}()

	select {
	case r := <-done:
		return r.value, r.err
	case <-ctx.Done():
		var zero T
		return zero, fmt.Errorf("%w: %v", sentinel, ctx.Err())
	}
}
