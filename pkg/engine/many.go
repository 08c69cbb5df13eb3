package engine

import "golang.org/x/sync/errgroup"

// ManyResult pairs one query's outcome from ExecuteMany with its
// position-preserving slot, folding a per-query failure into the same
// value a success is returned as rather than a side channel.
type ManyResult struct {
	Result *Result
	Err    error
}

// ExecuteMany drives queries concurrently, each against its own Session
// (and so its own *txn.Transaction), per §5's independent-connection
// concurrency model. Grounded on the parallel-fan-out shape
// pkg/physicalplan.ParallelTableScan already uses golang.org/x/sync/errgroup
// for, adapted here so one query's error never cancels its siblings: every
// g.Go closure records its own error in its result slot and always
// returns nil, so each query's outcome is read from its slot and
// g.Wait's single returned error is never used.
func (e *Engine) ExecuteMany(queries []string) []ManyResult {
	results := make([]ManyResult, len(queries))
	var g errgroup.Group
	for i, q := range queries {
		i, q := i, q
		g.Go(func() error {
			sess := e.NewSession()
			res, err := sess.Execute(q)
			results[i] = ManyResult{Result: res, Err: err}
			return nil
		})
	}
	_ = g.Wait()
	return results
}
