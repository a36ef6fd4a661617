package compiler

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/eeasm/ps2masm/internal/output"
)

// CompileAsync dispatches one Compile onto a worker goroutine and awaits
// its completion, per the single-indivisible-compile scheduling model: no
// parallelism inside a compile, no state shared across concurrent compiles.
// Grounded on the teacher's dispatch-a-goroutine-and-wait-for-it-to-finish
// shape (coproc_worker_*.go's done-channel workers), using the errgroup the
// teacher's own dependency graph already carries instead of hand-rolling
// the channel and panic recovery errgroup provides.
func (d *Driver) CompileAsync(ctx context.Context, inputLines []string, currentFilePath string, mode output.Mode, addressFormatChar string) (Result, error) {
	g, groupCtx := errgroup.WithContext(ctx)
	var result Result

	g.Go(func() error {
		select {
		case <-groupCtx.Done():
			return groupCtx.Err()
		default:
		}
		result = d.Compile(inputLines, currentFilePath, mode, addressFormatChar)
		return nil
	})

	if err := g.Wait(); err != nil {
		return Result{}, err
	}
	return result, nil
}
