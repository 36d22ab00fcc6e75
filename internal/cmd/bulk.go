package cmd

import (
	"context"
	"fmt"
	"io"
	"sync"

	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"

	"github.com/easemob/easemob-cli/internal/api"
	"github.com/easemob/easemob-cli/internal/outfmt"
)

// DefaultConcurrency is the default number of concurrent workers
const DefaultConcurrency = 5

// BulkResult is the outcome of one item of a bulk operation.
type BulkResult struct {
	Item    string `json:"item"`
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
	Status  int    `json:"status,omitempty"`
}

// runBulkOperation runs op for every item with bounded parallelism. Results
// keep the order of items. A non-2xx response counts as a failure.
func runBulkOperation(
	ctx context.Context,
	items []string,
	concurrency int64,
	progress io.Writer,
	op func(ctx context.Context, item string) (*api.Response, error),
) []BulkResult {
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}
	if progress == nil {
		progress = io.Discard
	}

	sem := semaphore.NewWeighted(concurrency)
	results := make([]BulkResult, len(items))
	var mu sync.Mutex
	done := 0

	g, ctx := errgroup.WithContext(ctx)
	for i, item := range items {
		g.Go(func() error {
			if err := sem.Acquire(ctx, 1); err != nil {
				results[i] = BulkResult{Item: item, Error: err.Error()}
				return nil
			}
			defer sem.Release(1)

			results[i] = bulkResult(ctx, item, op)

			mu.Lock()
			done++
			_, _ = fmt.Fprintf(progress, "\rProcessed %d/%d", done, len(items))
			mu.Unlock()
			return nil
		})
	}
	_ = g.Wait()

	if len(items) > 0 {
		_, _ = fmt.Fprintln(progress)
	}
	return results
}

func bulkResult(ctx context.Context, item string, op func(context.Context, string) (*api.Response, error)) BulkResult {
	resp, err := op(ctx, item)
	if err == nil {
		err = resp.Err()
	}
	r := BulkResult{Item: item, Success: err == nil}
	if resp != nil {
		r.Status = resp.StatusCode
	}
	if err != nil {
		r.Error = err.Error()
	}
	return r
}

// countResults returns success and failure counts from bulk results
func countResults(results []BulkResult) (success, failure int) {
	for _, r := range results {
		if r.Success {
			success++
		} else {
			failure++
		}
	}
	return
}

// printBulkResults writes the per-item outcome and fails when any item failed.
func printBulkResults(f *outfmt.Formatter, verb string, results []BulkResult) error {
	success, failure := countResults(results)
	if handled, err := f.Output(map[string]any{"results": results, "succeeded": success, "failed": failure}); !handled {
		rows := make([][]string, len(results))
		for i, r := range results {
			status := "ok"
			if !r.Success {
				status = r.Error
			}
			rows[i] = []string{r.Item, status}
		}
		if err := f.Table([]string{"ITEM", "RESULT"}, rows); err != nil {
			return err
		}
	} else if err != nil {
		return err
	}
	if failure > 0 {
		return fmt.Errorf("%s failed for %d of %d items", verb, failure, len(results))
	}
	return nil
}
