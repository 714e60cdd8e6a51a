package differ

import (
	"context"
	"sync"
	"time"

	"github.com/aleister1102/wikidiff/internal/models"
)

// BatchResult is the diff of one revision pair in a batch
type BatchResult struct {
	ID     string            `json:"id,omitempty" yaml:"id,omitempty"`
	Result models.DiffResult `json:"result" yaml:"result"`
	Done   bool              `json:"-" yaml:"-"`
}

// GenerateTextDiffBatch diffs many revision pairs concurrently, at most
// MaxConcurrency at a time. Results are indexed like pairs. On cancellation
// the pairs already started are finished, the rest are left with Done unset,
// and ctx.Err() is returned.
func (e *Engine) GenerateTextDiffBatch(ctx context.Context, pairs []models.RevisionPair) ([]BatchResult, error) {
	results := make([]BatchResult, len(pairs))
	if len(pairs) == 0 {
		return results, nil
	}

	start := time.Now()
	semaphore := make(chan struct{}, e.maxConcurrency)
	var wg sync.WaitGroup

	var cancelErr error
	for i, pair := range pairs {
		if cancelErr = ctx.Err(); cancelErr == nil {
			select {
			case <-ctx.Done():
				cancelErr = ctx.Err()
			case semaphore <- struct{}{}:
			}
		}
		if cancelErr != nil {
			e.logger.Info().
				Int("started_pairs", i).
				Int("total_pairs", len(pairs)).
				Msg("Batch diff interrupted by context cancellation")
			break
		}

		wg.Add(1)
		go func(index int, p models.RevisionPair) {
			defer wg.Done()
			defer func() { <-semaphore }()

			results[index] = BatchResult{
				ID:     p.ID,
				Result: e.GenerateTextDiff(p.Current, p.Previous),
				Done:   true,
			}
		}(i, pair)
	}

	wg.Wait()

	e.logger.Debug().
		Int("pairs", len(pairs)).
		Int("concurrency", e.maxConcurrency).
		Dur("duration", time.Since(start)).
		Msg("Batch diff completed")

	return results, cancelErr
}
