package differ

import (
	"context"
	"fmt"
	"testing"

	"github.com/aleister1102/wikidiff/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEngine_GenerateTextDiffBatch(t *testing.T) {
	engine := newTestEngine(t)
	pairs := []models.RevisionPair{
		{ID: "replace", Current: "hello there", Previous: "hello world"},
		{ID: "new", Current: "brand new page", Previous: nil},
		{ID: "same", Current: pageWithLinkA, Previous: pageWithLinkA},
		{ID: "malformed", Current: `{"invalid json`, Previous: nil},
	}
	for i := 0; i < 20; i++ {
		pairs = append(pairs, models.RevisionPair{
			ID:       fmt.Sprintf("bulk-%d", i),
			Current:  fmt.Sprintf("revision %d of the page", i+1),
			Previous: fmt.Sprintf("revision %d of the page", i),
		})
	}

	results, err := engine.GenerateTextDiffBatch(context.Background(), pairs)

	require.NoError(t, err)
	require.Len(t, results, len(pairs))
	for i, r := range results {
		assert.Equal(t, pairs[i].ID, r.ID)
		assert.True(t, r.Done, r.ID)
	}
	assert.Equal(t, 4, results[0].Result.Added)
	assert.Equal(t, 14, results[1].Result.Added)
	assert.Equal(t, models.DiffResult{}, results[2].Result)
	assert.Equal(t, models.DiffResult{}, results[3].Result)
	assert.Equal(t, engine.GenerateTextDiff(pairs[10].Current, pairs[10].Previous), results[10].Result)
}

func TestEngine_GenerateTextDiffBatch_Cancelled(t *testing.T) {
	engine := newTestEngine(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	results, err := engine.GenerateTextDiffBatch(ctx, []models.RevisionPair{
		{ID: "a", Current: "hello there", Previous: "hello world"},
		{ID: "b", Current: "x", Previous: "y"},
	})

	assert.ErrorIs(t, err, context.Canceled)
	require.Len(t, results, 2)
	assert.False(t, results[0].Done)
	assert.False(t, results[1].Done)
}

func TestEngine_GenerateTextDiffBatch_Empty(t *testing.T) {
	results, err := newTestEngine(t).GenerateTextDiffBatch(context.Background(), nil)

	require.NoError(t, err)
	assert.Empty(t, results)
}
