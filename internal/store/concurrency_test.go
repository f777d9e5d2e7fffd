package store

import (
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mlakar/inventar/internal/document"
)

func TestConcurrentCreatesDistinctSKUs(t *testing.T) {
	docs := document.NewTestStore(t)
	const workers = 10

	var wg sync.WaitGroup
	errs := make(chan error, workers)
	wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func(n int) {
			defer wg.Done()
			_, err := CreateItem(docs, fmt.Sprintf("SKU-%d", n), "Wrench", nil, "admin")
			errs <- err
		}(i)
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		require.NoError(t, err)
	}

	items, err := ListItems(docs, false)
	require.NoError(t, err)
	assert.Len(t, items, workers)

	doc, err := docs.Load()
	require.NoError(t, err)
	assert.Len(t, doc.InventoryAudit, workers, "one audit entry per create")
}

// Racing creates with the same SKU must produce exactly one item: the
// uniqueness check and the insert run inside one exclusive update, so
// there is no window for a double win.
func TestConcurrentCreateSameSKUOneWinner(t *testing.T) {
	docs := document.NewTestStore(t)
	const workers = 8

	var wg sync.WaitGroup
	errs := make(chan error, workers)
	wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			_, err := CreateItem(docs, "SKU-RACE", "Wrench", nil, "admin")
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)

	var wins, duplicates int
	for err := range errs {
		switch {
		case err == nil:
			wins++
		case errors.Is(err, ErrDuplicateSKU):
			duplicates++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	assert.Equal(t, 1, wins, "exactly one create wins")
	assert.Equal(t, workers-1, duplicates)

	items, err := ListItems(docs, false)
	require.NoError(t, err)
	require.Len(t, items, 1)

	entries, err := AuditForItem(docs, items[0].ItemID)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "losers leave no audit entries")
}
