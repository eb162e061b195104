package repository

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/alexanderramin/gantry/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestConcurrentAccess_ReadDuringWrite lists a project's items from several
// readers while one writer adds items. Every read must see whole rows.
func TestConcurrentAccess_ReadDuringWrite(t *testing.T) {
	database := testutil.NewTestFileDB(t)
	ctx := context.Background()

	projRepo := NewSQLiteProjectRepo(database)
	itemRepo := NewSQLiteWBSItemRepo(database)
	proj := seedProject(t, ctx, projRepo)

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := 0; i < 20; i++ {
			it := testutil.NewTestItem(proj.ID, fmt.Sprint(i+1), fmt.Sprintf("Item-%d", i), testutil.WithSortOrder(i))
			if err := itemRepo.Create(ctx, it); err != nil {
				t.Errorf("writer: create item %d: %v", i, err)
				return
			}
		}
	}()

	for r := 0; r < 5; r++ {
		wg.Add(1)
		go func(reader int) {
			defer wg.Done()
			for i := 0; i < 10; i++ {
				items, err := itemRepo.ListByProject(ctx, proj.ID)
				if err != nil {
					t.Errorf("reader %d: list items: %v", reader, err)
					return
				}
				for _, it := range items {
					if it.ID == "" || it.ProjectID != proj.ID {
						t.Errorf("reader %d: partial row %+v", reader, it)
					}
				}
			}
		}(r)
	}

	wg.Wait()

	final, err := itemRepo.ListByProject(ctx, proj.ID)
	require.NoError(t, err)
	assert.Len(t, final, 20)
}
