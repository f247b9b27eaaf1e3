package migrations

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPending_All(t *testing.T) {
	pending := Pending(nil)

	require.Len(t, pending, len(allMigrations))
	for i := 1; i < len(pending); i++ {
		assert.Less(t, pending[i-1].ID, pending[i].ID)
	}
	assert.Contains(t, pending[0].UpSQL, "CREATE TABLE favorites")
}

func TestPending_SkipsApplied(t *testing.T) {
	pending := Pending([]string{allMigrations[0].ID})

	require.Len(t, pending, len(allMigrations)-1)
	for _, m := range pending {
		assert.NotEqual(t, allMigrations[0].ID, m.ID)
	}
}

func TestPending_UpToDate(t *testing.T) {
	ids := make([]string, 0, len(allMigrations))
	for _, m := range allMigrations {
		ids = append(ids, m.ID)
	}

	assert.Empty(t, Pending(ids))
}
