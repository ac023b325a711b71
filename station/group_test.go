package station

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"transit.dev/earliest/model"
)

func TestRootID(t *testing.T) {
	assert.Equal(t, "U50", RootID("U50S1"))
	assert.Equal(t, "U50", RootID("U50S2"))
	assert.Equal(t, "T12", RootID("T12A"))
	assert.Equal(t, "A", RootID("ABC"))
	assert.Equal(t, "X9", RootID("X9"))
}

func TestRootIDIdempotentAndPrefix(t *testing.T) {
	ids := []string{"U50S1", "T12A", "ABC", "A", "9Z"}
	for _, id := range ids {
		root := RootID(id)
		assert.True(t, len(root) <= len(id))
		assert.Equal(t, id[:len(root)], root)
		assert.Equal(t, root, RootID(root), "root must be idempotent")
	}
}

func TestIndexGroupsByRootID(t *testing.T) {
	idx := NewIndex([]model.Stop{
		{ID: "U50S1", Name: "Budějovická"},
		{ID: "U50S2", Name: "Budějovická"},
		{ID: "T12A", Name: "Anděl"},
	})

	g, found := idx.Group("U50")
	require.True(t, found)
	assert.ElementsMatch(t, []string{"U50S1", "U50S2"}, g.Stops)
	assert.Equal(t, []string{"Budějovická"}, g.Names)

	_, found = idx.Group("NOPE")
	assert.False(t, found)
}

func TestResolveNameFuzz(t *testing.T) {
	idx := NewIndex([]model.Stop{
		{ID: "M1S1", Name: "Main St — North"},
		{ID: "M1S2", Name: "Main St — South"},
		{ID: "E2X", Name: "Elm St"},
	})

	g, err := idx.Resolve("Main")
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"M1S1", "M1S2"}, g.Stops)
}

func TestResolveUnknownStop(t *testing.T) {
	idx := NewIndex(nil)
	_, err := idx.Resolve("anything")
	assert.Error(t, err)
}

func TestResolveTieBreaksOnFirstEncountered(t *testing.T) {
	idx := NewIndex([]model.Stop{
		{ID: "A1", Name: "Zzz"},
		{ID: "B1", Name: "Zzz"},
	})

	g, err := idx.Resolve("nonmatching")
	require.NoError(t, err)
	// Both groups score 0 against "nonmatching"; the first-encountered
	// group (rooted at A1) must win.
	assert.Equal(t, "A1", g.RootID)
}
