package manifest

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordCache(t *testing.T) {
	disabled, err := newRecordCache(0)
	require.NoError(t, err)
	disabled.add(TableStat, 1, &StatDefinition{Hash: 1})
	_, ok := disabled.get(TableStat, 1)
	assert.False(t, ok)
	assert.Equal(t, 0, disabled.Len())

	c, err := newRecordCache(2)
	require.NoError(t, err)
	c.add(TableStat, 1, &StatDefinition{Hash: 1})
	c.add(TablePlugSet, 1, &PlugSetDefinition{Hash: 1})

	rec, ok := c.get(TableStat, 1)
	require.True(t, ok)
	assert.IsType(t, &StatDefinition{}, rec)

	// Same id in another table is a distinct entry; the oldest is evicted.
	c.add(TableInventoryItem, 1, &ItemDefinition{Hash: 1})
	assert.Equal(t, 2, c.Len())
	_, ok = c.get(TablePlugSet, 1)
	assert.False(t, ok)
}
