package manifest_test

import (
	"context"
	"regexp"
	"testing"
	"time"

	"manifest-resolver/core/manifest"
	"manifest-resolver/core/manifest/manifesttest"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func TestSnapshotItem(t *testing.T) {
	f := manifesttest.New(t)
	f.Put(manifest.TableInventoryItem, 1001, manifest.ItemDefinition{
		Hash:                1001,
		DisplayProperties:   manifesttest.Display("Rampage"),
		ItemTypeDisplayName: "Trait",
	})
	f.PutRaw(manifest.TableInventoryItem, 1002, `{"hash":1002,"displayProperties":`)
	f.PutRaw(manifest.TableInventoryItem, 1003, `{"hash":9999}`)
	snap := f.Snapshot(manifest.Options{CacheSize: 16})
	ctx := context.Background()

	item, err := snap.Item(ctx, 1001)
	require.NoError(t, err)
	assert.Equal(t, "Rampage", item.DisplayProperties.Name)
	assert.Equal(t, manifest.CategoryTrait, item.Category)

	_, err = snap.Item(ctx, 5)
	assert.ErrorIs(t, err, manifest.ErrNotFound)

	_, err = snap.Item(ctx, 1002)
	var corrupt *manifest.CorruptRecordError
	require.ErrorAs(t, err, &corrupt)
	assert.Equal(t, manifest.TableInventoryItem, corrupt.Table)
	assert.Equal(t, uint32(1002), corrupt.ID)

	_, err = snap.Item(ctx, 1003)
	assert.ErrorIs(t, err, manifest.ErrCorruptRecord)

	// Served from cache on the second read.
	again, err := snap.Item(ctx, 1001)
	require.NoError(t, err)
	assert.Same(t, item, again)
}

func TestSnapshotUpperRangeKey(t *testing.T) {
	f := manifesttest.New(t)
	f.Put(manifest.TableStat, 4294967295, manifest.StatDefinition{
		Hash:              4294967295,
		DisplayProperties: &manifest.DisplayProperties{Name: "Impact"},
	})
	snap := f.Snapshot(manifest.Options{})

	stat, err := snap.Stat(context.Background(), 4294967295)
	require.NoError(t, err)
	assert.Equal(t, "Impact", stat.DisplayProperties.Name)
}

func TestSnapshotBatch(t *testing.T) {
	f := manifesttest.New(t)
	f.Put(manifest.TableStat, 1, manifest.StatDefinition{Hash: 1, DisplayProperties: &manifest.DisplayProperties{Name: "Range"}})
	f.Put(manifest.TableStat, 2, manifest.StatDefinition{Hash: 2, DisplayProperties: &manifest.DisplayProperties{Name: "Stability"}})
	f.PutRaw(manifest.TableStat, 3, `not json`)
	snap := f.Snapshot(manifest.Options{CacheSize: 16})
	ctx := context.Background()

	t.Run("omits absent and corrupt", func(t *testing.T) {
		stats, err := snap.Stats(ctx, []uint32{1, 2, 3, 4, 1})
		require.NoError(t, err)
		assert.Len(t, stats, 2)
		assert.Equal(t, "Range", stats[1].DisplayProperties.Name)
		assert.Equal(t, "Stability", stats[2].DisplayProperties.Name)
		assert.NotContains(t, stats, uint32(3))
		assert.NotContains(t, stats, uint32(4))
	})

	t.Run("empty input", func(t *testing.T) {
		stats, err := snap.Stats(ctx, nil)
		require.NoError(t, err)
		assert.Empty(t, stats)
	})

	t.Run("nothing present", func(t *testing.T) {
		stats, err := snap.Stats(ctx, []uint32{40, 41})
		require.NoError(t, err)
		assert.Empty(t, stats)
	})

	t.Run("every found record corrupt", func(t *testing.T) {
		_, err := snap.Stats(ctx, []uint32{3, 4})
		assert.ErrorIs(t, err, manifest.ErrCorruptRecord)
	})
}

func TestSnapshotBatchSpansChunks(t *testing.T) {
	f := manifesttest.New(t)
	ids := make([]uint32, 0, 1200)
	for i := uint32(1); i <= 1200; i++ {
		f.Put(manifest.TablePlugSet, i, manifest.PlugSetDefinition{Hash: i})
		ids = append(ids, i)
	}
	snap := f.Snapshot(manifest.Options{Workers: 2})

	sets, err := snap.PlugSets(context.Background(), ids)
	require.NoError(t, err)
	assert.Len(t, sets, 1200)
	assert.Equal(t, uint32(777), sets[777].Hash)
}

func TestSnapshotQueryFailure(t *testing.T) {
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer sqlDB.Close()

	db, err := gorm.Open(mysql.New(mysql.Config{Conn: sqlDB, SkipInitializeWithVersion: true}), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	snap, err := manifest.NewSnapshot(db, manifest.Options{Version: "v1"})
	require.NoError(t, err)

	mock.ExpectQuery(regexp.QuoteMeta("FROM `DestinyStatDefinition`")).WillReturnError(assert.AnError)

	_, err = snap.Stat(context.Background(), 7)
	assert.ErrorIs(t, err, assert.AnError)
	assert.NotErrorIs(t, err, manifest.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSnapshotSharedLookupOutlivesCanceledCaller(t *testing.T) {
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer sqlDB.Close()

	db, err := gorm.Open(mysql.New(mysql.Config{Conn: sqlDB, SkipInitializeWithVersion: true}), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	snap, err := manifest.NewSnapshot(db, manifest.Options{Version: "v1"})
	require.NoError(t, err)

	// One slow query serves both callers.
	mock.ExpectQuery(regexp.QuoteMeta("FROM `DestinyStatDefinition`")).
		WillDelayFor(300 * time.Millisecond).
		WillReturnRows(sqlmock.NewRows([]string{"id", "json"}).
			AddRow(7, []byte(`{"hash":7,"displayProperties":{"name":"Handling"}}`)))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	abandoned := make(chan error, 1)
	go func() {
		_, err := snap.Stat(ctx, 7)
		abandoned <- err
	}()

	time.Sleep(50 * time.Millisecond)
	joined := make(chan *manifest.StatDefinition, 1)
	joinedErr := make(chan error, 1)
	go func() {
		stat, err := snap.Stat(context.Background(), 7)
		joined <- stat
		joinedErr <- err
	}()

	time.Sleep(50 * time.Millisecond)
	cancel()

	assert.ErrorIs(t, <-abandoned, context.Canceled)

	stat := <-joined
	require.NoError(t, <-joinedErr)
	require.NotNil(t, stat)
	assert.Equal(t, "Handling", stat.DisplayProperties.Name)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSnapshotLookupAfterCancel(t *testing.T) {
	f := manifesttest.New(t)
	f.Put(manifest.TableStat, 1, manifest.StatDefinition{Hash: 1})
	snap := f.Snapshot(manifest.Options{})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := snap.Stat(ctx, 1)
	assert.ErrorIs(t, err, context.Canceled)

	stat, err := snap.Stat(context.Background(), 1)
	require.NoError(t, err)
	assert.Nil(t, stat.DisplayProperties)
}

func TestNewSnapshotNilDB(t *testing.T) {
	_, err := manifest.NewSnapshot(nil, manifest.Options{})
	assert.ErrorIs(t, err, manifest.ErrStoreUnavailable)
}

func TestSnapshotVerify(t *testing.T) {
	f := manifesttest.New(t)
	snap := f.Snapshot(manifest.Options{})

	problems, err := snap.Verify()
	require.NoError(t, err)
	assert.Empty(t, problems)
}

func TestStore(t *testing.T) {
	store := manifest.NewStore(nil)
	_, err := store.Snapshot()
	assert.ErrorIs(t, err, manifest.ErrStoreUnavailable)
	assert.Equal(t, "", store.Version())

	f := manifesttest.New(t)
	f.Put(manifest.TableStat, 1, manifest.StatDefinition{Hash: 1, DisplayProperties: &manifest.DisplayProperties{Name: "Old"}})
	f.SetVersion("v1")
	first := f.Snapshot(manifest.Options{})

	assert.Nil(t, store.Swap(first))
	assert.Equal(t, "v1", store.Version())

	pinned, err := store.Snapshot()
	require.NoError(t, err)

	g := manifesttest.New(t)
	g.Put(manifest.TableStat, 1, manifest.StatDefinition{Hash: 1, DisplayProperties: &manifest.DisplayProperties{Name: "New"}})
	g.SetVersion("v2")
	second := g.Snapshot(manifest.Options{})

	assert.Same(t, first, store.Swap(second))
	assert.Equal(t, "v2", store.Version())

	// A pinned snapshot keeps answering from its own version.
	stat, err := pinned.Stat(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, "Old", stat.DisplayProperties.Name)

	current, err := store.Snapshot()
	require.NoError(t, err)
	stat, err = current.Stat(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, "New", stat.DisplayProperties.Name)
}
