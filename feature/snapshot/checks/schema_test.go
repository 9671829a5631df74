package checks

import (
	"regexp"
	"testing"

	"manifest-resolver/core/manifest"
	"manifest-resolver/core/manifest/manifesttest"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

func setupMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("Failed to open mock sql db: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	dialector := mysql.New(mysql.Config{
		Conn:                      db,
		SkipInitializeWithVersion: true,
	})

	gormDB, err := gorm.Open(dialector, &gorm.Config{})
	if err != nil {
		t.Fatalf("Failed to open gorm db: %v", err)
	}

	return gormDB, mock
}

func columns() *sqlmock.Rows {
	return sqlmock.NewRows([]string{"Field", "Type", "Null", "Key", "Default", "Extra"})
}

func TestCheckSchema_NilDB(t *testing.T) {
	report, err := CheckSchema(nil)
	assert.Error(t, err)
	assert.Nil(t, report)
}

func TestCheckSchema_SQLite(t *testing.T) {
	f := manifesttest.New(t)
	f.Put(manifest.TableStat, 1, manifest.StatDefinition{Hash: 1})
	f.Put(manifest.TableStat, 2, manifest.StatDefinition{Hash: 2})
	snap := f.Snapshot(manifest.Options{})

	report, err := CheckSchema(snap.DB())
	require.NoError(t, err)
	assert.True(t, report.Matched)
	assert.Empty(t, report.Errors)
	require.Len(t, report.Tables, 3)
	assert.Equal(t, "ok", report.Tables["DestinyStatDefinition"].Status)
	assert.Equal(t, int64(2), report.Tables["DestinyStatDefinition"].Rows)
	assert.Equal(t, int64(0), report.Tables["DestinyPlugSetDefinition"].Rows)
}

func TestCheckSchema_MySQL(t *testing.T) {
	db, mock := setupMockDB(t)

	mock.ExpectQuery(regexp.QuoteMeta("SHOW COLUMNS FROM `DestinyInventoryItemDefinition`")).
		WillReturnRows(columns().
			AddRow("id", "int unsigned", "NO", "PRI", nil, "").
			AddRow("json", "longtext", "YES", "", nil, ""))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT count(*) FROM `DestinyInventoryItemDefinition`")).
		WillReturnRows(sqlmock.NewRows([]string{"count(*)"}).AddRow(12))

	mock.ExpectQuery(regexp.QuoteMeta("SHOW COLUMNS FROM `DestinyStatDefinition`")).
		WillReturnRows(columns().AddRow("id", "int unsigned", "NO", "PRI", nil, ""))

	mock.ExpectQuery(regexp.QuoteMeta("SHOW COLUMNS FROM `DestinyPlugSetDefinition`")).
		WillReturnRows(columns().
			AddRow("id", "varchar(32)", "NO", "PRI", nil, "").
			AddRow("json", "json", "YES", "", nil, ""))

	report, err := CheckSchema(db)
	require.NoError(t, err)
	assert.False(t, report.Matched)

	items := report.Tables["DestinyInventoryItemDefinition"]
	assert.Equal(t, "ok", items.Status)
	assert.Equal(t, int64(12), items.Rows)

	stats := report.Tables["DestinyStatDefinition"]
	assert.Equal(t, "error", stats.Status)
	assert.Equal(t, []string{"json"}, stats.MissingColumns)

	plugSets := report.Tables["DestinyPlugSetDefinition"]
	assert.Equal(t, "error", plugSets.Status)
	require.Len(t, plugSets.TypeMismatches, 1)
	assert.Contains(t, plugSets.TypeMismatches[0], "id: expected int, got varchar(32)")

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCheckSchema_InspectFailure(t *testing.T) {
	db, mock := setupMockDB(t)
	mock.MatchExpectationsInOrder(false)

	mock.ExpectQuery(regexp.QuoteMeta("SHOW COLUMNS FROM `DestinyInventoryItemDefinition`")).
		WillReturnError(assert.AnError)
	for _, table := range []string{"DestinyStatDefinition", "DestinyPlugSetDefinition"} {
		mock.ExpectQuery(regexp.QuoteMeta("SHOW COLUMNS FROM `" + table + "`")).
			WillReturnRows(columns().
				AddRow("id", "int unsigned", "NO", "PRI", nil, "").
				AddRow("json", "mediumtext", "YES", "", nil, ""))
		mock.ExpectQuery(regexp.QuoteMeta("SELECT count(*) FROM `" + table + "`")).
			WillReturnRows(sqlmock.NewRows([]string{"count(*)"}).AddRow(1))
	}

	report, err := CheckSchema(db)
	require.NoError(t, err)
	assert.False(t, report.Matched)
	require.Len(t, report.Errors, 1)
	assert.Contains(t, report.Errors[0], "DestinyInventoryItemDefinition")
	assert.Equal(t, "error", report.Tables["DestinyInventoryItemDefinition"].Status)
	assert.Equal(t, "ok", report.Tables["DestinyStatDefinition"].Status)
}
