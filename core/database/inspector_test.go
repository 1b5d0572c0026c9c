package database

import (
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

func TestTableColumns_SQLite(t *testing.T) {
	db, err := Connect(Config{Driver: DriverSQLite, Name: ":memory:"})
	require.NoError(t, err)

	err = db.Exec("CREATE TABLE test_records (id INTEGER PRIMARY KEY, object_type TEXT, data TEXT)").Error
	require.NoError(t, err)

	columns, err := TableColumns(db, "test_records")
	require.NoError(t, err)
	require.Len(t, columns, 3)

	colMap := make(map[string]string)
	for _, col := range columns {
		colMap[col.Field] = col.Type
	}
	assert.Equal(t, "integer", colMap["id"])
	assert.Equal(t, "text", colMap["object_type"])
	assert.Equal(t, "text", colMap["data"])

	// PRAGMA table_info returns no rows for unknown tables.
	cols, err := TableColumns(db, "non_existent")
	assert.NoError(t, err)
	assert.Empty(t, cols)

	missing, err := MissingColumns(db, "test_records", []string{"id", "remote_id", "data", "deleted_at"})
	require.NoError(t, err)
	assert.Equal(t, []string{"remote_id", "deleted_at"}, missing)
}

func TestTableColumns_MySQL(t *testing.T) {
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)

	db, err := gorm.Open(mysql.New(mysql.Config{Conn: sqlDB, SkipInitializeWithVersion: true}), &gorm.Config{})
	require.NoError(t, err)

	rows := sqlmock.NewRows([]string{"Field", "Type", "Null", "Key", "Default", "Extra"}).
		AddRow("ID", "BIGINT UNSIGNED", "NO", "PRI", nil, "auto_increment").
		AddRow("object_type", "varchar(32)", "NO", "MUL", nil, "")
	mock.ExpectQuery("SHOW COLUMNS FROM `snapshot_records`").WillReturnRows(rows)

	columns, err := TableColumns(db, "snapshot_records")
	require.NoError(t, err)
	require.Len(t, columns, 2)
	assert.Equal(t, ColumnInfo{Field: "id", Type: "bigint unsigned", Null: "NO", Key: "PRI", Extra: "auto_increment"}, columns[0])
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTableColumns_NilDB(t *testing.T) {
	_, err := TableColumns(nil, "records")
	assert.Error(t, err)
}
