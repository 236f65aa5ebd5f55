package database

import (
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

func setupMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("Failed to open mock sql db: %v", err)
	}

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

func columnRows(names ...string) *sqlmock.Rows {
	rows := sqlmock.NewRows([]string{"Field", "Type", "Null", "Key", "Default", "Extra"})
	for _, name := range names {
		rows.AddRow(name, "VARCHAR(32)", "YES", "", nil, "")
	}
	return rows
}

func TestGetTableColumns(t *testing.T) {
	db, mock := setupMockDB(t)

	mock.ExpectQuery("SHOW COLUMNS FROM `sales_items`").
		WillReturnRows(columnRows("ID", "Code", "Name"))

	columns, err := GetTableColumns(db, "sales_items")
	assert.NoError(t, err)
	assert.Len(t, columns, 3)

	// Field names and types are normalized to lowercase.
	assert.Equal(t, "code", columns[1].Field)
	assert.Equal(t, "varchar(32)", columns[1].Type)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMissingColumns(t *testing.T) {
	db, mock := setupMockDB(t)

	mock.ExpectQuery("SHOW COLUMNS FROM `sales_items`").
		WillReturnRows(columnRows("id", "code", "name"))

	missing, err := MissingColumns(db, "sales_items", []string{"code", "name", "vendor_name"})
	assert.NoError(t, err)
	assert.Equal(t, []string{"vendor_name"}, missing)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMissingColumns_AllPresent(t *testing.T) {
	db, mock := setupMockDB(t)

	mock.ExpectQuery("SHOW COLUMNS FROM `api_tokens`").
		WillReturnRows(columnRows("id", "token", "revoked"))

	missing, err := MissingColumns(db, "api_tokens", []string{"token", "revoked"})
	assert.NoError(t, err)
	assert.Empty(t, missing)
	assert.NoError(t, mock.ExpectationsWereMet())
}
