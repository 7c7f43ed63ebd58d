package store

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
)

func TestListAssetsDriverError(t *testing.T) {
	mockDB, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer mockDB.Close()

	mock.ExpectQuery("SELECT a.id").WillReturnError(errors.New("disk I/O error"))

	_, err = ListAssets(context.Background(), mockDB, AssetFilter{})
	if err == nil || !strings.Contains(err.Error(), "listing assets") {
		t.Fatalf("expected wrapped listing error, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestInTxRollsBackOnCommand(t *testing.T) {
	mockDB, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer mockDB.Close()

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE requests").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	err = InTx(context.Background(), mockDB, func(tx *sql.Tx) error {
		return UpdateRequestStatus(context.Background(), tx, "req-1", "Rejected")
	})
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}
