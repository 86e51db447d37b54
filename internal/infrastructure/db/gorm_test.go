package db

import (
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

func mockDialector(t *testing.T, opts ...func(*sqlmock.Sqlmock)) (gorm.Dialector, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	t.Cleanup(func() { _ = sqlDB.Close() })
	for _, o := range opts {
		o(&mock)
	}
	// SkipInitializeWithVersion: the mock has no @@version to offer
	return mysql.New(mysql.Config{Conn: sqlDB, SkipInitializeWithVersion: true}), mock
}

func TestOpenGormWithDialector(t *testing.T) {
	dial, mock := mockDialector(t, func(m *sqlmock.Sqlmock) { (*m).ExpectPing() })

	gdb, err := OpenGormWithDialector(dial)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if gdb == nil {
		t.Fatal("nil gorm.DB")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestOpenGormWithDialector_PingFailure(t *testing.T) {
	dial, _ := mockDialector(t, func(m *sqlmock.Sqlmock) {
		(*m).ExpectPing().WillReturnError(errors.New("down"))
	})

	if _, err := OpenGormWithDialector(dial); err == nil {
		t.Fatal("expected ping failure to surface")
	}
}
