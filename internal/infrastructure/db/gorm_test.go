package db

import (
	"errors"
	"math"
	"testing"

	"p2p-lending-ledger/internal/config"
	"p2p-lending-ledger/internal/domain/asset"
	"p2p-lending-ledger/internal/domain/loan"
	"p2p-lending-ledger/pkg/checked"

	"github.com/DATA-DOG/go-sqlmock"
	"gorm.io/driver/mysql"
)

func TestOpenGormWithDialector_Success(t *testing.T) {
	sqlDB, mock, err := sqlmock.New() // fake *sql.DB
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer sqlDB.Close()

	// Expect a Ping from our code
	mock.ExpectPing()

	// Build a mysql dialector that uses our mocked *sql.DB
	dial := mysql.New(mysql.Config{
		Conn:                      sqlDB,
		SkipInitializeWithVersion: true, // don't query @@version
	})

	gdb, err := OpenGormWithDialector(dial)
	if err != nil {
		t.Fatalf("OpenGormWithDialector error: %v", err)
	}
	if gdb == nil {
		t.Fatalf("got nil gorm.DB")
	}
	if _, ok := gdb.Plugins[SignedRange{}.Name()]; ok {
		t.Fatalf("mysql stores bigint unsigned; signed range plugin should not be registered")
	}

	// Ensure all expectations were met
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestOpenGormWithDialector_PingFails(t *testing.T) {
	sqlDB, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer sqlDB.Close()

	mock.ExpectPing().WillReturnError(errors.New("no ping"))

	dial := mysql.New(mysql.Config{
		Conn:                      sqlDB,
		SkipInitializeWithVersion: true,
	})

	gdb, err := OpenGormWithDialector(dial)
	if err == nil {
		t.Fatalf("expected error, got nil (gdb=%v)", gdb)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestDialector(t *testing.T) {
	for _, driver := range []string{config.DriverMySQL, config.DriverPostgres, config.DriverSQLite} {
		d, err := Dialector(driver, "dsn")
		if err != nil || d == nil {
			t.Fatalf("Dialector(%q) = %v, %v", driver, d, err)
		}
		if d.Name() != driver {
			t.Fatalf("Dialector(%q).Name() = %q", driver, d.Name())
		}
	}
	if _, err := Dialector("oracle", "dsn"); err == nil {
		t.Fatal("expected error for unsupported driver")
	}
}

func TestOpenGorm_SQLiteMigrates(t *testing.T) {
	gdb, err := OpenGorm(config.DriverSQLite, "file::memory:")
	if err != nil {
		t.Fatalf("OpenGorm sqlite: %v", err)
	}
	if err := Migrate(gdb); err != nil {
		t.Fatalf("Migrate: %v", err)
	}
	for _, table := range []string{"loan_offers", "loans", "user_collateral", "guarantor_offers", "sequence_counters", "asset_accounts", "asset_allowances", "ledger_events"} {
		if !gdb.Migrator().HasTable(table) {
			t.Fatalf("table %s not migrated", table)
		}
	}
}

func TestOpenGorm_SQLiteRejectsHighBitValues(t *testing.T) {
	gdb, err := OpenGorm(config.DriverSQLite, "file::memory:")
	if err != nil {
		t.Fatalf("OpenGorm sqlite: %v", err)
	}
	if err := Migrate(gdb); err != nil {
		t.Fatalf("Migrate: %v", err)
	}

	err = gdb.Create(&loan.LoanOffer{OfferID: 1, Amount: 1 << 63}).Error
	if !errors.Is(err, checked.ErrOutOfRange) {
		t.Fatalf("create amount 2^63: err = %v, want ErrOutOfRange", err)
	}

	acct := &asset.Account{Holder: "h", Balance: math.MaxInt64}
	if err := gdb.Create(acct).Error; err != nil {
		t.Fatalf("create MaxInt64 balance: %v", err)
	}
	acct.Balance = math.MaxUint64
	if err := gdb.Save(acct).Error; !errors.Is(err, checked.ErrOutOfRange) {
		t.Fatalf("save MaxUint64 balance: err = %v, want ErrOutOfRange", err)
	}
	var got asset.Account
	if err := gdb.Take(&got, acct.ID).Error; err != nil || got.Balance != math.MaxInt64 {
		t.Fatalf("stored balance = %d, %v; want MaxInt64", got.Balance, err)
	}
}
