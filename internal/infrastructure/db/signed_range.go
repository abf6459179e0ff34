package db

import (
	"fmt"
	"reflect"

	"p2p-lending-ledger/pkg/checked"

	"gorm.io/gorm"
)

// SignedRange rejects writes of unsigned columns with the high bit set.
// MySQL stores uint64 as bigint unsigned; sqlite and postgres only have a
// signed bigint and their drivers refuse such values with an untyped error.
type SignedRange struct{}

func (SignedRange) Name() string { return "ledger:signed_range" }

func (SignedRange) Initialize(db *gorm.DB) error {
	if err := db.Callback().Create().Before("gorm:create").
		Register("ledger:signed_range_create", checkSignedRange); err != nil {
		return err
	}
	return db.Callback().Update().Before("gorm:update").
		Register("ledger:signed_range_update", checkSignedRange)
}

func checkSignedRange(tx *gorm.DB) {
	if tx.Error != nil || tx.Statement.Schema == nil {
		return
	}
	rv := reflect.Indirect(tx.Statement.ReflectValue)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		for i := 0; i < rv.Len(); i++ {
			if err := checkRow(tx, reflect.Indirect(rv.Index(i))); err != nil {
				_ = tx.AddError(err)
				return
			}
		}
	case reflect.Struct:
		if err := checkRow(tx, rv); err != nil {
			_ = tx.AddError(err)
		}
	}
}

func checkRow(tx *gorm.DB, row reflect.Value) error {
	if row.Kind() != reflect.Struct || row.Type() != tx.Statement.Schema.ModelType {
		return nil
	}
	for _, f := range tx.Statement.Schema.Fields {
		if f.DBName == "" || f.IndirectFieldType.Kind() != reflect.Uint64 {
			continue
		}
		v, zero := f.ValueOf(tx.Statement.Context, row)
		if zero {
			continue
		}
		fv := reflect.Indirect(reflect.ValueOf(v))
		if !fv.IsValid() || fv.Kind() != reflect.Uint64 {
			continue
		}
		u := fv.Uint()
		if err := checked.FitsInt64(u); err != nil {
			return fmt.Errorf("%s.%s = %d: %w", tx.Statement.Table, f.DBName, u, err)
		}
	}
	return nil
}
