package store

import (
	"context"
	"errors"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// entrada is one key-value row. A single table keeps the store a true
// black box: no domain schema leaks into the backend.
type entrada struct {
	Clave string `gorm:"primaryKey"`
	Valor []byte
}

func (entrada) TableName() string { return "entradas" }

type sqliteKV struct {
	db *gorm.DB
}

// NewSQLite opens (or creates) the store file and migrates the single
// entradas table. SQLite keeps the store local to one profile, surviving
// restarts, which is all the durability the engine promises.
func NewSQLite(path string) (KV, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, err
	}
	if err := db.AutoMigrate(&entrada{}); err != nil {
		return nil, err
	}
	// SQLite serializes writers; a single connection avoids SQLITE_BUSY.
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(1)
	return &sqliteKV{db: db}, nil
}

func (s *sqliteKV) Get(ctx context.Context, clave string) ([]byte, error) {
	var e entrada
	err := s.db.WithContext(ctx).First(&e, "clave = ?", clave).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrClaveNoEncontrada
	}
	if err != nil {
		return nil, err
	}
	return e.Valor, nil
}

func (s *sqliteKV) Update(ctx context.Context, fn func(tx Tx) error) error {
	return s.db.WithContext(ctx).Transaction(func(gtx *gorm.DB) error {
		tx := &sqliteTx{db: gtx}
		if err := fn(tx); err != nil {
			return err
		}
		// A failed buffered write aborts the whole transaction.
		return tx.err
	})
}

func (s *sqliteKV) Ping(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

func (s *sqliteKV) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// sqliteTx applies writes inside the surrounding GORM transaction, so a
// callback error rolls every Set/Delete back.
type sqliteTx struct {
	db  *gorm.DB
	err error
}

func (t *sqliteTx) Get(clave string) ([]byte, error) {
	var e entrada
	err := t.db.First(&e, "clave = ?", clave).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrClaveNoEncontrada
	}
	if err != nil {
		return nil, err
	}
	return e.Valor, nil
}

func (t *sqliteTx) Set(clave string, valor []byte) {
	if t.err != nil {
		return
	}
	t.err = t.db.Save(&entrada{Clave: clave, Valor: valor}).Error
}

func (t *sqliteTx) Delete(clave string) {
	if t.err != nil {
		return
	}
	t.err = t.db.Delete(&entrada{}, "clave = ?", clave).Error
}
