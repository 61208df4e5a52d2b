package database

import (
	"fmt"
	"log"
	"os"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// PoolOptions sizes the sql.DB pool behind gorm. Zero fields take the defaults.
type PoolOptions struct {
	MaxIdleConns    int
	MaxOpenConns    int
	ConnMaxLifetime time.Duration
}

// DefaultPoolOptions suits a single small instance; the identity table sees
// one or two queries per page load.
var DefaultPoolOptions = PoolOptions{
	MaxIdleConns:    5,
	MaxOpenConns:    25,
	ConnMaxLifetime: time.Hour,
}

func (o PoolOptions) withDefaults() PoolOptions {
	if o.MaxIdleConns <= 0 {
		o.MaxIdleConns = DefaultPoolOptions.MaxIdleConns
	}
	if o.MaxOpenConns <= 0 {
		o.MaxOpenConns = DefaultPoolOptions.MaxOpenConns
	}
	if o.MaxIdleConns > o.MaxOpenConns {
		o.MaxIdleConns = o.MaxOpenConns
	}
	if o.ConnMaxLifetime <= 0 {
		o.ConnMaxLifetime = DefaultPoolOptions.ConnMaxLifetime
	}
	return o
}

func sqlLogger() logger.Interface {
	return logger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags),
		logger.Config{
			SlowThreshold:             500 * time.Millisecond,
			LogLevel:                  logger.Warn,
			IgnoreRecordNotFoundError: true, // unknown visitors are routine
			ParameterizedQueries:      true, // keeps nicknames out of the log
		},
	)
}

// NewGormDB opens a postgres connection and applies the pool options.
func NewGormDB(dsn string, pool PoolOptions) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: sqlLogger(),
	})
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("unwrap sql.DB: %w", err)
	}

	pool = pool.withDefaults()
	sqlDB.SetMaxIdleConns(pool.MaxIdleConns)
	sqlDB.SetMaxOpenConns(pool.MaxOpenConns)
	sqlDB.SetConnMaxLifetime(pool.ConnMaxLifetime)

	return db, nil
}

// NewGormDBFromDSN opens a connection with DefaultPoolOptions.
func NewGormDBFromDSN(dsn string) (*gorm.DB, error) {
	return NewGormDB(dsn, DefaultPoolOptions)
}
