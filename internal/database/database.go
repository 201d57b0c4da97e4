package database

import (
	"context"
	"fmt"
	"time"

	"codezetta/internal/config"
	"codezetta/internal/logger"

	_ "github.com/godror/godror" // Oracle driver (OCI)
	"github.com/jmoiron/sqlx"
	_ "github.com/sijms/go-ora/v2" // Oracle driver (pure Go)
	"go.uber.org/zap"
)

func init() {
	// go-ora registers as "oracle", which sqlx does not know about.
	sqlx.BindDriver(config.DriverGoOra, sqlx.NAMED)
}

// NewSQLXDB opens and pings an Oracle connection pool using the named driver.
func NewSQLXDB(driver, dsn string) (*sqlx.DB, error) {
	if driver == "" {
		driver = config.DriverGoOra
	}
	if driver != config.DriverGoOra && driver != config.DriverGodror {
		return nil, fmt.Errorf("unsupported database driver %q", driver)
	}

	db, err := sqlx.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open Oracle database: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(30 * time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping Oracle database: %w", err)
	}

	logger.Get().Info("Successfully connected to Oracle database", zap.String("driver", driver))
	return db, nil
}
