// Package database provides database connection management and utilities.
package database

import (
	"database/sql"
	"fmt"
	"net/url"
	"time"

	"github.com/go-sql-driver/mysql"
	_ "github.com/lib/pq"

	apperrors "github.com/allisson/secureshare/internal/errors"
	secretstoreDomain "github.com/allisson/secureshare/internal/secretstore/domain"
)

// Config holds database configuration settings.
type Config struct {
	Driver             string
	MaxOpenConnections int
	MaxIdleConnections int
	ConnMaxLifetime    time.Duration
}

// DSN builds a driver-specific connection string from Vault-sourced credentials.
// The credential URL carries the host and database name; username and password
// are injected from their dedicated fields so they never appear in configuration.
func DSN(driver string, creds *secretstoreDomain.Credentials) (string, error) {
	switch driver {
	case "mysql":
		cfg, err := mysql.ParseDSN(creds.URL)
		if err != nil {
			return "", apperrors.Wrap(apperrors.ErrConfiguration, "invalid mysql connection url")
		}
		cfg.User = creds.Username
		cfg.Passwd = creds.Password
		return cfg.FormatDSN(), nil
	case "postgres":
		u, err := url.Parse(creds.URL)
		if err != nil {
			return "", apperrors.Wrap(apperrors.ErrConfiguration, "invalid postgres connection url")
		}
		u.User = url.UserPassword(creds.Username, creds.Password)
		return u.String(), nil
	default:
		return "", apperrors.Wrap(apperrors.ErrConfiguration, fmt.Sprintf("unsupported database driver %q", driver))
	}
}

// Connect establishes a database connection using credentials retrieved from Vault.
func Connect(cfg Config, creds *secretstoreDomain.Credentials) (*sql.DB, error) {
	dsn, err := DSN(cfg.Driver, creds)
	if err != nil {
		return nil, err
	}

	db, err := sql.Open(cfg.Driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxOpenConns(cfg.MaxOpenConnections)
	db.SetMaxIdleConns(cfg.MaxIdleConnections)
	db.SetConnMaxLifetime(cfg.ConnMaxLifetime)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return db, nil
}
