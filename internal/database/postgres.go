// Package database provides the PostgreSQL connection and the repositories
// for crawl results, sync logs, and insights.
package database

import (
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq" // postgres driver

	"github.com/seasalt-intel/webintel/internal/logger"
)

// ErrNotConfigured is returned when the store settings are incomplete.
// Callers treat it as fatal before starting any crawl work.
var ErrNotConfigured = errors.New("database not configured")

// Config holds the PostgreSQL connection settings.
type Config struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	User            string        `mapstructure:"user"`
	Password        string        `mapstructure:"password"`
	DBName          string        `mapstructure:"dbname"`
	SSLMode         string        `mapstructure:"sslmode"`
	MaxOpenConns    int           `mapstructure:"max_open_conns"`
	MaxIdleConns    int           `mapstructure:"max_idle_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
}

// Validate reports whether the settings are complete enough to connect.
func (c Config) Validate() error {
	if c.Host == "" || c.DBName == "" || c.User == "" {
		return ErrNotConfigured
	}
	return nil
}

// DSN renders the connection string.
func (c Config) DSN() string {
	sslMode := c.SSLMode
	if sslMode == "" {
		sslMode = "disable"
	}
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, sslMode)
}

// NewConnection opens and verifies a PostgreSQL connection pool.
func NewConnection(cfg Config, log logger.Interface) (*sqlx.DB, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	db, err := sqlx.Connect("postgres", cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if cfg.MaxOpenConns > 0 {
		db.SetMaxOpenConns(cfg.MaxOpenConns)
	}
	if cfg.MaxIdleConns > 0 {
		db.SetMaxIdleConns(cfg.MaxIdleConns)
	}
	if cfg.ConnMaxLifetime > 0 {
		db.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	}

	log.Info("database connected",
		"host", cfg.Host,
		"port", cfg.Port,
		"dbname", cfg.DBName)

	return db, nil
}
