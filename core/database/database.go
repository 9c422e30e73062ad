package database

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// DSN composes a connection string from the discrete config fields,
// prefixed with the driver scheme so Open can route it.
func (c Config) DSN() string {
	timeout := c.TimeoutSeconds
	if timeout <= 0 {
		timeout = 30
	}

	switch c.Driver {
	case "sqlite":
		return "sqlite://" + c.Name
	case "postgres":
		// lib/pq style URL, understood directly by the pgx-based driver
		u := url.URL{
			Scheme:   "postgres",
			User:     url.UserPassword(c.User, c.Password),
			Host:     fmt.Sprintf("%s:%d", c.Host, c.Port),
			Path:     c.Name,
			RawQuery: fmt.Sprintf("sslmode=disable&connect_timeout=%d", timeout),
		}
		return u.String()
	default:
		// go-sql-driver/mysql DSN; special characters in the password must
		// be URL encoded, which url.UserPassword takes care of
		userInfo := url.UserPassword(c.User, c.Password).String()
		return fmt.Sprintf("mysql://%s@tcp(%s:%d)/%s?charset=utf8mb4&parseTime=True&loc=Local&timeout=%ds&readTimeout=%ds&writeTimeout=%ds",
			userInfo, c.Host, c.Port, c.Name, timeout, timeout, timeout)
	}
}

// Connect establishes a connection using the discrete config fields.
// It returns a *gorm.DB connection or an error if the connection fails.
func Connect(cfg Config) (*gorm.DB, error) {
	timeout := cfg.TimeoutSeconds
	if timeout <= 0 {
		timeout = 30
	}
	return openDSN(cfg.DSN(), timeout)
}

// Open establishes a connection from an opaque connection string. The URL
// scheme selects the driver: mysql://, postgres:// (or postgresql://) and
// sqlite://. Scheme-less strings are accepted when they are unambiguous,
// such as a native mysql DSN containing "@tcp(" or a sqlite file path.
func Open(dsn string) (*gorm.DB, error) {
	return openDSN(dsn, 30)
}

func openDSN(dsn string, timeoutSeconds int) (*gorm.DB, error) {
	dialector, err := dialectorFor(dsn)
	if err != nil {
		return nil, err
	}

	// Suppress GORM logging; the application logger reports outcomes
	gormConfig := &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	}

	db, err := gorm.Open(dialector, gormConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to %s: %w", Redact(dsn), err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get sql.DB: %w", err)
	}

	// Set connection pool settings to avoid typical issues
	if dialector.Name() == "sqlite" {
		// An in-memory sqlite database exists per connection; a pool of
		// more than one would hand out empty databases
		sqlDB.SetMaxOpenConns(1)
	} else {
		sqlDB.SetMaxIdleConns(10)
		sqlDB.SetMaxOpenConns(100)
		sqlDB.SetConnMaxLifetime(time.Hour)
	}

	// Verify connection with context timeout
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(timeoutSeconds)*time.Second)
	defer cancel()

	if err := sqlDB.PingContext(ctx); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("failed to ping %s: %w", Redact(dsn), err)
	}

	return db, nil
}

func dialectorFor(dsn string) (gorm.Dialector, error) {
	switch {
	case strings.HasPrefix(dsn, "mysql://"):
		return mysql.Open(strings.TrimPrefix(dsn, "mysql://")), nil
	case strings.HasPrefix(dsn, "postgres://"), strings.HasPrefix(dsn, "postgresql://"):
		return postgres.Open(dsn), nil
	case strings.HasPrefix(dsn, "sqlite://"):
		return sqlite.Open(strings.TrimPrefix(dsn, "sqlite://")), nil
	case dsn == ":memory:", strings.HasPrefix(dsn, "file:"), strings.HasSuffix(dsn, ".db"), strings.HasSuffix(dsn, ".sqlite"):
		return sqlite.Open(dsn), nil
	case strings.Contains(dsn, "@tcp("):
		return mysql.Open(dsn), nil
	default:
		return nil, fmt.Errorf("cannot determine database driver for %q", Redact(dsn))
	}
}

// Close releases the underlying connection pool.
func Close(db *gorm.DB) error {
	if db == nil {
		return nil
	}
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// Redact strips credentials from a connection string so it is safe to log
// and to embed in error messages.
func Redact(dsn string) string {
	// URL-shaped strings, including the mysql:// prefix form
	if i := strings.Index(dsn, "://"); i >= 0 {
		scheme, rest := dsn[:i], dsn[i+3:]
		return scheme + "://" + redactUserInfo(rest)
	}
	// Native mysql DSN: user:pass@tcp(host)/db
	if strings.Contains(dsn, "@tcp(") {
		return redactUserInfo(dsn)
	}
	return dsn
}

func redactUserInfo(s string) string {
	at := strings.Index(s, "@")
	if at < 0 {
		return s
	}
	creds := s[:at]
	if colon := strings.Index(creds, ":"); colon >= 0 {
		creds = creds[:colon] + ":***"
	}
	return creds + s[at:]
}
