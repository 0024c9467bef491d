package db

import (
	"context"
	"database/sql"
	"fmt"
	"net/url"
	"time"

	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"

	"geocache-finder/config"
)

// Conn is a single store connection scoped to one request.
type Conn interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	Close() error
}

// Store hands out request-scoped connections to the geocache database.
type Store interface {
	Acquire(ctx context.Context) (Conn, error)
	Driver() string
}

// SQLStore is a Store over a database/sql pool. Opening it does not touch the network;
// every Acquire checks out one connection and pings it.
type SQLStore struct {
	db             *sql.DB
	driver         string
	connectTimeout time.Duration
}

// NewSQLStore wraps an already opened pool.
func NewSQLStore(sqlDB *sql.DB, driver string, connectTimeout time.Duration) *SQLStore {
	if connectTimeout <= 0 {
		connectTimeout = config.DEFAULT_STORE_CONNECT_TIMEOUT
	}
	return &SQLStore{db: sqlDB, driver: driver, connectTimeout: connectTimeout}
}

// OpenSQLStore opens the pool described by cfg.
func OpenSQLStore(cfg *config.Config) (*SQLStore, error) {
	dsn, err := BuildDSN(cfg)
	if err != nil {
		return nil, err
	}
	sqlDB, err := sql.Open(cfg.DBDriver, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s store: %w", cfg.DBDriver, err)
	}
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(5 * time.Minute)
	return NewSQLStore(sqlDB, cfg.DBDriver, cfg.StoreConnectTimeout), nil
}

// BuildDSN turns the store settings into a driver specific data source name.
func BuildDSN(cfg *config.Config) (string, error) {
	switch cfg.DBDriver {
	case config.DB_DRIVER_POSTGRES:
		u := url.URL{
			Scheme: "postgres",
			Host:   cfg.DBHost + ":" + cfg.DBPort,
			Path:   "/" + cfg.DBName,
		}
		if cfg.DBUser != "" {
			if cfg.DBPassword != "" {
				u.User = url.UserPassword(cfg.DBUser, cfg.DBPassword)
			} else {
				u.User = url.User(cfg.DBUser)
			}
		}
		q := url.Values{}
		q.Set("sslmode", cfg.DBSSLMode)
		q.Set("connect_timeout", fmt.Sprintf("%d", int(cfg.StoreConnectTimeout.Seconds()+0.5)))
		u.RawQuery = q.Encode()
		return u.String(), nil
	case config.DB_DRIVER_SQLITE:
		return cfg.DBPath, nil
	}
	return "", fmt.Errorf("unsupported store driver %q", cfg.DBDriver)
}

// Acquire checks out one connection and verifies it answers within the connect timeout.
// The caller must Close the returned Conn.
func (s *SQLStore) Acquire(ctx context.Context) (Conn, error) {
	ctx, cancel := context.WithTimeout(ctx, s.connectTimeout)
	defer cancel()

	conn, err := s.db.Conn(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to acquire store connection: %w", err)
	}
	if err := conn.PingContext(ctx); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to reach store: %w", err)
	}
	return conn, nil
}

func (s *SQLStore) Driver() string {
	return s.driver
}

// DB exposes the pool for tooling that seeds or inspects the store.
func (s *SQLStore) DB() *sql.DB {
	return s.db
}

// Ping verifies the store is reachable.
func (s *SQLStore) Ping(ctx context.Context) error {
	conn, err := s.Acquire(ctx)
	if err != nil {
		return err
	}
	return conn.Close()
}

func (s *SQLStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}
