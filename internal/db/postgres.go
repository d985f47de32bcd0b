package db

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/yigit/ssis/internal/config"
	"github.com/yigit/ssis/internal/pkg/logger"
)

// ErrNotInitialized is returned by every operation on a pool that was never
// opened or has already been closed.
var ErrNotInitialized = errors.New("connection pool not initialized")

// Pool is the subset of *pgxpool.Pool the application relies on.
type Pool interface {
	Begin(ctx context.Context) (pgx.Tx, error)
	Ping(ctx context.Context) error
	Close()
}

// PostgresDB owns the bounded connection pool. It is created once at startup,
// passed to every repository and closed on shutdown.
type PostgresDB struct {
	mu             sync.RWMutex
	pool           Pool
	acquireTimeout time.Duration
}

// New wraps an already opened pool. acquireTimeout bounds how long a unit of
// work waits for a free connection; zero means wait for the caller's context.
func New(pool Pool, acquireTimeout time.Duration) *PostgresDB {
	return &PostgresDB{pool: pool, acquireTimeout: acquireTimeout}
}

// NewPostgresDB creates a new PostgreSQL connection pool
func NewPostgresDB(cfg *config.Config) (*PostgresDB, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	poolConfig, err := pgxpool.ParseConfig(cfg.Database.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse pgxpool config: %w", err)
	}

	poolConfig.MaxConns = int32(cfg.Database.MaxConns)
	poolConfig.MinConns = int32(cfg.Database.MinConns)

	maxLifetime, err := time.ParseDuration(cfg.Database.ConnMaxLifetime)
	if err != nil {
		return nil, fmt.Errorf("failed to parse connection max lifetime: %w", err)
	}
	poolConfig.MaxConnLifetime = maxLifetime

	acquireTimeout, err := time.ParseDuration(cfg.Database.AcquireTimeout)
	if err != nil {
		return nil, fmt.Errorf("failed to parse acquire timeout: %w", err)
	}

	poolConfig.BeforeAcquire = func(ctx context.Context, conn *pgx.Conn) bool {
		if err := conn.Ping(ctx); err != nil {
			logger.Warn().Err(err).Msg("Unhealthy connection detected")
			return false
		}
		return true
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create database connection pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to establish database connection: %w", err)
	}

	logger.Info().
		Int32("minConns", poolConfig.MinConns).
		Int32("maxConns", poolConfig.MaxConns).
		Msg("Database connection pool opened")

	return New(pool, acquireTimeout), nil
}

func (db *PostgresDB) current() (Pool, error) {
	db.mu.RLock()
	defer db.mu.RUnlock()
	if db.pool == nil {
		return nil, ErrNotInitialized
	}
	return db.pool, nil
}

// Ping checks that a connection can be acquired and used.
func (db *PostgresDB) Ping(ctx context.Context) error {
	pool, err := db.current()
	if err != nil {
		return err
	}
	return pool.Ping(ctx)
}

// Close closes every pooled connection. It is safe to call more than once.
func (db *PostgresDB) Close() {
	db.mu.Lock()
	pool := db.pool
	db.pool = nil
	db.mu.Unlock()

	if pool != nil {
		pool.Close()
	}
}

// TransactionFn is a function that executes within a transaction
type TransactionFn func(ctx context.Context, tx pgx.Tx) error

// WithTransaction runs fn as one unit of work: the transaction commits when fn
// returns nil and rolls back on error or panic. Either way the connection goes
// back to the pool.
func (db *PostgresDB) WithTransaction(ctx context.Context, fn TransactionFn) error {
	pool, err := db.current()
	if err != nil {
		return err
	}

	acquireCtx := ctx
	if _, hasDeadline := ctx.Deadline(); !hasDeadline && db.acquireTimeout > 0 {
		var cancel context.CancelFunc
		acquireCtx, cancel = context.WithTimeout(ctx, db.acquireTimeout)
		defer cancel()
	}

	tx, err := pool.Begin(acquireCtx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	defer func() {
		if r := recover(); r != nil {
			_ = tx.Rollback(context.WithoutCancel(ctx))
			panic(r)
		}
	}()

	if err := fn(ctx, tx); err != nil {
		if rbErr := tx.Rollback(context.WithoutCancel(ctx)); rbErr != nil {
			logger.Error().Err(rbErr).Msg("Failed to rollback transaction")
			return fmt.Errorf("%w (rollback error: %v)", err, rbErr)
		}
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}
