// Package postgres реализует хранилище сервера поверх PostgreSQL (pgx v5).
package postgres

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"

	"github.com/iudanet/pautinka/internal/models"
	"github.com/iudanet/pautinka/internal/server/storage"
)

//go:embed migrations/*.sql
var embedMigrations embed.FS

var _ storage.Storage = (*Storage)(nil)

// Коды ошибок PostgreSQL
const (
	codeUniqueViolation     = "23505"
	codeForeignKeyViolation = "23503"
)

// Config параметры пула соединений
type Config struct {
	DSN             string
	MaxConns        int32
	MinConns        int32
	MaxConnLifetime time.Duration
	ConnectTimeout  time.Duration
}

// Storage represents PostgreSQL storage implementation
type Storage struct {
	pool  *pgxpool.Pool
	sqlDB *sql.DB
}

// scanner общий интерфейс pgx.Row и pgx.Rows
type scanner interface {
	Scan(dest ...any) error
}

// New подключается к PostgreSQL и применяет миграции
func New(ctx context.Context, cfg Config) (*Storage, error) {
	pcfg, err := pgxpool.ParseConfig(cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("failed to parse dsn: %w", err)
	}

	if cfg.ConnectTimeout > 0 {
		pcfg.ConnConfig.ConnectTimeout = cfg.ConnectTimeout
	}
	if cfg.MaxConns > 0 {
		pcfg.MaxConns = cfg.MaxConns
	}
	if cfg.MinConns > 0 {
		pcfg.MinConns = cfg.MinConns
	}
	if cfg.MaxConnLifetime > 0 {
		pcfg.MaxConnLifetime = cfg.MaxConnLifetime
	}

	pool, err := pgxpool.NewWithConfig(ctx, pcfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create pool: %w", err)
	}

	pingCtx := ctx
	if _, ok := ctx.Deadline(); !ok {
		var cancel context.CancelFunc
		pingCtx, cancel = context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
	}
	if err := pool.Ping(pingCtx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	s := &Storage{
		pool:  pool,
		sqlDB: stdlib.OpenDBFromPool(pool),
	}

	if err := s.runMigrations(ctx); err != nil {
		_ = s.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return s, nil
}

// runMigrations применяет embedded миграции через goose provider
func (s *Storage) runMigrations(ctx context.Context) error {
	migrations, err := fs.Sub(embedMigrations, "migrations")
	if err != nil {
		return fmt.Errorf("migrations fs: %w", err)
	}

	provider, err := goose.NewProvider(goose.DialectPostgres, s.sqlDB, migrations)
	if err != nil {
		return fmt.Errorf("goose provider: %w", err)
	}

	if _, err := provider.Up(ctx); err != nil {
		return fmt.Errorf("goose up failed: %w", err)
	}

	return nil
}

// Close закрывает пул соединений
func (s *Storage) Close() error {
	if s.sqlDB != nil {
		_ = s.sqlDB.Close()
	}
	s.pool.Close()
	return nil
}

// Ping проверяет доступность БД
func (s *Storage) Ping(ctx context.Context) error {
	return s.pool.Ping(ctx)
}

// pgCode возвращает код ошибки PostgreSQL и имя ограничения
func pgCode(err error) (code, constraint string) {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code, pgErr.ConstraintName
	}
	return "", ""
}

func isForeignKeyViolation(err error) bool {
	code, _ := pgCode(err)
	return code == codeForeignKeyViolation
}

// mapUniqueError переводит нарушение уникального индекса в ошибку хранилища
func mapUniqueError(err error) error {
	code, constraint := pgCode(err)
	if code != codeUniqueViolation {
		return nil
	}

	switch constraint {
	case "users_email_key":
		return storage.ErrEmailTaken
	case "users_phone_key":
		return storage.ErrPhoneTaken
	default:
		return nil
	}
}

func nullString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func nullDate(d *models.Date) *time.Time {
	if d == nil {
		return nil
	}
	t := d.Time
	return &t
}

func dateFromPtr(t *time.Time) *models.Date {
	if t == nil {
		return nil
	}
	d := models.NewDate(*t)
	return &d
}
