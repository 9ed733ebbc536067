package app

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
	"go.uber.org/zap"
)

// Migrator применяет goose-миграции из каталога, заданного конфигом,
// поверх уже открытого пула.
type Migrator struct {
	db     *sql.DB
	dir    string
	logger *zap.Logger
}

func NewMigrator(pool *pgxpool.Pool, dir string, logger *zap.Logger) (*Migrator, error) {
	if err := goose.SetDialect("postgres"); err != nil {
		return nil, fmt.Errorf("set goose dialect: %w", err)
	}

	// goose ходит через database/sql, владельцем соединений остаётся пул
	return &Migrator{
		db:     stdlib.OpenDBFromPool(pool),
		dir:    dir,
		logger: logger,
	}, nil
}

// Run применяет все неприменённые миграции и логирует итоговую версию.
func (m *Migrator) Run(ctx context.Context) error {
	m.logger.Info("Applying database migrations", zap.String("dir", m.dir))

	if err := goose.UpContext(ctx, m.db, m.dir); err != nil {
		return fmt.Errorf("apply migrations: %w", err)
	}

	version, err := goose.GetDBVersionContext(ctx, m.db)
	if err != nil {
		return fmt.Errorf("get migration version: %w", err)
	}
	m.logger.Info("Migrations applied", zap.Int64("version", version))

	return nil
}

// Close закрывает sql.DB мигратора, пул при этом остаётся открытым.
func (m *Migrator) Close() error {
	return m.db.Close()
}
