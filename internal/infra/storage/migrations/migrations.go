package migrations

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/m04kA/SMC-AppointmentService/pkg/dbmetrics"
)

//go:embed *.sql
var files embed.FS

var (
	// ErrReadMigrations возвращается, когда не удалось прочитать встроенные файлы
	ErrReadMigrations = errors.New("migrations: failed to read migration files")

	// ErrApplyMigration возвращается, когда миграция завершилась с ошибкой
	ErrApplyMigration = errors.New("migrations: failed to apply migration")
)

// TransactionManager выполняет функцию в транзакции
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
}

// Migrator применяет встроенные SQL миграции по порядку имен файлов
// Примененные версии хранятся в schema_migrations
type Migrator struct {
	db        dbmetrics.DBExecutor
	txManager TransactionManager
	logger    Logger
}

func NewMigrator(db dbmetrics.DBExecutor, txManager TransactionManager, logger Logger) *Migrator {
	return &Migrator{db: db, txManager: txManager, logger: logger}
}

// Up применяет все непримененные миграции и возвращает их количество
// Каждая миграция выполняется в отдельной транзакции вместе с записью версии
func (m *Migrator) Up(ctx context.Context) (int, error) {
	names, err := migrationNames()
	if err != nil {
		return 0, err
	}

	if _, err := m.db.ExecContext(ctx, `CREATE TABLE IF NOT EXISTS schema_migrations (version TEXT PRIMARY KEY, applied_at TIMESTAMPTZ NOT NULL DEFAULT NOW())`); err != nil {
		return 0, fmt.Errorf("%w: create schema_migrations: %v", ErrApplyMigration, err)
	}

	applied := 0
	for _, name := range names {
		var exists bool
		err := m.db.QueryRowContext(ctx, `SELECT EXISTS(SELECT 1 FROM schema_migrations WHERE version = $1)`, name).Scan(&exists)
		if err != nil {
			return applied, fmt.Errorf("%w: check %s: %v", ErrApplyMigration, name, err)
		}
		if exists {
			continue
		}

		body, err := files.ReadFile(name)
		if err != nil {
			return applied, fmt.Errorf("%w: %s: %v", ErrReadMigrations, name, err)
		}

		err = m.txManager.Do(ctx, func(txCtx context.Context) error {
			executor := dbmetrics.GetExecutor(txCtx, m.db)
			if _, err := executor.ExecContext(txCtx, string(body)); err != nil {
				return err
			}
			_, err := executor.ExecContext(txCtx, `INSERT INTO schema_migrations (version) VALUES ($1)`, name)
			return err
		})
		if err != nil {
			return applied, fmt.Errorf("%w: %s: %v", ErrApplyMigration, name, err)
		}

		m.logger.Info("Migrations: applied %s", name)
		applied++
	}

	return applied, nil
}

func migrationNames() ([]string, error) {
	entries, err := files.ReadDir(".")
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrReadMigrations, err)
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".sql") {
			continue
		}
		names = append(names, e.Name())
	}
	sort.Strings(names)

	return names, nil
}
