package migrator

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io/fs"

	"github.com/pressly/goose/v3"
)

var (
	// ErrMigrate возвращается при ошибке применения или отката миграций
	ErrMigrate = errors.New("migrator: migration failed")
)

// Logger интерфейс логгера
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Migrator обертка над goose, читающая миграции из встроенной FS
type Migrator struct {
	db     *sql.DB
	fsys   fs.FS
	logger Logger
}

// New создает мигратор
func New(db *sql.DB, fsys fs.FS, logger Logger) (*Migrator, error) {
	if err := goose.SetDialect("postgres"); err != nil {
		return nil, fmt.Errorf("%w: set dialect: %v", ErrMigrate, err)
	}
	goose.SetBaseFS(fsys)

	return &Migrator{db: db, fsys: fsys, logger: logger}, nil
}

// Up применяет все pending миграции
func (m *Migrator) Up(ctx context.Context) error {
	m.logger.Info("Migrator: applying migrations")

	if err := goose.UpContext(ctx, m.db, "."); err != nil {
		m.logger.Error("Migrator: up failed: %v", err)
		return fmt.Errorf("%w: up: %v", ErrMigrate, err)
	}

	version, err := m.Version(ctx)
	if err != nil {
		return err
	}
	m.logger.Info("Migrator: schema is at version %d", version)
	return nil
}

// Down откатывает последнюю миграцию
func (m *Migrator) Down(ctx context.Context) error {
	m.logger.Warn("Migrator: rolling back the latest migration")

	if err := goose.DownContext(ctx, m.db, "."); err != nil {
		m.logger.Error("Migrator: down failed: %v", err)
		return fmt.Errorf("%w: down: %v", ErrMigrate, err)
	}
	return nil
}

// Status выводит состояние миграций в лог goose
func (m *Migrator) Status(ctx context.Context) error {
	if err := goose.StatusContext(ctx, m.db, "."); err != nil {
		return fmt.Errorf("%w: status: %v", ErrMigrate, err)
	}
	return nil
}

// Version возвращает текущую версию схемы
func (m *Migrator) Version(ctx context.Context) (int64, error) {
	version, err := goose.GetDBVersionContext(ctx, m.db)
	if err != nil {
		return 0, fmt.Errorf("%w: version: %v", ErrMigrate, err)
	}
	return version, nil
}
