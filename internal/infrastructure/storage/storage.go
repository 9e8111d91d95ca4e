// Package storage abre el backend configurado (SQLite por defecto, PostgreSQL opcional)
// y entrega los puertos que consumen los casos de uso.
package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/jhoicas/herramientas-api/internal/application/inventory"
	"github.com/jhoicas/herramientas-api/internal/domain/repository"
	"github.com/jhoicas/herramientas-api/internal/infrastructure/postgres"
	"github.com/jhoicas/herramientas-api/internal/infrastructure/sqlite"
	"github.com/jhoicas/herramientas-api/pkg/config"
	"github.com/jhoicas/herramientas-api/pkg/logger"
)

// Store agrupa repositorios, runner transaccional y reseteo de un backend abierto.
type Store struct {
	Driver    string
	Tools     repository.ToolRepository
	Movements repository.MovementRepository
	TxRunner  inventory.TxRunner
	Resetter  inventory.StoreResetter

	ping    func(ctx context.Context) error
	closers []func() error
}

// Open abre el backend indicado por cfg.Driver y aplica migraciones.
func Open(ctx context.Context, cfg config.DBConfig, log *logger.Logger) (*Store, error) {
	switch cfg.Driver {
	case config.DriverSQLite, "":
		return openSQLite(ctx, cfg, log)
	case config.DriverPostgres:
		return openPostgres(ctx, cfg, log)
	}
	return nil, fmt.Errorf("storage: driver desconocido %q", cfg.Driver)
}

func openSQLite(ctx context.Context, cfg config.DBConfig, log *logger.Logger) (*Store, error) {
	db, err := sqlite.Open(ctx, cfg.SQLitePath)
	if err != nil {
		return nil, err
	}
	log.Info().Str("driver", config.DriverSQLite).Str("path", db.Path()).Msg("almacén abierto")
	return &Store{
		Driver:    config.DriverSQLite,
		Tools:     sqlite.NewToolRepository(db.SQL()),
		Movements: sqlite.NewMovementRepository(db.SQL()),
		TxRunner:  sqlite.NewTxRunner(db),
		Resetter:  db,
		ping:      db.Ping,
		closers:   []func() error{db.Close},
	}, nil
}

func openPostgres(ctx context.Context, cfg config.DBConfig, log *logger.Logger) (*Store, error) {
	pool, err := postgres.NewPool(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("conexión a PostgreSQL: %w", err)
	}
	migrator, err := postgres.NewMigrator(pool)
	if err != nil {
		pool.Close()
		return nil, err
	}
	if err := migrator.Up(ctx); err != nil {
		_ = migrator.Close()
		pool.Close()
		return nil, err
	}
	log.Info().Str("driver", config.DriverPostgres).Str("db", cfg.DBName).Msg("almacén abierto")
	return &Store{
		Driver:    config.DriverPostgres,
		Tools:     postgres.NewToolRepository(pool),
		Movements: postgres.NewMovementRepository(pool),
		TxRunner:  postgres.NewTxRunner(pool),
		Resetter:  migrator,
		ping:      pool.Ping,
		closers: []func() error{
			migrator.Close,
			func() error { pool.Close(); return nil },
		},
	}, nil
}

// ToolUseCase construye el caso de uso sobre este almacén.
func (s *Store) ToolUseCase() *inventory.ToolUseCase {
	return inventory.NewToolUseCase(s.TxRunner, s.Tools, s.Movements, s.Resetter)
}

// Ping verifica la conexión con el almacén.
func (s *Store) Ping(ctx context.Context) error {
	return s.ping(ctx)
}

// Close libera los recursos en orden.
func (s *Store) Close() error {
	var errs []error
	for _, c := range s.closers {
		if err := c(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
