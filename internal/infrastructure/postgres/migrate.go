package postgres

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"io/fs"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"

	"github.com/jhoicas/herramientas-api/internal/application/inventory"
)

//go:embed migrations/*.sql
var migrations embed.FS

var _ inventory.StoreResetter = (*Migrator)(nil)

// Migrator aplica el esquema con goose sobre el pool (vía database/sql de pgx) y resetea el almacén.
type Migrator struct {
	db       *sql.DB
	provider *goose.Provider
}

// NewMigrator prepara goose con las migraciones embebidas.
func NewMigrator(pool *pgxpool.Pool) (*Migrator, error) {
	sub, err := fs.Sub(migrations, "migrations")
	if err != nil {
		return nil, fmt.Errorf("migraciones: %w", err)
	}
	db := stdlib.OpenDBFromPool(pool)
	provider, err := goose.NewProvider(goose.DialectPostgres, db, sub)
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("crear proveedor de migraciones: %w", err)
	}
	return &Migrator{db: db, provider: provider}, nil
}

// Up aplica las migraciones pendientes.
func (m *Migrator) Up(ctx context.Context) error {
	if _, err := m.provider.Up(ctx); err != nil {
		return fmt.Errorf("aplicar migraciones: %w", err)
	}
	return nil
}

// Reset revierte todas las migraciones (DROP de tablas y secuencias) y las vuelve a aplicar.
func (m *Migrator) Reset(ctx context.Context) error {
	if _, err := m.provider.DownTo(ctx, 0); err != nil {
		return fmt.Errorf("revertir esquema: %w", err)
	}
	return m.Up(ctx)
}

// Close libera el *sql.DB envoltorio; el pool se cierra aparte.
func (m *Migrator) Close() error {
	return m.db.Close()
}
