package sqlite

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/pressly/goose/v3"
	_ "modernc.org/sqlite"

	"github.com/jhoicas/herramientas-api/internal/application/inventory"
)

//go:embed migrations/*.sql
var migrations embed.FS

var _ inventory.StoreResetter = (*DB)(nil)

// Querier abstrae *sql.DB y *sql.Tx para que los repositorios funcionen dentro o fuera de una transacción.
type Querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// DB almacén de un único archivo SQLite con el esquema gestionado por goose.
type DB struct {
	sql      *sql.DB
	provider *goose.Provider
	path     string
}

// DSN arma la cadena de conexión: claves foráneas activas (ON DELETE CASCADE), WAL,
// espera ante bloqueos y transacciones de escritura inmediatas (BEGIN IMMEDIATE).
func DSN(path string) string {
	return "file:" + path +
		"?_pragma=foreign_keys(1)" +
		"&_pragma=journal_mode(WAL)" +
		"&_pragma=busy_timeout(5000)" +
		"&_txlock=immediate"
}

// Open abre (o crea) el archivo y aplica las migraciones pendientes.
func Open(ctx context.Context, path string) (*DB, error) {
	if strings.TrimSpace(path) == "" {
		return nil, errors.New("sqlite: ruta del archivo requerida")
	}

	db, err := sql.Open("sqlite", DSN(path))
	if err != nil {
		return nil, fmt.Errorf("sqlite: abrir: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("sqlite: ping: %w", err)
	}

	sub, err := fs.Sub(migrations, "migrations")
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("sqlite: migraciones: %w", err)
	}
	provider, err := goose.NewProvider(goose.DialectSQLite3, db, sub)
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("sqlite: crear proveedor de migraciones: %w", err)
	}
	if _, err := provider.Up(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("sqlite: aplicar migraciones: %w", err)
	}

	return &DB{sql: db, provider: provider, path: path}, nil
}

// SQL devuelve el pool subyacente.
func (d *DB) SQL() *sql.DB {
	return d.sql
}

// Path devuelve la ruta del archivo de datos.
func (d *DB) Path() string {
	return d.path
}

// Ping verifica que el archivo siga accesible.
func (d *DB) Ping(ctx context.Context) error {
	return d.sql.PingContext(ctx)
}

// Reset revierte todas las migraciones (borra tablas y secuencias) y las vuelve a aplicar.
func (d *DB) Reset(ctx context.Context) error {
	if _, err := d.provider.DownTo(ctx, 0); err != nil {
		return fmt.Errorf("sqlite: revertir esquema: %w", err)
	}
	if _, err := d.provider.Up(ctx); err != nil {
		return fmt.Errorf("sqlite: recrear esquema: %w", err)
	}
	return nil
}

// Close cierra el pool.
func (d *DB) Close() error {
	return d.sql.Close()
}
