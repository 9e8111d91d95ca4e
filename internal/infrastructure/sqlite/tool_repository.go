package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jhoicas/herramientas-api/internal/domain"
	"github.com/jhoicas/herramientas-api/internal/domain/entity"
	"github.com/jhoicas/herramientas-api/internal/domain/repository"
)

var _ repository.ToolRepository = (*ToolRepo)(nil)

// ToolRepo implementación de ToolRepository sobre SQLite (usable con pool o tx).
type ToolRepo struct {
	q Querier
}

// NewToolRepository construye el adaptador. Pasar *sql.DB o *sql.Tx (Querier).
func NewToolRepository(q Querier) *ToolRepo {
	return &ToolRepo{q: q}
}

// Create persiste una herramienta y asigna el ID generado.
func (r *ToolRepo) Create(ctx context.Context, tool *entity.Tool) error {
	res, err := r.q.ExecContext(ctx,
		`INSERT INTO tools (name, quantity) VALUES (?, ?)`,
		tool.Name, tool.Quantity,
	)
	if err != nil {
		return fmt.Errorf("insert tool: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("insert tool id: %w", err)
	}
	tool.ID = id
	return nil
}

// GetByID obtiene una herramienta por ID.
func (r *ToolRepo) GetByID(ctx context.Context, id int64) (*entity.Tool, error) {
	var t entity.Tool
	err := r.q.QueryRowContext(ctx,
		`SELECT id, name, quantity FROM tools WHERE id = ?`, id,
	).Scan(&t.ID, &t.Name, &t.Quantity)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get tool: %w", err)
	}
	return &t, nil
}

// GetForUpdate en SQLite equivale a GetByID: la transacción ya se abrió con BEGIN IMMEDIATE
// y tiene reservada la escritura de todo el archivo.
func (r *ToolRepo) GetForUpdate(ctx context.Context, id int64) (*entity.Tool, error) {
	return r.GetByID(ctx, id)
}

// List devuelve todas las herramientas ordenadas por ID.
func (r *ToolRepo) List(ctx context.Context) ([]*entity.Tool, error) {
	rows, err := r.q.QueryContext(ctx, `SELECT id, name, quantity FROM tools ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list tools: %w", err)
	}
	defer rows.Close()
	var list []*entity.Tool
	for rows.Next() {
		var t entity.Tool
		if err := rows.Scan(&t.ID, &t.Name, &t.Quantity); err != nil {
			return nil, fmt.Errorf("scan tool: %w", err)
		}
		list = append(list, &t)
	}
	return list, rows.Err()
}

// Update sobrescribe nombre y saldo.
func (r *ToolRepo) Update(ctx context.Context, tool *entity.Tool) error {
	res, err := r.q.ExecContext(ctx,
		`UPDATE tools SET name = ?, quantity = ? WHERE id = ?`,
		tool.Name, tool.Quantity, tool.ID,
	)
	if err != nil {
		return fmt.Errorf("update tool: %w", err)
	}
	return expectOneRow(res)
}

// UpdateQuantity actualiza solo el saldo (usado por el registro de movimientos).
func (r *ToolRepo) UpdateQuantity(ctx context.Context, id int64, quantity int) error {
	res, err := r.q.ExecContext(ctx, `UPDATE tools SET quantity = ? WHERE id = ?`, quantity, id)
	if err != nil {
		return fmt.Errorf("update tool quantity: %w", err)
	}
	return expectOneRow(res)
}

// Delete elimina la herramienta; los movimientos caen por ON DELETE CASCADE.
func (r *ToolRepo) Delete(ctx context.Context, id int64) error {
	res, err := r.q.ExecContext(ctx, `DELETE FROM tools WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete tool: %w", err)
	}
	return expectOneRow(res)
}

func expectOneRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return domain.ErrNotFound
	}
	return nil
}
