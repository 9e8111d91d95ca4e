package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/herramientas-api/internal/domain"
	"github.com/jhoicas/herramientas-api/internal/domain/entity"
	"github.com/jhoicas/herramientas-api/internal/domain/repository"
)

var _ repository.ToolRepository = (*ToolRepo)(nil)

// ToolRepo implementación del puerto ToolRepository sobre PostgreSQL (usable con pool o tx).
type ToolRepo struct {
	q Querier
}

// NewToolRepository construye el adaptador de persistencia para herramientas. Pasar pool o tx (Querier).
func NewToolRepository(q Querier) *ToolRepo {
	return &ToolRepo{q: q}
}

// Create persiste una nueva herramienta y asigna el ID generado.
func (r *ToolRepo) Create(ctx context.Context, tool *entity.Tool) error {
	err := r.q.QueryRow(ctx,
		`INSERT INTO tools (name, quantity) VALUES ($1, $2) RETURNING id`,
		tool.Name, tool.Quantity,
	).Scan(&tool.ID)
	if err != nil {
		if isCheckViolation(err) {
			return fmt.Errorf("insert tool: %w", domain.ErrInvalidInput)
		}
		return fmt.Errorf("insert tool: %w", err)
	}
	return nil
}

// GetByID obtiene una herramienta por ID.
func (r *ToolRepo) GetByID(ctx context.Context, id int64) (*entity.Tool, error) {
	return r.get(ctx, `SELECT id, name, quantity FROM tools WHERE id = $1`, id)
}

// GetForUpdate obtiene la herramienta y bloquea la fila (SELECT FOR UPDATE).
func (r *ToolRepo) GetForUpdate(ctx context.Context, id int64) (*entity.Tool, error) {
	return r.get(ctx, `SELECT id, name, quantity FROM tools WHERE id = $1 FOR UPDATE`, id)
}

func (r *ToolRepo) get(ctx context.Context, query string, id int64) (*entity.Tool, error) {
	var t entity.Tool
	err := r.q.QueryRow(ctx, query, id).Scan(&t.ID, &t.Name, &t.Quantity)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get tool: %w", err)
	}
	return &t, nil
}

// List devuelve todas las herramientas ordenadas por ID.
func (r *ToolRepo) List(ctx context.Context) ([]*entity.Tool, error) {
	rows, err := r.q.Query(ctx, `SELECT id, name, quantity FROM tools ORDER BY id`)
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

// Update sobrescribe nombre y saldo (edición directa, sin movimiento).
func (r *ToolRepo) Update(ctx context.Context, tool *entity.Tool) error {
	tag, err := r.q.Exec(ctx,
		`UPDATE tools SET name = $2, quantity = $3 WHERE id = $1`,
		tool.ID, tool.Name, tool.Quantity,
	)
	if err != nil {
		if isCheckViolation(err) {
			return fmt.Errorf("update tool: %w", domain.ErrInvalidInput)
		}
		return fmt.Errorf("update tool: %w", err)
	}
	return expectOneRow(tag)
}

// UpdateQuantity actualiza solo el saldo (usado por el registro de movimientos).
func (r *ToolRepo) UpdateQuantity(ctx context.Context, id int64, quantity int) error {
	tag, err := r.q.Exec(ctx, `UPDATE tools SET quantity = $2 WHERE id = $1`, id, quantity)
	if err != nil {
		if isCheckViolation(err) {
			return fmt.Errorf("update tool quantity: %w", domain.ErrInvalidInput)
		}
		return fmt.Errorf("update tool quantity: %w", err)
	}
	return expectOneRow(tag)
}

// Delete elimina una herramienta; sus movimientos caen por ON DELETE CASCADE.
func (r *ToolRepo) Delete(ctx context.Context, id int64) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM tools WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete tool: %w", err)
	}
	return expectOneRow(tag)
}
