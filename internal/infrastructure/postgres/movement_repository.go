package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/herramientas-api/internal/domain/entity"
	"github.com/jhoicas/herramientas-api/internal/domain/repository"
)

var _ repository.MovementRepository = (*MovementRepo)(nil)

// MovementRepo implementación sobre PostgreSQL (usable con pool o tx).
type MovementRepo struct {
	q Querier
}

// NewMovementRepository construye el adaptador. Pasar pool o tx (Querier).
func NewMovementRepository(q Querier) *MovementRepo {
	return &MovementRepo{q: q}
}

// Create persiste un movimiento y asigna el ID generado.
func (r *MovementRepo) Create(ctx context.Context, movement *entity.Movement) error {
	if movement.CreatedAt.IsZero() {
		movement.CreatedAt = time.Now().UTC()
	}
	err := r.q.QueryRow(ctx, `
		INSERT INTO movements (tool_id, user_name, kind, amount, created_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id`,
		movement.ToolID, movement.User, string(movement.Kind), movement.Amount, movement.CreatedAt,
	).Scan(&movement.ID)
	if err != nil {
		return fmt.Errorf("create movement: %w", err)
	}
	return nil
}

// ListByTool lista los movimientos de una herramienta, del más reciente al más antiguo.
func (r *MovementRepo) ListByTool(ctx context.Context, toolID int64) ([]*entity.Movement, error) {
	rows, err := r.q.Query(ctx, `
		SELECT id, tool_id, user_name, kind, amount, created_at
		FROM movements WHERE tool_id = $1
		ORDER BY created_at DESC, id DESC`, toolID)
	if err != nil {
		return nil, fmt.Errorf("list movements by tool: %w", err)
	}
	defer rows.Close()
	var list []*entity.Movement
	for rows.Next() {
		var (
			m    entity.Movement
			kind string
		)
		if err := rows.Scan(&m.ID, &m.ToolID, &m.User, &kind, &m.Amount, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan movement: %w", err)
		}
		m.Kind = entity.MovementKind(kind)
		m.CreatedAt = m.CreatedAt.UTC()
		list = append(list, &m)
	}
	return list, rows.Err()
}
