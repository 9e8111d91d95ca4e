package sqlite

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/herramientas-api/internal/domain/entity"
	"github.com/jhoicas/herramientas-api/internal/domain/repository"
)

var _ repository.MovementRepository = (*MovementRepo)(nil)

// MovementRepo implementación de MovementRepository sobre SQLite (usable con pool o tx).
// created_at se guarda en nanosegundos Unix para que el orden numérico sea el cronológico.
type MovementRepo struct {
	q Querier
}

// NewMovementRepository construye el adaptador. Pasar *sql.DB o *sql.Tx (Querier).
func NewMovementRepository(q Querier) *MovementRepo {
	return &MovementRepo{q: q}
}

// Create persiste un movimiento y asigna el ID generado.
func (r *MovementRepo) Create(ctx context.Context, movement *entity.Movement) error {
	if movement.CreatedAt.IsZero() {
		movement.CreatedAt = time.Now().UTC()
	}
	res, err := r.q.ExecContext(ctx, `
		INSERT INTO movements (tool_id, user_name, kind, amount, created_at)
		VALUES (?, ?, ?, ?, ?)`,
		movement.ToolID, movement.User, string(movement.Kind), movement.Amount,
		movement.CreatedAt.UnixNano(),
	)
	if err != nil {
		return fmt.Errorf("create movement: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("create movement id: %w", err)
	}
	movement.ID = id
	return nil
}

// ListByTool lista los movimientos de una herramienta, del más reciente al más antiguo.
func (r *MovementRepo) ListByTool(ctx context.Context, toolID int64) ([]*entity.Movement, error) {
	rows, err := r.q.QueryContext(ctx, `
		SELECT id, tool_id, user_name, kind, amount, created_at
		FROM movements WHERE tool_id = ?
		ORDER BY created_at DESC, id DESC`, toolID)
	if err != nil {
		return nil, fmt.Errorf("list movements by tool: %w", err)
	}
	defer rows.Close()
	var list []*entity.Movement
	for rows.Next() {
		var (
			m       entity.Movement
			kind    string
			created int64
		)
		if err := rows.Scan(&m.ID, &m.ToolID, &m.User, &kind, &m.Amount, &created); err != nil {
			return nil, fmt.Errorf("scan movement: %w", err)
		}
		m.Kind = entity.MovementKind(kind)
		m.CreatedAt = time.Unix(0, created).UTC()
		list = append(list, &m)
	}
	return list, rows.Err()
}
