package repository

import (
	"context"

	"github.com/jhoicas/herramientas-api/internal/domain/entity"
)

// MovementRepository define el puerto de persistencia para movimientos. No hay Update: son inmutables.
type MovementRepository interface {
	Create(ctx context.Context, movement *entity.Movement) error
	// ListByTool devuelve los movimientos de la herramienta del más reciente al más antiguo.
	ListByTool(ctx context.Context, toolID int64) ([]*entity.Movement, error)
}
