package inventory

import (
	"context"

	"github.com/jhoicas/herramientas-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando repositorios atados a esa tx.
// Garantiza que el cambio de saldo y el registro del movimiento se confirmen juntos.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		toolRepo repository.ToolRepository,
		movRepo repository.MovementRepository,
	) error) error
}

// StoreResetter borra todo el almacén y recrea el esquema vacío.
type StoreResetter interface {
	Reset(ctx context.Context) error
}
