package repository

import (
	"context"

	"github.com/jhoicas/herramientas-api/internal/domain/entity"
)

// ToolRepository define el puerto de persistencia para Tool (DIP).
// GetByID y GetForUpdate devuelven (nil, nil) cuando la herramienta no existe.
type ToolRepository interface {
	Create(ctx context.Context, tool *entity.Tool) error
	GetByID(ctx context.Context, id int64) (*entity.Tool, error)
	// GetForUpdate lee la fila reservándola para escritura dentro de la transacción en curso.
	GetForUpdate(ctx context.Context, id int64) (*entity.Tool, error)
	List(ctx context.Context) ([]*entity.Tool, error)
	Update(ctx context.Context, tool *entity.Tool) error
	UpdateQuantity(ctx context.Context, id int64, quantity int) error
	Delete(ctx context.Context, id int64) error
}
