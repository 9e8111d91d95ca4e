package inventory

import (
	"context"
	"time"

	"github.com/jhoicas/herramientas-api/internal/application/dto"
	"github.com/jhoicas/herramientas-api/internal/domain"
	"github.com/jhoicas/herramientas-api/internal/domain/entity"
	"github.com/jhoicas/herramientas-api/internal/domain/inventory"
	"github.com/jhoicas/herramientas-api/internal/domain/repository"
)

// ToolUseCase casos de uso del inventario de herramientas: registro, movimientos (SAIDA/ENTRADA),
// edición directa, borrado, historial y reseteo del almacén.
type ToolUseCase struct {
	txRunner TxRunner
	toolRepo repository.ToolRepository
	movRepo  repository.MovementRepository
	resetter StoreResetter
	now      func() time.Time
}

// NewToolUseCase construye el caso de uso.
func NewToolUseCase(
	txRunner TxRunner,
	toolRepo repository.ToolRepository,
	movRepo repository.MovementRepository,
	resetter StoreResetter,
) *ToolUseCase {
	return &ToolUseCase{
		txRunner: txRunner,
		toolRepo: toolRepo,
		movRepo:  movRepo,
		resetter: resetter,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// WithClock reemplaza el reloj usado para fechar movimientos.
func (uc *ToolUseCase) WithClock(now func() time.Time) *ToolUseCase {
	uc.now = now
	return uc
}

// RegisterTool crea una herramienta con el saldo inicial indicado y sin movimientos.
// Nombre vacío o cantidad no entera o negativa devuelven ErrInvalidInput.
func (uc *ToolUseCase) RegisterTool(ctx context.Context, in dto.RegisterToolRequest) (*entity.Tool, error) {
	quantity, err := inventory.ParseQuantity(in.Quantity)
	if err != nil {
		return nil, err
	}
	name, err := inventory.NormalizeName(in.Name)
	if err != nil {
		return nil, err
	}
	if quantity < 0 {
		return nil, domain.ErrInvalidInput
	}
	tool := &entity.Tool{Name: name, Quantity: quantity}
	if err := uc.toolRepo.Create(ctx, tool); err != nil {
		return nil, err
	}
	return tool, nil
}

// RegisterMovement registra un retiro (SAIDA) o una devolución (ENTRADA).
// Primero verifica que la herramienta exista (ErrNotFound), luego valida usuario, cantidad y tipo
// (ErrInvalidInput). Dentro de una transacción relee la fila, aplica el cambio de saldo
// y guarda el movimiento; un retiro sin saldo suficiente devuelve ErrInsufficientStock sin cambios.
func (uc *ToolUseCase) RegisterMovement(ctx context.Context, toolID int64, kind string, in dto.RegisterMovementRequest) (*entity.Movement, error) {
	tool, err := uc.toolRepo.GetByID(ctx, toolID)
	if err != nil {
		return nil, err
	}
	if tool == nil {
		return nil, domain.ErrNotFound
	}

	user, err := inventory.NormalizeName(in.User)
	if err != nil {
		return nil, err
	}
	amount, err := inventory.ParseQuantity(in.Amount)
	if err != nil {
		return nil, err
	}
	if amount <= 0 {
		return nil, domain.ErrInvalidInput
	}
	movementKind, ok := entity.ParseMovementKind(kind)
	if !ok {
		return nil, domain.ErrInvalidInput
	}

	var created *entity.Movement
	err = uc.txRunner.Run(ctx, func(
		toolRepo repository.ToolRepository,
		movRepo repository.MovementRepository,
	) error {
		locked, err := toolRepo.GetForUpdate(ctx, toolID)
		if err != nil {
			return err
		}
		if locked == nil {
			return domain.ErrNotFound
		}
		newQty, err := inventory.ApplyMovement(locked.Quantity, movementKind, amount)
		if err != nil {
			return err
		}
		if err := toolRepo.UpdateQuantity(ctx, toolID, newQty); err != nil {
			return err
		}
		mov := &entity.Movement{
			ToolID:    toolID,
			User:      user,
			Kind:      movementKind,
			Amount:    amount,
			CreatedAt: uc.now(),
		}
		if err := movRepo.Create(ctx, mov); err != nil {
			return err
		}
		created = mov
		return nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

// GetTool obtiene una herramienta por ID (ErrNotFound si no existe).
func (uc *ToolUseCase) GetTool(ctx context.Context, id int64) (*entity.Tool, error) {
	tool, err := uc.toolRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if tool == nil {
		return nil, domain.ErrNotFound
	}
	return tool, nil
}

// EditTool sobrescribe nombre y saldo sin registrar movimiento.
// A diferencia del registro de movimientos no pasa por ApplyMovement, pero rechaza saldos negativos.
func (uc *ToolUseCase) EditTool(ctx context.Context, id int64, in dto.EditToolRequest) (*entity.Tool, error) {
	tool, err := uc.GetTool(ctx, id)
	if err != nil {
		return nil, err
	}
	quantity, err := inventory.ParseQuantity(in.Quantity)
	if err != nil {
		return nil, err
	}
	name, err := inventory.NormalizeName(in.Name)
	if err != nil {
		return nil, err
	}
	if quantity < 0 {
		return nil, domain.ErrInvalidInput
	}
	tool.Name = name
	tool.Quantity = quantity
	if err := uc.toolRepo.Update(ctx, tool); err != nil {
		return nil, err
	}
	return tool, nil
}

// DeleteTool elimina la herramienta y, en cascada, todos sus movimientos.
func (uc *ToolUseCase) DeleteTool(ctx context.Context, id int64) error {
	return uc.txRunner.Run(ctx, func(
		toolRepo repository.ToolRepository,
		_ repository.MovementRepository,
	) error {
		tool, err := toolRepo.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if tool == nil {
			return domain.ErrNotFound
		}
		return toolRepo.Delete(ctx, id)
	})
}

// History devuelve la herramienta con sus movimientos del más reciente al más antiguo.
func (uc *ToolUseCase) History(ctx context.Context, id int64) (*dto.HistoryView, error) {
	tool, err := uc.GetTool(ctx, id)
	if err != nil {
		return nil, err
	}
	movements, err := uc.movRepo.ListByTool(ctx, id)
	if err != nil {
		return nil, err
	}
	return &dto.HistoryView{Tool: tool, Movements: movements}, nil
}

// Dashboard lista todas las herramientas por ID con los totales de la cabecera.
func (uc *ToolUseCase) Dashboard(ctx context.Context, resetSuccess bool) (*dto.DashboardView, error) {
	tools, err := uc.toolRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	view := &dto.DashboardView{Tools: tools, ResetSuccess: resetSuccess}
	view.Summary.ToolCount = len(tools)
	for _, t := range tools {
		view.Summary.TotalUnits += t.Quantity
		if t.OutOfStock() {
			view.Summary.OutOfStock++
		}
	}
	return view, nil
}

// ResetStore borra todas las herramientas y movimientos y recrea el esquema vacío. Irreversible.
func (uc *ToolUseCase) ResetStore(ctx context.Context) error {
	return uc.resetter.Reset(ctx)
}
