package sqlite_test

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/herramientas-api/internal/domain"
	"github.com/jhoicas/herramientas-api/internal/domain/entity"
	"github.com/jhoicas/herramientas-api/internal/domain/repository"
	"github.com/jhoicas/herramientas-api/internal/infrastructure/sqlite"
)

func openTestDB(t *testing.T) *sqlite.DB {
	t.Helper()
	db, err := sqlite.Open(context.Background(), filepath.Join(t.TempDir(), "tools.db"))
	require.NoError(t, err, "Open debe crear el archivo y aplicar migraciones")
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func countMovements(t *testing.T, db *sqlite.DB, toolID int64) int {
	t.Helper()
	var n int
	require.NoError(t, db.SQL().QueryRowContext(context.Background(),
		`SELECT COUNT(*) FROM movements WHERE tool_id = ?`, toolID).Scan(&n))
	return n
}

func TestOpen_RutaVacia(t *testing.T) {
	_, err := sqlite.Open(context.Background(), "  ")
	assert.Error(t, err)
}

func TestToolRepo_CRUD(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	repo := sqlite.NewToolRepository(db.SQL())

	hammer := &entity.Tool{Name: "Martillo", Quantity: 10}
	require.NoError(t, repo.Create(ctx, hammer))
	assert.NotZero(t, hammer.ID)

	saw := &entity.Tool{Name: "Serrucho", Quantity: 0}
	require.NoError(t, repo.Create(ctx, saw))
	assert.Greater(t, saw.ID, hammer.ID)

	got, err := repo.GetByID(ctx, hammer.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "Martillo", got.Name)
	assert.Equal(t, 10, got.Quantity)

	missing, err := repo.GetByID(ctx, 9999)
	require.NoError(t, err)
	assert.Nil(t, missing, "una herramienta inexistente devuelve (nil, nil)")

	list, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, hammer.ID, list[0].ID, "el listado se ordena por ID")

	hammer.Name = "Martillo de bola"
	hammer.Quantity = 4
	require.NoError(t, repo.Update(ctx, hammer))
	require.NoError(t, repo.UpdateQuantity(ctx, saw.ID, 2))

	got, err = repo.GetByID(ctx, hammer.ID)
	require.NoError(t, err)
	assert.Equal(t, "Martillo de bola", got.Name)
	assert.Equal(t, 4, got.Quantity)

	got, err = repo.GetByID(ctx, saw.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, got.Quantity)

	require.NoError(t, repo.Delete(ctx, saw.ID))
	assert.ErrorIs(t, repo.Delete(ctx, saw.ID), domain.ErrNotFound)
	assert.ErrorIs(t, repo.UpdateQuantity(ctx, saw.ID, 1), domain.ErrNotFound)
}

func TestToolRepo_SaldoNegativoRechazadoPorCheck(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	repo := sqlite.NewToolRepository(db.SQL())

	tool := &entity.Tool{Name: "Alicate", Quantity: 1}
	require.NoError(t, repo.Create(ctx, tool))

	err := repo.UpdateQuantity(ctx, tool.ID, -1)
	assert.Error(t, err, "el CHECK (quantity >= 0) debe rechazar saldos negativos")
}

func TestMovementRepo_OrdenDescendente(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	tools := sqlite.NewToolRepository(db.SQL())
	movs := sqlite.NewMovementRepository(db.SQL())

	tool := &entity.Tool{Name: "Taladro", Quantity: 5}
	require.NoError(t, tools.Create(ctx, tool))

	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	require.NoError(t, movs.Create(ctx, &entity.Movement{
		ToolID: tool.ID, User: "Alice", Kind: entity.MovementWithdrawal, Amount: 3, CreatedAt: base,
	}))
	require.NoError(t, movs.Create(ctx, &entity.Movement{
		ToolID: tool.ID, User: "Bob", Kind: entity.MovementReturn, Amount: 5, CreatedAt: base.Add(time.Minute),
	}))
	// Mismo instante: desempata el ID más alto.
	require.NoError(t, movs.Create(ctx, &entity.Movement{
		ToolID: tool.ID, User: "Carol", Kind: entity.MovementReturn, Amount: 1, CreatedAt: base.Add(time.Minute),
	}))

	list, err := movs.ListByTool(ctx, tool.ID)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, "Carol", list[0].User)
	assert.Equal(t, "Bob", list[1].User)
	assert.Equal(t, "Alice", list[2].User)
	assert.Equal(t, entity.MovementWithdrawal, list[2].Kind)
	assert.True(t, list[2].CreatedAt.Equal(base), "la fecha se conserva con precisión de nanosegundos")
}

func TestMovementRepo_ClaveForaneaExigeHerramienta(t *testing.T) {
	db := openTestDB(t)
	movs := sqlite.NewMovementRepository(db.SQL())

	err := movs.Create(context.Background(), &entity.Movement{
		ToolID: 4242, User: "Alice", Kind: entity.MovementReturn, Amount: 1,
	})
	assert.Error(t, err, "foreign_keys(1) debe rechazar movimientos huérfanos")
}

func TestDelete_CascadaMovimientos(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	tools := sqlite.NewToolRepository(db.SQL())
	movs := sqlite.NewMovementRepository(db.SQL())

	tool := &entity.Tool{Name: "Llave inglesa", Quantity: 2}
	require.NoError(t, tools.Create(ctx, tool))
	require.NoError(t, movs.Create(ctx, &entity.Movement{
		ToolID: tool.ID, User: "Alice", Kind: entity.MovementWithdrawal, Amount: 1,
	}))
	require.Equal(t, 1, countMovements(t, db, tool.ID))

	require.NoError(t, tools.Delete(ctx, tool.ID))
	assert.Equal(t, 0, countMovements(t, db, tool.ID), "ON DELETE CASCADE debe borrar los movimientos")
}

func TestTxRunner_RollbackAnteError(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	tools := sqlite.NewToolRepository(db.SQL())

	tool := &entity.Tool{Name: "Nivel", Quantity: 8}
	require.NoError(t, tools.Create(ctx, tool))

	boom := errors.New("fallo al guardar el movimiento")
	err := sqlite.NewTxRunner(db).Run(ctx, func(toolRepo repository.ToolRepository, _ repository.MovementRepository) error {
		if err := toolRepo.UpdateQuantity(ctx, tool.ID, 1); err != nil {
			return err
		}
		return boom
	})
	require.ErrorIs(t, err, boom)

	got, err := tools.GetByID(ctx, tool.ID)
	require.NoError(t, err)
	assert.Equal(t, 8, got.Quantity, "el saldo no debe cambiar si la transacción falla")
}

func TestTxRunner_Commit(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	tools := sqlite.NewToolRepository(db.SQL())

	tool := &entity.Tool{Name: "Escuadra", Quantity: 3}
	require.NoError(t, tools.Create(ctx, tool))

	err := sqlite.NewTxRunner(db).Run(ctx, func(toolRepo repository.ToolRepository, movRepo repository.MovementRepository) error {
		if err := toolRepo.UpdateQuantity(ctx, tool.ID, 2); err != nil {
			return err
		}
		return movRepo.Create(ctx, &entity.Movement{
			ToolID: tool.ID, User: "Alice", Kind: entity.MovementWithdrawal, Amount: 1,
		})
	})
	require.NoError(t, err)

	got, err := tools.GetByID(ctx, tool.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, got.Quantity)
	assert.Equal(t, 1, countMovements(t, db, tool.ID))
}

func TestReset_VaciaElAlmacen(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	tools := sqlite.NewToolRepository(db.SQL())
	movs := sqlite.NewMovementRepository(db.SQL())

	tool := &entity.Tool{Name: "Martillo", Quantity: 1}
	require.NoError(t, tools.Create(ctx, tool))
	require.NoError(t, movs.Create(ctx, &entity.Movement{
		ToolID: tool.ID, User: "Alice", Kind: entity.MovementReturn, Amount: 1,
	}))

	require.NoError(t, db.Reset(ctx))

	list, err := tools.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)
	assert.Equal(t, 0, countMovements(t, db, tool.ID))

	// El esquema queda usable después del reseteo.
	again := &entity.Tool{Name: "Martillo", Quantity: 1}
	require.NoError(t, tools.Create(ctx, again))
	assert.NotZero(t, again.ID)
}

func TestOpen_ReabrirConservaDatos(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tools.db")
	ctx := context.Background()

	db, err := sqlite.Open(ctx, path)
	require.NoError(t, err)
	require.NoError(t, sqlite.NewToolRepository(db.SQL()).Create(ctx, &entity.Tool{Name: "Cincel", Quantity: 2}))
	require.NoError(t, db.Close())

	db, err = sqlite.Open(ctx, path)
	require.NoError(t, err, "reabrir no debe reaplicar migraciones ya aplicadas")
	defer db.Close()

	list, err := sqlite.NewToolRepository(db.SQL()).List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Cincel", list[0].Name)
}
