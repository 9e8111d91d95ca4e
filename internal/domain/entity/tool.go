package entity

// MaxNameLength largo máximo de nombres de herramienta y de usuario (columnas VARCHAR(100)).
const MaxNameLength = 100

// Tool representa una herramienta física del inventario y su saldo disponible.
// Quantity nunca es negativa; solo cambia vía movimientos o edición directa.
type Tool struct {
	ID       int64
	Name     string
	Quantity int
}

// OutOfStock indica si no quedan unidades disponibles para retirar.
func (t *Tool) OutOfStock() bool {
	return t.Quantity <= 0
}
