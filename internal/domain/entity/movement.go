package entity

import (
	"strings"
	"time"
)

// MovementKind tipo de movimiento. Los valores se persisten tal cual.
type MovementKind string

// Tipos de movimiento de herramientas.
const (
	MovementWithdrawal MovementKind = "SAIDA"   // retiro
	MovementReturn     MovementKind = "ENTRADA" // devolución
)

// ParseMovementKind interpreta el tipo recibido en la ruta (sin distinguir mayúsculas).
func ParseMovementKind(s string) (MovementKind, bool) {
	switch MovementKind(strings.ToUpper(strings.TrimSpace(s))) {
	case MovementWithdrawal:
		return MovementWithdrawal, true
	case MovementReturn:
		return MovementReturn, true
	}
	return "", false
}

// Movement registro inmutable de un retiro o devolución de una herramienta.
type Movement struct {
	ID        int64
	ToolID    int64
	User      string
	Kind      MovementKind
	Amount    int
	CreatedAt time.Time
}

// IsWithdrawal indica si el movimiento descontó unidades.
func (m *Movement) IsWithdrawal() bool {
	return m.Kind == MovementWithdrawal
}
