package dto

import "github.com/jhoicas/herramientas-api/internal/domain/entity"

// DashboardView datos del panel principal: todas las herramientas con su saldo.
type DashboardView struct {
	Tools        []*entity.Tool
	Summary      DashboardSummary
	ResetSuccess bool // muestra el aviso tras /reset
}

// DashboardSummary totales mostrados en la cabecera del panel.
type DashboardSummary struct {
	ToolCount  int // herramientas registradas
	TotalUnits int // suma de saldos
	OutOfStock int // herramientas con saldo cero
}

// Title título de la página.
func (v *DashboardView) Title() string { return "Inventario de Herramientas" }
