package dto

import "github.com/jhoicas/herramientas-api/internal/domain/entity"

// RegisterToolRequest formulario POST /tools. Quantity llega como texto y se valida en el caso de uso.
type RegisterToolRequest struct {
	Name     string `form:"name"`
	Quantity string `form:"quantity"`
}

// RegisterMovementRequest formulario POST /tools/:id/movements/:kind.
type RegisterMovementRequest struct {
	User   string `form:"user"`
	Amount string `form:"amount"`
}

// EditToolRequest formulario POST /tools/:id/edit.
type EditToolRequest struct {
	Name     string `form:"name"`
	Quantity string `form:"quantity"`
}

// HistoryView herramienta con sus movimientos, del más reciente al más antiguo.
type HistoryView struct {
	Tool      *entity.Tool
	Movements []*entity.Movement
}

// Title título de la página.
func (v *HistoryView) Title() string { return "Historial de " + v.Tool.Name }

// EditView formulario de edición precargado con los valores actuales.
type EditView struct {
	Tool *entity.Tool
}

// Title título de la página.
func (v EditView) Title() string { return "Editar " + v.Tool.Name }
