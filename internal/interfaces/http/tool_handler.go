package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/herramientas-api/internal/application/dto"
	"github.com/jhoicas/herramientas-api/internal/application/inventory"
	"github.com/jhoicas/herramientas-api/internal/domain"
	"github.com/jhoicas/herramientas-api/pkg/logger"
)

// ToolHandler maneja las páginas y formularios del inventario de herramientas.
type ToolHandler struct {
	uc  *inventory.ToolUseCase
	log *logger.Logger
}

// NewToolHandler construye el handler.
func NewToolHandler(uc *inventory.ToolUseCase, log *logger.Logger) *ToolHandler {
	return &ToolHandler{uc: uc, log: log}
}

// Dashboard GET / : panel con todas las herramientas.
func (h *ToolHandler) Dashboard(c *fiber.Ctx) error {
	view, err := h.uc.Dashboard(c.Context(), c.Query("reset_success") == "true")
	if err != nil {
		return err
	}
	return c.Render("dashboard", view)
}

// Create POST /tools
func (h *ToolHandler) Create(c *fiber.Ctx) error {
	var in dto.RegisterToolRequest
	if err := c.BodyParser(&in); err != nil {
		return h.discard(c, "register_tool", domain.ErrInvalidInput)
	}
	tool, err := h.uc.RegisterTool(c.Context(), in)
	if err != nil {
		return h.finish(c, "register_tool", err)
	}
	h.log.Info().Int64("tool_id", tool.ID).Int("quantity", tool.Quantity).Msg("herramienta registrada")
	return c.Redirect("/")
}

// RegisterMovement POST /tools/:id/movements/:kind (SAIDA | ENTRADA).
func (h *ToolHandler) RegisterMovement(c *fiber.Ctx) error {
	id, err := toolID(c)
	if err != nil {
		return err
	}
	var in dto.RegisterMovementRequest
	if err := c.BodyParser(&in); err != nil {
		// Cuerpo ilegible equivale a formulario vacío; la existencia de la herramienta se verifica igual.
		in = dto.RegisterMovementRequest{}
	}
	mov, err := h.uc.RegisterMovement(c.Context(), id, c.Params("kind"), in)
	if err != nil {
		return h.finish(c, "register_movement", err)
	}
	h.log.Info().
		Int64("tool_id", id).
		Str("kind", string(mov.Kind)).
		Int("amount", mov.Amount).
		Msg("movimiento registrado")
	return c.Redirect("/")
}

// History GET /tools/:id/history
func (h *ToolHandler) History(c *fiber.Ctx) error {
	id, err := toolID(c)
	if err != nil {
		return err
	}
	view, err := h.uc.History(c.Context(), id)
	if err != nil {
		return mapError(err)
	}
	return c.Render("history", view)
}

// EditForm GET /tools/:id/edit
func (h *ToolHandler) EditForm(c *fiber.Ctx) error {
	id, err := toolID(c)
	if err != nil {
		return err
	}
	tool, err := h.uc.GetTool(c.Context(), id)
	if err != nil {
		return mapError(err)
	}
	return c.Render("edit", dto.EditView{Tool: tool})
}

// Edit POST /tools/:id/edit : sobrescribe nombre y saldo sin registrar movimiento.
func (h *ToolHandler) Edit(c *fiber.Ctx) error {
	id, err := toolID(c)
	if err != nil {
		return err
	}
	var in dto.EditToolRequest
	if err := c.BodyParser(&in); err != nil {
		in = dto.EditToolRequest{}
	}
	if _, err := h.uc.EditTool(c.Context(), id, in); err != nil {
		return h.finish(c, "edit_tool", err)
	}
	return c.Redirect("/")
}

// Delete POST /tools/:id/delete
func (h *ToolHandler) Delete(c *fiber.Ctx) error {
	id, err := toolID(c)
	if err != nil {
		return err
	}
	if err := h.uc.DeleteTool(c.Context(), id); err != nil {
		return mapError(err)
	}
	h.log.Info().Int64("tool_id", id).Msg("herramienta eliminada")
	return c.Redirect("/")
}

// Reset GET /reset : borra todo el almacén.
func (h *ToolHandler) Reset(c *fiber.Ctx) error {
	if err := h.uc.ResetStore(c.Context()); err != nil {
		return err
	}
	h.log.Warn().Str("request_id", RequestID(c)).Msg("almacén reiniciado")
	return c.Redirect("/?reset_success=true")
}

// finish traduce el error de un formulario: no encontrado -> 404, validación o stock -> redirect silencioso.
func (h *ToolHandler) finish(c *fiber.Ctx, op string, err error) error {
	if errors.Is(err, domain.ErrInvalidInput) || errors.Is(err, domain.ErrInsufficientStock) {
		return h.discard(c, op, err)
	}
	return mapError(err)
}

func (h *ToolHandler) discard(c *fiber.Ctx, op string, err error) error {
	h.log.Warn().
		Err(err).
		Str("op", op).
		Str("path", c.Path()).
		Str("request_id", RequestID(c)).
		Msg("operación descartada")
	return c.Redirect("/")
}

// toolID lee :id; un valor no entero es 404 como cualquier herramienta inexistente.
func toolID(c *fiber.Ctx) (int64, error) {
	id, err := c.ParamsInt("id")
	if err != nil {
		return 0, fiber.ErrNotFound
	}
	return int64(id), nil
}

func mapError(err error) error {
	if errors.Is(err, domain.ErrNotFound) {
		return fiber.ErrNotFound
	}
	return err
}
