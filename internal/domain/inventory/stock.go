package inventory

import (
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/jhoicas/herramientas-api/internal/domain"
	"github.com/jhoicas/herramientas-api/internal/domain/entity"
)

// ApplyMovement calcula el nuevo saldo tras un movimiento.
// Un retiro mayor al saldo devuelve ErrInsufficientStock y deja el saldo intacto.
func ApplyMovement(current int, kind entity.MovementKind, amount int) (int, error) {
	if amount <= 0 {
		return current, domain.ErrInvalidInput
	}
	switch kind {
	case entity.MovementWithdrawal:
		if current < amount {
			return current, domain.ErrInsufficientStock
		}
		return current - amount, nil
	case entity.MovementReturn:
		return current + amount, nil
	}
	return current, domain.ErrInvalidInput
}

// ParseQuantity convierte el texto de un formulario en entero (tolera espacios).
func ParseQuantity(s string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, domain.ErrInvalidInput
	}
	return n, nil
}

// NormalizeName recorta espacios y valida que el texto sea UTF-8, no quede vacío ni exceda MaxNameLength.
func NormalizeName(s string) (string, error) {
	name := strings.TrimSpace(s)
	if name == "" || !utf8.ValidString(name) || utf8.RuneCountInString(name) > entity.MaxNameLength {
		return "", domain.ErrInvalidInput
	}
	return name, nil
}
