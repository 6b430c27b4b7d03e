package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
	"github.com/tu-usuario/pos-retail/internal/application/dto"
	"github.com/tu-usuario/pos-retail/internal/domain"
)

// writeError mapea errores de dominio a códigos HTTP. Los 409 corresponden a
// conflictos de estado (stock insuficiente, carrera perdida, devolución
// duplicada). Lo no clasificado es un fallo interno: el detalle (que puede
// incluir DSNs o SQL) se registra en el log y al cliente solo llega un
// mensaje genérico.
func writeError(c *fiber.Ctx, err error) error {
	var validationErr *domain.ValidationError
	if errors.As(err, &validationErr) {
		return c.Status(fiber.StatusBadRequest).JSON(dto.Errorf("VALIDATION", validationErr.Error()))
	}
	var insufficientErr *domain.InsufficientStockError
	if errors.As(err, &insufficientErr) {
		return c.Status(fiber.StatusConflict).JSON(dto.Errorf("INSUFFICIENT_STOCK", insufficientErr.Error()))
	}
	var discrepancyErr *domain.StockDiscrepancyError
	if errors.As(err, &discrepancyErr) {
		return c.Status(fiber.StatusConflict).JSON(dto.Errorf("STOCK_DISCREPANCY", discrepancyErr.Error()))
	}
	var negativeErr *domain.NegativeStockError
	if errors.As(err, &negativeErr) {
		return c.Status(fiber.StatusConflict).JSON(dto.Errorf("NEGATIVE_STOCK", negativeErr.Error()))
	}

	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(dto.Errorf("VALIDATION", "datos inválidos"))
	case errors.Is(err, domain.ErrNotFound), errors.Is(err, domain.ErrUserNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.Errorf("NOT_FOUND", "recurso no encontrado"))
	case errors.Is(err, domain.ErrDuplicateReturn):
		return c.Status(fiber.StatusConflict).JSON(dto.Errorf("DUPLICATE_RETURN", "esta venta ya tiene una devolución registrada"))
	case errors.Is(err, domain.ErrUsernameExists):
		return c.Status(fiber.StatusConflict).JSON(dto.Errorf("USERNAME_EXISTS", "el username ya está registrado"))
	case errors.Is(err, domain.ErrDuplicate):
		return c.Status(fiber.StatusConflict).JSON(dto.Errorf("DUPLICATE", "el recurso ya existe"))
	case errors.Is(err, domain.ErrInsufficientStock):
		return c.Status(fiber.StatusConflict).JSON(dto.Errorf("INSUFFICIENT_STOCK", "stock insuficiente"))
	case errors.Is(err, domain.ErrUnauthorized):
		return c.Status(fiber.StatusUnauthorized).JSON(dto.Errorf("UNAUTHORIZED", "credenciales inválidas"))
	case errors.Is(err, domain.ErrForbidden):
		return c.Status(fiber.StatusForbidden).JSON(dto.Errorf("FORBIDDEN", "acceso denegado al recurso"))
	}
	log.Error().Err(err).
		Str("method", c.Method()).
		Str("path", c.Path()).
		Msg("error interno no clasificado")
	return c.Status(fiber.StatusInternalServerError).JSON(dto.Errorf("INTERNAL", "error interno del servidor"))
}
