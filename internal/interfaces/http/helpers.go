package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/fabrica-abstracta/gestion-uno-web-sub001/internal/application/dto"
	"github.com/fabrica-abstracta/gestion-uno-web-sub001/internal/domain"
)

// respondSaleError mapea los fallos de liquidación y de mutaciones remotas a
// HTTP. El estado de la máquina ya quedó reintentable; aquí solo se informa.
func respondSaleError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrEmptyCart):
		return c.Status(fiber.StatusUnprocessableEntity).JSON(dto.ErrorResponse{Code: "EMPTY_CART", Message: err.Error()})
	case errors.Is(err, domain.ErrSaleInProgress):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "SALE_IN_PROGRESS", Message: err.Error()})
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: err.Error()})
	case errors.Is(err, domain.ErrNetwork):
		// Mensaje genérico: el detalle del transporte no le sirve al cajero.
		return c.Status(fiber.StatusBadGateway).JSON(dto.ErrorResponse{Code: "NETWORK", Message: domain.ErrNetwork.Error()})
	}
	if rej, ok := domain.AsRejection(err); ok {
		// Rechazo de negocio del backend: el mensaje se muestra tal cual.
		return c.Status(fiber.StatusUnprocessableEntity).JSON(dto.ErrorResponse{Code: "SALE_ERROR", Message: rej.Error()})
	}
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
}
