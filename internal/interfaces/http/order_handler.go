package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/fabrica-abstracta/gestion-uno-web-sub001/internal/application/dto"
	"github.com/fabrica-abstracta/gestion-uno-web-sub001/internal/application/pos"
)

// OrderHandler maneja la pantalla de edición de pedido (protegido). El carrito
// es una proyección del pedido en el servidor: cada mutación persiste y
// refetchea antes de responder.
type OrderHandler struct {
	orders *pos.OrderCartRegistry
}

// NewOrderHandler construye el handler.
func NewOrderHandler(orders *pos.OrderCartRegistry) *OrderHandler {
	return &OrderHandler{orders: orders}
}

// orderSession resuelve la sesión de edición o responde el error.
func (h *OrderHandler) orderSession(c *fiber.Ctx) *pos.OrderSession {
	sess, err := h.orders.Get(c.Context(), c.Params("orderId"))
	if err != nil {
		_ = respondSaleError(c, err)
		return nil
	}
	return sess
}

// GetCart godoc
// @Summary      Carrito del pedido (proyección fresca del servidor)
// @Tags         orders
// @Security     Bearer
// @Produce      json
// @Param        orderId  path  string  true  "ID del pedido"
// @Success      200  {object}  dto.CartResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/orders/{orderId}/cart [get]
func (h *OrderHandler) GetCart(c *fiber.Ctx) error {
	sess := h.orderSession(c)
	if sess == nil {
		return nil
	}
	if err := sess.Cart.Refresh(c.Context()); err != nil {
		return respondSaleError(c, err)
	}
	return c.JSON(cartResponse(sess.Cart))
}

// AddLine godoc
// @Summary      Agregar producto al pedido
// @Tags         orders
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        orderId  path  string  true  "ID del pedido"
// @Param        body     body  dto.OrderAddLineRequest  true  "Producto"
// @Success      200  {object}  dto.CartResponse
// @Failure      422  {object}  dto.ErrorResponse
// @Router       /api/orders/{orderId}/cart/lines [post]
func (h *OrderHandler) AddLine(c *fiber.Ctx) error {
	sess := h.orderSession(c)
	if sess == nil {
		return nil
	}
	var in dto.OrderAddLineRequest
	if err := c.BodyParser(&in); err != nil || in.Product.ID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "product.id es requerido"})
	}
	if err := sess.Cart.AddLine(c.Context(), in.Product); err != nil {
		return respondSaleError(c, err)
	}
	return c.JSON(cartResponse(sess.Cart))
}

// ChangeQuantity godoc
// @Summary      Cambiar cantidad de una línea del pedido
// @Tags         orders
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        orderId    path  string  true  "ID del pedido"
// @Param        productId  path  string  true  "ID del producto"
// @Param        body       body  dto.ChangeQuantityRequest  true  "Delta"
// @Success      200  {object}  dto.CartResponse
// @Router       /api/orders/{orderId}/cart/lines/{productId} [patch]
func (h *OrderHandler) ChangeQuantity(c *fiber.Ctx) error {
	sess := h.orderSession(c)
	if sess == nil {
		return nil
	}
	var in dto.ChangeQuantityRequest
	if err := c.BodyParser(&in); err != nil || in.Delta == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "delta distinto de cero es requerido"})
	}
	if err := sess.Cart.ChangeQuantity(c.Context(), c.Params("productId"), in.Delta); err != nil {
		return respondSaleError(c, err)
	}
	return c.JSON(cartResponse(sess.Cart))
}

// RemoveLine godoc
// @Summary      Quitar una línea del pedido
// @Tags         orders
// @Security     Bearer
// @Produce      json
// @Param        orderId    path  string  true  "ID del pedido"
// @Param        productId  path  string  true  "ID del producto"
// @Success      200  {object}  dto.CartResponse
// @Router       /api/orders/{orderId}/cart/lines/{productId} [delete]
func (h *OrderHandler) RemoveLine(c *fiber.Ctx) error {
	sess := h.orderSession(c)
	if sess == nil {
		return nil
	}
	if err := sess.Cart.RemoveLine(c.Context(), c.Params("productId")); err != nil {
		return respondSaleError(c, err)
	}
	return c.JSON(cartResponse(sess.Cart))
}

// Checkout godoc
// @Summary      Liquidar el pedido con el cobro indicado
// @Tags         orders
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        orderId  path  string  true  "ID del pedido"
// @Param        body     body  dto.OrderCheckoutRequest  true  "Cobro"
// @Success      201  {object}  dto.CheckoutResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Failure      422  {object}  dto.ErrorResponse
// @Router       /api/orders/{orderId}/cart/checkout [post]
func (h *OrderHandler) Checkout(c *fiber.Ctx) error {
	sess := h.orderSession(c)
	if sess == nil {
		return nil
	}
	var in dto.OrderCheckoutRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}

	// Diálogo de cobro fresco por petición.
	pay := pos.NewPaymentSession()
	if in.Method != "" {
		if err := pay.SetMethod(in.Method); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_METHOD", Message: err.Error()})
		}
	}
	if in.Reference != "" {
		pay.SetReference(in.Reference)
	}
	if in.AmountReceived != nil {
		pay.SetAmountReceived(*in.AmountReceived)
	}
	change, hasChange := pay.Change(sess.Cart.Summary().Total)

	code, err := sess.Settler.Settle(c.Context(), sess.Cart, pay)
	if err != nil {
		return respondSaleError(c, err)
	}
	out := dto.CheckoutResponse{Code: code}
	if hasChange {
		out.Change = &change
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}
