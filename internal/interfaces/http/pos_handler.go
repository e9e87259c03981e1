package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/fabrica-abstracta/gestion-uno-web-sub001/internal/application/dto"
	"github.com/fabrica-abstracta/gestion-uno-web-sub001/internal/application/pos"
	"github.com/fabrica-abstracta/gestion-uno-web-sub001/internal/domain"
	"github.com/fabrica-abstracta/gestion-uno-web-sub001/internal/domain/entity"
)

// PosHandler maneja la pantalla de venta directa (protegido).
type PosHandler struct {
	sessions *pos.SessionManager
}

// NewPosHandler construye el handler.
func NewPosHandler(sessions *pos.SessionManager) *PosHandler {
	return &PosHandler{sessions: sessions}
}

// session resuelve la sesión del path o responde 404 y devuelve nil.
func (h *PosHandler) session(c *fiber.Ctx) *pos.Session {
	sess, err := h.sessions.Get(c.Params("id"))
	if err != nil {
		_ = c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "SESSION_NOT_FOUND", Message: err.Error()})
		return nil
	}
	return sess
}

// OpenSession godoc
// @Summary      Abrir sesión de venta directa
// @Tags         pos
// @Security     Bearer
// @Produce      json
// @Success      201  {object}  dto.SessionResponse
// @Router       /api/pos/sessions [post]
func (h *PosHandler) OpenSession(c *fiber.Ctx) error {
	sess := h.sessions.Open(c.Context())
	return c.Status(fiber.StatusCreated).JSON(dto.SessionResponse{
		SessionID: sess.ID,
		CreatedAt: sess.CreatedAt,
	})
}

// GetState godoc
// @Summary      Estado de la pantalla de venta
// @Tags         pos
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de sesión"
// @Success      200  {object}  dto.SessionStateResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/pos/sessions/{id} [get]
func (h *PosHandler) GetState(c *fiber.Ctx) error {
	sess := h.session(c)
	if sess == nil {
		return nil
	}
	return c.JSON(sessionState(sess))
}

// SearchCatalog godoc
// @Summary      Buscar en el catálogo (submit explícito de filtros)
// @Tags         pos
// @Security     Bearer
// @Produce      json
// @Param        id     path   string  true   "ID de sesión"
// @Param        page   query  int     false  "Página"  default(1)
// @Param        name   query  string  false  "Filtro por nombre"
// @Param        sku    query  string  false  "Filtro por SKU"
// @Param        brand  query  string  false  "Filtro por marca"
// @Success      200  {object}  pos.CatalogSnapshot
// @Failure      502  {object}  dto.ErrorResponse
// @Router       /api/pos/sessions/{id}/catalog [get]
func (h *PosHandler) SearchCatalog(c *fiber.Ctx) error {
	sess := h.session(c)
	if sess == nil {
		return nil
	}
	filters := entity.ProductFilters{
		Name:  c.Query("name"),
		SKU:   c.Query("sku"),
		Brand: c.Query("brand"),
	}
	if err := sess.Catalog.Search(c.Context(), c.QueryInt("page", 1), filters); err != nil {
		// El listado anterior queda visible en el snapshot del estado.
		return c.Status(fiber.StatusBadGateway).JSON(dto.ErrorResponse{Code: "CATALOG_ERROR", Message: domain.ErrNetwork.Error()})
	}
	return c.JSON(sess.Catalog.Snapshot())
}

// AddLine godoc
// @Summary      Agregar producto del catálogo al carrito
// @Tags         pos
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID de sesión"
// @Param        body  body  dto.AddLineRequest  true  "Producto a agregar"
// @Success      200   {object}  dto.CartResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/pos/sessions/{id}/cart/lines [post]
func (h *PosHandler) AddLine(c *fiber.Ctx) error {
	sess := h.session(c)
	if sess == nil {
		return nil
	}
	var in dto.AddLineRequest
	if err := c.BodyParser(&in); err != nil || in.ProductID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "productId es requerido"})
	}
	if err := sess.Catalog.Select(c.Context(), in.ProductID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "producto no está en el listado cargado"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(cartResponse(sess.Cart))
}

// ChangeQuantity godoc
// @Summary      Cambiar cantidad de una línea (delta con piso en 0)
// @Tags         pos
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id         path  string  true  "ID de sesión"
// @Param        productId  path  string  true  "ID del producto"
// @Param        body       body  dto.ChangeQuantityRequest  true  "Delta"
// @Success      200  {object}  dto.CartResponse
// @Router       /api/pos/sessions/{id}/cart/lines/{productId} [patch]
func (h *PosHandler) ChangeQuantity(c *fiber.Ctx) error {
	sess := h.session(c)
	if sess == nil {
		return nil
	}
	var in dto.ChangeQuantityRequest
	if err := c.BodyParser(&in); err != nil || in.Delta == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "delta distinto de cero es requerido"})
	}
	if err := sess.Cart.ChangeQuantity(c.Context(), c.Params("productId"), in.Delta); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(cartResponse(sess.Cart))
}

// RemoveLine godoc
// @Summary      Quitar una línea del carrito
// @Tags         pos
// @Security     Bearer
// @Produce      json
// @Param        id         path  string  true  "ID de sesión"
// @Param        productId  path  string  true  "ID del producto"
// @Success      200  {object}  dto.CartResponse
// @Router       /api/pos/sessions/{id}/cart/lines/{productId} [delete]
func (h *PosHandler) RemoveLine(c *fiber.Ctx) error {
	sess := h.session(c)
	if sess == nil {
		return nil
	}
	if err := sess.Cart.RemoveLine(c.Context(), c.Params("productId")); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(cartResponse(sess.Cart))
}

// UpdatePayment godoc
// @Summary      Actualizar el diálogo de cobro
// @Tags         pos
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID de sesión"
// @Param        body  body  dto.PaymentRequest  true  "Método, referencia y efectivo"
// @Success      200   {object}  dto.PaymentResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/pos/sessions/{id}/payment [put]
func (h *PosHandler) UpdatePayment(c *fiber.Ctx) error {
	sess := h.session(c)
	if sess == nil {
		return nil
	}
	var in dto.PaymentRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.Method != "" {
		if err := sess.Payment.SetMethod(in.Method); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_METHOD", Message: err.Error()})
		}
	}
	if in.Reference != nil {
		sess.Payment.SetReference(*in.Reference)
	}
	if in.AmountReceived != nil {
		sess.Payment.SetAmountReceived(*in.AmountReceived)
	}
	return c.JSON(paymentResponse(sess))
}

// Checkout godoc
// @Summary      Liquidar la venta
// @Tags         pos
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de sesión"
// @Success      201  {object}  dto.CheckoutResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Failure      422  {object}  dto.ErrorResponse
// @Failure      502  {object}  dto.ErrorResponse
// @Router       /api/pos/sessions/{id}/checkout [post]
func (h *PosHandler) Checkout(c *fiber.Ctx) error {
	sess := h.session(c)
	if sess == nil {
		return nil
	}
	// El vuelto se calcula antes de liquidar: el éxito vacía el carrito y
	// resetea la sesión de cobro.
	change, hasChange := sess.Payment.Change(sess.Cart.Summary().Total)

	code, err := sess.Settler.Settle(c.Context(), sess.Cart, sess.Payment)
	if err != nil {
		return respondSaleError(c, err)
	}
	out := dto.CheckoutResponse{Code: code}
	if hasChange {
		out.Change = &change
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// CloseSession godoc
// @Summary      Cerrar la pantalla de venta
// @Tags         pos
// @Security     Bearer
// @Param        id  path  string  true  "ID de sesión"
// @Success      204
// @Router       /api/pos/sessions/{id} [delete]
func (h *PosHandler) CloseSession(c *fiber.Ctx) error {
	h.sessions.Discard(c.Params("id"))
	return c.SendStatus(fiber.StatusNoContent)
}

// sessionState arma la vista completa de la pantalla.
func sessionState(sess *pos.Session) dto.SessionStateResponse {
	out := dto.SessionStateResponse{
		SessionID:   sess.ID,
		Cart:        cartResponse(sess.Cart),
		Payment:     paymentResponse(sess),
		SettleState: sess.Settler.State(),
		LastError:   sess.Settler.LastError(),
	}
	if notice, ok := sess.Notices.Current(); ok {
		out.Notice = &dto.NoticeResponse{Message: notice.Message, Code: notice.Code, ShownAt: notice.ShownAt}
	}
	return out
}

// cartResponse líneas + totales derivados.
func cartResponse(cart pos.Cart) dto.CartResponse {
	return dto.CartResponse{Lines: cart.Lines(), Summary: cart.Summary()}
}

// paymentResponse estado del cobro con el vuelto cuando está definido.
func paymentResponse(sess *pos.Session) dto.PaymentResponse {
	out := dto.PaymentResponse{
		Method:    sess.Payment.Method(),
		Reference: sess.Payment.Reference(),
	}
	if amount, ok := sess.Payment.AmountReceived(); ok {
		out.AmountReceived = &amount
	}
	if change, ok := sess.Payment.Change(sess.Cart.Summary().Total); ok {
		out.Change = &change
	}
	return out
}
