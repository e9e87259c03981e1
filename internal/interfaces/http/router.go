package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/fabrica-abstracta/gestion-uno-web-sub001/internal/application/pos"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	Sessions  *pos.SessionManager
	Orders    *pos.OrderCartRegistry
	JWTSecret string
}

// Router registra las rutas de la API. Toda la superficie de caja requiere
// Bearer Token; vender y editar pedidos se limita a cajeros y administradores.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	protected := api.Group("/", AuthMiddleware(deps.JWTSecret), RequireRole("admin", "cajero", "vendedor"))

	// Venta directa (sesiones de caja)
	posHandler := NewPosHandler(deps.Sessions)
	sessions := protected.Group("/pos/sessions")
	sessions.Post("/", posHandler.OpenSession)
	sessions.Get("/:id", posHandler.GetState)
	sessions.Delete("/:id", posHandler.CloseSession)
	sessions.Get("/:id/catalog", posHandler.SearchCatalog)
	sessions.Post("/:id/cart/lines", posHandler.AddLine)
	sessions.Patch("/:id/cart/lines/:productId", posHandler.ChangeQuantity)
	sessions.Delete("/:id/cart/lines/:productId", posHandler.RemoveLine)
	sessions.Put("/:id/payment", posHandler.UpdatePayment)
	sessions.Post("/:id/checkout", posHandler.Checkout)

	// Edición de pedidos (carrito remoto)
	orderHandler := NewOrderHandler(deps.Orders)
	orders := protected.Group("/orders")
	orders.Get("/:orderId/cart", orderHandler.GetCart)
	orders.Post("/:orderId/cart/lines", orderHandler.AddLine)
	orders.Patch("/:orderId/cart/lines/:productId", orderHandler.ChangeQuantity)
	orders.Delete("/:orderId/cart/lines/:productId", orderHandler.RemoveLine)
	orders.Post("/:orderId/cart/checkout", orderHandler.Checkout)
}
