package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound         = errors.New("recurso no encontrado")
	ErrInvalidInput     = errors.New("entrada inválida")
	ErrUnauthorized     = errors.New("no autorizado")
	ErrEmptyCart        = errors.New("el carrito está vacío")
	ErrSaleInProgress   = errors.New("ya hay una venta en curso")
	ErrSearchInProgress = errors.New("ya hay una búsqueda en curso")
	ErrSessionNotFound  = errors.New("sesión de venta no encontrada o expirada")
	ErrInvalidPayMethod = errors.New("método de pago inválido")
	ErrNetwork          = errors.New("error de comunicación con el servicio remoto")
)

// RejectionError es un rechazo de negocio del servicio remoto (ej. "stock
// insuficiente"). El mensaje del servidor se muestra tal cual al usuario.
type RejectionError struct {
	Message string
}

func (e *RejectionError) Error() string {
	if e.Message == "" {
		return "SALE_ERROR"
	}
	return e.Message
}

// AsRejection devuelve el RejectionError envuelto en err, si lo hay.
func AsRejection(err error) (*RejectionError, bool) {
	var rej *RejectionError
	if errors.As(err, &rej) {
		return rej, true
	}
	return nil, false
}
