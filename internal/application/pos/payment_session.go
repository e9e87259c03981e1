package pos

import (
	"sync"

	"github.com/shopspring/decimal"

	"github.com/fabrica-abstracta/gestion-uno-web-sub001/internal/domain"
	"github.com/fabrica-abstracta/gestion-uno-web-sub001/internal/domain/entity"
)

// PaymentSession estado efímero del diálogo de cobro: método elegido, código
// de operación y efectivo recibido. Se crea fresco cada vez que se abre el
// diálogo y se descarta al cerrarlo o al liquidar con éxito.
//
// La sesión no bloquea la liquidación: el vuelto solo se MUESTRA cuando el
// método es CASH y lo recibido cubre el total; cobrar en efectivo por debajo
// de lo recibido no se impide aquí (comportamiento permisivo conservado).
type PaymentSession struct {
	mu             sync.Mutex
	method         string
	reference      string
	amountReceived *decimal.Decimal
}

// NewPaymentSession abre una sesión de cobro con CASH por defecto.
func NewPaymentSession() *PaymentSession {
	return &PaymentSession{method: entity.PayCash}
}

// SetMethod cambia el método de pago. Referencia y efectivo recibido son
// específicos del método: al cambiarlo se descartan.
func (p *PaymentSession) SetMethod(method string) error {
	if !entity.IsValidPaymentMethod(method) {
		return domain.ErrInvalidPayMethod
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.method != method {
		p.reference = ""
		p.amountReceived = nil
	}
	p.method = method
	return nil
}

// SetReference registra el código de operación (texto libre; aplica a métodos
// distintos de CASH).
func (p *PaymentSession) SetReference(value string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.reference = value
}

// SetAmountReceived registra el efectivo entregado por el cliente (CASH).
func (p *PaymentSession) SetAmountReceived(value decimal.Decimal) {
	p.mu.Lock()
	defer p.mu.Unlock()
	v := value
	p.amountReceived = &v
}

// Method método de pago vigente.
func (p *PaymentSession) Method() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.method
}

// Reference código de operación registrado (vacío si no aplica).
func (p *PaymentSession) Reference() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.reference
}

// AmountReceived efectivo recibido; ok es false si aún no se registró.
func (p *PaymentSession) AmountReceived() (decimal.Decimal, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.amountReceived == nil {
		return decimal.Zero, false
	}
	return *p.amountReceived, true
}

// Change vuelto = recibido − total, definido solo cuando el método es CASH y
// recibido ≥ total; en cualquier otro caso ok es false y no se muestra nada.
func (p *PaymentSession) Change(total decimal.Decimal) (decimal.Decimal, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.method != entity.PayCash || p.amountReceived == nil {
		return decimal.Zero, false
	}
	if p.amountReceived.LessThan(total) {
		return decimal.Zero, false
	}
	return p.amountReceived.Sub(total), true
}

// Reset descarta el estado (cierre del diálogo o venta liquidada).
func (p *PaymentSession) Reset() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.method = entity.PayCash
	p.reference = ""
	p.amountReceived = nil
}
