package pos

import (
	"context"
	"fmt"
	"sync"

	"github.com/fabrica-abstracta/gestion-uno-web-sub001/internal/domain"
	"github.com/fabrica-abstracta/gestion-uno-web-sub001/internal/domain/entity"
	"github.com/fabrica-abstracta/gestion-uno-web-sub001/pkg/logger"
)

// Estados de la máquina de liquidación: idle → submitting → {settled, failed}.
// failed vuelve a idle (reintentable) conservando carrito y sesión de cobro.
const (
	SettleIdle       = "idle"
	SettleSubmitting = "submitting"
	SettleSettled    = "settled"
	SettleFailed     = "failed"
)

// TransactionSettler orquesta la liquidación final: arma el payload desde el
// carrito y la sesión de cobro, llama al servicio de transacciones y conduce
// la secuencia de éxito (vaciar carrito, refrescar catálogo, aviso transitorio)
// o de fallo (volver a idle sin perder lo tecleado).
type TransactionSettler struct {
	mu        sync.Mutex
	state     string
	lastError string

	txSvc   TransactionService
	notices *NoticeBoard
	catalog *CatalogBrowser // nil en la pantalla de pedido (no hay listado que refrescar)
	log     *logger.Logger
}

// NewTransactionSettler construye el liquidador. catalog puede ser nil.
func NewTransactionSettler(txSvc TransactionService, notices *NoticeBoard, catalog *CatalogBrowser, log *logger.Logger) *TransactionSettler {
	return &TransactionSettler{
		state:   SettleIdle,
		txSvc:   txSvc,
		notices: notices,
		catalog: catalog,
		log:     log,
	}
}

// State estado vigente de la máquina.
func (s *TransactionSettler) State() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// LastError último mensaje de fallo (vacío si no hubo).
func (s *TransactionSettler) LastError() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastError
}

// Settle liquida el carrito con la sesión de cobro dada y devuelve el código
// de transacción.
//
// Precondiciones locales, nunca llegan a la red:
//   - carrito no vacío (si no, domain.ErrEmptyCart);
//   - no hay otra liquidación en curso (si no, domain.ErrSaleInProgress,
//     la guarda contra el doble click del botón de cobrar).
//
// En fallo el estado vuelve a idle y carrito y sesión de cobro se conservan
// para reintentar sin re-digitar nada. En éxito se vacía el carrito (solo tiene
// efecto en modo local), se re-emite la búsqueda de catálogo vigente y se
// publica el aviso transitorio con el código.
func (s *TransactionSettler) Settle(ctx context.Context, cart Cart, pay *PaymentSession) (string, error) {
	s.mu.Lock()
	if s.state == SettleSubmitting {
		s.mu.Unlock()
		return "", domain.ErrSaleInProgress
	}
	lines := cart.Lines()
	if len(lines) == 0 {
		s.mu.Unlock()
		return "", domain.ErrEmptyCart
	}
	s.state = SettleSubmitting
	s.lastError = ""
	s.mu.Unlock()

	req := buildSaleRequest(lines, pay)
	code, err := s.txSvc.CreateSale(ctx, req)
	if err != nil {
		s.mu.Lock()
		s.state = SettleIdle // failed es transitorio: reintentable de inmediato
		s.lastError = saleErrorMessage(err)
		s.mu.Unlock()
		return "", err
	}

	// Secuencia de éxito. El Clear es atómico en modo local y un no-op en modo
	// pedido remoto (el servidor ya es la fuente de verdad).
	if err := cart.Clear(ctx); err != nil {
		s.log.Warn().Err(err).Str("code", code).Msg("vaciar carrito tras liquidar")
	}
	s.notices.Publish(fmt.Sprintf("Venta registrada: %s", code), code)
	if s.catalog != nil {
		if err := s.catalog.Refresh(ctx); err != nil {
			// El listado anterior queda visible; el refresco fallido no
			// invalida la venta ya registrada.
			s.log.Warn().Err(err).Str("code", code).Msg("refrescar catálogo tras liquidar")
		}
	}
	pay.Reset()

	s.mu.Lock()
	s.state = SettleSettled
	s.mu.Unlock()
	return code, nil
}

// buildSaleRequest arma el payload de venta desde las líneas y el cobro.
func buildSaleRequest(lines []entity.CartLine, pay *PaymentSession) entity.SaleRequest {
	items := make([]entity.SaleItem, 0, len(lines))
	for _, line := range lines {
		items = append(items, entity.SaleItem{
			Product: entity.SaleProduct{
				ID:        line.ProductID,
				Name:      line.Name,
				Price:     line.UnitPrice,
				Brand:     line.Brand,
				BrandName: line.BrandName,
			},
			Quantity: line.Quantity,
		})
	}
	return entity.SaleRequest{
		Items:         items,
		PaymentMethod: pay.Method(),
		Reference:     pay.Reference(),
	}
}

// saleErrorMessage mensaje para el usuario: el del servidor tal cual cuando es
// un rechazo de negocio, genérico en cualquier otro caso.
func saleErrorMessage(err error) string {
	if rej, ok := domain.AsRejection(err); ok && rej.Message != "" {
		return rej.Message
	}
	return "SALE_ERROR"
}
