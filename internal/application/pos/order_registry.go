package pos

import (
	"context"
	"sync"
	"time"

	"github.com/fabrica-abstracta/gestion-uno-web-sub001/pkg/logger"
)

// defaultOrderCartTTL vida de una edición de pedido sin actividad.
const defaultOrderCartTTL = 15 * time.Minute

// OrderSession la pantalla de edición de un pedido: proyección remota del
// carrito más su liquidador y tablón de avisos. La sesión de cobro no vive
// aquí: se crea fresca con cada apertura del diálogo de cobro.
type OrderSession struct {
	Cart    *RemoteOrderCart
	Settler *TransactionSettler
	Notices *NoticeBoard
}

type orderEntry struct {
	sess     *OrderSession
	lastSeen time.Time
}

// OrderCartRegistry una OrderSession por pedido en edición. Compartir la
// instancia por pedido es lo que serializa las mutaciones sobre un mismo
// pedido (el mutex del carrito: una mutación y su refetch completan antes de
// emitir la siguiente) y lo que hace efectiva la guarda anti doble-envío del
// liquidador entre peticiones. Las entradas se podan por inactividad en cada
// acceso; no retienen recursos, así que no hace falta un barrido aparte.
type OrderCartRegistry struct {
	mu      sync.Mutex
	orders  OrderService
	tx      TransactionService
	log     *logger.Logger
	ttl     time.Duration
	entries map[string]*orderEntry
}

// NewOrderCartRegistry crea el registro. ttl <= 0 usa defaultOrderCartTTL.
func NewOrderCartRegistry(orders OrderService, tx TransactionService, log *logger.Logger, ttl time.Duration) *OrderCartRegistry {
	if ttl <= 0 {
		ttl = defaultOrderCartTTL
	}
	return &OrderCartRegistry{
		orders:  orders,
		tx:      tx,
		log:     log,
		ttl:     ttl,
		entries: make(map[string]*orderEntry),
	}
}

// Get devuelve la sesión de edición del pedido, construyéndola (con carga
// inicial desde el servidor) la primera vez.
func (r *OrderCartRegistry) Get(ctx context.Context, orderID string) (*OrderSession, error) {
	r.mu.Lock()
	r.prune()
	if entry, ok := r.entries[orderID]; ok {
		entry.lastSeen = time.Now()
		r.mu.Unlock()
		return entry.sess, nil
	}
	r.mu.Unlock()

	// Construcción fuera del lock: implica un GetOrder remoto.
	cart, err := NewRemoteOrderCart(ctx, r.orders, orderID)
	if err != nil {
		return nil, err
	}
	notices := NewNoticeBoard(0)
	sess := &OrderSession{
		Cart:    cart,
		Notices: notices,
		// Sin catálogo que refrescar en la pantalla de pedido.
		Settler: NewTransactionSettler(r.tx, notices, nil, r.log),
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if entry, ok := r.entries[orderID]; ok {
		// Otro request construyó la sesión primero; se conserva esa.
		entry.lastSeen = time.Now()
		return entry.sess, nil
	}
	r.entries[orderID] = &orderEntry{sess: sess, lastSeen: time.Now()}
	return sess, nil
}

// prune poda entradas inactivas. Solo bajo r.mu.
func (r *OrderCartRegistry) prune() {
	for id, entry := range r.entries {
		if time.Since(entry.lastSeen) > r.ttl {
			delete(r.entries, id)
		}
	}
}
