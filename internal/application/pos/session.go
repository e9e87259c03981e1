package pos

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/fabrica-abstracta/gestion-uno-web-sub001/internal/domain"
	"github.com/fabrica-abstracta/gestion-uno-web-sub001/internal/domain/entity"
	"github.com/fabrica-abstracta/gestion-uno-web-sub001/pkg/logger"
)

// defaultSessionTTL vida de una sesión de caja sin actividad.
const defaultSessionTTL = 30 * time.Minute

// Session una pantalla de venta directa abierta: carrito local, navegador de
// catálogo, sesión de cobro, liquidador y tablón de avisos. Vive en memoria;
// al expirar se pierde (la venta directa es atómica en el checkout, no hay
// nada durable que conservar).
type Session struct {
	ID        string
	Cart      *LocalCart
	Catalog   *CatalogBrowser
	Payment   *PaymentSession
	Settler   *TransactionSettler
	Notices   *NoticeBoard
	CreatedAt time.Time
}

// SessionDeps colaboradores compartidos por todas las sesiones.
type SessionDeps struct {
	Catalog      CatalogService
	Transactions TransactionService
	PerPage      int
	NoticeTTL    time.Duration
	Log          *logger.Logger
}

type sessionEntry struct {
	sess     *Session
	lastSeen time.Time
}

// SessionManager registro en memoria de sesiones de caja con expiración por
// inactividad. Las sesiones vencidas se barren periódicamente.
type SessionManager struct {
	mu       sync.Mutex
	deps     SessionDeps
	ttl      time.Duration
	sessions map[string]*sessionEntry
	stop     chan struct{}
	stopOnce sync.Once
}

// NewSessionManager crea el registro y arranca el barrido de sesiones vencidas.
// ttl <= 0 usa defaultSessionTTL.
func NewSessionManager(deps SessionDeps, ttl time.Duration) *SessionManager {
	if ttl <= 0 {
		ttl = defaultSessionTTL
	}
	m := &SessionManager{
		deps:     deps,
		ttl:      ttl,
		sessions: make(map[string]*sessionEntry),
		stop:     make(chan struct{}),
	}
	go m.sweeper()
	return m
}

// Open monta una pantalla de venta: carrito vacío y búsqueda inicial del
// catálogo (página 1, sin filtros). Un fallo en esa primera búsqueda no impide
// abrir la sesión: el listado queda en estado error y la UI reintenta.
func (m *SessionManager) Open(ctx context.Context) *Session {
	cart := NewLocalCart()
	notices := NewNoticeBoard(m.deps.NoticeTTL)
	catalog := NewCatalogBrowser(m.deps.Catalog, cart, m.deps.PerPage)
	settler := NewTransactionSettler(m.deps.Transactions, notices, catalog, m.deps.Log)

	sess := &Session{
		ID:        uuid.New().String(),
		Cart:      cart,
		Catalog:   catalog,
		Payment:   NewPaymentSession(),
		Settler:   settler,
		Notices:   notices,
		CreatedAt: time.Now(),
	}
	if err := catalog.Search(ctx, 1, entity.ProductFilters{}); err != nil {
		m.deps.Log.Warn().Err(err).Str("session_id", sess.ID).Msg("búsqueda inicial de catálogo")
	}

	m.mu.Lock()
	m.sessions[sess.ID] = &sessionEntry{sess: sess, lastSeen: time.Now()}
	m.mu.Unlock()
	return sess
}

// Get devuelve la sesión y renueva su actividad.
func (m *SessionManager) Get(id string) (*Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	entry, ok := m.sessions[id]
	if !ok || time.Since(entry.lastSeen) > m.ttl {
		delete(m.sessions, id)
		return nil, domain.ErrSessionNotFound
	}
	entry.lastSeen = time.Now()
	return entry.sess, nil
}

// Discard cierra la pantalla y descarta la sesión.
func (m *SessionManager) Discard(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, id)
}

// Count sesiones vivas (health/metrics).
func (m *SessionManager) Count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}

// Close detiene el barrido.
func (m *SessionManager) Close() {
	m.stopOnce.Do(func() { close(m.stop) })
}

func (m *SessionManager) sweeper() {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()
	for {
		select {
		case <-m.stop:
			return
		case <-ticker.C:
			m.mu.Lock()
			for id, entry := range m.sessions {
				if time.Since(entry.lastSeen) > m.ttl {
					delete(m.sessions, id)
				}
			}
			m.mu.Unlock()
		}
	}
}
