package pos

import (
	"sync"
	"time"
)

// DefaultNoticeTTL tiempo que el aviso de éxito permanece visible.
const DefaultNoticeTTL = 4 * time.Second

// Notice aviso transitorio de venta registrada. Message incluye el código de
// transacción, que también ancla la impresión del ticket.
type Notice struct {
	Message string    `json:"message"`
	Code    string    `json:"code"`
	ShownAt time.Time `json:"shownAt"`
}

// NoticeBoard publica el aviso de éxito y lo auto-descarta pasado el TTL.
// El timer es fire-and-forget: si llega un aviso más nuevo, el descarte del
// anterior no lo pisa (se compara la generación).
type NoticeBoard struct {
	mu      sync.Mutex
	current *Notice
	gen     uint64
	ttl     time.Duration
}

// NewNoticeBoard crea el tablón; ttl <= 0 usa DefaultNoticeTTL.
func NewNoticeBoard(ttl time.Duration) *NoticeBoard {
	if ttl <= 0 {
		ttl = DefaultNoticeTTL
	}
	return &NoticeBoard{ttl: ttl}
}

// Publish muestra el aviso y programa su auto-descarte.
func (b *NoticeBoard) Publish(message, code string) {
	b.mu.Lock()
	b.gen++
	gen := b.gen
	b.current = &Notice{Message: message, Code: code, ShownAt: time.Now()}
	b.mu.Unlock()

	time.AfterFunc(b.ttl, func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		if b.gen == gen {
			b.current = nil
		}
	})
}

// Current devuelve el aviso visible, si lo hay.
func (b *NoticeBoard) Current() (Notice, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.current == nil {
		return Notice{}, false
	}
	return *b.current, true
}

// Dismiss descarta el aviso manualmente.
func (b *NoticeBoard) Dismiss() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.current = nil
}
