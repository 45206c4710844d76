// Package audit writes activity events asynchronously. Callers never wait
// on the store and never see its errors.
package audit

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"hotel_content/internal/adapters/observability"
	"hotel_content/internal/domain"
)

type Logger struct {
	store   domain.ActivityStore
	events  chan domain.Activity
	timeout time.Duration
	now     func() time.Time

	wg        sync.WaitGroup
	closeOnce sync.Once
	mu        sync.RWMutex
	closed    bool
}

// New starts a logger with a bounded buffer. Events are dropped, and
// counted, when the buffer is full.
func New(store domain.ActivityStore, buffer int) *Logger {
	if buffer <= 0 {
		buffer = 1000
	}
	l := &Logger{
		store:   store,
		events:  make(chan domain.Activity, buffer),
		timeout: 3 * time.Second,
		now:     time.Now,
	}
	l.wg.Add(1)
	go l.run()
	return l
}

func (l *Logger) LogActivity(_ context.Context, a domain.Activity) {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	if a.CreatedAt.IsZero() {
		a.CreatedAt = l.now()
	}
	if a.SecurityLevel == "" {
		a.SecurityLevel = domain.SecurityLow
	}

	l.mu.RLock()
	defer l.mu.RUnlock()
	if l.closed {
		observability.AuditDropped.Inc()
		return
	}
	select {
	case l.events <- a:
	default:
		observability.AuditDropped.Inc()
		log.Warn().Str("activity_type", a.Type).Msg("audit buffer full; event dropped")
	}
}

func (l *Logger) run() {
	defer l.wg.Done()
	for a := range l.events {
		ctx, cancel := context.WithTimeout(context.Background(), l.timeout)
		if err := l.store.InsertActivity(ctx, a); err != nil {
			log.Warn().Err(err).Str("activity_type", a.Type).Str("user_id", a.UserID).Msg("audit write failed")
		}
		cancel()
	}
}

// Close stops accepting events and waits for the buffer to drain.
func (l *Logger) Close() {
	l.closeOnce.Do(func() {
		l.mu.Lock()
		l.closed = true
		close(l.events)
		l.mu.Unlock()
		l.wg.Wait()
	})
}
