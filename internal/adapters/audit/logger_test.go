package audit_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"hotel_content/internal/adapters/audit"
	"hotel_content/internal/domain"
)

// ---- fakes ----
type fakeStore struct {
	mu    sync.Mutex
	got   []domain.Activity
	err   error
	block chan struct{}
}

func (f *fakeStore) InsertActivity(ctx context.Context, a domain.Activity) error {
	if f.block != nil {
		<-f.block
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.got = append(f.got, a)
	return f.err
}

func TestLogger_WritesAndFillsDefaults(t *testing.T) {
	st := &fakeStore{}
	l := audit.New(st, 10)
	l.LogActivity(context.Background(), domain.Activity{Type: domain.ActivityRawRead, UserID: "u-1"})
	l.Close()

	if len(st.got) != 1 {
		t.Fatalf("expected 1 event, got %d", len(st.got))
	}
	a := st.got[0]
	if a.ID == "" || a.CreatedAt.IsZero() || a.SecurityLevel != domain.SecurityLow {
		t.Fatalf("defaults not filled: %+v", a)
	}
}

func TestLogger_StoreErrorsAreSwallowed(t *testing.T) {
	st := &fakeStore{err: errors.New("db down")}
	l := audit.New(st, 10)
	for i := 0; i < 3; i++ {
		l.LogActivity(context.Background(), domain.Activity{Type: domain.ActivityDetailsRead})
	}
	l.Close()
	if len(st.got) != 3 {
		t.Fatalf("expected 3 attempts, got %d", len(st.got))
	}
}

func TestLogger_DropsWhenFullAndAfterClose(t *testing.T) {
	st := &fakeStore{block: make(chan struct{})}
	l := audit.New(st, 1)

	// first event is taken by the worker and blocks, second fills the buffer
	for i := 0; i < 5; i++ {
		l.LogActivity(context.Background(), domain.Activity{Type: domain.ActivityPushHotel})
	}
	close(st.block)
	l.Close()
	l.LogActivity(context.Background(), domain.Activity{Type: domain.ActivityPushHotel})

	if n := len(st.got); n < 1 || n > 2 {
		t.Fatalf("expected 1 or 2 written events, got %d", n)
	}
}
