package dispatcher

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/awahyudi/facility-portal/internal/domain/event"
)

func TestDispatch_InOrder(t *testing.T) {
	d := New()
	defer d.Close()

	var mu sync.Mutex
	var order []string

	d.Subscribe(event.TypePermitChanged, "first", func(ctx context.Context, evt *event.Event) error {
		mu.Lock()
		order = append(order, "first")
		mu.Unlock()
		return nil
	})
	d.Subscribe(event.TypePermitChanged, "second", func(ctx context.Context, evt *event.Event) error {
		mu.Lock()
		order = append(order, "second")
		mu.Unlock()
		return nil
	})

	if err := d.Dispatch(context.Background(), event.DocumentChanged(event.TypePermitChanged, "p1")); err != nil {
		t.Fatalf("Dispatch() error = %v", err)
	}

	if len(order) != 2 || order[0] != "first" || order[1] != "second" {
		t.Errorf("handler order = %v, want [first second]", order)
	}
}

func TestDispatch_StopsOnError(t *testing.T) {
	d := New()
	defer d.Close()

	var secondCalled bool
	d.Subscribe(event.TypeWriteFailed, "failing", func(ctx context.Context, evt *event.Event) error {
		return errors.New("boom")
	})
	d.Subscribe(event.TypeWriteFailed, "after", func(ctx context.Context, evt *event.Event) error {
		secondCalled = true
		return nil
	})

	err := d.Dispatch(context.Background(), event.NewWriteFailure("leave-permits", event.OpCreate, nil, errors.New("denied")))
	if err == nil {
		t.Fatal("Dispatch() should return first handler error")
	}
	if secondCalled {
		t.Error("handlers after a failure should not run")
	}
}

func TestDispatch_OnlyMatchingType(t *testing.T) {
	d := New()
	defer d.Close()

	var called bool
	d.Subscribe(event.TypeGuestChanged, "guest", func(ctx context.Context, evt *event.Event) error {
		called = true
		return nil
	})

	if err := d.Dispatch(context.Background(), event.DocumentChanged(event.TypePermitChanged, "p1")); err != nil {
		t.Fatalf("Dispatch() error = %v", err)
	}
	if called {
		t.Error("handler for another event type should not run")
	}
}

func TestUnsubscribe(t *testing.T) {
	d := New()
	defer d.Close()

	var calls int32
	d.Subscribe(event.TypePermitChanged, "view", func(ctx context.Context, evt *event.Event) error {
		atomic.AddInt32(&calls, 1)
		return nil
	})

	evt := event.DocumentChanged(event.TypePermitChanged, "p1")
	if err := d.Dispatch(context.Background(), evt); err != nil {
		t.Fatalf("Dispatch() error = %v", err)
	}

	d.Unsubscribe(event.TypePermitChanged, "view")
	if err := d.Dispatch(context.Background(), evt); err != nil {
		t.Fatalf("Dispatch() after unsubscribe error = %v", err)
	}

	if got := atomic.LoadInt32(&calls); got != 1 {
		t.Errorf("handler calls = %d, want 1", got)
	}
}

func TestDispatchAsync_PanicRecovered(t *testing.T) {
	d := New()

	done := make(chan struct{})
	d.Subscribe(event.TypeWriteFailed, "panicky", func(ctx context.Context, evt *event.Event) error {
		close(done)
		panic("handler bug")
	})

	d.DispatchAsync(context.Background(), event.NewWriteFailure("waste", event.OpDelete, nil, errors.New("denied")))

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("async handler was never invoked")
	}

	// Close waits for the panicking handler to be recovered and drained.
	if err := d.Close(); err != nil {
		t.Errorf("Close() error = %v", err)
	}
}

func TestClose_RejectsFurtherDispatch(t *testing.T) {
	d := New()
	if err := d.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	if err := d.Close(); err == nil {
		t.Error("second Close() should fail")
	}
	if err := d.Dispatch(context.Background(), event.DocumentChanged(event.TypePermitChanged, "p1")); err == nil {
		t.Error("Dispatch() after Close() should fail")
	}
}
