package asyncop

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/awahyudi/facility-portal/internal/application/dispatcher"
	"github.com/awahyudi/facility-portal/internal/domain/event"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTask_WaitReturnsResult(t *testing.T) {
	ok := Run(context.Background(), "guests", event.OpCreate, nil, func(ctx context.Context) error {
		return nil
	})
	assert.NoError(t, ok.Wait(context.Background()))

	failed := Run(context.Background(), "guests", event.OpCreate, nil, func(ctx context.Context) error {
		return errors.New("permission denied")
	})
	assert.EqualError(t, failed.Wait(context.Background()), "permission denied")
}

func TestTask_WaitHonorsContext(t *testing.T) {
	blocked := make(chan struct{})
	defer close(blocked)

	task := Run(context.Background(), "waste", event.OpUpdate, nil, func(ctx context.Context) error {
		<-blocked
		return nil
	})

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	assert.ErrorIs(t, task.Wait(ctx), context.DeadlineExceeded)
}

func TestTask_DetachBroadcastsFailure(t *testing.T) {
	d := dispatcher.New()
	defer d.Close()

	received := make(chan *event.Event, 1)
	d.Subscribe(event.TypeWriteFailed, "listener", func(ctx context.Context, evt *event.Event) error {
		received <- evt
		return nil
	})

	payload := map[string]string{"name": "Budi"}
	task := Run(context.Background(), "leave-permits", event.OpCreate, payload, func(ctx context.Context) error {
		return errors.New("permission denied")
	})
	task.Detach(d)

	select {
	case evt := <-received:
		assert.Equal(t, "leave-permits", evt.GetPayloadString("path"))
		assert.Equal(t, event.OpCreate, evt.GetPayloadString("operation"))
		assert.Equal(t, "permission denied", evt.GetPayloadString("error"))
		require.Contains(t, evt.Payload, "payload")
	case <-time.After(time.Second):
		t.Fatal("no write.failed event broadcast")
	}
}

func TestTask_DetachSilentOnSuccess(t *testing.T) {
	d := dispatcher.New()
	defer d.Close()

	received := make(chan *event.Event, 1)
	d.Subscribe(event.TypeWriteFailed, "listener", func(ctx context.Context, evt *event.Event) error {
		received <- evt
		return nil
	})

	task := Run(context.Background(), "guests", event.OpCreate, nil, func(ctx context.Context) error {
		return nil
	})
	task.Detach(d)

	select {
	case <-received:
		t.Fatal("successful detached write must not broadcast a failure")
	case <-time.After(50 * time.Millisecond):
	}
}
