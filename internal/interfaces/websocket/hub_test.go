package websocket

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/awahyudi/facility-portal/internal/application/dispatcher"
	"github.com/awahyudi/facility-portal/internal/domain/entity"
	"github.com/awahyudi/facility-portal/internal/domain/event"
)

type fakeViews struct {
	admin          []*entity.LeavePermit
	securityOut    []*entity.LeavePermit
	securityReturn []*entity.LeavePermit
}

func (f *fakeViews) AdminQueue(context.Context) ([]*entity.LeavePermit, error) {
	return f.admin, nil
}

func (f *fakeViews) SecurityOutQueue(context.Context) ([]*entity.LeavePermit, error) {
	return f.securityOut, nil
}

func (f *fakeViews) SecurityReturnQueue(context.Context) ([]*entity.LeavePermit, error) {
	return f.securityReturn, nil
}

func dialTestHub(t *testing.T, views ViewSource) (dispatcher.Dispatcher, *Hub, *websocket.Conn) {
	t.Helper()

	disp := dispatcher.New()
	hub := NewHub(disp, views, zap.NewNop())

	srv := httptest.NewServer(http.HandlerFunc(hub.HandleConnection))
	t.Cleanup(srv.Close)

	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err)
	t.Cleanup(func() {
		conn.Close()
		hub.Close()
	})

	return disp, hub, conn
}

func readFrame(t *testing.T, conn *websocket.Conn) Message {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	var msg Message
	require.NoError(t, conn.ReadJSON(&msg))
	return msg
}

func TestHubBroadcastsEvents(t *testing.T) {
	disp, hub, conn := dialTestHub(t, nil)

	waitForClient(t, hub)

	require.NoError(t, disp.Dispatch(context.Background(), event.DocumentChanged(event.TypeGuestChanged, "g1")))

	msg := readFrame(t, conn)
	assert.Equal(t, "guests.changed", msg.Type)
	assert.Equal(t, "g1", msg.Payload["doc_id"])
}

func TestHubFiltersByEventType(t *testing.T) {
	disp, hub, conn := dialTestHub(t, nil)

	waitForClient(t, hub)

	require.NoError(t, conn.WriteJSON(subscribeRequest{
		Action: "subscribe",
		Types:  []string{"waste.changed"},
	}))

	// The filter is applied by the read pump; give it a moment to land.
	require.Eventually(t, func() bool {
		disp.Dispatch(context.Background(), event.DocumentChanged(event.TypeUserChanged, "u1"))
		disp.Dispatch(context.Background(), event.DocumentChanged(event.TypeWasteChanged, "w1"))
		conn.SetReadDeadline(time.Now().Add(500 * time.Millisecond))
		var msg Message
		if err := conn.ReadJSON(&msg); err != nil {
			return false
		}
		return msg.Type == "waste.changed"
	}, 3*time.Second, 50*time.Millisecond)
}

func TestHubPushesViewSnapshots(t *testing.T) {
	views := &fakeViews{
		admin: []*entity.LeavePermit{
			{ID: "p1", EmployeeName: "Budi", Status: entity.PermitStatusPending},
		},
	}
	disp, hub, conn := dialTestHub(t, views)

	waitForClient(t, hub)

	require.NoError(t, conn.WriteJSON(subscribeRequest{
		Action: "subscribe",
		Views:  []string{ViewAdminQueue},
	}))

	// Initial snapshot arrives on subscribe.
	msg := readFrame(t, conn)
	require.Equal(t, "view.snapshot", msg.Type)
	assert.Equal(t, ViewAdminQueue, msg.Payload["view"])

	permits, ok := msg.Payload["permits"].([]interface{})
	require.True(t, ok)
	require.Len(t, permits, 1)

	// A permit change pushes a fresh snapshot after the event frame.
	require.NoError(t, disp.Dispatch(context.Background(), event.DocumentChanged(event.TypePermitChanged, "p1")))

	evtFrame := readFrame(t, conn)
	assert.Equal(t, "permits.changed", evtFrame.Type)

	snapshot := readFrame(t, conn)
	assert.Equal(t, "view.snapshot", snapshot.Type)
	assert.Equal(t, ViewAdminQueue, snapshot.Payload["view"])
}

func TestHubIgnoresUnknownView(t *testing.T) {
	disp, hub, conn := dialTestHub(t, &fakeViews{})

	waitForClient(t, hub)

	require.NoError(t, conn.WriteJSON(subscribeRequest{
		Action: "subscribe",
		Views:  []string{"no-such-view"},
	}))

	// No snapshot frame; the next event still arrives.
	require.NoError(t, disp.Dispatch(context.Background(), event.DocumentChanged(event.TypeGuestChanged, "g1")))

	msg := readFrame(t, conn)
	assert.Equal(t, "guests.changed", msg.Type)
}

func TestPushViewsSurvivesDroppedWatcher(t *testing.T) {
	disp := dispatcher.New()
	views := &fakeViews{
		admin: []*entity.LeavePermit{{ID: "p1", Status: entity.PermitStatusPending}},
	}
	hub := NewHub(disp, views, zap.NewNop())
	t.Cleanup(hub.Close)

	live := &client{
		send:   make(chan Message, sendBuffer),
		filter: make(map[string]bool),
		views:  map[string]bool{ViewAdminQueue: true},
	}
	gone := &client{
		send:   make(chan Message, sendBuffer),
		filter: make(map[string]bool),
		views:  map[string]bool{ViewAdminQueue: true},
	}
	hub.clients[live] = struct{}{}
	hub.clients[gone] = struct{}{}

	// One watcher disconnects while its frames are still being fanned out.
	gone.shutdown()

	require.NotPanics(t, func() { hub.pushViews(context.Background()) })

	// The remaining watcher still gets its snapshot.
	select {
	case msg := <-live.send:
		assert.Equal(t, "view.snapshot", msg.Type)
		assert.Equal(t, ViewAdminQueue, msg.Payload["view"])
	default:
		t.Fatal("expected a snapshot for the connected watcher")
	}
}

func TestEnqueueAfterShutdownIsNoOp(t *testing.T) {
	c := &client{
		send:   make(chan Message, 1),
		filter: make(map[string]bool),
		views:  make(map[string]bool),
	}
	c.shutdown()
	c.shutdown() // idempotent

	require.NotPanics(t, func() {
		c.enqueue(zap.NewNop(), Message{Type: "guests.changed"})
	})
}

func TestHubCloseDisconnectsClients(t *testing.T) {
	_, hub, conn := dialTestHub(t, nil)

	waitForClient(t, hub)
	hub.Close()

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, _, err := conn.ReadMessage()
	assert.Error(t, err)
	assert.Equal(t, 0, hub.ClientCount())
}

// waitForClient blocks until the server side finished registering the
// connection, since Dial returns before HandleConnection does.
func waitForClient(t *testing.T, hub *Hub) {
	t.Helper()
	require.Eventually(t, func() bool {
		return hub.ClientCount() == 1
	}, 2*time.Second, 10*time.Millisecond)
}
