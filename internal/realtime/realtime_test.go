package realtime

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/shenikar/tourist_safety_system/internal/auth"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func quietLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(&bytes.Buffer{})
	return logger
}

// startHubServer поднимает тестовый websocket-сервер, подключающий клиента в комнату
func startHubServer(t *testing.T, hub *Hub, room string) *httptest.Server {
	upgrader := websocket.Upgrader{CheckOrigin: func(r *http.Request) bool { return true }}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		hub.Serve(conn, room)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func dial(t *testing.T, srv *httptest.Server) *websocket.Conn {
	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })
	return conn
}

func TestHub_BroadcastToAdmins(t *testing.T) {
	hub := NewHub(quietLogger())
	srv := startHubServer(t, hub, AdminRoom)
	conn := dial(t, srv)

	require.Eventually(t, func() bool { return hub.RoomSize(AdminRoom) == 1 }, time.Second, 10*time.Millisecond)

	hub.BroadcastToAdmins(EventNewAlert, map[string]string{"priority": "critical"})

	_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, data, err := conn.ReadMessage()
	require.NoError(t, err)

	var msg struct {
		Event string            `json:"event"`
		Data  map[string]string `json:"data"`
	}
	require.NoError(t, json.Unmarshal(data, &msg))
	assert.Equal(t, EventNewAlert, msg.Event)
	assert.Equal(t, "critical", msg.Data["priority"])
}

func TestHub_SendToTouristOnlyReachesOwnRoom(t *testing.T) {
	hub := NewHub(quietLogger())
	touristID := uuid.New()
	mine := dial(t, startHubServer(t, hub, TouristRoom(touristID)))
	other := dial(t, startHubServer(t, hub, TouristRoom(uuid.New())))

	require.Eventually(t, func() bool { return hub.RoomSize(TouristRoom(touristID)) == 1 }, time.Second, 10*time.Millisecond)

	hub.SendToTourist(touristID, EventAlertUpdated, map[string]string{"status": "acknowledged"})

	_ = mine.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, data, err := mine.ReadMessage()
	require.NoError(t, err)
	assert.Contains(t, string(data), `"alert-updated"`)

	_ = other.SetReadDeadline(time.Now().Add(200 * time.Millisecond))
	_, _, err = other.ReadMessage()
	assert.Error(t, err)
}

func TestHub_UnregisterOnClientClose(t *testing.T) {
	hub := NewHub(quietLogger())
	srv := startHubServer(t, hub, AdminRoom)
	conn := dial(t, srv)

	require.Eventually(t, func() bool { return hub.RoomSize(AdminRoom) == 1 }, time.Second, 10*time.Millisecond)
	require.NoError(t, conn.Close())
	assert.Eventually(t, func() bool { return hub.RoomSize(AdminRoom) == 0 }, time.Second, 10*time.Millisecond)
}

func TestHub_BroadcastDoesNotBlockOnStalledClient(t *testing.T) {
	hub := NewHub(quietLogger())
	// Клиент без writePump: очередь никто не читает
	stalled := NewClient(nil, AdminRoom)
	hub.Register(stalled)

	done := make(chan struct{})
	go func() {
		for i := 0; i < sendBuffer+1; i++ {
			hub.BroadcastToAdmins(EventNewAlert, i)
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("broadcast blocked on a stalled client")
	}
	assert.Equal(t, 0, hub.RoomSize(AdminRoom))

	// Повторное отключение и рассылка в пустую комнату безопасны
	hub.Unregister(stalled)
	hub.BroadcastToAdmins(EventNewAlert, "after")
}

func TestHub_StalledClientDoesNotDelayOthers(t *testing.T) {
	hub := NewHub(quietLogger())
	hub.Register(NewClient(nil, AdminRoom))
	conn := dial(t, startHubServer(t, hub, AdminRoom))

	require.Eventually(t, func() bool { return hub.RoomSize(AdminRoom) == 2 }, time.Second, 10*time.Millisecond)

	hub.BroadcastToAdmins(EventNewAlert, map[string]string{"priority": "critical"})

	_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, data, err := conn.ReadMessage()
	require.NoError(t, err)
	assert.Contains(t, string(data), "critical")
}

type recordedBroadcast struct {
	room, event string
	args        []interface{}
}

type fakeEmitter struct {
	calls []recordedBroadcast
}

func (f *fakeEmitter) BroadcastToRoom(_, room, event string, args ...interface{}) bool {
	f.calls = append(f.calls, recordedBroadcast{room: room, event: event, args: args})
	return true
}

func TestSocketServer_RoutesToRooms(t *testing.T) {
	emitter := &fakeEmitter{}
	s := &SocketServer{emitter: emitter, logger: quietLogger()}
	touristID := uuid.New()

	s.BroadcastToAdmins(EventLocationUpdate, "payload")
	s.SendToTourist(touristID, EventAlertUpdated, "payload")

	require.Len(t, emitter.calls, 2)
	assert.Equal(t, AdminRoom, emitter.calls[0].room)
	assert.Equal(t, EventLocationUpdate, emitter.calls[0].event)
	assert.Equal(t, TouristRoom(touristID), emitter.calls[1].room)
}

func TestSocketServer_AuthorizeJoin(t *testing.T) {
	tokens := auth.NewTokenManager("secret", time.Hour)
	s := &SocketServer{tokens: tokens, logger: quietLogger()}

	adminToken, _, err := tokens.Generate(uuid.New(), "admin", "ops@example.com")
	require.NoError(t, err)
	touristID := uuid.New()
	touristToken, _, err := tokens.Generate(touristID, "tourist", "anna@example.com")
	require.NoError(t, err)

	room, err := s.authorizeJoin(adminToken, true)
	require.NoError(t, err)
	assert.Equal(t, AdminRoom, room)

	room, err = s.authorizeJoin(touristToken, false)
	require.NoError(t, err)
	assert.Equal(t, TouristRoom(touristID), room)

	_, err = s.authorizeJoin(touristToken, true)
	assert.ErrorIs(t, err, errForbidden)

	_, err = s.authorizeJoin(adminToken, false)
	assert.ErrorIs(t, err, errForbidden)

	_, err = s.authorizeJoin("", true)
	assert.ErrorIs(t, err, errUnauthorized)

	_, err = s.authorizeJoin("garbage", true)
	assert.ErrorIs(t, err, errUnauthorized)
}

type countingBroadcaster struct {
	admins, tourists int
}

func (c *countingBroadcaster) BroadcastToAdmins(string, any)         { c.admins++ }
func (c *countingBroadcaster) SendToTourist(uuid.UUID, string, any) { c.tourists++ }

func TestFanout(t *testing.T) {
	a, b := &countingBroadcaster{}, &countingBroadcaster{}
	f := Fanout{a, b}

	f.BroadcastToAdmins(EventNewAlert, nil)
	f.SendToTourist(uuid.New(), EventAlertUpdated, nil)

	assert.Equal(t, 1, a.admins)
	assert.Equal(t, 1, b.tourists)
}
