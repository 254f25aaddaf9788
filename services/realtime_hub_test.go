package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRealtimeHub_DeliversToUserSockets(t *testing.T) {
	hub := NewRealtimeHub()
	registered := make(chan struct{}, 1)
	upgrader := websocket.Upgrader{}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		hub.Register(&WSClient{UserID: 7, Conn: conn})
		registered <- struct{}{}
	}))
	defer srv.Close()

	conn, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(srv.URL, "http"), nil)
	require.NoError(t, err)
	defer conn.Close()

	select {
	case <-registered:
	case <-time.After(2 * time.Second):
		t.Fatal("client was not registered")
	}
	assert.Equal(t, 1, hub.Connected(7))
	assert.Equal(t, 0, hub.Connected(8))

	hub.Notify(8, EventDailyLogUpdated, map[string]int{"other": 1})
	hub.Notify(7, EventDailyLogUpdated, map[string]float64{"total_calories": 500})

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, msg, err := conn.ReadMessage()
	require.NoError(t, err)

	var ev struct {
		Kind   string             `json:"kind"`
		UserID uint               `json:"user_id"`
		Data   map[string]float64 `json:"data"`
	}
	require.NoError(t, json.Unmarshal(msg, &ev))
	assert.Equal(t, EventDailyLogUpdated, ev.Kind)
	assert.Equal(t, uint(7), ev.UserID)
	assert.Equal(t, 500.0, ev.Data["total_calories"])
}

func TestNotifiers_FanOut(t *testing.T) {
	a, b := &captureNotifier{}, &captureNotifier{}
	Notifiers{a, nil, b}.Notify(3, "k", 1)
	assert.Len(t, a.events, 1)
	assert.Len(t, b.events, 1)
}

func TestRealtimeHub_DropsBrokenSockets(t *testing.T) {
	hub := NewRealtimeHub()
	clients := make(chan *WSClient, 1)
	upgrader := websocket.Upgrader{}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		c := &WSClient{UserID: 7, Conn: conn}
		hub.Register(c)
		clients <- c
	}))
	defer srv.Close()

	conn, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(srv.URL, "http"), nil)
	require.NoError(t, err)
	defer conn.Close()

	var c *WSClient
	select {
	case c = <-clients:
	case <-time.After(2 * time.Second):
		t.Fatal("client was not registered")
	}
	require.NoError(t, c.Conn.Close())

	hub.Notify(7, EventDailyLogUpdated, map[string]int{"n": 1})
	assert.Equal(t, 0, hub.Connected(7))
}

func TestEventQueue_DropsWhenFull(t *testing.T) {
	release := make(chan struct{})
	var mu sync.Mutex
	var sent []string
	q := newEventQueue("test", 1, nil, func(ev Event) error {
		<-release
		mu.Lock()
		sent = append(sent, ev.Kind)
		mu.Unlock()
		return nil
	})

	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < 50; i++ {
			q.Notify(1, fmt.Sprintf("k%d", i), nil)
		}
	}()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Notify blocked on a stalled sender")
	}

	close(release)
	q.Close()
	mu.Lock()
	defer mu.Unlock()
	assert.NotEmpty(t, sent)
	assert.Less(t, len(sent), 50)
	assert.Equal(t, "k0", sent[0])

	q.Notify(1, "late", nil)
}

func TestEventQueue_CloseFlushes(t *testing.T) {
	var mu sync.Mutex
	var got []uint
	q := newEventQueue("test", 8, nil, func(ev Event) error {
		mu.Lock()
		got = append(got, ev.UserID)
		mu.Unlock()
		if ev.UserID == 2 {
			return errors.New("broker gone")
		}
		return nil
	})
	for i := uint(1); i <= 3; i++ {
		q.Notify(i, EventDailyLogUpdated, nil)
	}
	q.Close()
	q.Close()

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []uint{1, 2, 3}, got)
}
