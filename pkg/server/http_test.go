package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pokermesa/mesa/pkg/poker"
)

func newTestServer(t *testing.T) (*httptest.Server, *TableManager) {
	t.Helper()
	m, _ := newTestManager(t)
	srv := httptest.NewServer(NewHandler(m, nil))
	t.Cleanup(srv.Close)
	return srv, m
}

func postJSON(t *testing.T, url string, body interface{}) *http.Response {
	t.Helper()
	buf, err := json.Marshal(body)
	require.NoError(t, err)
	resp, err := http.Post(url, "application/json", bytes.NewReader(buf))
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func decode(t *testing.T, resp *http.Response, v interface{}) {
	t.Helper()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(v))
}

func TestHTTPListTables(t *testing.T) {
	srv, _ := newTestServer(t)

	resp, err := http.Get(srv.URL + "/api/tables")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var infos []poker.TableInfo
	decode(t, resp, &infos)
	require.Len(t, infos, 2)
	assert.Equal(t, "mesa-1", infos[0].ID)
}

func TestHTTPJoinAndState(t *testing.T) {
	srv, _ := newTestServer(t)

	resp := postJSON(t, srv.URL+"/api/tables/mesa-1/join", joinRequest{Name: "alice", Chips: 500})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var join1 joinResponse
	decode(t, resp, &join1)
	assert.True(t, join1.Seated)
	require.NotEmpty(t, join1.PlayerID)

	resp = postJSON(t, srv.URL+"/api/tables/mesa-1/join", joinRequest{Name: "bob", Chips: 500})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	stateResp, err := http.Get(srv.URL + "/api/tables/mesa-1/state?player=" + join1.PlayerID)
	require.NoError(t, err)
	defer stateResp.Body.Close()
	require.Equal(t, http.StatusOK, stateResp.StatusCode)

	var snap poker.PublicGameState
	decode(t, stateResp, &snap)
	assert.Equal(t, poker.StageWaiting, snap.Stage)
	require.Len(t, snap.Players, 2)
	assert.Equal(t, "alice", snap.Players[0].Name)
}

func TestHTTPFullHandFlow(t *testing.T) {
	srv, _ := newTestServer(t)

	var alice, bob joinResponse
	decode(t, postJSON(t, srv.URL+"/api/tables/mesa-1/join", joinRequest{Name: "alice", Chips: 500}), &alice)
	decode(t, postJSON(t, srv.URL+"/api/tables/mesa-1/join", joinRequest{Name: "bob", Chips: 500}), &bob)

	resp := postJSON(t, srv.URL+"/api/tables/mesa-1/start", struct{}{})
	require.Equal(t, http.StatusNoContent, resp.StatusCode)

	// Starting again while the hand runs conflicts.
	resp = postJSON(t, srv.URL+"/api/tables/mesa-1/start", struct{}{})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	// Out-of-turn action is rejected.
	resp = postJSON(t, srv.URL+"/api/tables/mesa-1/action", actionRequest{
		PlayerID: bob.PlayerID,
		Action:   poker.Action{Kind: poker.ActionCheck},
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	// Alice folds; bob takes the pot and the hand result comes back.
	resp = postJSON(t, srv.URL+"/api/tables/mesa-1/action", actionRequest{
		PlayerID: alice.PlayerID,
		Action:   poker.Action{Kind: poker.ActionFold},
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var ar actionResponse
	decode(t, resp, &ar)
	require.NotNil(t, ar.Result)
	assert.Equal(t, "bob", ar.Result.WinnerName)
	assert.False(t, ar.Result.Showdown)

	// Cash out.
	resp = postJSON(t, srv.URL+"/api/tables/mesa-1/leave", leaveRequest{PlayerID: alice.PlayerID})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var lr leaveResponse
	decode(t, resp, &lr)
	assert.Equal(t, int64(500), lr.Chips)
}

func TestHTTPErrorStatuses(t *testing.T) {
	srv, _ := newTestServer(t)

	resp, err := http.Get(srv.URL + "/api/tables/no-such-table/state")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp = postJSON(t, srv.URL+"/api/tables/mesa-1/join", joinRequest{Name: "alice", Chips: 0})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = postJSON(t, srv.URL+"/api/tables/mesa-1/start", struct{}{})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode) // not enough players

	r, err := http.Post(srv.URL+"/api/tables/mesa-1/join", "application/json", strings.NewReader("{not json"))
	require.NoError(t, err)
	r.Body.Close()
	assert.Equal(t, http.StatusBadRequest, r.StatusCode)
}

func TestWebsocketConcurrentBroadcasts(t *testing.T) {
	srv, m := newTestServer(t)

	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http") + "/api/tables/mesa-1/ws"
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err)
	defer conn.Close()

	require.Eventually(t, func() bool {
		return m.Events().SubscriberCount("mesa-1") == 1
	}, time.Second, 10*time.Millisecond)

	// Mutations on different goroutines broadcast concurrently; every
	// frame the subscriber receives must still decode cleanly.
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 5; j++ {
				m.Events().Broadcast("mesa-1", EventGameStateUpdate, nil)
			}
		}()
	}
	wg.Wait()

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	received := 0
	for received < 40 {
		var event Event
		if err := conn.ReadJSON(&event); err != nil {
			break
		}
		assert.Equal(t, EventGameStateUpdate, event.Type)
		assert.Equal(t, "mesa-1", event.Table)
		received++
	}
	assert.Greater(t, received, 0)
}

func TestWebsocketBroadcast(t *testing.T) {
	srv, m := newTestServer(t)

	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http") + "/api/tables/mesa-1/ws"
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err)
	defer conn.Close()

	// Registration happens on the server side of the upgrade; wait for it.
	require.Eventually(t, func() bool {
		return m.Events().SubscriberCount("mesa-1") == 1
	}, time.Second, 10*time.Millisecond)

	_, _, err = m.Join("mesa-1", "alice", 500)
	require.NoError(t, err)

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	var event Event
	require.NoError(t, conn.ReadJSON(&event))
	assert.Equal(t, EventPlayersUpdate, event.Type)
	assert.Equal(t, "mesa-1", event.Table)
}
