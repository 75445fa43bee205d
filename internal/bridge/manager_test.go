package bridge

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeBridge runs handle once per accepted connection; n is the 1-based
// connection number.
type fakeBridge struct {
	srv   *httptest.Server
	conns atomic.Int32
}

func newFakeBridge(t *testing.T, handle func(n int32, conn *websocket.Conn)) *fakeBridge {
	t.Helper()
	fb := &fakeBridge{}
	upgrader := websocket.Upgrader{}
	fb.srv = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		defer conn.Close()
		handle(fb.conns.Add(1), conn)
	}))
	t.Cleanup(fb.srv.Close)
	return fb
}

func (fb *fakeBridge) url() string {
	return "ws" + strings.TrimPrefix(fb.srv.URL, "http")
}

func readRequest(conn *websocket.Conn) (Request, error) {
	var req Request
	err := conn.ReadJSON(&req)
	return req, err
}

func reply(conn *websocket.Conn, req Request, text string, isErr bool) error {
	return conn.WriteJSON(Response{
		RequestID: req.RequestID,
		Content:   []Content{{Type: "text", Text: text}},
		IsError:   isErr,
	})
}

// echo answers every request with its tool name.
func echo(_ int32, conn *websocket.Conn) {
	for {
		req, err := readRequest(conn)
		if err != nil {
			return
		}
		if err := reply(conn, req, req.Params.ToolName, false); err != nil {
			return
		}
	}
}

func newTestManager(url string, timeout time.Duration) *Manager {
	return New(Options{URL: url, Timeout: timeout, Logger: log.New(io.Discard, "", 0)})
}

func call(tool string) Call {
	return Call{ServerName: "google", ToolName: tool, Arguments: json.RawMessage(`{}`)}
}

func TestInvokeRoundTrip(t *testing.T) {
	received := make(chan Request, 1)
	fb := newFakeBridge(t, func(_ int32, conn *websocket.Conn) {
		req, err := readRequest(conn)
		if err != nil {
			return
		}
		received <- req
		_ = reply(conn, req, "synced", false)
		_, _, _ = conn.ReadMessage()
	})
	m := newTestManager(fb.url(), time.Second)
	defer m.Close()

	assert.Equal(t, StateClosed, m.State())

	resp, err := m.Invoke(context.Background(), Call{
		ServerName: "google",
		ToolName:   "sync_calendar",
		Arguments:  json.RawMessage(`{"schedules":[]}`),
	})
	require.NoError(t, err)
	assert.Equal(t, "synced", resp.Text())
	assert.False(t, resp.IsError)
	assert.Equal(t, StateOpen, m.State())
	assert.Zero(t, m.Pending())

	got := <-received
	assert.Equal(t, "call_tool", got.Type)
	assert.NotEmpty(t, got.RequestID)
	assert.Equal(t, "google", got.Params.ServerName)
	assert.Equal(t, "sync_calendar", got.Params.ToolName)
	assert.JSONEq(t, `{"schedules":[]}`, string(got.Params.Arguments))
}

func TestInvokeOutOfOrderResponses(t *testing.T) {
	fb := newFakeBridge(t, func(_ int32, conn *websocket.Conn) {
		first, err := readRequest(conn)
		if err != nil {
			return
		}
		second, err := readRequest(conn)
		if err != nil {
			return
		}
		// answer in reverse order
		_ = reply(conn, second, second.Params.ToolName, false)
		_ = reply(conn, first, first.Params.ToolName, false)
		_, _, _ = conn.ReadMessage()
	})
	m := newTestManager(fb.url(), 2*time.Second)
	defer m.Close()

	tools := []string{"a", "b"}
	results := make([]string, len(tools))
	errs := make([]error, len(tools))
	var wg sync.WaitGroup
	for i, tool := range tools {
		wg.Add(1)
		go func() {
			defer wg.Done()
			resp, err := m.Invoke(context.Background(), call(tool))
			results[i], errs[i] = resp.Text(), err
		}()
	}
	wg.Wait()

	for i := range tools {
		require.NoError(t, errs[i])
		assert.Equal(t, tools[i], results[i])
	}
	assert.Equal(t, int32(1), fb.conns.Load())
}

func TestInvokeTimeoutRemovesPending(t *testing.T) {
	fb := newFakeBridge(t, func(_ int32, conn *websocket.Conn) {
		for {
			if _, err := readRequest(conn); err != nil {
				return
			}
		}
	})
	m := newTestManager(fb.url(), 50*time.Millisecond)
	defer m.Close()

	for i := 0; i < 5; i++ {
		_, err := m.Invoke(context.Background(), call("slow"))
		require.ErrorIs(t, err, ErrTimeout)
		assert.Zero(t, m.Pending())
	}
	assert.Equal(t, StateOpen, m.State(), "a timeout does not drop the connection")
}

func TestInvokeConnectFailure(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	srv.Close()

	m := newTestManager(url, 5*time.Second)
	start := time.Now()
	_, err := m.Invoke(context.Background(), call("x"))
	require.ErrorIs(t, err, ErrConnect)
	assert.Less(t, time.Since(start), 5*time.Second)
	assert.Equal(t, StateClosed, m.State())
	assert.Zero(t, m.Pending())
}

func TestConnectionLossRejectsPendingAndReconnects(t *testing.T) {
	fb := newFakeBridge(t, func(n int32, conn *websocket.Conn) {
		if n == 1 {
			_, _ = readRequest(conn)
			return // drop without answering
		}
		echo(n, conn)
	})
	m := newTestManager(fb.url(), 5*time.Second)
	defer m.Close()

	start := time.Now()
	_, err := m.Invoke(context.Background(), call("lost"))
	require.ErrorIs(t, err, ErrConnectionClosed)
	assert.Less(t, time.Since(start), 2*time.Second, "must not wait for the timeout")
	assert.Zero(t, m.Pending())

	require.Eventually(t, func() bool { return m.State() == StateClosed }, time.Second, 10*time.Millisecond)

	resp, err := m.Invoke(context.Background(), call("again"))
	require.NoError(t, err)
	assert.Equal(t, "again", resp.Text())
	assert.Equal(t, int32(2), fb.conns.Load())
}

func TestUnknownAndMalformedFramesAreDropped(t *testing.T) {
	fb := newFakeBridge(t, func(_ int32, conn *websocket.Conn) {
		req, err := readRequest(conn)
		if err != nil {
			return
		}
		_ = conn.WriteJSON(Response{RequestID: "someone-else", Content: []Content{{Type: "text", Text: "wrong"}}})
		_ = conn.WriteMessage(websocket.TextMessage, []byte("not json"))
		_ = reply(conn, req, "right", false)
		_, _, _ = conn.ReadMessage()
	})
	m := newTestManager(fb.url(), time.Second)
	defer m.Close()

	resp, err := m.Invoke(context.Background(), call("x"))
	require.NoError(t, err)
	assert.Equal(t, "right", resp.Text())
}

func TestToolErrorIsAResponse(t *testing.T) {
	fb := newFakeBridge(t, func(_ int32, conn *websocket.Conn) {
		req, err := readRequest(conn)
		if err != nil {
			return
		}
		_ = reply(conn, req, "quota exceeded", true)
		_, _, _ = conn.ReadMessage()
	})
	m := newTestManager(fb.url(), time.Second)
	defer m.Close()

	resp, err := m.Invoke(context.Background(), call("x"))
	require.NoError(t, err)
	assert.True(t, resp.IsError)
	assert.Equal(t, "quota exceeded", resp.Text())
}

func TestConcurrentInvokesShareOneConnection(t *testing.T) {
	fb := newFakeBridge(t, echo)
	m := newTestManager(fb.url(), 2*time.Second)
	defer m.Close()

	var wg sync.WaitGroup
	var failures atomic.Int32
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := m.Invoke(context.Background(), call("x")); err != nil {
				failures.Add(1)
			}
		}()
	}
	wg.Wait()

	assert.Zero(t, failures.Load())
	assert.Equal(t, int32(1), fb.conns.Load())
	assert.Zero(t, m.Pending())
}

func TestInvokeContextCancel(t *testing.T) {
	fb := newFakeBridge(t, func(_ int32, conn *websocket.Conn) {
		for {
			if _, err := readRequest(conn); err != nil {
				return
			}
		}
	})
	m := newTestManager(fb.url(), 5*time.Second)
	defer m.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Millisecond)
	defer cancel()
	_, err := m.Invoke(ctx, call("x"))
	require.True(t, errors.Is(err, context.DeadlineExceeded))
	assert.Zero(t, m.Pending())
}

func TestCloseFailsPending(t *testing.T) {
	fb := newFakeBridge(t, func(_ int32, conn *websocket.Conn) {
		for {
			if _, err := readRequest(conn); err != nil {
				return
			}
		}
	})
	m := newTestManager(fb.url(), 5*time.Second)

	done := make(chan error, 1)
	go func() {
		_, err := m.Invoke(context.Background(), call("x"))
		done <- err
	}()
	require.Eventually(t, func() bool { return m.Pending() == 1 }, time.Second, 5*time.Millisecond)

	require.NoError(t, m.Close())
	select {
	case err := <-done:
		assert.ErrorIs(t, err, ErrConnectionClosed)
	case <-time.After(2 * time.Second):
		t.Fatal("pending request was not rejected on close")
	}
	assert.Equal(t, StateClosed, m.State())
}
