// Package bridge talks to the local tool bridge over a single websocket and
// correlates responses with requests by id.
package bridge

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

const DefaultTimeout = 10 * time.Second

var (
	ErrConnect          = errors.New("bridge: connection failed")
	ErrTimeout          = errors.New("bridge: request timeout")
	ErrConnectionClosed = errors.New("bridge: connection closed")
	ErrInvalidArguments = errors.New("bridge: invalid tool arguments")
)

type State int

const (
	StateClosed State = iota
	StateConnecting
	StateOpen
)

func (s State) String() string {
	switch s {
	case StateConnecting:
		return "connecting"
	case StateOpen:
		return "open"
	default:
		return "closed"
	}
}

type Options struct {
	URL              string
	Timeout          time.Duration
	HandshakeTimeout time.Duration
	Logger           *log.Logger
}

type result struct {
	resp Response
	err  error
}

// Manager owns at most one live connection. It dials lazily on the first
// Invoke and again after the connection is lost.
type Manager struct {
	url     string
	timeout time.Duration
	dialer  *websocket.Dialer
	logger  *log.Logger
	newID   func() string

	dialMu sync.Mutex

	mu      sync.Mutex
	conn    *websocket.Conn
	state   State
	pending map[string]chan result

	writeMu sync.Mutex
}

func New(opts Options) *Manager {
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}
	if opts.HandshakeTimeout <= 0 {
		opts.HandshakeTimeout = 5 * time.Second
	}
	if opts.Logger == nil {
		opts.Logger = log.New(os.Stderr, "bridge: ", log.LstdFlags)
	}
	return &Manager{
		url:     opts.URL,
		timeout: opts.Timeout,
		dialer:  &websocket.Dialer{HandshakeTimeout: opts.HandshakeTimeout},
		logger:  opts.Logger,
		newID:   uuid.NewString,
		pending: make(map[string]chan result),
	}
}

func (m *Manager) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// Pending returns the number of requests waiting for a response.
func (m *Manager) Pending() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.pending)
}

// Invoke sends call and waits for the response carrying the same request id.
// It fails with ErrConnect when the bridge cannot be reached, ErrTimeout when
// no response arrives in time and ErrConnectionClosed when the connection
// drops while waiting.
func (m *Manager) Invoke(ctx context.Context, call Call) (Response, error) {
	conn, err := m.connect(ctx)
	if err != nil {
		return Response{}, err
	}

	id := m.newID()
	ch := make(chan result, 1)
	m.mu.Lock()
	if m.conn != conn {
		m.mu.Unlock()
		return Response{}, ErrConnectionClosed
	}
	m.pending[id] = ch
	m.mu.Unlock()

	req := Request{Type: frameCallTool, RequestID: id, Params: call}
	if err := m.write(conn, req); err != nil {
		m.forget(id)
		m.drop(conn, err)
		return Response{}, fmt.Errorf("%w: %v", ErrConnectionClosed, err)
	}

	timer := time.NewTimer(m.timeout)
	defer timer.Stop()
	select {
	case r := <-ch:
		return r.resp, r.err
	case <-timer.C:
		m.forget(id)
		return Response{}, ErrTimeout
	case <-ctx.Done():
		m.forget(id)
		return Response{}, ctx.Err()
	}
}

// Close drops the connection and fails every pending request.
func (m *Manager) Close() error {
	m.mu.Lock()
	conn := m.conn
	m.mu.Unlock()
	if conn == nil {
		return nil
	}
	msg := websocket.FormatCloseMessage(websocket.CloseNormalClosure, "")
	_ = conn.WriteControl(websocket.CloseMessage, msg, time.Now().Add(time.Second))
	m.drop(conn, errors.New("closed by client"))
	return nil
}

func (m *Manager) current() *websocket.Conn {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.conn
}

func (m *Manager) connect(ctx context.Context) (*websocket.Conn, error) {
	if c := m.current(); c != nil {
		return c, nil
	}

	m.dialMu.Lock()
	defer m.dialMu.Unlock()
	if c := m.current(); c != nil {
		return c, nil
	}

	m.mu.Lock()
	m.state = StateConnecting
	m.mu.Unlock()

	conn, _, err := m.dialer.DialContext(ctx, m.url, nil)
	if err != nil {
		m.mu.Lock()
		m.state = StateClosed
		m.mu.Unlock()
		return nil, fmt.Errorf("%w: %v", ErrConnect, err)
	}

	m.mu.Lock()
	m.conn = conn
	m.state = StateOpen
	m.mu.Unlock()
	m.logger.Printf("connected to %s", m.url)

	go m.readLoop(conn)
	return conn, nil
}

func (m *Manager) write(conn *websocket.Conn, v any) error {
	m.writeMu.Lock()
	defer m.writeMu.Unlock()
	_ = conn.SetWriteDeadline(time.Now().Add(m.timeout))
	return conn.WriteJSON(v)
}

func (m *Manager) readLoop(conn *websocket.Conn) {
	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			m.drop(conn, err)
			return
		}
		var resp Response
		if err := json.Unmarshal(data, &resp); err != nil {
			m.logger.Printf("skipping malformed frame: %v", err)
			continue
		}
		m.resolve(resp)
	}
}

func (m *Manager) resolve(resp Response) {
	m.mu.Lock()
	ch, ok := m.pending[resp.RequestID]
	if ok {
		delete(m.pending, resp.RequestID)
	}
	m.mu.Unlock()
	if !ok {
		m.logger.Printf("dropping response for unknown request %q", resp.RequestID)
		return
	}
	ch <- result{resp: resp}
}

func (m *Manager) forget(id string) {
	m.mu.Lock()
	delete(m.pending, id)
	m.mu.Unlock()
}

// drop tears down conn if it is still current and rejects everything that
// was waiting on it.
func (m *Manager) drop(conn *websocket.Conn, cause error) {
	m.mu.Lock()
	if m.conn != conn {
		m.mu.Unlock()
		return
	}
	m.conn = nil
	m.state = StateClosed
	pending := m.pending
	m.pending = make(map[string]chan result)
	m.mu.Unlock()

	_ = conn.Close()
	if len(pending) > 0 {
		m.logger.Printf("connection lost, failing %d pending request(s): %v", len(pending), cause)
	}
	for _, ch := range pending {
		ch <- result{err: fmt.Errorf("%w: %v", ErrConnectionClosed, cause)}
	}
}
