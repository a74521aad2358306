package app

import (
	"sync"

	"github.com/dkeye/Doodle/internal/core"
	"github.com/dkeye/Doodle/internal/domain"
	"github.com/stretchr/testify/mock"
)

// --- Conn ---

type MockConn struct {
	mock.Mock
}

func (m *MockConn) TrySend(b []byte) error {
	args := m.Called(b)
	return args.Error(0)
}

func (m *MockConn) Close() {
	m.Called()
}

// --- Rooms ---

type MockRooms struct {
	mock.Mock
}

func (m *MockRooms) Dispatch(code domain.RoomCode, env core.Envelope, create bool) bool {
	args := m.Called(code, env, create)
	return args.Bool(0)
}

// bufConn keeps every frame it accepts.
type bufConn struct {
	mu     sync.Mutex
	frames [][]byte
	err    error
}

func (c *bufConn) TrySend(b []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.err != nil {
		return c.err
	}
	c.frames = append(c.frames, b)
	return nil
}

func (c *bufConn) Close() {}

func (c *bufConn) received() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]string, len(c.frames))
	for i, f := range c.frames {
		out[i] = string(f)
	}
	return out
}
