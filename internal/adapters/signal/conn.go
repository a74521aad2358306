package signal

import (
	"sync"
	"time"

	"github.com/dkeye/Doodle/internal/app"
)

// WSConn is an indirection over *websocket.Conn to ease testing.
type WSConn interface {
	ReadMessage() (int, []byte, error)
	WriteMessage(mt int, data []byte) error
	SetReadLimit(limit int64)
	SetReadDeadline(t time.Time) error
	SetWriteDeadline(t time.Time) error
	SetPongHandler(h func(appData string) error)
	Close() error
}

// WsSignalConn buffers outbound frames for the write pump.
type WsSignalConn struct {
	conn WSConn
	send chan []byte

	mu     sync.RWMutex
	closed bool
}

func NewWsSignalConn(conn WSConn, buffer int) *WsSignalConn {
	if buffer <= 0 {
		buffer = 32
	}
	return &WsSignalConn{
		conn: conn,
		send: make(chan []byte, buffer),
	}
}

func (c *WsSignalConn) TrySend(b []byte) error {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.closed {
		return app.ErrConnClosed
	}
	select {
	case c.send <- b:
	default:
		return app.ErrBackpressure
	}
	return nil
}

func (c *WsSignalConn) Close() {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.closed = true
	close(c.send)
	_ = c.conn.Close()
	c.mu.Unlock()
}
