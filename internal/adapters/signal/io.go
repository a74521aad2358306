package signal

import (
	"context"
	"encoding/json"
	"time"

	"github.com/dkeye/Doodle/internal/domain"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
)

const writeWait = 5 * time.Second

func (ctl *SignalWSController) pongWait() time.Duration {
	return ctl.Opts.PingPeriod * 10 / 9
}

func (ctl *SignalWSController) writePump(ctx context.Context, sid domain.PlayerID, c *WsSignalConn) {
	ticker := time.NewTicker(ctl.Opts.PingPeriod)
	defer func() {
		ticker.Stop()
		c.Close()
	}()

	for {
		select {
		case <-ctx.Done():
			log.Debug().Str("module", "signal").Str("sid", string(sid)).Msg("writePump ctx done")
			return
		case data, ok := <-c.send:
			if !ok {
				log.Debug().Str("module", "signal").Str("sid", string(sid)).Msg("writePump channel closed")
				return
			}
			if err := c.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
				log.Error().Err(err).Str("module", "signal").Str("sid", string(sid)).Msg("writePump set deadline")
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, data); err != nil {
				log.Error().Err(err).Str("module", "signal").Str("sid", string(sid)).Msg("writePump write error")
				return
			}
		case <-ticker.C:
			if err := c.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
				return
			}
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				log.Debug().Err(err).Str("module", "signal").Str("sid", string(sid)).Msg("ping failed")
				return
			}
		}
	}
}

func (ctl *SignalWSController) readPump(ctx context.Context, cancel context.CancelFunc, sid domain.PlayerID, c *WsSignalConn) {
	defer func() {
		log.Info().Str("module", "signal").Str("sid", string(sid)).Msg("readPump closing")
		cancel()
		c.Close()
		ctl.limiter.Forget(sid)
		ctl.Gateway.OnDisconnect(sid)
	}()

	if ctl.Opts.ReadLimit > 0 {
		c.conn.SetReadLimit(ctl.Opts.ReadLimit)
	}
	_ = c.conn.SetReadDeadline(time.Now().Add(ctl.pongWait()))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(ctl.pongWait()))
	})

	for {
		select {
		case <-ctx.Done():
			log.Debug().Str("module", "signal").Str("sid", string(sid)).Msg("readPump ctx done")
			return
		default:
			_, data, err := c.conn.ReadMessage()
			if err != nil {
				if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
					log.Warn().Err(err).Str("module", "signal").Str("sid", string(sid)).Msg("readPump read error")
				}
				return
			}
			if !ctl.limiter.Allow(sid) {
				log.Debug().Str("module", "signal").Str("sid", string(sid)).Msg("rate limited, message dropped")
				continue
			}
			ctl.handleSignal(sid, c, data)
		}
	}
}

func (ctl *SignalWSController) handleSignal(sid domain.PlayerID, c *WsSignalConn, data []byte) {
	env, err := parseEnvelope(data)
	if err != nil {
		log.Warn().Err(err).Str("module", "signal").Str("sid", string(sid)).Msg("bad json")
		return
	}
	if env.Type == typePing {
		ctl.sendJSON(c, struct {
			Type string `json:"type"`
		}{Type: "pong"})
		return
	}

	code, ev, err := env.event()
	if err != nil {
		log.Warn().Err(err).Str("module", "signal").Str("sid", string(sid)).Msg("message dropped")
		return
	}
	ctl.Gateway.OnEvent(sid, code, ev)
}

func (ctl *SignalWSController) sendJSON(c *WsSignalConn, v any) {
	b, err := json.Marshal(v)
	if err != nil {
		log.Error().Err(err).Str("module", "signal").Msg("sendJSON marshal")
		return
	}
	_ = c.TrySend(b)
}
