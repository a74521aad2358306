package signal

import (
	"context"
	"net/http"
	"time"

	"github.com/dkeye/Doodle/internal/app"
	"github.com/dkeye/Doodle/internal/core"
	"github.com/dkeye/Doodle/internal/domain"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
)

// Gateway receives connection lifecycle and decoded game events.
type Gateway interface {
	Connect(sid domain.PlayerID, conn app.Conn, cancel context.CancelFunc)
	OnEvent(sid domain.PlayerID, code domain.RoomCode, ev core.Event)
	OnDisconnect(sid domain.PlayerID)
}

type Options struct {
	AllowedOrigin string
	ReadLimit     int64
	PingPeriod    time.Duration
	SendBuffer    int
	RateLimit     float64
	RateBurst     int
}

type SignalWSController struct {
	Gateway  Gateway
	Opts     Options
	limiter  *RateLimiter
	upgrader websocket.Upgrader
}

func NewSignalWSController(gw Gateway, opts Options) *SignalWSController {
	if opts.PingPeriod <= 0 {
		opts.PingPeriod = 54 * time.Second
	}
	ctl := &SignalWSController{
		Gateway: gw,
		Opts:    opts,
		limiter: NewRateLimiter(opts.RateLimit, opts.RateBurst),
	}
	ctl.upgrader = websocket.Upgrader{CheckOrigin: ctl.checkOrigin}
	return ctl
}

// checkOrigin accepts requests without an Origin header (non-browser clients), any
// origin when "*" is configured, and otherwise only the configured one.
func (ctl *SignalWSController) checkOrigin(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	if origin == "" || ctl.Opts.AllowedOrigin == "*" {
		return true
	}
	return origin == ctl.Opts.AllowedOrigin
}

func (ctl *SignalWSController) HandleSignal(ctx context.Context, c *gin.Context) {
	ws, err := ctl.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Error().Err(err).Str("module", "signal").Msg("ws upgrade")
		return
	}
	sid := domain.PlayerID(uuid.NewString())
	log.Info().Str("module", "signal").Str("sid", string(sid)).Str("client", c.GetString("client_token")).Msg("new WS connection")
	ctl.Serve(ctx, sid, ws)
}

// Serve registers the connection with the gateway and starts its pumps.
func (ctl *SignalWSController) Serve(ctx context.Context, sid domain.PlayerID, ws WSConn) {
	conn := NewWsSignalConn(ws, ctl.Opts.SendBuffer)
	ctx, cancel := context.WithCancel(ctx)
	ctl.Gateway.Connect(sid, conn, cancel)

	go ctl.writePump(ctx, sid, conn)
	go ctl.readPump(ctx, cancel, sid, conn)
}
