package http

import (
	"context"
	"net/http"
	"path/filepath"

	"github.com/dkeye/Doodle/internal/adapters/signal"
	"github.com/dkeye/Doodle/internal/catalog"
	"github.com/dkeye/Doodle/internal/config"
	"github.com/dkeye/Doodle/internal/domain"
	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

const clientTokenKey = "client_token"

// RoomLister is the read side of the room registry.
type RoomLister interface {
	List() []domain.RoomInfo
	Get(code domain.RoomCode) (domain.RoomInfo, bool)
}

type WordStats interface {
	Stats() (catalog, used, resets int)
}

type Deps struct {
	Rooms  RoomLister
	Words  WordStats
	Boards []string
	Signal *signal.SignalWSController
}

// ClientTokenMiddleware keeps a long-lived random token in the cookie session. It only
// correlates log lines of the same browser; game identity is per connection.
func ClientTokenMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		sess := sessions.Default(c)
		token, _ := sess.Get(clientTokenKey).(string)
		if token == "" {
			token = uuid.NewString()
			sess.Set(clientTokenKey, token)
			if err := sess.Save(); err != nil {
				log.Warn().Err(err).Str("module", "adapters.http").Msg("session save")
			}
		}
		c.Set(clientTokenKey, token)
		c.Next()
	}
}

func corsConfig(origin string) cors.Config {
	cfg := cors.Config{
		AllowMethods: []string{"GET", "OPTIONS"},
		AllowHeaders: []string{
			"Content-Type",
			"Upgrade",
			"Connection",
			"Sec-WebSocket-Key",
			"Sec-WebSocket-Version",
			"Sec-WebSocket-Extensions",
			"Sec-WebSocket-Protocol",
		},
	}
	if origin == "" || origin == "*" {
		cfg.AllowAllOrigins = true
		return cfg
	}
	cfg.AllowOrigins = []string{origin}
	cfg.AllowCredentials = true
	return cfg
}

func SetupRouter(ctx context.Context, cfg *config.Config, deps Deps) *gin.Engine {
	if cfg.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	if cfg.Mode == "debug" {
		r.Use(gin.Logger())
	}
	r.Use(gin.Recovery())
	r.Use(cors.New(corsConfig(cfg.AllowedOrigin)))

	store := cookie.NewStore([]byte(cfg.Secret))
	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   3600 * 24 * 7,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	r.Use(sessions.Sessions("DoodleSessions", store))
	r.Use(ClientTokenMiddleware())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	r.Static("/static", cfg.StaticPath)
	r.GET("/", func(c *gin.Context) {
		c.File(filepath.Join(cfg.StaticPath, "index.html"))
	})

	r.GET("/boards/:name", func(c *gin.Context) {
		name := c.Param("name")
		if !catalog.IsBoard(deps.Boards, name) {
			c.JSON(http.StatusNotFound, gin.H{"error": "board not found"})
			return
		}
		c.File(filepath.Join(cfg.BoardsPath, name))
	})

	log.Info().Str("module", "adapters.http").Str("static", cfg.StaticPath).Int("boards", len(deps.Boards)).Msg("router setup")

	api := r.Group("/api")

	api.GET("/rooms", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"rooms": deps.Rooms.List()})
	})

	api.GET("/rooms/:code", func(c *gin.Context) {
		info, ok := deps.Rooms.Get(domain.RoomCode(c.Param("code")))
		if !ok {
			c.JSON(http.StatusNotFound, gin.H{"error": "room not found"})
			return
		}
		c.JSON(http.StatusOK, info)
	})

	api.GET("/boards", func(c *gin.Context) {
		boards := deps.Boards
		if boards == nil {
			boards = []string{}
		}
		c.JSON(http.StatusOK, gin.H{"boards": boards})
	})

	api.GET("/stats", func(c *gin.Context) {
		size, used, resets := deps.Words.Stats()
		c.JSON(http.StatusOK, gin.H{
			"rooms": len(deps.Rooms.List()),
			"words": gin.H{"catalog": size, "used": used, "resets": resets},
		})
	})

	r.GET("/ws", func(c *gin.Context) {
		log.Debug().Str("module", "adapters.http").Str("client", c.GetString(clientTokenKey)).Msg("ws endpoint hit")
		deps.Signal.HandleSignal(ctx, c)
	})

	return r
}
