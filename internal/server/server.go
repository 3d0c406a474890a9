package server

import (
	"context"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	nrecho "github.com/newrelic/go-agent/v3/integrations/nrecho-v4"
	"github.com/newrelic/go-agent/v3/newrelic"
	"github.com/rs/zerolog"

	"github.com/callvault/callvault/internal/audio"
	"github.com/callvault/callvault/internal/config"
	"github.com/callvault/callvault/internal/handler"
	"github.com/callvault/callvault/internal/harvest"
	"github.com/callvault/callvault/internal/session"
	"github.com/callvault/callvault/internal/storage"
)

// Server holds the Echo app and dependencies.
type Server struct {
	Echo   *echo.Echo
	Config *config.Config
}

// New builds the Echo server and registers routes. recordings backs the
// harvest/recording endpoints; talkdesk backs the tag-query endpoints.
func New(cfg *config.Config, log zerolog.Logger, recordings *storage.Container, talkdesk *storage.Container) *Server {
	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Recover(), middleware.Logger())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     cfg.Server.CORSAllowedOrigins,
		AllowCredentials: true,
	}))

	if cfg.Observability != nil && cfg.Observability.Enabled {
		app, err := newrelic.NewApplication(
			newrelic.ConfigAppName(cfg.Observability.ServiceName),
			newrelic.ConfigLicense(cfg.Observability.LicenseKey),
		)
		if err != nil {
			log.Warn().Err(err).Msg("new relic init failed, continuing without instrumentation")
		} else {
			e.Use(nrecho.Middleware(app))
		}
	}

	e.Server.ReadTimeout = time.Duration(cfg.Server.ReadTimeout) * time.Second
	e.Server.WriteTimeout = time.Duration(cfg.Server.WriteTimeout) * time.Second
	e.Server.IdleTimeout = time.Duration(cfg.Server.IdleTimeout) * time.Second

	h := &handler.Handler{
		Engine:     harvest.NewEngine(recordings, log, cfg.Harvest.MaxRecords),
		Sessions:   session.NewStore(),
		Recordings: recordings,
		Talkdesk:   talkdesk,
		Transcoder: audio.NewTranscoder(cfg.Audio.FFmpegPath),
		Log:        log,
	}

	e.GET("/metadata", h.Metadata)
	e.GET("/filter", h.Filter)
	e.GET("/recording", h.Recording)
	e.GET("/talkdesk/metadata", h.TalkdeskMetadata)
	e.GET("/talkdesk/recording", h.TalkdeskRecording)
	e.GET("/delete_session", h.DeleteSession)
	e.GET("/debug/all", h.DebugAll)

	return &Server{Echo: e, Config: cfg}
}

// Start starts the HTTP server. Blocks until the context is cancelled or the
// server fails. On context cancel, Shutdown is called.
func (s *Server) Start(ctx context.Context) error {
	go func() {
		<-ctx.Done()
		_ = s.Shutdown(context.Background())
	}()
	addr := ":" + s.Config.Server.Port
	return s.Echo.Start(addr)
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.Echo.Shutdown(ctx)
}
