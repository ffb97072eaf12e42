package main

import (
	"net/http"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"

	"ig-autoresponder/internal/config"
	httpserver "ig-autoresponder/internal/http"
	"ig-autoresponder/internal/ig"
	"ig-autoresponder/internal/policy"
	"ig-autoresponder/internal/processor"
	"ig-autoresponder/internal/router"
	"ig-autoresponder/internal/service"
)

func newLogger(cfg *config.Config) zerolog.Logger {
	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = zerolog.InfoLevel
	}
	log := zerolog.New(os.Stdout).Level(level).With().Timestamp().Logger()
	if !cfg.IsProd() {
		log = log.Output(zerolog.ConsoleWriter{Out: os.Stdout})
	}
	return log
}

func main() {
	_ = godotenv.Load()
	cfg := config.Load()
	log := newLogger(cfg)

	// Missing secrets are logged, not fatal: first use fails downstream.
	for _, name := range cfg.MissingSecrets() {
		log.Warn().Str("env", name).Msg("missing required secret")
	}

	// Outbound messenger
	client := ig.NewClient(cfg.IGAccessToken, cfg.OutboundTimeout)
	client.APIVersion = cfg.GraphAPIVersion

	// Policy -> handlers -> router
	proc := processor.New(policy.NewKeywordPolicy(), client, cfg.IGAccountID)
	webhook := httpserver.NewWebhookHandler(cfg.IGVerifyToken, cfg.IGAppSecret, router.New(proc), log)

	// HTTP server
	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Recover())

	e.GET("/", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{
			"service": "ig-autoresponder",
			"status":  "running",
		})
	})
	e.GET("/healthz", func(c echo.Context) error { return c.String(http.StatusOK, "ok") })
	e.GET("/webhook", webhook.HandleVerify)
	e.POST("/webhook", webhook.HandleEvents)

	// Keepalive self-ping
	keepalive := service.NewKeepalive(cfg.KeepaliveURL, log)
	if err := keepalive.Start(); err != nil {
		log.Fatal().Err(err).Msg("keepalive")
	}
	defer keepalive.Stop()

	s := &http.Server{
		Addr:              cfg.HTTPAddr,
		ReadHeaderTimeout: 5 * time.Second,
	}
	log.Info().Str("addr", cfg.HTTPAddr).Str("env", cfg.AppEnv).Msg("HTTP listening")
	if err := e.StartServer(s); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}
