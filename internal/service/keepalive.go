package service

import (
	"context"
	"net/http"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
)

// Every 14 minutes: just under the idle window of the usual free-tier
// hosts that sleep the process after 15 minutes without traffic.
const keepaliveSpec = "*/14 * * * *"

// Keepalive pings a URL on a schedule so the process never idles out.
// The ping is a no-op for the application; results are only logged.
type Keepalive struct {
	url  string
	http *http.Client
	cron *cron.Cron
	log  zerolog.Logger
}

func NewKeepalive(url string, log zerolog.Logger) *Keepalive {
	return &Keepalive{
		url:  url,
		http: &http.Client{Timeout: 10 * time.Second},
		cron: cron.New(),
		log:  log,
	}
}

// Start schedules the ping. An empty URL disables the keepalive entirely.
func (k *Keepalive) Start() error {
	if k.url == "" {
		k.log.Debug().Msg("keepalive disabled")
		return nil
	}
	if _, err := k.cron.AddFunc(keepaliveSpec, k.ping); err != nil {
		return err
	}
	k.cron.Start()
	k.log.Info().Str("url", k.url).Str("schedule", keepaliveSpec).Msg("keepalive scheduled")
	return nil
}

func (k *Keepalive) Stop() {
	k.cron.Stop()
}

func (k *Keepalive) ping() {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, k.url, nil)
	if err != nil {
		k.log.Warn().Err(err).Msg("keepalive request")
		return
	}
	resp, err := k.http.Do(req)
	if err != nil {
		k.log.Warn().Err(err).Msg("keepalive ping failed")
		return
	}
	resp.Body.Close()
	k.log.Debug().Int("status", resp.StatusCode).Msg("keepalive ping")
}
