package httpserver

import (
	"context"
	"encoding/json"
	"io"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"ig-autoresponder/internal/router"
	"ig-autoresponder/internal/types"
)

// Meta batches up to 1000 updates per delivery; 1 MB is plenty.
const maxBodySize = 1 << 20

// ackBody is what the platform expects back for every signed delivery,
// regardless of handler outcomes.
const ackBody = "EVENT_RECEIVED"

// Dispatcher fans a verified envelope out to the event handlers.
type Dispatcher interface {
	Dispatch(ctx context.Context, ev *types.InboundEvent) router.Stats
}

type WebhookHandler struct {
	verifyToken string
	appSecret   string
	dispatcher  Dispatcher
	log         zerolog.Logger
}

func NewWebhookHandler(verifyToken, appSecret string, d Dispatcher, log zerolog.Logger) *WebhookHandler {
	return &WebhookHandler{
		verifyToken: verifyToken,
		appSecret:   appSecret,
		dispatcher:  d,
		log:         log,
	}
}

// HandleVerify answers the subscription handshake:
// GET /webhook?hub.mode=subscribe&hub.verify_token=...&hub.challenge=...
// echoes the raw challenge on a token match, 403 otherwise.
func (h *WebhookHandler) HandleVerify(c echo.Context) error {
	mode := c.QueryParam("hub.mode")
	token := c.QueryParam("hub.verify_token")
	challenge := c.QueryParam("hub.challenge")

	if mode == "subscribe" && token == h.verifyToken {
		h.log.Info().Msg("webhook subscription verified")
		return c.String(http.StatusOK, challenge)
	}
	h.log.Warn().Str("mode", mode).Msg("webhook verification rejected")
	return c.NoContent(http.StatusForbidden)
}

// HandleEvents receives POSTed event deliveries. The signature is checked
// against the raw body before any parsing; once it passes, the platform
// always gets a 200 ack no matter what the handlers do.
func (h *WebhookHandler) HandleEvents(c echo.Context) error {
	body, err := io.ReadAll(io.LimitReader(c.Request().Body, maxBodySize))
	if err != nil {
		return c.NoContent(http.StatusBadRequest)
	}

	sig := c.Request().Header.Get("X-Hub-Signature-256")
	if !VerifySignature(h.appSecret, body, sig) {
		h.log.Warn().Msg("webhook signature mismatch")
		return c.NoContent(http.StatusForbidden)
	}

	log := h.log.With().Str("delivery_id", uuid.NewString()).Logger()

	var ev types.InboundEvent
	if err := json.Unmarshal(body, &ev); err != nil {
		// Signed but unparseable: ack anyway so the platform doesn't
		// retry-storm us.
		log.Error().Err(err).Msg("parse webhook payload")
		return c.String(http.StatusOK, ackBody)
	}

	ctx := log.WithContext(c.Request().Context())
	st := h.dispatcher.Dispatch(ctx, &ev)
	log.Info().
		Str("object", ev.Object).
		Int("handled", st.Handled).
		Int("failed", st.Failed).
		Msg("webhook dispatched")

	return c.String(http.StatusOK, ackBody)
}
