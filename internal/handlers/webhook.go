package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"relay/internal/alpaca"
	"relay/internal/metrics"
	"relay/internal/models"
	"relay/internal/orders"
)

// OrderPlacer submits an order to the broker
type OrderPlacer interface {
	PlaceOrder(ctx context.Context, order *alpaca.OrderRequest) error
}

// WebhookRecorder receives per-signal outcomes for metrics
type WebhookRecorder interface {
	RecordWebhook(outcome string)
	RecordBrokerCall(outcome string, seconds float64)
}

// WebhookHandlers relays trading signals to the broker
type WebhookHandlers struct {
	placer   OrderPlacer
	recorder WebhookRecorder
	logger   zerolog.Logger
}

// NewWebhookHandlers creates webhook handlers. recorder may be nil.
func NewWebhookHandlers(placer OrderPlacer, recorder WebhookRecorder, logger zerolog.Logger) *WebhookHandlers {
	if recorder == nil {
		recorder = nopRecorder{}
	}
	return &WebhookHandlers{
		placer:   placer,
		recorder: recorder,
		logger:   logger,
	}
}

// HandleWebhook handles POST /webhook
func (h *WebhookHandlers) HandleWebhook() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetString("request_id")

		// Signal providers do not reliably send a JSON content type, so the
		// body is decoded as JSON unconditionally.
		body, err := c.GetRawData()
		var req models.WebhookRequest
		if err == nil {
			req, err = models.DecodeWebhookRequest(body)
		}
		if err != nil {
			h.logger.Warn().
				Err(err).
				Str("request_id", requestID).
				Str("remote_addr", c.ClientIP()).
				Msg("Failed to decode webhook body")
			h.recorder.RecordWebhook(metrics.OutcomeMalformed)
			c.String(http.StatusBadRequest, models.MessageInvalidRequest)
			return
		}

		h.logger.Info().
			Str("request_id", requestID).
			Str("action", req.Action).
			Str("ticker", req.Ticker).
			Str("price", req.Price).
			Msg("Received webhook")

		order, err := orders.Translate(req)
		if err != nil {
			h.logger.Error().
				Str("request_id", requestID).
				Str("action", req.Action).
				Msg("Invalid action")
			h.recorder.RecordWebhook(metrics.OutcomeInvalidAction)
			c.String(http.StatusBadRequest, models.MessageInvalidAction)
			return
		}

		event := h.logger.Debug().Str("request_id", requestID).Str("symbol", order.Symbol)
		if notional, ok := orders.Notional(order); ok {
			event = event.Str("notional", notional.String())
		}
		event.Msg("Translated webhook to order")

		// A dropped caller must not abort an order that is already in flight.
		ctx := context.WithoutCancel(c.Request.Context())

		start := time.Now()
		err = h.placer.PlaceOrder(ctx, order)
		elapsed := time.Since(start)

		if err != nil {
			outcome := metrics.OutcomeError
			logEvent := h.logger.Error().
				Err(err).
				Str("request_id", requestID).
				Str("symbol", order.Symbol).
				Str("side", string(order.Side)).
				Dur("duration", elapsed)
			if apiErr, ok := alpaca.AsAPIError(err); ok {
				outcome = metrics.OutcomeRejected
				logEvent = logEvent.Int("status", apiErr.StatusCode).Int("broker_code", apiErr.Code)
			}
			logEvent.Msg("Failed to place order")

			h.recorder.RecordBrokerCall(outcome, elapsed.Seconds())
			h.recorder.RecordWebhook(outcome)
			c.String(http.StatusInternalServerError, models.MessageOrderFailed)
			return
		}

		h.logger.Info().
			Str("request_id", requestID).
			Str("ticker", req.Ticker).
			Str("symbol", order.Symbol).
			Str("side", string(order.Side)).
			Dur("duration", elapsed).
			Msg("Order placed successfully")

		h.recorder.RecordBrokerCall(metrics.OutcomePlaced, elapsed.Seconds())
		h.recorder.RecordWebhook(metrics.OutcomePlaced)
		c.String(http.StatusOK, models.MessageOrderPlaced)
	}
}

type nopRecorder struct{}

func (nopRecorder) RecordWebhook(string)             {}
func (nopRecorder) RecordBrokerCall(string, float64) {}
