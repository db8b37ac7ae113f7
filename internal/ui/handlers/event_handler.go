package handlers

import (
	"sync"
	"time"

	"github.com/rs/zerolog"

	"cropprices/internal/eventbus"
)

// Stats counts fetch lifecycle events seen on the bus
type Stats struct {
	PredictionsRequested int
	PredictionsReceived  int
	PredictionsFailed    int
	PresentReceived      int
	PresentFailed        int
	Cancelled            int
	LastPredictLatency   time.Duration
	LastPresentLatency   time.Duration
}

// EventHandler is the diagnostic sink for fetch lifecycle events. It logs
// every event and keeps running totals.
type EventHandler struct {
	logger zerolog.Logger

	mu    sync.Mutex
	stats Stats

	unsubscribe []func()
}

// NewEventHandler creates a new event handler
func NewEventHandler(logger zerolog.Logger) *EventHandler {
	return &EventHandler{logger: logger}
}

// Attach subscribes the handler to every lifecycle event on bus
func (h *EventHandler) Attach(bus eventbus.EventBus) {
	for _, et := range []eventbus.EventType{
		eventbus.EventPredictionRequested,
		eventbus.EventPredictionReceived,
		eventbus.EventPredictionFailed,
		eventbus.EventPresentPriceReceived,
		eventbus.EventPresentPriceFailed,
		eventbus.EventSelectionCancelled,
	} {
		h.unsubscribe = append(h.unsubscribe, bus.Subscribe(et, h.HandleEvent))
	}
}

// Detach drops every subscription made by Attach
func (h *EventHandler) Detach() {
	for _, unsub := range h.unsubscribe {
		unsub()
	}
	h.unsubscribe = nil
}

// HandleEvent records one event
func (h *EventHandler) HandleEvent(event eventbus.DomainEvent) {
	h.mu.Lock()
	defer h.mu.Unlock()

	switch e := event.(type) {
	case eventbus.PredictionRequestedEvent:
		h.stats.PredictionsRequested++
		h.logger.Debug().
			Str("crop", e.Selection.CropID).
			Str("token", e.Selection.Token).
			Int("year", e.Params.Year).
			Int("month", e.Params.Month).
			Msg("prediction requested")

	case eventbus.PredictionReceivedEvent:
		h.stats.PredictionsReceived++
		h.stats.LastPredictLatency = e.Elapsed
		h.logger.Info().
			Str("crop", e.Selection.CropID).
			Str("token", e.Selection.Token).
			Float64("price", e.Price).
			Dur("elapsed", e.Elapsed).
			Msg("prediction received")

	case eventbus.PredictionFailedEvent:
		h.stats.PredictionsFailed++
		h.logger.Warn().
			Err(e.Err).
			Str("crop", e.Selection.CropID).
			Str("token", e.Selection.Token).
			Msg("prediction failed")

	case eventbus.PresentPriceReceivedEvent:
		h.stats.PresentReceived++
		h.stats.LastPresentLatency = e.Elapsed
		h.logger.Info().
			Str("crop", e.Selection.CropID).
			Str("token", e.Selection.Token).
			Float64("price", e.Price).
			Dur("elapsed", e.Elapsed).
			Msg("present price received")

	case eventbus.PresentPriceFailedEvent:
		h.stats.PresentFailed++
		h.logger.Warn().
			Err(e.Err).
			Str("crop", e.Selection.CropID).
			Str("token", e.Selection.Token).
			Msg("present price failed")

	case eventbus.SelectionCancelledEvent:
		h.stats.Cancelled++
		h.logger.Debug().
			Str("crop", e.Selection.CropID).
			Str("token", e.Selection.Token).
			Msg("selection cancelled")
	}
}

// Stats returns a copy of the running totals
func (h *EventHandler) Stats() Stats {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.stats
}
