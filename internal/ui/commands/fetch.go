package commands

import (
	"context"
	"errors"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog/log"

	"cropprices/internal/domain"
	"cropprices/internal/eventbus"
	"cropprices/internal/pricing"
	"cropprices/internal/ui/state"
)

// PredictionResultMsg delivers the outcome of the prediction call
type PredictionResultMsg struct {
	Token string
	Value float64
	Err   error
}

// PresentResultMsg delivers the outcome of the present price call
type PresentResultMsg struct {
	Token string
	Value float64
	Err   error
}

// Event converts the message into a reducer event
func (m PredictionResultMsg) Event() state.Event {
	if m.Err != nil {
		return state.PredictionFailed{Token: m.Token, Err: m.Err}
	}
	return state.PredictionSucceeded{Token: m.Token, Value: m.Value}
}

// Event converts the message into a reducer event
func (m PresentResultMsg) Event() state.Event {
	if m.Err != nil {
		return state.PresentFailed{Token: m.Token, Err: m.Err}
	}
	return state.PresentSucceeded{Token: m.Token, Value: m.Value}
}

// Fetcher runs reducer effects against the pricing service. Every selection
// token owns a context that is cancelled when the selection is abandoned.
type Fetcher struct {
	svc      pricing.Service
	bus      eventbus.EventBus
	defaults pricing.Defaults
	now      func() time.Time

	mu       sync.Mutex
	inflight map[string]context.CancelFunc
	ctxs     map[string]context.Context
}

// NewFetcher creates a fetcher. bus may be nil.
func NewFetcher(svc pricing.Service, bus eventbus.EventBus, defaults pricing.Defaults) *Fetcher {
	return &Fetcher{
		svc:      svc,
		bus:      bus,
		defaults: defaults,
		now:      time.Now,
		inflight: make(map[string]context.CancelFunc),
		ctxs:     make(map[string]context.Context),
	}
}

// SetClock overrides the time source used for prediction defaults
func (f *Fetcher) SetClock(now func() time.Time) {
	f.now = now
}

// Run turns effects into commands. It must be called from the Bubble Tea
// update loop so cancellations are registered before any later message.
func (f *Fetcher) Run(effects []state.Effect) tea.Cmd {
	var cmds []tea.Cmd
	for _, eff := range effects {
		switch eff := eff.(type) {
		case state.FetchPrediction:
			cmds = append(cmds, f.predict(eff.Selection))
		case state.FetchPresent:
			cmds = append(cmds, f.present(eff.Selection))
		case state.CancelFetch:
			f.cancel(eff.Selection)
		case state.Diagnose:
			diagnose(eff)
		}
	}
	return tea.Batch(cmds...)
}

// InFlight returns the number of selections with a live context
func (f *Fetcher) InFlight() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.inflight)
}

// CancelAll abandons every running call, used on shutdown
func (f *Fetcher) CancelAll() {
	f.mu.Lock()
	defer f.mu.Unlock()
	for token, cancel := range f.inflight {
		cancel()
		delete(f.inflight, token)
		delete(f.ctxs, token)
	}
}

func (f *Fetcher) predict(sel domain.Selection) tea.Cmd {
	ctx, cancel := context.WithCancel(context.Background())
	f.mu.Lock()
	f.inflight[sel.Token] = cancel
	f.ctxs[sel.Token] = ctx
	f.mu.Unlock()

	params := f.defaults.Params(f.now())
	return func() tea.Msg {
		f.publish(eventbus.PredictionRequestedEvent{Selection: sel, Params: params})

		start := time.Now()
		value, err := f.svc.Predict(ctx, pricing.NewPredictRequest(sel.CropID, params), sel.Token)
		if err != nil {
			f.release(sel.Token)
			f.publish(eventbus.PredictionFailedEvent{Selection: sel, Err: err})
			return PredictionResultMsg{Token: sel.Token, Err: err}
		}

		f.publish(eventbus.PredictionReceivedEvent{Selection: sel, Price: value, Elapsed: time.Since(start)})
		return PredictionResultMsg{Token: sel.Token, Value: value}
	}
}

func (f *Fetcher) present(sel domain.Selection) tea.Cmd {
	f.mu.Lock()
	ctx, ok := f.ctxs[sel.Token]
	f.mu.Unlock()
	if !ok {
		// selection already abandoned
		return nil
	}

	return func() tea.Msg {
		defer f.release(sel.Token)

		start := time.Now()
		value, err := f.svc.PresentPrice(ctx, sel.CropID, sel.Token)
		if err != nil {
			f.publish(eventbus.PresentPriceFailedEvent{Selection: sel, Err: err})
			return PresentResultMsg{Token: sel.Token, Err: err}
		}

		f.publish(eventbus.PresentPriceReceivedEvent{Selection: sel, Price: value, Elapsed: time.Since(start)})
		return PresentResultMsg{Token: sel.Token, Value: value}
	}
}

func (f *Fetcher) cancel(sel domain.Selection) {
	f.mu.Lock()
	cancel, ok := f.inflight[sel.Token]
	delete(f.inflight, sel.Token)
	delete(f.ctxs, sel.Token)
	f.mu.Unlock()

	if ok {
		cancel()
		f.publish(eventbus.SelectionCancelledEvent{Selection: sel})
	}
}

func (f *Fetcher) release(token string) {
	f.mu.Lock()
	cancel, ok := f.inflight[token]
	delete(f.inflight, token)
	delete(f.ctxs, token)
	f.mu.Unlock()

	if ok {
		cancel()
	}
}

func (f *Fetcher) publish(e eventbus.DomainEvent) {
	if f.bus != nil {
		f.bus.Publish(e)
	}
}

func diagnose(d state.Diagnose) {
	ev := log.Warn()
	if pricing.IsTransient(d.Err) && !errors.Is(d.Err, context.Canceled) {
		ev = log.Error()
	}
	ev.Err(d.Err).
		Str("crop", d.Selection.CropID).
		Str("token", d.Selection.Token).
		Str("stage", string(d.Stage)).
		Msg("price fetch failed")
}
