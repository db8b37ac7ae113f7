package domain

import "time"

// EventType represents the type of domain event
type EventType string

// Event types
const (
	EventPredictionRequested  EventType = "PredictionRequested"
	EventPredictionReceived   EventType = "PredictionReceived"
	EventPredictionFailed     EventType = "PredictionFailed"
	EventPresentPriceReceived EventType = "PresentPriceReceived"
	EventPresentPriceFailed   EventType = "PresentPriceFailed"
	EventSelectionCancelled   EventType = "SelectionCancelled"
)

// DomainEvent is the interface for all domain events
type DomainEvent interface {
	Type() EventType
}

// PredictionRequestedEvent is emitted when the prediction call is issued
type PredictionRequestedEvent struct {
	Selection Selection
	Params    PredictParams
}

func (e PredictionRequestedEvent) Type() EventType { return EventPredictionRequested }

// PredictionReceivedEvent is emitted when the prediction call succeeds
type PredictionReceivedEvent struct {
	Selection Selection
	Price     float64
	Elapsed   time.Duration
}

func (e PredictionReceivedEvent) Type() EventType { return EventPredictionReceived }

// PredictionFailedEvent is emitted when the prediction call fails for any reason
type PredictionFailedEvent struct {
	Selection Selection
	Err       error
}

func (e PredictionFailedEvent) Type() EventType { return EventPredictionFailed }

// PresentPriceReceivedEvent is emitted when the present price call succeeds
type PresentPriceReceivedEvent struct {
	Selection Selection
	Price     float64
	Elapsed   time.Duration
}

func (e PresentPriceReceivedEvent) Type() EventType { return EventPresentPriceReceived }

// PresentPriceFailedEvent is emitted when the present price call fails
type PresentPriceFailedEvent struct {
	Selection Selection
	Err       error
}

func (e PresentPriceFailedEvent) Type() EventType { return EventPresentPriceFailed }

// SelectionCancelledEvent is emitted when in-flight calls for a selection are abandoned
type SelectionCancelledEvent struct {
	Selection Selection
}

func (e SelectionCancelledEvent) Type() EventType { return EventSelectionCancelled }
