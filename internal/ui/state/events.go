package state

import "cropprices/internal/domain"

// Event is an input to Reduce
type Event interface {
	isEvent()
}

// QueryChanged is sent on every keystroke in the search box
type QueryChanged struct {
	Query string
}

// ItemSelected is the user picking a crop on Listing. Token must be unique
// per pick.
type ItemSelected struct {
	ID    string
	Token string
}

// PredictionSucceeded carries the first call's result
type PredictionSucceeded struct {
	Token string
	Value float64
}

// PredictionFailed carries the first call's failure
type PredictionFailed struct {
	Token string
	Err   error
}

// PresentSucceeded carries the second call's result
type PresentSucceeded struct {
	Token string
	Value float64
}

// PresentFailed carries the second call's failure
type PresentFailed struct {
	Token string
	Err   error
}

// WentBack is the user leaving Detail, or abandoning a pending pick on Listing
type WentBack struct{}

func (QueryChanged) isEvent()        {}
func (ItemSelected) isEvent()        {}
func (PredictionSucceeded) isEvent() {}
func (PredictionFailed) isEvent()    {}
func (PresentSucceeded) isEvent()    {}
func (PresentFailed) isEvent()       {}
func (WentBack) isEvent()            {}

// Effect is work Reduce asks the caller to perform
type Effect interface {
	isEffect()
}

// FetchPrediction starts the first call for a selection
type FetchPrediction struct {
	Selection domain.Selection
}

// FetchPresent starts the second call for a selection
type FetchPresent struct {
	Selection domain.Selection
}

// CancelFetch abandons any call still running for a selection
type CancelFetch struct {
	Selection domain.Selection
}

// Diagnose reports a failed call. It is logged, not shown as an error screen.
type Diagnose struct {
	Selection domain.Selection
	Stage     domain.FetchStage
	Err       error
}

func (FetchPrediction) isEffect() {}
func (FetchPresent) isEffect()    {}
func (CancelFetch) isEffect()     {}
func (Diagnose) isEffect()        {}
