// Package state holds the screen state of the application and the reducer
// that moves it between the listing and detail screens.
package state

import (
	"cropprices/internal/catalog"
	"cropprices/internal/domain"
)

// Screen is which of the two views is active
type Screen int

const (
	ScreenListing Screen = iota
	ScreenDetail
)

func (s Screen) String() string {
	switch s {
	case ScreenListing:
		return "listing"
	case ScreenDetail:
		return "detail"
	default:
		return "unknown"
	}
}

// TrendDirection is the up/down indicator shown next to the predicted price
type TrendDirection string

const (
	TrendUp   TrendDirection = "up"
	TrendDown TrendDirection = "down"
)

// PricePair is the predicted and present price of the selected crop.
// Present stays nil until the second call succeeds.
type PricePair struct {
	Predicted float64
	Present   *float64
}

// Trend compares predicted against present. It is only defined once the
// present price is known.
func (p PricePair) Trend() (TrendDirection, bool) {
	if p.Present == nil {
		return "", false
	}
	if p.Predicted < *p.Present {
		return TrendDown, true
	}
	return TrendUp, true
}

// withPresent returns a copy of p carrying the present price
func (p PricePair) withPresent(v float64) *PricePair {
	return &PricePair{Predicted: p.Predicted, Present: &v}
}

// State is one immutable snapshot of the UI session. Reduce never modifies
// a State it is given; it returns a new one.
type State struct {
	Screen  Screen
	Catalog catalog.Catalog
	Query   string
	Visible []string // Catalog narrowed by Query, in catalog order

	// Pending is the selection waiting on its prediction (still on Listing)
	Pending *domain.Selection
	// Current is the selection shown on Detail
	Current *domain.Selection
	Prices  *PricePair
	// PresentFailed marks that the present price call failed for Current
	PresentFailed bool

	// Notice is a one-line message for the status bar
	Notice string
}

// New returns the initial Listing state for a catalog
func New(c catalog.Catalog) State {
	return State{
		Screen:  ScreenListing,
		Catalog: c,
		Visible: c.Filter(""),
	}
}

// SelectedID returns the crop id on Detail, or "" on Listing
func (s State) SelectedID() string {
	if s.Current == nil {
		return ""
	}
	return s.Current.CropID
}

// IsFetching reports whether a prediction is in flight
func (s State) IsFetching() bool {
	return s.Pending != nil
}

// PresentPending reports whether Detail is still waiting for the present price
func (s State) PresentPending() bool {
	return s.Screen == ScreenDetail && s.Prices != nil && s.Prices.Present == nil && !s.PresentFailed
}
