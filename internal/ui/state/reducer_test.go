package state

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cropprices/internal/catalog"
	"cropprices/internal/domain"
)

var errStatus500 = errors.New("/predict: status 500")

func newState() State {
	return New(catalog.New([]string{"carrot", "tomato", "cucumber"}))
}

// run feeds events through Reduce and collects every effect
func run(s State, events ...Event) (State, []Effect) {
	var all []Effect
	for _, ev := range events {
		var effects []Effect
		s, effects = Reduce(s, ev)
		all = append(all, effects...)
	}
	return s, all
}

func diffEffects(t *testing.T, want, got []Effect) {
	t.Helper()
	if diff := cmp.Diff(want, got, cmpopts.EquateErrors(), cmpopts.EquateEmpty()); diff != "" {
		t.Errorf("effects mismatch (-want +got):\n%s", diff)
	}
}

func ptr(v float64) *float64 { return &v }

func TestInitialState(t *testing.T) {
	s := newState()
	assert.Equal(t, ScreenListing, s.Screen)
	assert.Equal(t, []string{"carrot", "tomato", "cucumber"}, s.Visible)
	assert.Nil(t, s.Prices)
	assert.False(t, s.IsFetching())
	assert.Empty(t, s.SelectedID())
}

func TestQueryChangedFiltersVisible(t *testing.T) {
	s, effects := Reduce(newState(), QueryChanged{Query: "to"})
	assert.Empty(t, effects)
	assert.Equal(t, "to", s.Query)
	assert.Equal(t, []string{"tomato"}, s.Visible)

	s, _ = Reduce(s, QueryChanged{Query: "CU"})
	assert.Equal(t, []string{"cucumber"}, s.Visible)

	s, _ = Reduce(s, QueryChanged{Query: ""})
	assert.Equal(t, s.Catalog.IDs(), s.Visible)
}

func TestSelectItemSuccessScenario(t *testing.T) {
	s, effects := run(newState(), ItemSelected{ID: "carrot", Token: "t1"})
	sel := domain.Selection{CropID: "carrot", Token: "t1"}
	diffEffects(t, []Effect{FetchPrediction{Selection: sel}}, effects)
	assert.Equal(t, ScreenListing, s.Screen, "stays on listing until the prediction arrives")
	assert.True(t, s.IsFetching())

	s, effects = Reduce(s, PredictionSucceeded{Token: "t1", Value: 45.5})
	diffEffects(t, []Effect{FetchPresent{Selection: sel}}, effects)
	assert.Equal(t, ScreenDetail, s.Screen)
	assert.Equal(t, "carrot", s.SelectedID())
	require.NotNil(t, s.Prices)
	assert.Equal(t, 45.5, s.Prices.Predicted)
	assert.Nil(t, s.Prices.Present)
	assert.True(t, s.PresentPending())
	_, ok := s.Prices.Trend()
	assert.False(t, ok, "trend is undefined without a present price")

	s, effects = Reduce(s, PresentSucceeded{Token: "t1", Value: 50})
	assert.Empty(t, effects)
	assert.Equal(t, ScreenDetail, s.Screen)
	assert.Equal(t, &PricePair{Predicted: 45.5, Present: ptr(50)}, s.Prices)
	assert.False(t, s.PresentPending())

	trend, ok := s.Prices.Trend()
	require.True(t, ok)
	assert.Equal(t, TrendDown, trend)
}

func TestSelectItemFirstCallFails(t *testing.T) {
	s, effects := run(newState(),
		ItemSelected{ID: "carrot", Token: "t1"},
		PredictionFailed{Token: "t1", Err: errStatus500},
	)

	sel := domain.Selection{CropID: "carrot", Token: "t1"}
	diffEffects(t, []Effect{
		FetchPrediction{Selection: sel},
		Diagnose{Selection: sel, Stage: domain.StagePrediction, Err: errStatus500},
	}, effects)
	assert.Equal(t, ScreenListing, s.Screen)
	assert.Nil(t, s.Prices)
	assert.Nil(t, s.Current)
	assert.False(t, s.IsFetching())
	assert.Contains(t, s.Notice, "carrot")
}

func TestPresentFailureLeavesPresentNil(t *testing.T) {
	err := errors.New("/get_present_price: status 404")
	s, effects := run(newState(),
		ItemSelected{ID: "tomato", Token: "t1"},
		PredictionSucceeded{Token: "t1", Value: 12},
		PresentFailed{Token: "t1", Err: err},
	)

	sel := domain.Selection{CropID: "tomato", Token: "t1"}
	diffEffects(t, []Effect{
		FetchPrediction{Selection: sel},
		FetchPresent{Selection: sel},
		Diagnose{Selection: sel, Stage: domain.StagePresent, Err: err},
	}, effects)
	assert.Equal(t, ScreenDetail, s.Screen)
	require.NotNil(t, s.Prices)
	assert.Nil(t, s.Prices.Present)
	assert.True(t, s.PresentFailed)
	assert.False(t, s.PresentPending())
	assert.Empty(t, s.Notice, "present price failures are not surfaced on screen")
}

func TestGoBackClearsSelection(t *testing.T) {
	s, _ := run(newState(),
		ItemSelected{ID: "carrot", Token: "t1"},
		PredictionSucceeded{Token: "t1", Value: 45.5},
		PresentSucceeded{Token: "t1", Value: 50},
	)

	s, effects := Reduce(s, WentBack{})
	diffEffects(t, []Effect{CancelFetch{Selection: domain.Selection{CropID: "carrot", Token: "t1"}}}, effects)
	assert.Equal(t, ScreenListing, s.Screen)
	assert.Nil(t, s.Prices)
	assert.Nil(t, s.Current)
	assert.False(t, s.PresentFailed)
}

func TestGoBackBeforePresentArrivesIgnoresLateResponse(t *testing.T) {
	s, _ := run(newState(),
		ItemSelected{ID: "carrot", Token: "t1"},
		PredictionSucceeded{Token: "t1", Value: 45.5},
		WentBack{},
	)
	before := s

	s, effects := Reduce(s, PresentSucceeded{Token: "t1", Value: 50})
	assert.Empty(t, effects)
	assert.Equal(t, before, s)

	s, effects = Reduce(s, PresentFailed{Token: "t1", Err: errors.New("late")})
	assert.Empty(t, effects)
	assert.Equal(t, before, s)
}

func TestReselectingSameItemFetchesAgain(t *testing.T) {
	s, _ := run(newState(),
		ItemSelected{ID: "carrot", Token: "t1"},
		PredictionSucceeded{Token: "t1", Value: 45.5},
		PresentSucceeded{Token: "t1", Value: 50},
		WentBack{},
	)

	s, effects := Reduce(s, ItemSelected{ID: "carrot", Token: "t2"})
	diffEffects(t, []Effect{FetchPrediction{Selection: domain.Selection{CropID: "carrot", Token: "t2"}}}, effects)
	assert.Nil(t, s.Prices, "no price is carried over between visits")

	// the first visit's present price arriving now must not leak into the second
	s, _ = Reduce(s, PredictionSucceeded{Token: "t2", Value: 60})
	s, _ = Reduce(s, PresentSucceeded{Token: "t1", Value: 99})
	assert.Nil(t, s.Prices.Present)

	s, _ = Reduce(s, PresentSucceeded{Token: "t2", Value: 50})
	trend, ok := s.Prices.Trend()
	require.True(t, ok)
	assert.Equal(t, TrendUp, trend)
}

func TestNewSelectionSupersedesPendingOne(t *testing.T) {
	s, effects := run(newState(),
		ItemSelected{ID: "carrot", Token: "t1"},
		ItemSelected{ID: "tomato", Token: "t2"},
	)

	diffEffects(t, []Effect{
		FetchPrediction{Selection: domain.Selection{CropID: "carrot", Token: "t1"}},
		CancelFetch{Selection: domain.Selection{CropID: "carrot", Token: "t1"}},
		FetchPrediction{Selection: domain.Selection{CropID: "tomato", Token: "t2"}},
	}, effects)

	// the superseded prediction is ignored
	s, effects = Reduce(s, PredictionSucceeded{Token: "t1", Value: 1})
	assert.Empty(t, effects)
	assert.Equal(t, ScreenListing, s.Screen)

	s, _ = Reduce(s, PredictionSucceeded{Token: "t2", Value: 2})
	assert.Equal(t, "tomato", s.SelectedID())
}

func TestGoBackOnListingCancelsPending(t *testing.T) {
	s, _ := run(newState(), ItemSelected{ID: "carrot", Token: "t1"})

	s, effects := Reduce(s, WentBack{})
	diffEffects(t, []Effect{CancelFetch{Selection: domain.Selection{CropID: "carrot", Token: "t1"}}}, effects)
	assert.False(t, s.IsFetching())

	s, _ = Reduce(s, PredictionSucceeded{Token: "t1", Value: 45.5})
	assert.Equal(t, ScreenListing, s.Screen)
	assert.Nil(t, s.Prices)

	_, effects = Reduce(s, WentBack{})
	assert.Empty(t, effects, "going back with nothing pending is a no-op")
}

func TestSelectionIgnoredOutsideListing(t *testing.T) {
	s, _ := run(newState(),
		ItemSelected{ID: "carrot", Token: "t1"},
		PredictionSucceeded{Token: "t1", Value: 45.5},
	)

	next, effects := Reduce(s, ItemSelected{ID: "tomato", Token: "t2"})
	assert.Empty(t, effects)
	assert.Equal(t, s, next)
}

func TestSelectionOfUnknownOrUntokenedItemIgnored(t *testing.T) {
	s := newState()

	next, effects := Reduce(s, ItemSelected{ID: "okra", Token: "t1"})
	assert.Empty(t, effects)
	assert.Equal(t, s, next)

	next, effects = Reduce(s, ItemSelected{ID: "carrot"})
	assert.Empty(t, effects)
	assert.Equal(t, s, next)
}

func TestReduceDoesNotMutateInput(t *testing.T) {
	s, _ := run(newState(),
		ItemSelected{ID: "carrot", Token: "t1"},
		PredictionSucceeded{Token: "t1", Value: 45.5},
	)
	prices := s.Prices

	next, _ := Reduce(s, PresentSucceeded{Token: "t1", Value: 50})
	assert.Nil(t, prices.Present, "the earlier pair is untouched")
	assert.NotSame(t, prices, next.Prices)

	filtered, _ := Reduce(newState(), QueryChanged{Query: "to"})
	assert.Equal(t, []string{"carrot", "tomato", "cucumber"}, filtered.Catalog.IDs())
}
