package state

import (
	"fmt"

	"cropprices/internal/catalog"
	"cropprices/internal/domain"
)

// Reduce applies ev to s and returns the next state along with the effects
// the caller must run. Results tagged with a token that is no longer the
// pending or current one are ignored.
func Reduce(s State, ev Event) (State, []Effect) {
	switch ev := ev.(type) {
	case QueryChanged:
		s.Query = ev.Query
		s.Visible = s.Catalog.Filter(ev.Query)
		return s, nil

	case ItemSelected:
		return selectItem(s, ev)

	case PredictionSucceeded:
		if s.Pending == nil || s.Pending.Token != ev.Token {
			return s, nil
		}
		sel := *s.Pending
		s.Pending = nil
		s.Current = &sel
		s.Prices = &PricePair{Predicted: ev.Value}
		s.PresentFailed = false
		s.Screen = ScreenDetail
		s.Notice = ""
		return s, []Effect{FetchPresent{Selection: sel}}

	case PredictionFailed:
		if s.Pending == nil || s.Pending.Token != ev.Token {
			return s, nil
		}
		sel := *s.Pending
		s.Pending = nil
		s.Notice = fmt.Sprintf("No prediction available for %s", catalog.Label(sel.CropID))
		return s, []Effect{Diagnose{Selection: sel, Stage: domain.StagePrediction, Err: ev.Err}}

	case PresentSucceeded:
		if !s.isCurrent(ev.Token) || s.Prices == nil {
			return s, nil
		}
		s.Prices = s.Prices.withPresent(ev.Value)
		s.PresentFailed = false
		return s, nil

	case PresentFailed:
		if !s.isCurrent(ev.Token) {
			return s, nil
		}
		s.PresentFailed = true
		return s, []Effect{Diagnose{Selection: *s.Current, Stage: domain.StagePresent, Err: ev.Err}}

	case WentBack:
		return goBack(s)
	}

	return s, nil
}

func selectItem(s State, ev ItemSelected) (State, []Effect) {
	if s.Screen != ScreenListing || ev.Token == "" {
		return s, nil
	}
	if !s.Catalog.Contains(ev.ID) {
		return s, nil
	}

	var effects []Effect
	if s.Pending != nil {
		effects = append(effects, CancelFetch{Selection: *s.Pending})
	}

	sel := domain.Selection{CropID: ev.ID, Token: ev.Token}
	s.Pending = &sel
	s.Notice = ""
	return s, append(effects, FetchPrediction{Selection: sel})
}

func goBack(s State) (State, []Effect) {
	switch s.Screen {
	case ScreenDetail:
		var effects []Effect
		if s.Current != nil {
			effects = append(effects, CancelFetch{Selection: *s.Current})
		}
		s.Screen = ScreenListing
		s.Current = nil
		s.Prices = nil
		s.PresentFailed = false
		return s, effects

	case ScreenListing:
		if s.Pending == nil {
			return s, nil
		}
		sel := *s.Pending
		s.Pending = nil
		return s, []Effect{CancelFetch{Selection: sel}}
	}
	return s, nil
}

func (s State) isCurrent(token string) bool {
	return s.Screen == ScreenDetail && s.Current != nil && s.Current.Token == token
}
