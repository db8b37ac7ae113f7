package pricing

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"cropprices/internal/domain"
)

// PredictRequest is the body of the predict call
type PredictRequest struct {
	Year     int     `json:"year"`
	Month    int     `json:"month"`
	Rainfall float64 `json:"rainfall"`
	Yields   float64 `json:"yields"`
	Crop     string  `json:"cp"`
}

type predictResponse struct {
	Prediction *float64 `json:"prediction"`
}

type presentRequest struct {
	Crop string `json:"cp"`
}

type presentResponse struct {
	PresentPrice *flexFloat `json:"presentPrice"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// flexFloat accepts a JSON number or a string holding one. The service
// formats the present price as a string, and an empty cell comes through
// as "nan", which is rejected.
type flexFloat float64

func (f *flexFloat) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
		if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("price %q is not a number", s)
		}
		*f = flexFloat(v)
		return nil
	}
	var v float64
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	*f = flexFloat(v)
	return nil
}

// Defaults are the contextual values sent when the caller supplies none
type Defaults struct {
	Rainfall    float64
	Yields      float64
	MonthOffset int
}

// Params builds the prediction context for now. The month is the current
// month plus the offset and is not wrapped into the following year.
func (d Defaults) Params(now time.Time) domain.PredictParams {
	return domain.PredictParams{
		Year:     now.Year(),
		Month:    int(now.Month()) + d.MonthOffset,
		Rainfall: d.Rainfall,
		Yields:   d.Yields,
	}
}

// NewPredictRequest combines a crop id with its prediction context
func NewPredictRequest(cropID string, p domain.PredictParams) PredictRequest {
	return PredictRequest{
		Year:     p.Year,
		Month:    p.Month,
		Rainfall: p.Rainfall,
		Yields:   p.Yields,
		Crop:     cropID,
	}
}
