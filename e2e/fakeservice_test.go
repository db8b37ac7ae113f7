//go:build e2e && unix

package main

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
)

// fakePriceService serves /predict and /get_present_price from fixed tables
type fakePriceService struct {
	mu        sync.Mutex
	predicted map[string]float64
	present   map[string]any
	calls     []string
	srv       *httptest.Server
}

func newFakePriceService(t *testing.T, predicted map[string]float64, present map[string]any) *fakePriceService {
	t.Helper()
	f := &fakePriceService{predicted: predicted, present: present}

	mux := http.NewServeMux()
	mux.HandleFunc("POST /predict", func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			Crop string `json:"cp"`
		}
		_ = json.NewDecoder(r.Body).Decode(&body)
		f.record("/predict " + body.Crop)

		v, ok := f.predicted[body.Crop]
		if !ok {
			writeJSON(w, http.StatusInternalServerError, map[string]any{"error": "model failed"})
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"prediction": v})
	})
	mux.HandleFunc("POST /get_present_price", func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			Crop string `json:"cp"`
		}
		_ = json.NewDecoder(r.Body).Decode(&body)
		f.record("/get_present_price " + body.Crop)

		v, ok := f.present[body.Crop]
		if !ok {
			writeJSON(w, http.StatusNotFound, map[string]any{"error": "Present price not available for the selected crop"})
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"presentPrice": v})
	})

	f.srv = httptest.NewServer(mux)
	t.Cleanup(f.srv.Close)
	return f
}

func (f *fakePriceService) URL() string {
	return f.srv.URL
}

func (f *fakePriceService) record(call string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, call)
}

func (f *fakePriceService) Calls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, len(f.calls))
	copy(out, f.calls)
	return out
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
