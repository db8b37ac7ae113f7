// Package pricing talks to the crop price prediction service.
package pricing

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
)

const (
	PredictPath      = "/predict"
	PresentPricePath = "/get_present_price"

	// RequestIDHeader carries the selection token for log correlation
	RequestIDHeader = "X-Request-ID"

	maxBodyBytes = 1 << 20
)

// Service is what the UI needs from the prediction backend
type Service interface {
	Predict(ctx context.Context, req PredictRequest, requestID string) (float64, error)
	PresentPrice(ctx context.Context, cropID string, requestID string) (float64, error)
}

// Client is the HTTP implementation of Service
type Client struct {
	httpClient *http.Client
	baseURL    string
}

// NewClient creates a client for the service at baseURL. A zero timeout
// leaves requests unbounded except by their context.
func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		httpClient: &http.Client{
			Timeout: timeout,
		},
		baseURL: strings.TrimRight(baseURL, "/"),
	}
}

// BaseURL returns the service root the client posts to
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Predict asks the service for the predicted price of a crop
func (c *Client) Predict(ctx context.Context, req PredictRequest, requestID string) (float64, error) {
	var resp predictResponse
	if err := c.post(ctx, PredictPath, req, requestID, &resp); err != nil {
		return 0, err
	}
	if resp.Prediction == nil {
		return 0, &DecodeError{Endpoint: PredictPath, Err: errors.New(`missing "prediction"`)}
	}
	return *resp.Prediction, nil
}

// PresentPrice asks the service for the current market price of a crop
func (c *Client) PresentPrice(ctx context.Context, cropID string, requestID string) (float64, error) {
	var resp presentResponse
	if err := c.post(ctx, PresentPricePath, presentRequest{Crop: cropID}, requestID, &resp); err != nil {
		return 0, err
	}
	if resp.PresentPrice == nil {
		return 0, &DecodeError{Endpoint: PresentPricePath, Err: errors.New(`missing "presentPrice"`)}
	}
	return float64(*resp.PresentPrice), nil
}

func (c *Client) post(ctx context.Context, path string, body any, requestID string, out any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("%s: encode request: %w", path, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("%s: build request: %w", path, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if requestID != "" {
		req.Header.Set(RequestIDHeader, requestID)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &TransportError{Endpoint: path, Err: err}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return &TransportError{Endpoint: path, Err: fmt.Errorf("read body: %w", err)}
	}

	log.Debug().
		Str("path", path).
		Str("request_id", requestID).
		Int("status", resp.StatusCode).
		Dur("elapsed", time.Since(start)).
		Msg("pricing: response")

	if resp.StatusCode != http.StatusOK {
		se := &StatusError{Endpoint: path, StatusCode: resp.StatusCode}
		var er errorResponse
		if json.Unmarshal(data, &er) == nil {
			se.Message = er.Error
		}
		return se
	}

	if err := json.Unmarshal(data, out); err != nil {
		return &DecodeError{Endpoint: path, Err: err}
	}
	return nil
}
