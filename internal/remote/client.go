// Package remote implements the client side of the ride API: estimate,
// confirm, and history-by-customer.
package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/Alexandros-Gialamas/TaxiApp-sub000/internal/model"
	"github.com/Alexandros-Gialamas/TaxiApp-sub000/internal/observability"
)

// Service is the remote boundary consumed by the repository. It covers
// exactly the three network operations the client depends on.
type Service interface {
	Estimate(ctx context.Context, customerID, origin, destination string) (model.Estimate, error)
	Confirm(ctx context.Context, req model.ConfirmRequest) (bool, error)
	History(ctx context.Context, customerID, driverID string) (model.HistoryResponse, error)
}

// ─── Error mapping ──────────────────────────────────────────

// Error is a typed ride API failure: either a mapped non-2xx payload
// ({error_code, error_description}) or the generic unknown value when
// the body cannot be parsed.
type Error struct {
	Status      int    `json:"-"`
	Code        string `json:"error_code"`
	Description string `json:"error_description"`
}

func (e *Error) Error() string {
	return fmt.Sprintf("ride api: %s (%s, http %d)", e.Description, e.Code, e.Status)
}

// decodeError maps a non-2xx response body to an *Error. Unparseable
// bodies become the generic unknown error.
func decodeError(resp *http.Response) *Error {
	apiErr := &Error{}
	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<16))
	if err == nil {
		err = json.Unmarshal(body, apiErr)
	}
	if err != nil || apiErr.Code == "" {
		apiErr.Code = "unknown_error"
		apiErr.Description = "unexpected response from ride service"
	}
	apiErr.Status = resp.StatusCode
	return apiErr
}

// ─── Client ─────────────────────────────────────────────────

// Client performs ride lookups against the remote ride API over HTTP.
type Client struct {
	BaseURL string
	HTTP    *http.Client
}

// NewClient creates a ride API client with the given base URL and
// request timeout.
func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{BaseURL: baseURL, HTTP: &http.Client{Timeout: timeout}}
}

// estimateRequest is the POST /ride/estimate body.
type estimateRequest struct {
	CustomerID  string `json:"customer_id"`
	Origin      string `json:"origin"`
	Destination string `json:"destination"`
}

// Estimate requests a price/time quote between two addresses.
func (c *Client) Estimate(ctx context.Context, customerID, origin, destination string) (model.Estimate, error) {
	var est model.Estimate
	err := c.do(ctx, "estimate", http.MethodPost, "/ride/estimate",
		estimateRequest{CustomerID: customerID, Origin: origin, Destination: destination}, &est)
	return est, err
}

// Confirm commits the chosen ride option. Success is derived from the
// HTTP status alone; the `{"success": true}` body carries no extra
// information and is not required to parse.
func (c *Client) Confirm(ctx context.Context, req model.ConfirmRequest) (bool, error) {
	if err := c.do(ctx, "confirm", http.MethodPatch, "/ride/confirm", req, nil); err != nil {
		return false, err
	}
	return true, nil
}

// History fetches the server-side ride history for a customer,
// optionally scoped to one driver.
func (c *Client) History(ctx context.Context, customerID, driverID string) (model.HistoryResponse, error) {
	path := "/ride/" + url.PathEscape(customerID)
	if driverID != "" {
		path += "?driver_id=" + url.QueryEscape(driverID)
	}
	var out model.HistoryResponse
	err := c.do(ctx, "history", http.MethodGet, path, nil, &out)
	return out, err
}

// do issues one instrumented request and decodes the 2xx body into out.
func (c *Client) do(ctx context.Context, op, method, path string, in, out any) error {
	start := time.Now()
	err := c.roundTrip(ctx, method, path, in, out)
	outcome := "success"
	if err != nil {
		outcome = "error"
	}
	observability.RideAPIRequestsTotal.WithLabelValues(op, outcome).Inc()
	observability.RideAPIRequestDuration.WithLabelValues(op, outcome).Observe(time.Since(start).Seconds())
	return err
}

func (c *Client) roundTrip(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		payload, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("ride api: encode request: %w", err)
		}
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, body)
	if err != nil {
		return fmt.Errorf("ride api: build request: %w", err)
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return fmt.Errorf("ride api: %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return decodeError(resp)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("ride api: decode response: %w", err)
	}
	return nil
}
