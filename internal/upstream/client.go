// Package upstream is the HTTP client for the remote travel backend. It is
// the only network dependency of the booking workflow: flight search,
// polling, return flights and confirmation all live behind this interface.
package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/XavierGabriel92/velt-booking/internal/models"
	"github.com/XavierGabriel92/velt-booking/internal/ratelimit"
)

// Client is everything the booking workflow needs from the backend.
type Client interface {
	TriggerSearch(ctx context.Context, token string, criteria models.SearchCriteria) (*models.TriggerResponse, error)
	GetSession(ctx context.Context, token, sessionID string) (*models.SearchSession, error)
	ReturnFlights(ctx context.Context, token string, req models.ReturnFlightsRequest) (*models.ReturnFlightsResponse, error)
	ConfirmFlight(ctx context.Context, token string, req models.ConfirmFlightRequest) (*models.ConfirmOutcome, error)
	TravelByID(ctx context.Context, token, travelID string) (*models.Travel, error)
}

const (
	endpointTrigger       = "trigger"
	endpointSession       = "session"
	endpointReturnFlights = "return-flights"
	endpointConfirm       = "confirm"
	endpointTravels       = "travels"
)

type HTTPClient struct {
	baseURL    string
	httpClient *http.Client
	limiter    *ratelimit.EndpointLimiter
}

type HTTPConfig struct {
	BaseURL string
	Timeout time.Duration
	Limiter *ratelimit.EndpointLimiter
}

func NewHTTPClient(cfg HTTPConfig) *HTTPClient {
	if cfg.Timeout == 0 {
		cfg.Timeout = 15 * time.Second
	}
	return &HTTPClient{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		httpClient: &http.Client{Timeout: cfg.Timeout},
		limiter:    cfg.Limiter,
	}
}

type triggerBody struct {
	TripType      string `json:"tripType"`
	Origin        string `json:"origin"`
	Destination   string `json:"destination"`
	DepartureDate string `json:"departureDate"`
	ReturnDate    string `json:"returnDate,omitempty"`
	Adults        int    `json:"adults"`
	Children      int    `json:"children"`
	Infants       int    `json:"infants"`
	CabinClass    string `json:"cabinClass"`
}

func (c *HTTPClient) TriggerSearch(ctx context.Context, token string, criteria models.SearchCriteria) (*models.TriggerResponse, error) {
	body := triggerBody{
		TripType:      string(criteria.TripType),
		Origin:        criteria.Origin,
		Destination:   criteria.Destination,
		DepartureDate: criteria.DepartureDate,
		ReturnDate:    criteria.ReturnDate,
		Adults:        criteria.Adults,
		Children:      criteria.Children,
		Infants:       criteria.Infants,
		CabinClass:    criteria.CabinClass,
	}

	var resp models.TriggerResponse
	if err := c.do(ctx, endpointTrigger, http.MethodPost, "/api/flight-search/railway", token, body, &resp); err != nil {
		return nil, err
	}
	if resp.SearchSessionID == "" {
		return nil, ErrNoSearchSession
	}
	return &resp, nil
}

func (c *HTTPClient) GetSession(ctx context.Context, token, sessionID string) (*models.SearchSession, error) {
	var resp models.SearchSession
	path := "/api/flight-search/session/" + url.PathEscape(sessionID)
	if err := c.do(ctx, endpointSession, http.MethodGet, path, token, nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *HTTPClient) ReturnFlights(ctx context.Context, token string, req models.ReturnFlightsRequest) (*models.ReturnFlightsResponse, error) {
	var resp models.ReturnFlightsResponse
	if err := c.do(ctx, endpointReturnFlights, http.MethodPost, "/api/flight-search/return-flights", token, req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *HTTPClient) ConfirmFlight(ctx context.Context, token string, req models.ConfirmFlightRequest) (*models.ConfirmOutcome, error) {
	var raw json.RawMessage
	if err := c.do(ctx, endpointConfirm, http.MethodPost, "/api/flight-search/confirm-flight", token, req, &raw); err != nil {
		return nil, err
	}

	outcome, err := models.DecodeConfirmOutcome(raw)
	if err != nil {
		return nil, &APIError{StatusCode: http.StatusBadGateway, Message: "unreadable confirmation response: " + err.Error()}
	}
	return &outcome, nil
}

func (c *HTTPClient) TravelByID(ctx context.Context, token, travelID string) (*models.Travel, error) {
	var resp models.Travel
	path := "/api/travels/" + url.PathEscape(travelID)
	if err := c.do(ctx, endpointTravels, http.MethodGet, path, token, nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *HTTPClient) do(ctx context.Context, endpoint, method, path, token string, body, out any) error {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx, endpoint); err != nil {
			return err
		}
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized {
		return ErrUnauthorized
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &APIError{
			StatusCode: resp.StatusCode,
			Message:    mineErrorMessage(resp),
		}
	}

	if out == nil {
		return nil
	}
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	return json.Unmarshal(data, out)
}

// mineErrorMessage digs a readable message out of an error body. The backend
// is inconsistent about where it puts it (message, errorMessage, title or a
// validation-errors map), so every known spot is tried before giving up and
// using the status text.
func mineErrorMessage(resp *http.Response) string {
	data, err := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	if err != nil || len(data) == 0 {
		return http.StatusText(resp.StatusCode)
	}

	contentType := resp.Header.Get("Content-Type")
	if !strings.Contains(contentType, "application/json") {
		if text := strings.TrimSpace(string(data)); text != "" {
			return text
		}
		return http.StatusText(resp.StatusCode)
	}

	var body struct {
		Message      string              `json:"message"`
		ErrorMessage string              `json:"errorMessage"`
		Title        string              `json:"title"`
		Errors       map[string][]string `json:"errors"`
	}
	if err := json.Unmarshal(data, &body); err != nil {
		return http.StatusText(resp.StatusCode)
	}

	switch {
	case body.Message != "":
		return body.Message
	case body.ErrorMessage != "":
		return body.ErrorMessage
	case body.Title != "":
		return body.Title
	case len(body.Errors) > 0:
		var parts []string
		for _, msgs := range body.Errors {
			parts = append(parts, msgs...)
		}
		return "validation failed: " + strings.Join(parts, ", ")
	}
	return http.StatusText(resp.StatusCode)
}
