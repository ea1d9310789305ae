package handler

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/XavierGabriel92/velt-booking/internal/booking"
	"github.com/XavierGabriel92/velt-booking/internal/filter"
	"github.com/XavierGabriel92/velt-booking/internal/models"
	"github.com/XavierGabriel92/velt-booking/internal/search"
	"github.com/XavierGabriel92/velt-booking/internal/upstream"
	"github.com/XavierGabriel92/velt-booking/pkg/logger"
)

type SearchHandler struct {
	poller       *search.Poller
	returns      *search.ReturnFetcher
	lastSearches booking.LastSearchStore
}

func NewSearchHandler(poller *search.Poller, returns *search.ReturnFetcher, lastSearches booking.LastSearchStore) *SearchHandler {
	return &SearchHandler{
		poller:       poller,
		returns:      returns,
		lastSearches: lastSearches,
	}
}

type searchResponse struct {
	*models.SearchResult
	State search.State `json:"state"`
}

// Search runs the full trigger-and-poll workflow and returns the normalized
// result. A timed-out search is a 200 with state "timed_out" and whatever
// the session held at the deadline.
func (h *SearchHandler) Search(c echo.Context) error {
	ctx := c.Request().Context()

	var criteria models.SearchCriteria
	if err := c.Bind(&criteria); err != nil {
		return c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "invalid_request",
			Message: "Failed to parse request body: " + err.Error(),
			Code:    http.StatusBadRequest,
		})
	}
	if err := criteria.Validate(); err != nil {
		return c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "validation_error",
			Message: err.Error(),
			Code:    http.StatusBadRequest,
		})
	}

	// History is best effort; a broken store must not block the search.
	if err := h.lastSearches.Add(ctx, userID(c), models.LastFlightSearch{
		SearchCriteria: criteria,
		CreatedAt:      time.Now(),
	}); err != nil {
		logger.ErrorContext(ctx, "failed to record last search", "error", err)
	}

	result, state, err := h.poller.Run(ctx, token(c), criteria)
	if err != nil {
		if errors.Is(err, upstream.ErrUnauthorized) {
			return unauthorized(c)
		}
		status := http.StatusBadGateway
		code := "search_error"
		if errors.Is(err, upstream.ErrNoSearchSession) {
			code = "search_trigger_failed"
		}
		return c.JSON(status, models.ErrorResponse{
			Error:   code,
			Message: err.Error(),
			Code:    status,
		})
	}

	result.Flights = filter.Apply(result.Flights, filterOptions(c))

	return c.JSON(http.StatusOK, searchResponse{SearchResult: result, State: state})
}

// ReturnFlights fetches return options correlated with a selected outbound.
// Failures are retryable; the caller keeps its outbound selection.
func (h *SearchHandler) ReturnFlights(c echo.Context) error {
	ctx := c.Request().Context()

	var req models.ReturnFlightsRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "invalid_request",
			Message: "Failed to parse request body: " + err.Error(),
			Code:    http.StatusBadRequest,
		})
	}
	if req.OriginalSearchSessionID == "" || req.SelectedOutboundFlightID == "" || req.ReturnDate == "" {
		return c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "validation_error",
			Message: "originalSearchSessionId, selectedOutboundFlightId and returnDate are required",
			Code:    http.StatusBadRequest,
		})
	}
	if req.UserID == "" {
		req.UserID = userID(c)
	}

	resp, err := h.returns.Fetch(ctx, token(c), req)
	if err != nil {
		if errors.Is(err, upstream.ErrUnauthorized) {
			return unauthorized(c)
		}
		return c.JSON(http.StatusBadGateway, models.ErrorResponse{
			Error:   "return_flights_error",
			Message: err.Error(),
			Code:    http.StatusBadGateway,
		})
	}

	return c.JSON(http.StatusOK, resp)
}

// RecentSearches lists the caller's last flight searches, newest first.
func (h *SearchHandler) RecentSearches(c echo.Context) error {
	searches, err := h.lastSearches.List(c.Request().Context(), userID(c))
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "history_error",
			Message: err.Error(),
			Code:    http.StatusInternalServerError,
		})
	}
	return c.JSON(http.StatusOK, searches)
}

func filterOptions(c echo.Context) filter.Options {
	var opts filter.Options
	if v := c.QueryParam("maxStops"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			opts.MaxStops = &n
		}
	}
	if v := c.QueryParam("maxPrice"); v != "" {
		if p, err := strconv.ParseFloat(v, 64); err == nil {
			opts.MaxPrice = &p
		}
	}
	if v := c.QueryParam("airlines"); v != "" {
		for _, code := range strings.Split(v, ",") {
			if code = strings.TrimSpace(code); code != "" {
				opts.Airlines = append(opts.Airlines, code)
			}
		}
	}
	opts.SortBy = c.QueryParam("sortBy")
	opts.SortOrder = c.QueryParam("sortOrder")
	return opts
}

func HealthHandler(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"status": "ok",
	})
}
