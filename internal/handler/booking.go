package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/XavierGabriel92/velt-booking/internal/booking"
	"github.com/XavierGabriel92/velt-booking/internal/finalize"
	"github.com/XavierGabriel92/velt-booking/internal/models"
	"github.com/XavierGabriel92/velt-booking/internal/upstream"
	"github.com/XavierGabriel92/velt-booking/pkg/currency"
	"github.com/XavierGabriel92/velt-booking/pkg/logger"
)

type BookingHandler struct {
	store  booking.SessionStore
	client upstream.Client
}

func NewBookingHandler(store booking.SessionStore, client upstream.Client) *BookingHandler {
	return &BookingHandler{store: store, client: client}
}

type saveSessionRequest struct {
	SelectedOutbound *models.FlightOption  `json:"selectedOutbound"`
	SelectedReturn   *models.FlightOption  `json:"selectedReturn,omitempty"`
	SearchParams     models.SearchCriteria `json:"searchParams"`
	SearchSessionID  string                `json:"searchSessionId"`
}

// SaveSession persists the flight selection for the finalize step. One
// session per client scope; saving replaces any previous one.
func (h *BookingHandler) SaveSession(c echo.Context) error {
	var req saveSessionRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "invalid_request",
			Message: "Failed to parse request body: " + err.Error(),
			Code:    http.StatusBadRequest,
		})
	}

	session := models.BookingSession{
		SelectedOutbound: req.SelectedOutbound,
		SelectedReturn:   req.SelectedReturn,
		SearchParams:     req.SearchParams,
		SearchSessionID:  req.SearchSessionID,
	}
	if !session.Valid() {
		return c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "invalid_session",
			Message: "A booking session needs a search session id and an outbound flight",
			Code:    http.StatusBadRequest,
		})
	}

	if err := h.store.Save(c.Request().Context(), scopeID(c), session); err != nil {
		return c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "session_store_error",
			Message: err.Error(),
			Code:    http.StatusInternalServerError,
		})
	}
	return c.NoContent(http.StatusNoContent)
}

// GetSession loads the stored selection. An absent or expired session is a
// 410: the client restarts the search flow.
func (h *BookingHandler) GetSession(c echo.Context) error {
	session, err := h.store.Load(c.Request().Context(), scopeID(c))
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "session_store_error",
			Message: err.Error(),
			Code:    http.StatusInternalServerError,
		})
	}
	if session == nil {
		return sessionExpired(c)
	}
	return c.JSON(http.StatusOK, session)
}

// ClearSession drops the stored selection. Clearing twice is a no-op.
func (h *BookingHandler) ClearSession(c echo.Context) error {
	if err := h.store.Clear(c.Request().Context(), scopeID(c)); err != nil {
		return c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "session_store_error",
			Message: err.Error(),
			Code:    http.StatusInternalServerError,
		})
	}
	return c.NoContent(http.StatusNoContent)
}

type confirmRequest struct {
	Slots          []models.PassengerSlot `json:"slots"`
	CompanyID      string                 `json:"companyId"`
	CompanyName    string                 `json:"companyName"`
	TravelReportID string                 `json:"travelReportId,omitempty"`
	CostCenterID   string                 `json:"costCenterId,omitempty"`
	Title          string                 `json:"title,omitempty"`
}

type confirmResponse struct {
	Outcome        models.ConfirmOutcome `json:"outcome"`
	TravelReportID string                `json:"travelReportId,omitempty"`
	Summary        finalize.PriceSummary `json:"summary"`
	TotalFormatted string                `json:"totalFormatted"`
}

// Confirm finalizes the booking held in the session store. The session is
// cleared only after the backend accepted the booking, so a failed attempt
// costs the user no re-selection work.
func (h *BookingHandler) Confirm(c echo.Context) error {
	ctx := c.Request().Context()

	var req confirmRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "invalid_request",
			Message: "Failed to parse request body: " + err.Error(),
			Code:    http.StatusBadRequest,
		})
	}

	session, err := h.store.Load(ctx, scopeID(c))
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "session_store_error",
			Message: err.Error(),
			Code:    http.StatusInternalServerError,
		})
	}
	if session == nil {
		return sessionExpired(c)
	}

	attr := finalize.Attribution{
		CompanyID:      req.CompanyID,
		CompanyName:    req.CompanyName,
		UserID:         userID(c),
		TravelReportID: req.TravelReportID,
		CostCenterID:   req.CostCenterID,
		Title:          req.Title,
	}

	confirm, err := finalize.BuildConfirmRequest(session, req.Slots, attr)
	if err != nil {
		return c.JSON(http.StatusUnprocessableEntity, models.ErrorResponse{
			Error:   "reconciliation_error",
			Message: err.Error(),
			Code:    http.StatusUnprocessableEntity,
		})
	}

	outcome, err := h.client.ConfirmFlight(ctx, token(c), confirm)
	if err != nil {
		if errors.Is(err, upstream.ErrUnauthorized) {
			return unauthorized(c)
		}
		// Session stays: the user retries without picking flights again.
		return c.JSON(http.StatusBadGateway, models.ErrorResponse{
			Error:   "confirmation_failed",
			Message: err.Error(),
			Code:    http.StatusBadGateway,
		})
	}

	if err := h.store.Clear(ctx, scopeID(c)); err != nil {
		logger.ErrorContext(ctx, "failed to clear booking session after confirmation", "error", err)
	}

	summary := finalize.Summarize(session.SelectedOutbound, session.SelectedReturn, req.Slots)

	return c.JSON(http.StatusOK, confirmResponse{
		Outcome:        *outcome,
		TravelReportID: finalize.ResolveReportID(ctx, h.client, token(c), outcome),
		Summary:        summary,
		TotalFormatted: currency.FormatBRL(summary.Total),
	})
}

func sessionExpired(c echo.Context) error {
	return c.JSON(http.StatusGone, models.ErrorResponse{
		Error:   "session_expired",
		Message: "Booking session is absent or expired, restart the flight search",
		Code:    http.StatusGone,
	})
}
