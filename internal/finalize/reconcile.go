// Package finalize assembles passenger identity, cost attribution and
// ancillary selections into a single confirmation request, and interprets
// the backend's answer.
package finalize

import (
	"context"
	"errors"
	"fmt"

	"github.com/XavierGabriel92/velt-booking/internal/models"
	"github.com/XavierGabriel92/velt-booking/internal/upstream"
)

// ExtraBaggageUnitPrice is the flat price per additional baggage unit, BRL.
const ExtraBaggageUnitPrice = 170.00

// MaxExtraBaggagePerSlot bounds the per-passenger add-on counter.
const MaxExtraBaggagePerSlot = 5

// ConsumerCompanyName designates the B2C company: bookings for it carry no
// travel report or cost center and default the passenger to the logged-in
// user.
const ConsumerCompanyName = "B2C Consumer"

var (
	ErrSlotCountMismatch      = errors.New("resolved passengers do not match the searched passenger count")
	ErrUnresolvedSlot         = errors.New("every passenger slot needs a traveler or a complete inline passenger")
	ErrBaggageOutOfRange      = errors.New("extra baggage must be between 0 and 5 units per passenger")
	ErrMissingCostAttribution = errors.New("travel report and cost center are required for corporate bookings")
	ErrInvalidSession         = errors.New("booking session is missing its search session or outbound flight")
)

// BuildSlots creates the empty passenger slots a search implies, adults
// first, then children, then infants.
func BuildSlots(criteria models.SearchCriteria) []models.PassengerSlot {
	slots := make([]models.PassengerSlot, 0, criteria.PassengerCount())
	for i := 0; i < criteria.Adults; i++ {
		slots = append(slots, models.PassengerSlot{Type: models.PassengerAdult})
	}
	for i := 0; i < criteria.Children; i++ {
		slots = append(slots, models.PassengerSlot{Type: models.PassengerChild})
	}
	for i := 0; i < criteria.Infants; i++ {
		slots = append(slots, models.PassengerSlot{Type: models.PassengerInfant})
	}
	return slots
}

// ValidateSlots gates submission: the number of resolved slots must equal
// the passenger count from the original criteria, and baggage counters must
// be in range.
func ValidateSlots(slots []models.PassengerSlot, criteria models.SearchCriteria) error {
	if len(slots) != criteria.PassengerCount() {
		return ErrSlotCountMismatch
	}
	for i, slot := range slots {
		if !slot.Resolved() {
			return fmt.Errorf("slot %d: %w", i+1, ErrUnresolvedSlot)
		}
		if slot.ExtraBaggage < 0 || slot.ExtraBaggage > MaxExtraBaggagePerSlot {
			return fmt.Errorf("slot %d: %w", i+1, ErrBaggageOutOfRange)
		}
	}
	return nil
}

// PriceSummary is the payable breakdown shown before confirmation.
type PriceSummary struct {
	OutboundFare      float64 `json:"outboundFare"`
	OutboundTaxes     float64 `json:"outboundTaxes"`
	ReturnFare        float64 `json:"returnFare"`
	ReturnTaxes       float64 `json:"returnTaxes"`
	ExtraBaggageUnits int     `json:"extraBaggageUnits"`
	ExtraBaggageTotal float64 `json:"extraBaggageTotal"`
	Total             float64 `json:"total"`
}

// Summarize computes the final payable total: fares plus embarkation taxes
// plus the baggage add-on (units x unit price).
func Summarize(outbound *models.FlightOption, ret *models.FlightOption, slots []models.PassengerSlot) PriceSummary {
	var sum PriceSummary
	if outbound != nil {
		sum.OutboundFare = outbound.Fare.Final
		sum.OutboundTaxes = outbound.Fare.BoardingTax
	}
	if ret != nil {
		sum.ReturnFare = ret.Fare.Final
		sum.ReturnTaxes = ret.Fare.BoardingTax
	}
	for _, slot := range slots {
		sum.ExtraBaggageUnits += slot.ExtraBaggage
	}
	sum.ExtraBaggageTotal = float64(sum.ExtraBaggageUnits) * ExtraBaggageUnitPrice
	sum.Total = sum.OutboundFare + sum.OutboundTaxes + sum.ReturnFare + sum.ReturnTaxes + sum.ExtraBaggageTotal
	return sum
}

// Attribution carries who pays and under which report the booking lands.
type Attribution struct {
	CompanyID      string
	CompanyName    string
	UserID         string
	TravelReportID string
	CostCenterID   string
	Title          string
}

// IsConsumer reports whether the booking follows the B2C flow.
func (a Attribution) IsConsumer() bool {
	return a.CompanyName == ConsumerCompanyName
}

// BuildConfirmRequest reconciles the stored session, the resolved slots and
// the cost attribution into the confirmation payload.
func BuildConfirmRequest(session *models.BookingSession, slots []models.PassengerSlot, attr Attribution) (models.ConfirmFlightRequest, error) {
	if session == nil || !session.Valid() {
		return models.ConfirmFlightRequest{}, ErrInvalidSession
	}
	if err := ValidateSlots(slots, session.SearchParams); err != nil {
		return models.ConfirmFlightRequest{}, err
	}

	travelerIDs := resolveTravelerIDs(session, slots, attr)
	if len(travelerIDs) == 0 {
		return models.ConfirmFlightRequest{}, ErrUnresolvedSlot
	}

	req := models.ConfirmFlightRequest{
		SearchSessionID:  session.SearchSessionID,
		SelectedFlightID: session.SelectedOutbound.ConfirmableID(),
		TravelerIDs:      travelerIDs,
		CompanyID:        attr.CompanyID,
		Title:            attr.Title,
	}
	if session.SelectedReturn != nil {
		req.ReturnFlightID = session.SelectedReturn.ID
	}

	if !attr.IsConsumer() {
		if attr.TravelReportID == "" || attr.CostCenterID == "" {
			return models.ConfirmFlightRequest{}, ErrMissingCostAttribution
		}
		req.TravelReportID = attr.TravelReportID
		req.CostCenterID = attr.CostCenterID
	}

	return req, nil
}

// resolveTravelerIDs prefers explicit slot assignments, then the traveler
// list from the original search, then the logged-in user for consumer
// bookings.
func resolveTravelerIDs(session *models.BookingSession, slots []models.PassengerSlot, attr Attribution) []string {
	ids := make([]string, 0, len(slots))
	for _, slot := range slots {
		if slot.TravelerID != "" {
			ids = append(ids, slot.TravelerID)
		}
	}
	if len(ids) == len(slots) {
		return ids
	}
	if len(session.SearchParams.TravelerIDs) > 0 {
		return session.SearchParams.TravelerIDs
	}
	if attr.IsConsumer() && attr.UserID != "" {
		return []string{attr.UserID}
	}
	return nil
}

// ResolveReportID finds the travel report a confirmed booking landed in:
// straight from the response when present, else by fetching the created
// travel. A failed fallback fetch resolves to "", never to an error — the
// booking itself already succeeded.
func ResolveReportID(ctx context.Context, client upstream.Client, token string, outcome *models.ConfirmOutcome) string {
	if outcome == nil || outcome.Kind != models.OutcomeTravel || outcome.Travel == nil {
		return ""
	}
	if outcome.Travel.TravelReportID != "" {
		return outcome.Travel.TravelReportID
	}
	if outcome.Travel.TravelID == "" {
		return ""
	}
	travel, err := client.TravelByID(ctx, token, outcome.Travel.TravelID)
	if err != nil || travel == nil {
		return ""
	}
	return travel.TravelReportID
}
