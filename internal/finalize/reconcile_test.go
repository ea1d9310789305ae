package finalize

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/XavierGabriel92/velt-booking/internal/models"
)

func criteria(adults, children, infants int) models.SearchCriteria {
	return models.SearchCriteria{
		Origin:        "GRU",
		Destination:   "SDU",
		DepartureDate: "2026-04-01",
		ReturnDate:    "2026-04-05",
		TripType:      models.TripRoundTrip,
		Adults:        adults,
		Children:      children,
		Infants:       infants,
		CabinClass:    "Economy",
	}
}

func session(adults, children, infants int) *models.BookingSession {
	return &models.BookingSession{
		SelectedOutbound: &models.FlightOption{
			ID:   "out-1",
			Fare: models.FareBreakdown{Final: 500.00, BoardingTax: 50.00, Currency: "BRL"},
		},
		SelectedReturn: &models.FlightOption{
			ID:   "ret-1",
			Fare: models.FareBreakdown{Final: 400.00, BoardingTax: 40.00, Currency: "BRL"},
		},
		SearchParams:    criteria(adults, children, infants),
		SearchSessionID: "sess-1",
	}
}

func resolvedSlots(ids ...string) []models.PassengerSlot {
	slots := make([]models.PassengerSlot, len(ids))
	for i, id := range ids {
		slots[i] = models.PassengerSlot{Type: models.PassengerAdult, TravelerID: id}
	}
	return slots
}

func TestBuildSlots_Ordering(t *testing.T) {
	slots := BuildSlots(criteria(2, 1, 1))
	require.Len(t, slots, 4)
	assert.Equal(t, models.PassengerAdult, slots[0].Type)
	assert.Equal(t, models.PassengerAdult, slots[1].Type)
	assert.Equal(t, models.PassengerChild, slots[2].Type)
	assert.Equal(t, models.PassengerInfant, slots[3].Type)
}

func TestValidateSlots_CountGate(t *testing.T) {
	c := criteria(2, 1, 0)

	err := ValidateSlots(resolvedSlots("t-1", "t-2"), c)
	assert.ErrorIs(t, err, ErrSlotCountMismatch)

	err = ValidateSlots(resolvedSlots("t-1", "t-2", "t-3"), c)
	assert.NoError(t, err)
}

func TestValidateSlots_UnresolvedSlot(t *testing.T) {
	slots := resolvedSlots("t-1", "t-2")
	slots = append(slots, models.PassengerSlot{Type: models.PassengerChild})

	err := ValidateSlots(slots, criteria(2, 1, 0))
	assert.ErrorIs(t, err, ErrUnresolvedSlot)
}

func TestValidateSlots_InlinePassenger(t *testing.T) {
	complete := models.PassengerSlot{
		Type: models.PassengerAdult,
		Inline: &models.InlinePassenger{
			FirstName: "Ana",
			LastName:  "Silva",
			Email:     "ana@example.com",
			Phone:     "+55 11 99999-0000",
			BirthDate: "1990-05-01",
			Document:  "123.456.789-00",
		},
	}
	assert.NoError(t, ValidateSlots([]models.PassengerSlot{complete}, criteria(1, 0, 0)))

	incomplete := complete
	incomplete.Inline = &models.InlinePassenger{FirstName: "Ana"}
	assert.ErrorIs(t, ValidateSlots([]models.PassengerSlot{incomplete}, criteria(1, 0, 0)), ErrUnresolvedSlot)
}

func TestValidateSlots_BaggageRange(t *testing.T) {
	slots := resolvedSlots("t-1")
	slots[0].ExtraBaggage = 6

	err := ValidateSlots(slots, criteria(1, 0, 0))
	assert.ErrorIs(t, err, ErrBaggageOutOfRange)

	slots[0].ExtraBaggage = 5
	assert.NoError(t, ValidateSlots(slots, criteria(1, 0, 0)))
}

func TestSummarize_PricingScenario(t *testing.T) {
	// 500 + 50 + 400 + 40 + 2x170 = 1330.00
	sess := session(2, 0, 0)
	slots := resolvedSlots("t-1", "t-2")
	slots[0].ExtraBaggage = 2

	sum := Summarize(sess.SelectedOutbound, sess.SelectedReturn, slots)

	assert.Equal(t, 500.00, sum.OutboundFare)
	assert.Equal(t, 50.00, sum.OutboundTaxes)
	assert.Equal(t, 400.00, sum.ReturnFare)
	assert.Equal(t, 40.00, sum.ReturnTaxes)
	assert.Equal(t, 2, sum.ExtraBaggageUnits)
	assert.Equal(t, 340.00, sum.ExtraBaggageTotal)
	assert.Equal(t, 1330.00, sum.Total)
}

func TestSummarize_OneWayNoBaggage(t *testing.T) {
	sess := session(1, 0, 0)
	sum := Summarize(sess.SelectedOutbound, nil, resolvedSlots("t-1"))
	assert.Equal(t, 550.00, sum.Total)
}

func TestBuildConfirmRequest_Corporate(t *testing.T) {
	sess := session(2, 0, 0)
	attr := Attribution{
		CompanyID:      "co-1",
		CompanyName:    "Acme Corp",
		UserID:         "user-1",
		TravelReportID: "rep-1",
		CostCenterID:   "cc-1",
		Title:          "Offsite",
	}

	req, err := BuildConfirmRequest(sess, resolvedSlots("t-1", "t-2"), attr)
	require.NoError(t, err)

	assert.Equal(t, "sess-1", req.SearchSessionID)
	assert.Equal(t, "out-1", req.SelectedFlightID)
	assert.Equal(t, "ret-1", req.ReturnFlightID)
	assert.Equal(t, []string{"t-1", "t-2"}, req.TravelerIDs)
	assert.Equal(t, "rep-1", req.TravelReportID)
	assert.Equal(t, "cc-1", req.CostCenterID)
	assert.Equal(t, "Offsite", req.Title)
}

func TestBuildConfirmRequest_CombinationFareID(t *testing.T) {
	sess := session(1, 0, 0)
	sess.SelectedOutbound.CombinationID = "combo-7"

	req, err := BuildConfirmRequest(sess, resolvedSlots("t-1"), Attribution{
		CompanyID: "co-1", CompanyName: "Acme Corp", TravelReportID: "rep-1", CostCenterID: "cc-1",
	})
	require.NoError(t, err)
	assert.Equal(t, "combo-7", req.SelectedFlightID)
}

func TestBuildConfirmRequest_CorporateNeedsAttribution(t *testing.T) {
	sess := session(1, 0, 0)

	_, err := BuildConfirmRequest(sess, resolvedSlots("t-1"), Attribution{
		CompanyID: "co-1", CompanyName: "Acme Corp", TravelReportID: "rep-1",
	})
	assert.ErrorIs(t, err, ErrMissingCostAttribution)
}

func TestBuildConfirmRequest_ConsumerDefaults(t *testing.T) {
	sess := session(1, 0, 0)
	attr := Attribution{CompanyID: "co-b2c", CompanyName: ConsumerCompanyName, UserID: "user-1"}

	// An unresolved slot list falls back to the search traveler list, then to
	// the logged-in user for consumer bookings.
	slots := []models.PassengerSlot{{
		Type: models.PassengerAdult,
		Inline: &models.InlinePassenger{
			FirstName: "Ana", LastName: "Silva", Email: "a@b.c",
			Phone: "1", BirthDate: "1990-01-01", Document: "d",
		},
	}}

	req, err := BuildConfirmRequest(sess, slots, attr)
	require.NoError(t, err)
	assert.Equal(t, []string{"user-1"}, req.TravelerIDs)
	assert.Empty(t, req.TravelReportID)
	assert.Empty(t, req.CostCenterID)
}

func TestBuildConfirmRequest_InvalidSession(t *testing.T) {
	_, err := BuildConfirmRequest(nil, nil, Attribution{})
	assert.ErrorIs(t, err, ErrInvalidSession)

	sess := session(1, 0, 0)
	sess.SearchSessionID = ""
	_, err = BuildConfirmRequest(sess, resolvedSlots("t-1"), Attribution{})
	assert.ErrorIs(t, err, ErrInvalidSession)
}

type reportClient struct {
	travel *models.Travel
	err    error
	calls  int
}

func (c *reportClient) TriggerSearch(context.Context, string, models.SearchCriteria) (*models.TriggerResponse, error) {
	return nil, nil
}
func (c *reportClient) GetSession(context.Context, string, string) (*models.SearchSession, error) {
	return nil, nil
}
func (c *reportClient) ReturnFlights(context.Context, string, models.ReturnFlightsRequest) (*models.ReturnFlightsResponse, error) {
	return nil, nil
}
func (c *reportClient) ConfirmFlight(context.Context, string, models.ConfirmFlightRequest) (*models.ConfirmOutcome, error) {
	return nil, nil
}
func (c *reportClient) TravelByID(context.Context, string, string) (*models.Travel, error) {
	c.calls++
	return c.travel, c.err
}

func TestResolveReportID(t *testing.T) {
	ctx := context.Background()

	direct := &models.ConfirmOutcome{
		Kind:   models.OutcomeTravel,
		Travel: &models.TravelBooked{TravelID: "trv-1", TravelReportID: "rep-1"},
	}
	client := &reportClient{}
	assert.Equal(t, "rep-1", ResolveReportID(ctx, client, "tok", direct))
	assert.Zero(t, client.calls, "no fetch when the response already carries the report")

	viaFetch := &models.ConfirmOutcome{
		Kind:   models.OutcomeTravel,
		Travel: &models.TravelBooked{TravelID: "trv-1"},
	}
	client = &reportClient{travel: &models.Travel{ID: "trv-1", TravelReportID: "rep-2"}}
	assert.Equal(t, "rep-2", ResolveReportID(ctx, client, "tok", viaFetch))

	client = &reportClient{err: errors.New("unavailable")}
	assert.Empty(t, ResolveReportID(ctx, client, "tok", viaFetch), "fallback failures resolve to empty, not error")

	payment := &models.ConfirmOutcome{Kind: models.OutcomePayment, Payment: &models.PaymentInitiated{}}
	assert.Empty(t, ResolveReportID(ctx, client, "tok", payment))
}
