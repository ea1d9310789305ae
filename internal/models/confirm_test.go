package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeConfirmOutcome_TravelBranch(t *testing.T) {
	raw := []byte(`{
		"travelId": "trv-1",
		"travelItemId": "itm-1",
		"requiresApproval": true,
		"validationViolations": ["advance purchase under 7 days"],
		"travelReportId": "rep-9"
	}`)

	outcome, err := DecodeConfirmOutcome(raw)
	require.NoError(t, err)

	assert.Equal(t, OutcomeTravel, outcome.Kind)
	require.NotNil(t, outcome.Travel)
	assert.Nil(t, outcome.Payment)
	assert.Equal(t, "trv-1", outcome.Travel.TravelID)
	assert.True(t, outcome.Travel.RequiresApproval)
	assert.Equal(t, []string{"advance purchase under 7 days"}, outcome.Travel.ValidationViolations)
	assert.Equal(t, "rep-9", outcome.Travel.TravelReportID)
}

func TestDecodeConfirmOutcome_TravelBranchPascalCase(t *testing.T) {
	raw := []byte(`{"TravelId": "trv-2", "TravelItemId": "itm-2", "RequiresApproval": false}`)

	outcome, err := DecodeConfirmOutcome(raw)
	require.NoError(t, err)

	assert.Equal(t, OutcomeTravel, outcome.Kind)
	require.NotNil(t, outcome.Travel)
	assert.Equal(t, "trv-2", outcome.Travel.TravelID)
}

func TestDecodeConfirmOutcome_PaymentBranch(t *testing.T) {
	raw := []byte(`{"paymentId": "pay-1", "checkoutUrl": "https://pay.example/1", "amount": 1330.0}`)

	outcome, err := DecodeConfirmOutcome(raw)
	require.NoError(t, err)

	assert.Equal(t, OutcomePayment, outcome.Kind)
	require.NotNil(t, outcome.Payment)
	assert.Nil(t, outcome.Travel)
	assert.Equal(t, "pay-1", outcome.Payment.PaymentID)
}

func TestDecodeConfirmOutcome_EmptyTravelIDIsPayment(t *testing.T) {
	raw := []byte(`{"travelId": "", "paymentId": "pay-2"}`)

	outcome, err := DecodeConfirmOutcome(raw)
	require.NoError(t, err)
	assert.Equal(t, OutcomePayment, outcome.Kind)
}

func TestDecodeConfirmOutcome_BadPayload(t *testing.T) {
	_, err := DecodeConfirmOutcome([]byte(`not json`))
	assert.Error(t, err)
}

func TestFlightOption_ConfirmableID(t *testing.T) {
	bundled := FlightOption{ID: "f-1", CombinationID: "combo-1"}
	assert.Equal(t, "combo-1", bundled.ConfirmableID())

	standalone := FlightOption{ID: "f-2"}
	assert.Equal(t, "f-2", standalone.ConfirmableID())
}

func TestBookingSession_Valid(t *testing.T) {
	outbound := FlightOption{ID: "f-1"}

	assert.True(t, BookingSession{SelectedOutbound: &outbound, SearchSessionID: "sess-1"}.Valid())
	assert.False(t, BookingSession{SelectedOutbound: &outbound}.Valid())
	assert.False(t, BookingSession{SearchSessionID: "sess-1"}.Valid())
}

func TestReturnFlightsResponse_All(t *testing.T) {
	resp := ReturnFlightsResponse{
		CorrelatedFlights: []FlightOption{{ID: "c-1"}, {ID: "c-2"}},
		OtherFlights:      []FlightOption{{ID: "o-1"}},
	}

	all := resp.All()
	require.Len(t, all, 3)
	assert.Equal(t, "c-1", all[0].ID)
	assert.Equal(t, "c-2", all[1].ID)
	assert.Equal(t, "o-1", all[2].ID)
}
