package search

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/XavierGabriel92/velt-booking/internal/models"
)

func TestShouldFetch(t *testing.T) {
	outbound := &models.FlightOption{ID: "f-1"}
	roundTrip := testCriteria()

	oneWay := testCriteria()
	oneWay.TripType = models.TripOneWay

	noReturnDate := testCriteria()
	noReturnDate.ReturnDate = ""

	assert.True(t, ShouldFetch(roundTrip, outbound))
	assert.False(t, ShouldFetch(oneWay, outbound))
	assert.False(t, ShouldFetch(roundTrip, nil))
	assert.False(t, ShouldFetch(noReturnDate, outbound))
}

func TestBuildRequest(t *testing.T) {
	criteria := testCriteria()
	criteria.Children = 1
	criteria.TravelerIDs = []string{"trav-1", "trav-2"}
	outbound := models.FlightOption{ID: "f-1", Hash: "h-1"}

	req := BuildRequest(criteria, "sess-1", outbound, "user-1")

	assert.Equal(t, "sess-1", req.OriginalSearchSessionID)
	assert.Equal(t, "f-1", req.SelectedOutboundFlightID)
	assert.Equal(t, "h-1", req.SelectedOutboundHash)
	assert.Equal(t, criteria.ReturnDate, req.ReturnDate)
	assert.Equal(t, 1, req.Adults)
	assert.Equal(t, 1, req.Children)
	assert.Equal(t, "user-1", req.UserID)
	assert.Equal(t, []string{"trav-1", "trav-2"}, req.TravelerIDs)
}

func TestReturnFetcher_OrderAndNormalization(t *testing.T) {
	client := &fakeClient{
		returnResp: &models.ReturnFlightsResponse{
			CorrelatedFlights: []models.FlightOption{{ID: "c-1"}},
		},
	}
	fetcher := NewReturnFetcher(client)

	resp, err := fetcher.Fetch(context.Background(), "tok", models.ReturnFlightsRequest{OriginalSearchSessionID: "sess-1"})
	require.NoError(t, err)

	require.NotNil(t, resp.OtherFlights, "missing list must normalize to empty")
	all := resp.All()
	require.Len(t, all, 1)
	assert.Equal(t, "c-1", all[0].ID)
}

func TestReturnFetcher_ErrorIsRecoverable(t *testing.T) {
	cause := errors.New("boom")
	client := &fakeClient{returnErr: cause}
	fetcher := NewReturnFetcher(client)

	_, err := fetcher.Fetch(context.Background(), "tok", models.ReturnFlightsRequest{})
	require.Error(t, err)

	var fetchErr *ReturnFetchError
	require.ErrorAs(t, err, &fetchErr)
	assert.ErrorIs(t, err, cause)
}
