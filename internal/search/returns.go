package search

import (
	"context"

	"github.com/XavierGabriel92/velt-booking/internal/models"
	"github.com/XavierGabriel92/velt-booking/internal/upstream"
)

// ReturnFetchError marks a return-flight fetch failure as recoverable: the
// caller keeps the outbound selection and offers a retry.
type ReturnFetchError struct {
	Err error
}

func (e *ReturnFetchError) Error() string {
	return "return flights: " + e.Err.Error()
}

func (e *ReturnFetchError) Unwrap() error {
	return e.Err
}

// ReturnFetcher retrieves return options compatible with a chosen outbound
// flight, keyed to the original search session.
type ReturnFetcher struct {
	client upstream.Client
}

func NewReturnFetcher(client upstream.Client) *ReturnFetcher {
	return &ReturnFetcher{client: client}
}

// ShouldFetch gates the return search: round trip, outbound chosen and a
// return date present. A changed outbound selection re-triggers it; other
// parameter changes do not.
func ShouldFetch(criteria models.SearchCriteria, outbound *models.FlightOption) bool {
	return criteria.TripType == models.TripRoundTrip &&
		outbound != nil &&
		criteria.ReturnDate != ""
}

// BuildRequest assembles the correlated-return request for a selected
// outbound flight.
func BuildRequest(criteria models.SearchCriteria, sessionID string, outbound models.FlightOption, userID string) models.ReturnFlightsRequest {
	return models.ReturnFlightsRequest{
		OriginalSearchSessionID:  sessionID,
		SelectedOutboundFlightID: outbound.ID,
		SelectedOutboundHash:     outbound.Hash,
		ReturnDate:               criteria.ReturnDate,
		Adults:                   criteria.Adults,
		Children:                 criteria.Children,
		Infants:                  criteria.Infants,
		CabinClass:               criteria.CabinClass,
		UserID:                   userID,
		TravelerIDs:              criteria.TravelerIDs,
	}
}

// Fetch returns correlated flights first, then the remaining return options.
// Failures do not roll back the outbound selection.
func (f *ReturnFetcher) Fetch(ctx context.Context, token string, req models.ReturnFlightsRequest) (*models.ReturnFlightsResponse, error) {
	resp, err := f.client.ReturnFlights(ctx, token, req)
	if err != nil {
		return nil, &ReturnFetchError{Err: err}
	}
	if resp.CorrelatedFlights == nil {
		resp.CorrelatedFlights = []models.FlightOption{}
	}
	if resp.OtherFlights == nil {
		resp.OtherFlights = []models.FlightOption{}
	}
	return resp, nil
}
