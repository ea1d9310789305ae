package models

import (
	"fmt"
	"strings"
	"time"
)

type TripType string

const (
	TripRoundTrip TripType = "RoundTrip"
	TripOneWay    TripType = "OneWay"
)

const dateLayout = "2006-01-02"

// SearchCriteria is the user-supplied input for an outbound flight search.
type SearchCriteria struct {
	Origin        string   `json:"origin"`
	Destination   string   `json:"destination"`
	DepartureDate string   `json:"departureDate"`
	ReturnDate    string   `json:"returnDate,omitempty"`
	TripType      TripType `json:"tripType"`
	Adults        int      `json:"adults"`
	Children      int      `json:"children,omitempty"`
	Infants       int      `json:"infants,omitempty"`
	CabinClass    string   `json:"cabinClass"`
	TravelerIDs   []string `json:"travelerIds,omitempty"`
}

type ValidationError string

func (e ValidationError) Error() string {
	return string(e)
}

const (
	ErrMissingOrigin         ValidationError = "origin is required"
	ErrMissingDestination    ValidationError = "destination is required"
	ErrMissingDepartureDate  ValidationError = "departure_date is required"
	ErrSameOriginDestination ValidationError = "origin and destination must differ"
	ErrDepartureInPast       ValidationError = "departure_date must not be in the past"
	ErrMissingReturnDate     ValidationError = "return_date is required for round trips"
	ErrReturnBeforeDeparture ValidationError = "return_date must not be before departure_date"
	ErrNegativePassengers    ValidationError = "passenger counts must not be negative"
	ErrBadDateFormat         ValidationError = "dates must use the YYYY-MM-DD format"
)

// Validate normalizes defaults and checks the search invariants.
func (c *SearchCriteria) Validate() error {
	return c.ValidateAt(time.Now())
}

// ValidateAt is Validate with an explicit "today" reference.
func (c *SearchCriteria) ValidateAt(now time.Time) error {
	c.Origin = strings.ToUpper(strings.TrimSpace(c.Origin))
	c.Destination = strings.ToUpper(strings.TrimSpace(c.Destination))

	if c.Origin == "" {
		return ErrMissingOrigin
	}
	if c.Destination == "" {
		return ErrMissingDestination
	}
	if c.Origin == c.Destination {
		return ErrSameOriginDestination
	}
	if c.DepartureDate == "" {
		return ErrMissingDepartureDate
	}
	if c.Children < 0 || c.Infants < 0 || c.Adults < 0 {
		return ErrNegativePassengers
	}
	if c.Adults == 0 {
		c.Adults = 1
	}
	if c.CabinClass == "" {
		c.CabinClass = "Economy"
	}
	if c.TripType == "" {
		c.TripType = TripRoundTrip
	}

	departure, err := time.Parse(dateLayout, c.DepartureDate)
	if err != nil {
		return ErrBadDateFormat
	}
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	if departure.Before(today) {
		return ErrDepartureInPast
	}

	if c.TripType == TripRoundTrip {
		if c.ReturnDate == "" {
			return ErrMissingReturnDate
		}
		ret, err := time.Parse(dateLayout, c.ReturnDate)
		if err != nil {
			return ErrBadDateFormat
		}
		if ret.Before(departure) {
			return ErrReturnBeforeDeparture
		}
	}

	return nil
}

// PassengerCount is the number of passenger slots the criteria implies.
func (c SearchCriteria) PassengerCount() int {
	return c.Adults + c.Children + c.Infants
}

// Key identifies a search for de-duplication in the recent-search history.
func (c SearchCriteria) Key() string {
	return fmt.Sprintf("%s|%s|%s|%s|%d", c.Origin, c.Destination, c.DepartureDate, c.ReturnDate, c.Adults)
}

// LastFlightSearch is one entry in a user's recent-search history.
type LastFlightSearch struct {
	SearchCriteria
	TravelerNames string    `json:"travelerNames,omitempty"`
	CreatedAt     time.Time `json:"createdAt"`
}
