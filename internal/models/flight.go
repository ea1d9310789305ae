package models

import "time"

type Airline struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

// FareBreakdown is the priced portion of a flight option. BoardingTax is the
// embarkation tax charged on top of the fare; Final is the fare after
// discounts.
type FareBreakdown struct {
	Cash        float64 `json:"cash"`
	Miles       int     `json:"miles,omitempty"`
	BoardingTax float64 `json:"boardingTax"`
	Final       float64 `json:"final"`
	Currency    string  `json:"currency"`
}

type BaggageAllowance struct {
	CabinKg   float64 `json:"cabinKg"`
	CheckedKg float64 `json:"checkedKg"`
}

// FlightOption is one priced candidate returned by the search backend.
// Options are immutable on this side of the API: the workflow only holds
// references to them, it never edits them.
type FlightOption struct {
	ID            string  `json:"id"`
	Hash          string  `json:"hash,omitempty"`
	CombinationID string  `json:"combinationId,omitempty"`
	Airline       Airline `json:"airline"`
	FlightNumber  string  `json:"flightNumber"`

	Origin      string    `json:"origin"`
	Destination string    `json:"destination"`
	Departure   time.Time `json:"departure"`
	Arrival     time.Time `json:"arrival"`

	DurationMinutes int `json:"durationMinutes"`
	Stops           int `json:"stops"`

	Fare    FareBreakdown    `json:"fare"`
	Baggage BaggageAllowance `json:"baggage"`

	// IsCombination marks bundled outbound+return fares as opposed to
	// standalone one-way fares.
	IsCombination bool `json:"isCombination,omitempty"`

	BestValueScore float64 `json:"bestValueScore,omitempty"`
}

// ConfirmableID is the identifier sent on confirmation: the combination id
// for bundled fares, the plain id otherwise.
func (f FlightOption) ConfirmableID() string {
	if f.CombinationID != "" {
		return f.CombinationID
	}
	return f.ID
}
