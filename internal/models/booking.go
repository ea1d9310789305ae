package models

import "time"

// BookingSession carries a flight selection from the search step to the
// finalize step without a backend round trip. It is only considered valid
// while younger than the store TTL and with an outbound flight present.
type BookingSession struct {
	SelectedOutbound *FlightOption  `json:"selectedOutbound"`
	SelectedReturn   *FlightOption  `json:"selectedReturn,omitempty"`
	SearchParams     SearchCriteria `json:"searchParams"`
	SearchSessionID  string         `json:"searchSessionId"`
	Timestamp        time.Time      `json:"timestamp"`
}

// Valid reports whether the session can back a confirmation call.
func (s BookingSession) Valid() bool {
	return s.SearchSessionID != "" && s.SelectedOutbound != nil
}

type PassengerType string

const (
	PassengerAdult  PassengerType = "adult"
	PassengerChild  PassengerType = "child"
	PassengerInfant PassengerType = "infant"
)

// InlinePassenger is a hand-entered passenger for a slot that does not
// reference a registered company traveler.
type InlinePassenger struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	BirthDate string `json:"birthDate"`
	Document  string `json:"document"`
	Gender    string `json:"gender,omitempty"`
	Passport  string `json:"passport,omitempty"`
}

// Complete reports whether every mandatory inline field is filled.
func (p InlinePassenger) Complete() bool {
	return p.FirstName != "" &&
		p.LastName != "" &&
		p.Email != "" &&
		p.Phone != "" &&
		p.BirthDate != "" &&
		p.Document != ""
}

// PassengerSlot is one seat implied by the search criteria counts, ordered
// adults first, then children, then infants. A slot resolves either to a
// known traveler id or to a complete inline passenger.
type PassengerSlot struct {
	Type         PassengerType    `json:"type"`
	TravelerID   string           `json:"travelerId,omitempty"`
	Inline       *InlinePassenger `json:"inline,omitempty"`
	ExtraBaggage int              `json:"extraBaggage"`
}

// Resolved reports whether the slot identifies a passenger.
func (s PassengerSlot) Resolved() bool {
	if s.TravelerID != "" {
		return true
	}
	return s.Inline != nil && s.Inline.Complete()
}
