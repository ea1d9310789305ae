package models

import "time"

type SessionStatus string

const (
	SessionInProgress SessionStatus = "in_progress"
	SessionCompleted  SessionStatus = "completed"
)

// TriggerResponse is what the backend returns when an asynchronous search is
// started. A missing SearchSessionID makes the whole search attempt fatal.
type TriggerResponse struct {
	SearchSessionID string        `json:"searchSessionId"`
	Status          SessionStatus `json:"status,omitempty"`
	Message         string        `json:"message,omitempty"`
}

// SearchSession is the server-side search job as observed through polling.
// The client never mutates it; state moves forward only on the backend.
type SearchSession struct {
	SearchSessionID string         `json:"searchSessionId"`
	Status          SessionStatus  `json:"status"`
	Expired         bool           `json:"expired,omitempty"`
	Flights         []FlightOption `json:"flights,omitempty"`
	MinimumPrice    *float64       `json:"minimumPrice,omitempty"`
}

// SearchResult is the normalized output of a trigger-and-poll run. Flights is
// never nil and ProcessedAt is the local wall clock when polling finished,
// not a server timestamp.
type SearchResult struct {
	SearchSessionID string         `json:"searchSessionId"`
	Provider        string         `json:"provider"`
	Status          SessionStatus  `json:"status"`
	Flights         []FlightOption `json:"flights"`
	MinimumPrice    *float64       `json:"minimumPrice,omitempty"`
	ProcessedAt     time.Time      `json:"processedAt"`
}

// ReturnFlightsRequest asks for return options correlated with a chosen
// outbound flight, tied to the original search session.
type ReturnFlightsRequest struct {
	OriginalSearchSessionID  string   `json:"originalSearchSessionId"`
	SelectedOutboundFlightID string   `json:"selectedOutboundFlightId"`
	SelectedOutboundHash     string   `json:"selectedOutboundHash,omitempty"`
	ReturnDate               string   `json:"returnDate"`
	Adults                   int      `json:"adults"`
	Children                 int      `json:"children,omitempty"`
	Infants                  int      `json:"infants,omitempty"`
	CabinClass               string   `json:"cabinClass"`
	UserID                   string   `json:"userId,omitempty"`
	TravelerIDs              []string `json:"travelerIds,omitempty"`
}

// ReturnFlightsResponse keeps correlated (bundled with the outbound) and
// other return flights distinguishable; display order is correlated first.
type ReturnFlightsResponse struct {
	CorrelatedFlights []FlightOption `json:"correlatedFlights"`
	OtherFlights      []FlightOption `json:"otherFlights"`
}

// All concatenates both lists in display order.
func (r ReturnFlightsResponse) All() []FlightOption {
	out := make([]FlightOption, 0, len(r.CorrelatedFlights)+len(r.OtherFlights))
	out = append(out, r.CorrelatedFlights...)
	out = append(out, r.OtherFlights...)
	return out
}
