// Package booking holds the client-side state of a booking in flight: the
// outbound/return selection, the time-boxed session that bridges search and
// finalize, and the user's recent-search history.
package booking

import (
	"errors"
	"time"

	"github.com/XavierGabriel92/velt-booking/internal/models"
)

var ErrNoOutboundSelected = errors.New("no outbound flight selected")

// Selection tracks the outbound/return pair during the search step. A new
// outbound always clears the return first, so a return can never be shown
// against a stale outbound.
type Selection struct {
	outbound *models.FlightOption
	ret      *models.FlightOption
}

// SelectOutbound sets the outbound flight. Picking the currently selected
// flight again toggles it off. Any previously selected return is dropped in
// both cases.
func (s *Selection) SelectOutbound(f models.FlightOption) {
	s.ret = nil
	if s.outbound != nil && s.outbound.ID == f.ID {
		s.outbound = nil
		return
	}
	copied := f
	s.outbound = &copied
}

// SelectReturn sets the return flight against the current outbound.
func (s *Selection) SelectReturn(f models.FlightOption) error {
	if s.outbound == nil {
		return ErrNoOutboundSelected
	}
	copied := f
	s.ret = &copied
	return nil
}

func (s *Selection) Clear() {
	s.outbound = nil
	s.ret = nil
}

func (s *Selection) Outbound() *models.FlightOption {
	return s.outbound
}

func (s *Selection) Return() *models.FlightOption {
	return s.ret
}

// Session materializes the selection into a storable booking session.
func (s *Selection) Session(criteria models.SearchCriteria, searchSessionID string, now time.Time) (models.BookingSession, error) {
	if s.outbound == nil {
		return models.BookingSession{}, ErrNoOutboundSelected
	}
	return models.BookingSession{
		SelectedOutbound: s.outbound,
		SelectedReturn:   s.ret,
		SearchParams:     criteria,
		SearchSessionID:  searchSessionID,
		Timestamp:        now,
	}, nil
}
