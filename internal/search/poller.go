// Package search owns the asynchronous flight-search workflow: triggering a
// search job on the backend, polling it to completion under a wall-clock
// bound, and fetching return flights correlated with a chosen outbound.
package search

import (
	"context"
	"time"

	"github.com/XavierGabriel92/velt-booking/internal/models"
	"github.com/XavierGabriel92/velt-booking/internal/upstream"
)

// State is the poller's position in the trigger/poll lifecycle.
type State string

const (
	StateIdle       State = "idle"
	StateTriggering State = "triggering"
	StatePolling    State = "polling"
	StateCompleted  State = "completed"
	StateExpired    State = "expired"
	StateTimedOut   State = "timed_out"
	StateFailed     State = "failed"
)

const (
	DefaultPollInterval = 2 * time.Second
	DefaultPollTimeout  = 120 * time.Second
)

type Config struct {
	// Interval between consecutive status fetches. Polls are strictly
	// sequential; two fetches for the same session are never in flight at
	// once from one run.
	Interval time.Duration
	// Timeout bounds the whole run. Hitting it is not an error: one final
	// fetch is made and whatever state is present is returned, even if the
	// session is still in progress.
	Timeout time.Duration
	// Provider label stamped onto the normalized result.
	Provider string
}

// Poller turns the backend's asynchronous search into a single awaitable
// result with bounded latency.
type Poller struct {
	client upstream.Client
	cfg    Config
	now    func() time.Time
	sleep  func(ctx context.Context, d time.Duration) error
}

func NewPoller(client upstream.Client, cfg Config) *Poller {
	if cfg.Interval <= 0 {
		cfg.Interval = DefaultPollInterval
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultPollTimeout
	}
	if cfg.Provider == "" {
		cfg.Provider = "railway"
	}
	return &Poller{
		client: client,
		cfg:    cfg,
		now:    time.Now,
		sleep:  sleepCtx,
	}
}

// Run triggers a search and polls the resulting session until it completes,
// expires, or the configured timeout elapses. The returned State is the
// terminal state of the run; err is non-nil only for StateFailed.
func (p *Poller) Run(ctx context.Context, token string, criteria models.SearchCriteria) (*models.SearchResult, State, error) {
	trig, err := p.client.TriggerSearch(ctx, token, criteria)
	if err != nil {
		return nil, StateFailed, err
	}

	sessionID := trig.SearchSessionID
	deadline := p.now().Add(p.cfg.Timeout)

	// The deadline is checked before each fetch and every fetch is followed
	// by a full interval sleep, so consecutive polls (the post-deadline one
	// included) are never closer than the interval and a run makes at most
	// ceil(timeout/interval)+1 of them.
	for p.now().Before(deadline) {
		sess, err := p.client.GetSession(ctx, token, sessionID)
		if err != nil {
			return nil, StateFailed, err
		}

		switch {
		case sess.Expired:
			return p.normalize(sessionID, sess), StateExpired, nil
		case sess.Status == models.SessionCompleted:
			return p.normalize(sessionID, sess), StateCompleted, nil
		}

		if err := p.sleep(ctx, p.cfg.Interval); err != nil {
			return nil, StateFailed, err
		}
	}

	// One last look after the deadline; a silent partial result beats an
	// error here, the caller decides how to treat an incomplete session.
	sess, err := p.client.GetSession(ctx, token, sessionID)
	if err != nil {
		return nil, StateFailed, err
	}
	switch {
	case sess.Expired:
		return p.normalize(sessionID, sess), StateExpired, nil
	case sess.Status == models.SessionCompleted:
		return p.normalize(sessionID, sess), StateCompleted, nil
	}
	return p.normalize(sessionID, sess), StateTimedOut, nil
}

func (p *Poller) normalize(sessionID string, sess *models.SearchSession) *models.SearchResult {
	flights := sess.Flights
	if flights == nil {
		flights = []models.FlightOption{}
	}
	status := sess.Status
	if status == "" {
		status = models.SessionInProgress
	}
	return &models.SearchResult{
		SearchSessionID: sessionID,
		Provider:        p.cfg.Provider,
		Status:          status,
		Flights:         flights,
		MinimumPrice:    sess.MinimumPrice,
		ProcessedAt:     p.now(),
	}
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	select {
	case <-time.After(d):
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
