// SPDX-License-Identifier: MIT

package oracle

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/katalvlaran/labyrinth/core"
)

// DefaultAbortTimeout bounds the abort call issued on release.
const DefaultAbortTimeout = 10 * time.Second

// State is a session's lifecycle stage.
type State uint8

const (
	Active State = iota
	Completing
	Aborted
)

// String returns the lower-case state name.
func (s State) String() string {
	switch s {
	case Active:
		return "active"
	case Completing:
		return "completing"
	default:
		return "aborted"
	}
}

// SessionOption configures Open.
type SessionOption func(*Session)

// WithLogger attaches a logger for lifecycle events.
func WithLogger(l zerolog.Logger) SessionOption {
	return func(s *Session) { s.log = l }
}

// WithAbortTimeout bounds the release call.
func WithAbortTimeout(d time.Duration) SessionOption {
	return func(s *Session) {
		if d > 0 {
			s.abortTimeout = d
		}
	}
}

// Session is one opened problem session.
type Session struct {
	client       Client
	id           string
	problem      string
	abortTimeout time.Duration
	log          zerolog.Logger

	mu      sync.Mutex
	state   State
	queries int
}

// Open selects problem and returns an Active session.
func Open(ctx context.Context, client Client, problem string, opts ...SessionOption) (*Session, error) {
	s := &Session{
		client:       client,
		problem:      problem,
		abortTimeout: DefaultAbortTimeout,
		log:          zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	id, err := client.Select(ctx, problem)
	if err != nil {
		return nil, fmt.Errorf("oracle: select %q: %w", problem, err)
	}
	s.id = id
	s.log.Info().Str("session", id).Str("problem", problem).Msg("session_open")

	return s, nil
}

// ID is the service's session id.
func (s *Session) ID() string { return s.id }

// State returns the current lifecycle stage.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.state
}

// Queries is the last query count the service reported.
func (s *Session) Queries() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.queries
}

// Explore sends one batch. When ctx ends mid-call the session is aborted.
func (s *Session) Explore(ctx context.Context, plans []core.Plan) ([][]core.Label, error) {
	if s.State() != Active {
		return nil, ErrSessionClosed
	}
	raw := make([]string, len(plans))
	for i, p := range plans {
		raw[i] = p.String()
	}

	res, err := s.client.Explore(ctx, s.id, raw)
	if err != nil {
		if ctx.Err() != nil {
			_ = s.Abort(ctx)
		}
		return nil, err
	}

	out := make([][]core.Label, len(res.Results))
	for i, r := range res.Results {
		if out[i], err = core.LabelsFromInts(r); err != nil {
			return nil, fmt.Errorf("%w: result %d: %v", ErrBadResponse, i, err)
		}
	}
	s.mu.Lock()
	s.queries = res.QueryCount
	s.mu.Unlock()

	return out, nil
}

// Guess submits m. The session moves to Completing whatever the outcome.
func (s *Session) Guess(ctx context.Context, m *core.Map) (bool, error) {
	s.mu.Lock()
	if s.state != Active {
		s.mu.Unlock()
		return false, ErrSessionClosed
	}
	s.state = Completing
	s.mu.Unlock()

	ok, err := s.client.Guess(ctx, s.id, m)
	if err != nil {
		return false, fmt.Errorf("oracle: guess: %w", err)
	}
	s.log.Info().Str("session", s.id).Bool("correct", ok).Int("queries", s.Queries()).Msg("session_guess")

	return ok, nil
}

// Abort ends an Active session. Later calls do nothing. The abort request
// outlives ctx's cancellation, bounded by the abort timeout.
func (s *Session) Abort(ctx context.Context) error {
	s.mu.Lock()
	if s.state != Active {
		s.mu.Unlock()
		return nil
	}
	s.state = Aborted
	s.mu.Unlock()

	actx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.abortTimeout)
	defer cancel()
	if err := s.client.Abort(actx, s.id); err != nil {
		s.log.Warn().Err(err).Str("session", s.id).Msg("session_abort_failed")
		return fmt.Errorf("oracle: abort %s: %w", s.id, err)
	}
	s.log.Info().Str("session", s.id).Msg("session_aborted")

	return nil
}

// Close releases the session: Active sessions are aborted.
func (s *Session) Close() error {
	return s.Abort(context.Background())
}
