// SPDX-License-Identifier: MIT

package oracle

import (
	"context"
	"errors"

	"github.com/katalvlaran/labyrinth/core"
)

// Sentinel errors.
var (
	// ErrSessionClosed indicates a call on a session that is no longer
	// Active.
	ErrSessionClosed = errors.New("oracle: session closed")

	// ErrUnknownSession indicates a session id the service does not know.
	ErrUnknownSession = errors.New("oracle: unknown session")

	// ErrStatus indicates a non-2xx HTTP response.
	ErrStatus = errors.New("oracle: unexpected status")

	// ErrPlanTooLong indicates a plan over the action limit.
	ErrPlanTooLong = errors.New("oracle: plan exceeds action limit")

	// ErrBadResponse indicates a malformed service response.
	ErrBadResponse = errors.New("oracle: malformed response")

	// ErrTooFewRooms indicates a simulator with no rooms.
	ErrTooFewRooms = errors.New("oracle: room count must be >= 1")
)

// Client is the raw oracle API.
type Client interface {
	// Select opens a session for problem and returns its id.
	Select(ctx context.Context, problem string) (string, error)
	// Explore runs plans in encoded form and returns one label sequence per
	// plan, in order.
	Explore(ctx context.Context, session string, plans []string) (ExploreResult, error)
	// Guess submits a map and ends the session.
	Guess(ctx context.Context, session string, m *core.Map) (bool, error)
	// Abort ends the session without a guess.
	Abort(ctx context.Context, session string) error
}

// ExploreResult is the /explore response body.
type ExploreResult struct {
	Results    [][]int `json:"results"`
	QueryCount int     `json:"queryCount"`
}
