// SPDX-License-Identifier: MIT

package oracle

import (
	"context"
	"fmt"
	"math/rand"
	"sync"

	"github.com/google/uuid"

	"github.com/katalvlaran/labyrinth/core"
)

// DefaultSimSeed seeds simulators built without WithSimSeed.
const DefaultSimSeed = 0x1ABE1

// SimOption configures a Simulator.
type SimOption func(*simConfig)

type simConfig struct {
	seed  int64
	limit int
}

// WithSimSeed fixes the labyrinth generator's seed.
func WithSimSeed(seed int64) SimOption {
	return func(c *simConfig) { c.seed = seed }
}

// WithActionLimit caps actions per plan; 0 means six per room.
func WithActionLimit(n int) SimOption {
	return func(c *simConfig) { c.limit = n }
}

// Simulator is an in-memory Client over a hidden labyrinth.
type Simulator struct {
	truth *core.Map
	limit int

	mu       sync.Mutex
	sessions map[string]*simSession
}

type simSession struct {
	queries int
	closed  bool
}

// NewSimulator hides a random connected labyrinth of the given size.
func NewSimulator(rooms int, opts ...SimOption) (*Simulator, error) {
	cfg := simConfig{seed: DefaultSimSeed}
	for _, opt := range opts {
		opt(&cfg)
	}
	if rooms < 1 {
		return nil, ErrTooFewRooms
	}

	return newSimulator(RandomMap(rooms, cfg.seed), cfg)
}

// NewSimulatorFromMap hides m.
func NewSimulatorFromMap(m *core.Map, opts ...SimOption) (*Simulator, error) {
	cfg := simConfig{seed: DefaultSimSeed}
	for _, opt := range opts {
		opt(&cfg)
	}
	if err := m.Validate(); err != nil {
		return nil, err
	}

	return newSimulator(m, cfg)
}

func newSimulator(m *core.Map, cfg simConfig) (*Simulator, error) {
	limit := cfg.limit
	if limit <= 0 {
		limit = core.DoorCount * len(m.Rooms)
	}

	return &Simulator{truth: m, limit: limit, sessions: make(map[string]*simSession)}, nil
}

// Map returns a copy of the hidden labyrinth.
func (s *Simulator) Map() *core.Map {
	return &core.Map{
		Rooms:        append([]int(nil), s.truth.Rooms...),
		StartingRoom: s.truth.StartingRoom,
		Connections:  append([]core.Connection(nil), s.truth.Connections...),
	}
}

// ActionLimit is the per-plan action cap.
func (s *Simulator) ActionLimit() int { return s.limit }

// Queries reports the query count charged to session.
func (s *Simulator) Queries(session string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	if ss, ok := s.sessions[session]; ok {
		return ss.queries
	}

	return 0
}

// Select opens a fresh session.
func (s *Simulator) Select(ctx context.Context, _ string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	id := uuid.NewString()
	s.mu.Lock()
	s.sessions[id] = &simSession{}
	s.mu.Unlock()

	return id, nil
}

// Explore executes plans. Each call costs one query plus one per plan.
func (s *Simulator) Explore(ctx context.Context, session string, plans []string) (ExploreResult, error) {
	if err := ctx.Err(); err != nil {
		return ExploreResult{}, err
	}
	results := make([][]int, len(plans))
	for i, raw := range plans {
		p, err := core.ParsePlan(raw)
		if err != nil {
			return ExploreResult{}, fmt.Errorf("oracle: plan %d: %w", i, err)
		}
		if p.Actions() > s.limit {
			return ExploreResult{}, fmt.Errorf("%w: plan %d has %d actions, limit %d", ErrPlanTooLong, i, p.Actions(), s.limit)
		}
		labels, err := s.truth.Execute(p)
		if err != nil {
			return ExploreResult{}, err
		}
		results[i] = make([]int, len(labels))
		for j, l := range labels {
			results[i][j] = int(l)
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	ss, err := s.open(session)
	if err != nil {
		return ExploreResult{}, err
	}
	ss.queries += len(plans) + 1

	return ExploreResult{Results: results, QueryCount: ss.queries}, nil
}

// Guess judges m and closes the session.
func (s *Simulator) Guess(ctx context.Context, session string, m *core.Map) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	ss, err := s.open(session)
	if err != nil {
		return false, err
	}
	ss.closed = true
	if m == nil || len(m.Rooms) != len(s.truth.Rooms) {
		return false, nil
	}
	ok, err := Equivalent(s.truth, m)
	if err != nil {
		// an invalid map is simply wrong
		return false, nil
	}
	return ok, nil
}

// Abort closes session.
func (s *Simulator) Abort(_ context.Context, session string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	ss, err := s.open(session)
	if err != nil {
		return err
	}
	ss.closed = true

	return nil
}

func (s *Simulator) open(session string) (*simSession, error) {
	ss, ok := s.sessions[session]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownSession, session)
	}
	if ss.closed {
		return nil, fmt.Errorf("%w: %s", ErrSessionClosed, session)
	}

	return ss, nil
}

// RandomMap builds a connected labyrinth: room i is labelled i mod 4, a
// random spanning tree links every room to an earlier one that still has a
// free door, and the remaining doors are paired at random. The start is
// room 0.
func RandomMap(rooms int, seed int64) *core.Map {
	rng := rand.New(rand.NewSource(seed))
	m := &core.Map{Rooms: make([]int, rooms)}
	for i := range m.Rooms {
		m.Rooms[i] = i % core.LabelCount
	}

	free := make([][]int, rooms)
	for i := range free {
		free[i] = rng.Perm(core.DoorCount)
	}
	take := func(r int) int {
		d := free[r][0]
		free[r] = free[r][1:]
		return d
	}
	link := func(a core.Endpoint, b core.Endpoint) {
		m.Connections = append(m.Connections, core.Connection{From: a, To: b})
	}

	// open holds earlier rooms with a free door; every new room leaves
	// five, so it is never empty
	open := []int{0}
	for r := 1; r < rooms; r++ {
		i := rng.Intn(len(open))
		parent := open[i]
		link(core.Endpoint{Room: parent, Door: take(parent)}, core.Endpoint{Room: r, Door: take(r)})
		if len(free[parent]) == 0 {
			open[i] = open[len(open)-1]
			open = open[:len(open)-1]
		}
		open = append(open, r)
	}

	var rest []core.Endpoint
	for r := range free {
		for _, d := range free[r] {
			rest = append(rest, core.Endpoint{Room: r, Door: d})
		}
	}
	rng.Shuffle(len(rest), func(i, j int) { rest[i], rest[j] = rest[j], rest[i] })
	for i := 0; i+1 < len(rest); i += 2 {
		link(rest[i], rest[i+1])
	}

	return m
}

// Equivalent reports whether a and b produce the same label sequence for
// every door sequence from their starting rooms. It walks reachable room
// pairs of both maps in lockstep, so the answer is exact.
func Equivalent(a, b *core.Map) (bool, error) {
	ta, err := a.Transitions()
	if err != nil {
		return false, err
	}
	tb, err := b.Transitions()
	if err != nil {
		return false, err
	}

	type pair struct{ x, y int }
	seen := map[pair]bool{{a.StartingRoom, b.StartingRoom}: true}
	queue := []pair{{a.StartingRoom, b.StartingRoom}}
	for len(queue) > 0 {
		p := queue[0]
		queue = queue[1:]
		if a.Rooms[p.x] != b.Rooms[p.y] {
			return false, nil
		}
		for d := range core.DoorCount {
			next := pair{ta[p.x][d], tb[p.y][d]}
			if !seen[next] {
				seen[next] = true
				queue = append(queue, next)
			}
		}
	}

	return true, nil
}
