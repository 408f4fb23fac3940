// SPDX-License-Identifier: MIT

package core

import "fmt"

// Endpoint names one door of one room.
type Endpoint struct {
	Room int `json:"room"`
	Door int `json:"door"`
}

// Connection is an undirected door-to-door link.
type Connection struct {
	From Endpoint `json:"from"`
	To   Endpoint `json:"to"`
}

// Map is a complete labyrinth description in submission form.
type Map struct {
	Rooms        []int        `json:"rooms"`
	StartingRoom int          `json:"startingRoom"`
	Connections  []Connection `json:"connections"`
}

// Validate checks labels, the starting room, and that every door of every
// room appears in exactly one connection.
func (m *Map) Validate() error {
	n := len(m.Rooms)
	if n == 0 {
		return fmt.Errorf("%w: no rooms", ErrBadMap)
	}
	for i, l := range m.Rooms {
		if l < 0 || l >= LabelCount {
			return fmt.Errorf("%w: room %d label=%d", ErrLabelOutOfRange, i, l)
		}
	}
	if m.StartingRoom < 0 || m.StartingRoom >= n {
		return fmt.Errorf("%w: starting room %d of %d", ErrBadMap, m.StartingRoom, n)
	}

	used := make([]int, n*DoorCount)
	mark := func(e Endpoint) error {
		if e.Room < 0 || e.Room >= n || e.Door < 0 || e.Door >= DoorCount {
			return fmt.Errorf("%w: endpoint (%d,%d) out of range", ErrBadMap, e.Room, e.Door)
		}
		used[e.Room*DoorCount+e.Door]++

		return nil
	}
	for _, c := range m.Connections {
		if err := mark(c.From); err != nil {
			return err
		}
		// a door wired to itself is a single use
		if c.From == c.To {
			continue
		}
		if err := mark(c.To); err != nil {
			return err
		}
	}
	for i, u := range used {
		if u != 1 {
			return fmt.Errorf("%w: door (%d,%d) used %d times", ErrBadMap, i/DoorCount, i%DoorCount, u)
		}
	}

	return nil
}

// Transitions expands the connections into a directed transition table.
// The map must be valid.
func (m *Map) Transitions() (Transitions, error) {
	if err := m.Validate(); err != nil {
		return nil, err
	}
	t := make(Transitions, len(m.Rooms))
	for i := range t {
		t[i] = EmptyPorts()
	}
	for _, c := range m.Connections {
		t[c.From.Room][c.From.Door] = c.To.Room
		t[c.To.Room][c.To.Door] = c.From.Room
	}

	return t, nil
}

// Execute replays plan on the map from the starting room and returns the
// observed labels. Marker writes persist for the rest of the plan only.
func (m *Map) Execute(plan Plan) ([]Label, error) {
	t, err := m.Transitions()
	if err != nil {
		return nil, err
	}
	if err = plan.Validate(); err != nil {
		return nil, err
	}

	seen := make([]Label, len(m.Rooms))
	for i, l := range m.Rooms {
		seen[i] = Label(l)
	}
	room := m.StartingRoom
	out := make([]Label, 0, plan.ResponseLen())
	out = append(out, seen[room])
	for _, s := range plan.steps {
		if s.Kind == StepMark {
			seen[room] = Label(s.Value)
		} else {
			room = t[room][s.Value]
		}
		out = append(out, seen[room])
	}

	return out, nil
}
