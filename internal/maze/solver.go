package maze

import "fmt"

// MaxStates bounds the search graph: every cell under every orientation.
const MaxStates = CellCount * OrientationCount

// edge records how a state was first reached.
type edge struct {
	prev   State
	action Action
}

// searcher holds the mutable breadth-first search state.
type searcher struct {
	target Cell
	queue  []State
	parent map[State]edge
}

// Solve returns a shortest button sequence that takes start to a state whose
// cell is target. Only presses that move are followed. A start already on the
// target yields an empty sequence.
func Solve(start State, target Cell) ([]Action, error) {
	if !start.Valid() {
		return nil, fmt.Errorf("%w: start %s", ErrInvalidCoordinate, start)
	}
	if !target.Valid() {
		return nil, fmt.Errorf("%w: target %d", ErrInvalidCoordinate, target)
	}

	return newSearcher(target).run(start)
}

func newSearcher(target Cell) *searcher {
	return &searcher{
		target: target,
		queue:  make([]State, 0, MaxStates),
		parent: make(map[State]edge, MaxStates),
	}
}

// run searches from start. States already in parent are never entered.
func (s *searcher) run(start State) ([]Action, error) {
	s.parent[start] = edge{prev: start}
	s.queue = append(s.queue, start)

	for len(s.queue) > 0 {
		cur := s.queue[0]
		s.queue = s.queue[1:]

		if cur.Cell == s.target {
			return s.path(start, cur), nil
		}
		s.expand(cur)
	}
	return nil, fmt.Errorf("%w: from %s to cell %d", ErrNoPath, start, s.target)
}

// expand enqueues every unseen state reachable by one successful move.
func (s *searcher) expand(cur State) {
	for _, a := range Actions {
		next, moved := cur.AttemptTurn(a)
		if !moved {
			continue
		}
		if _, seen := s.parent[next]; seen {
			continue
		}
		s.parent[next] = edge{prev: cur, action: a}
		s.queue = append(s.queue, next)
	}
}

// path walks parent links back from goal and reverses them.
func (s *searcher) path(start, goal State) []Action {
	var rev []Action
	for cur := goal; cur != start; {
		e := s.parent[cur]
		rev = append(rev, e.action)
		cur = e.prev
	}
	out := make([]Action, len(rev))
	for i, a := range rev {
		out[len(rev)-1-i] = a
	}
	return out
}

// FormatActions renders actions in the command language, e.g. "u r r d".
func FormatActions(actions []Action) string {
	b := make([]byte, 0, 2*len(actions))
	for i, a := range actions {
		if i > 0 {
			b = append(b, ' ')
		}
		b = append(b, a.Letter())
	}
	return string(b)
}
