package schedulers

// shortestRemainingTimeNext re-decides every time unit, so a newly arrived
// shorter process preempts the running one. Consecutive units of the same
// process merge into one segment.
type shortestRemainingTimeNext struct{}

func (shortestRemainingTimeNext) next(s *simulation) (int, int, bool) {
	shortest := -1
	for i := range s.processes {
		if s.done(i) || !s.arrived(i) {
			continue
		}
		if shortest < 0 || s.remaining[i] < s.remaining[shortest] {
			shortest = i
		}
	}
	if shortest < 0 {
		return 0, 0, false
	}
	return shortest, 1, true
}

func (shortestRemainingTimeNext) yield(*simulation, int) {}

func (shortestRemainingTimeNext) coalesce() bool {
	return true
}
