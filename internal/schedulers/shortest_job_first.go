package schedulers

// shortestJobFirst is non-preemptive: among arrived processes the smallest
// burst runs to completion, earliest input position winning ties.
type shortestJobFirst struct{}

func (shortestJobFirst) next(s *simulation) (int, int, bool) {
	shortest := -1
	for i, p := range s.processes {
		if s.done(i) || !s.arrived(i) {
			continue
		}
		if shortest < 0 || p.BurstTime < s.processes[shortest].BurstTime {
			shortest = i
		}
	}
	if shortest < 0 {
		return 0, 0, false
	}
	return shortest, s.remaining[shortest], true
}

func (shortestJobFirst) yield(*simulation, int) {}

func (shortestJobFirst) coalesce() bool {
	return false
}
