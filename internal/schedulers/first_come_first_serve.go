package schedulers

import (
	"sort"

	"cpu-scheduler/internal/core"
)

// firstComeFirstServe runs processes to completion in arrival order.
type firstComeFirstServe struct {
	order []int
	pos   int
}

func newFirstComeFirstServe(set core.ProcessSet) *firstComeFirstServe {
	return &firstComeFirstServe{order: sortByArrival(set)}
}

func (f *firstComeFirstServe) next(s *simulation) (int, int, bool) {
	if f.pos >= len(f.order) || !s.arrived(f.order[f.pos]) {
		return 0, 0, false
	}
	index := f.order[f.pos]
	return index, s.remaining[index], true
}

func (f *firstComeFirstServe) yield(*simulation, int) {
	f.pos++
}

func (f *firstComeFirstServe) coalesce() bool {
	return false
}

// sortByArrival returns input indexes ordered by arrival time; equal
// arrivals keep input order.
func sortByArrival(set core.ProcessSet) []int {
	processes := set.Processes()
	order := make([]int, len(processes))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(i, j int) bool {
		return processes[order[i]].ArrivalTime < processes[order[j]].ArrivalTime
	})
	return order
}
