package schedulers

import "cpu-scheduler/internal/core"

// roundRobin hands out fixed slices from a FIFO ready queue. Processes that
// arrive during a slice are queued ahead of the preempted process, and each
// slice stays a separate trace segment.
type roundRobin struct {
	timeQuantum int
	arrivals    []int
	admitted    int
	readyQueue  []int
}

func newRoundRobin(set core.ProcessSet, timeQuantum int) *roundRobin {
	return &roundRobin{
		timeQuantum: timeQuantum,
		arrivals:    sortByArrival(set),
		readyQueue:  make([]int, 0, set.Len()),
	}
}

// admit queues every process that has arrived by s.now.
func (r *roundRobin) admit(s *simulation) {
	for r.admitted < len(r.arrivals) && s.arrived(r.arrivals[r.admitted]) {
		r.readyQueue = append(r.readyQueue, r.arrivals[r.admitted])
		r.admitted++
	}
}

func (r *roundRobin) next(s *simulation) (int, int, bool) {
	r.admit(s)
	if len(r.readyQueue) == 0 {
		return 0, 0, false
	}
	index := r.readyQueue[0]
	r.readyQueue = r.readyQueue[1:]

	run := r.timeQuantum
	if s.remaining[index] < run {
		run = s.remaining[index]
	}
	return index, run, true
}

func (r *roundRobin) yield(s *simulation, index int) {
	r.admit(s)
	if !s.done(index) {
		r.readyQueue = append(r.readyQueue, index)
	}
}

func (r *roundRobin) coalesce() bool {
	return false
}
