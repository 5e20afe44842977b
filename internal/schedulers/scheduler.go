package schedulers

import (
	"errors"
	"fmt"
	"log"
	"strings"

	"cpu-scheduler/internal/core"
)

type Algorithm string

const (
	FirstComeFirstServe       Algorithm = "fcfs"
	ShortestJobFirst          Algorithm = "sjf"
	RoundRobin                Algorithm = "rr"
	ShortestRemainingTimeNext Algorithm = "srtn"
)

// Algorithms lists every policy in the order RunAll reports them.
var Algorithms = []Algorithm{FirstComeFirstServe, ShortestJobFirst, RoundRobin, ShortestRemainingTimeNext}

var (
	ErrUnknownAlgorithm   = errors.New("unknown scheduling algorithm")
	ErrInvalidTimeQuantum = errors.New("invalid time quantum")
	ErrInconsistentTrace  = errors.New("inconsistent execution trace")
)

var algorithmAliases = map[string]Algorithm{
	"fcfs":        FirstComeFirstServe,
	"sjf":         ShortestJobFirst,
	"rr":          RoundRobin,
	"roundrobin":  RoundRobin,
	"round_robin": RoundRobin,
	"round-robin": RoundRobin,
	"srtn":        ShortestRemainingTimeNext,
	"srtf":        ShortestRemainingTimeNext,
}

// ParseAlgorithm resolves a policy name case-insensitively.
func ParseAlgorithm(name string) (Algorithm, error) {
	algorithm, ok := algorithmAliases[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownAlgorithm, name)
	}
	return algorithm, nil
}

func (a Algorithm) Title() string {
	switch a {
	case FirstComeFirstServe:
		return "First-come, first-serve"
	case ShortestJobFirst:
		return "Shortest-job-first"
	case RoundRobin:
		return "Round-robin"
	case ShortestRemainingTimeNext:
		return "Shortest-remaining-time-next"
	}
	return string(a)
}

// Schedule is the outcome of one simulation run.
type Schedule struct {
	Algorithm   Algorithm
	TimeQuantum int
	Processes   core.ProcessSet
	Trace       []core.Segment
	// Completion holds the completion time of each process by input index.
	Completion []int
}

// dispatcher is the per-policy decision rule plugged into simulate.
type dispatcher interface {
	// next picks the process to run at s.now and for how many time units.
	// ok is false when no process is eligible and the CPU idles.
	next(s *simulation) (index, run int, ok bool)
	// yield runs after index held the CPU and the clock advanced.
	yield(s *simulation, index int)
	coalesce() bool
}

// simulation is the mutable state of a single run.
type simulation struct {
	processes  []core.Process
	remaining  []int
	completion []int
	finished   int
	now        int
	cpu        *core.CPU
}

func newSimulation(set core.ProcessSet, coalesce bool) *simulation {
	s := &simulation{
		processes:  set.Processes(),
		remaining:  make([]int, set.Len()),
		completion: make([]int, set.Len()),
		cpu:        core.NewCPU(coalesce),
	}
	for i, p := range s.processes {
		s.remaining[i] = p.BurstTime
	}
	return s
}

func (s *simulation) arrived(i int) bool {
	return s.processes[i].ArrivalTime <= s.now
}

func (s *simulation) done(i int) bool {
	return s.remaining[i] == 0
}

// nextArrival is the earliest arrival after now among unfinished processes.
func (s *simulation) nextArrival() int {
	next := -1
	for i, p := range s.processes {
		if s.done(i) || p.ArrivalTime <= s.now {
			continue
		}
		if next < 0 || p.ArrivalTime < next {
			next = p.ArrivalTime
		}
	}
	if next < 0 {
		return s.now + 1
	}
	return next
}

func (s *simulation) execute(i, run int) error {
	start := s.now
	if err := s.cpu.Execute(s.processes[i], start, start+run); err != nil {
		return err
	}
	s.now = start + run
	s.remaining[i] -= run
	if s.remaining[i] == 0 {
		s.completion[i] = s.now
		s.finished++
	}
	return nil
}

func simulate(set core.ProcessSet, d dispatcher) (*simulation, error) {
	s := newSimulation(set, d.coalesce())
	for s.finished < len(s.processes) {
		index, run, ok := d.next(s)
		if !ok {
			s.now = s.nextArrival()
			continue
		}
		if err := s.execute(index, run); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInconsistentTrace, err)
		}
		d.yield(s, index)
	}
	return s, nil
}

// Run simulates set under algorithm. timeQuantum is only read by RoundRobin
// and must be positive there.
func Run(algorithm Algorithm, set core.ProcessSet, timeQuantum int) (Schedule, error) {
	d, err := newDispatcher(algorithm, set, timeQuantum)
	if err != nil {
		return Schedule{}, err
	}
	if algorithm != RoundRobin {
		timeQuantum = 0
	}
	log.Println("running", algorithm.Title(), "algorithm for", set.Len(), "processes, timeQuantum =", timeQuantum)

	s, err := simulate(set, d)
	if err != nil {
		return Schedule{}, err
	}
	schedule := Schedule{
		Algorithm:   algorithm,
		TimeQuantum: timeQuantum,
		Processes:   set,
		Trace:       s.cpu.Trace(),
		Completion:  s.completion,
	}
	if err := schedule.Verify(); err != nil {
		return Schedule{}, err
	}
	return schedule, nil
}

func newDispatcher(algorithm Algorithm, set core.ProcessSet, timeQuantum int) (dispatcher, error) {
	switch algorithm {
	case FirstComeFirstServe:
		return newFirstComeFirstServe(set), nil
	case ShortestJobFirst:
		return shortestJobFirst{}, nil
	case RoundRobin:
		if timeQuantum <= 0 {
			return nil, fmt.Errorf("%w: %d, round robin needs a positive time quantum", ErrInvalidTimeQuantum, timeQuantum)
		}
		return newRoundRobin(set, timeQuantum), nil
	case ShortestRemainingTimeNext:
		return shortestRemainingTimeNext{}, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownAlgorithm, string(algorithm))
}

// Verify checks the trace is time ordered and non-overlapping and that every
// process ran for exactly its burst, finishing at its recorded completion.
func (s Schedule) Verify() error {
	executed := make([]int, s.Processes.Len())
	lastEnd := make([]int, s.Processes.Len())
	for i, segment := range s.Trace {
		if segment.End <= segment.Start {
			return fmt.Errorf("%w: empty segment %s", ErrInconsistentTrace, segment)
		}
		if i > 0 && s.Trace[i-1].End > segment.Start {
			return fmt.Errorf("%w: %s overlaps %s", ErrInconsistentTrace, s.Trace[i-1], segment)
		}
		executed[segment.ProcessIndex] += segment.Duration()
		lastEnd[segment.ProcessIndex] = segment.End
	}
	for i, p := range s.Processes.Processes() {
		if executed[i] != p.BurstTime {
			return fmt.Errorf("%w: %s ran %d of %d time units", ErrInconsistentTrace, p.Name, executed[i], p.BurstTime)
		}
		if lastEnd[i] != s.Completion[i] {
			return fmt.Errorf("%w: %s completed at %d but its last segment ends at %d", ErrInconsistentTrace, p.Name, s.Completion[i], lastEnd[i])
		}
	}
	return nil
}
