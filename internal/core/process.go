package core

import (
	"errors"
	"fmt"
	"math"
)

var ErrInvalidProcess = errors.New("invalid process")

// Entry is one (arrival, burst) pair as supplied by the caller.
type Entry struct {
	ArrivalTime int
	BurstTime   int
}

// Process is an immutable scheduling unit. Index is the position in the
// input and is the only tie-breaker the schedulers use.
type Process struct {
	Index       int
	Name        string
	ArrivalTime int
	BurstTime   int
}

type ProcessSet struct {
	processes []Process
}

// NewProcessSet names the entries P1, P2, ... in input order and rejects
// negative arrivals and non-positive bursts. The whole run must fit in an
// int: no process may arrive later than math.MaxInt minus the total burst.
func NewProcessSet(entries ...Entry) (ProcessSet, error) {
	processes := make([]Process, 0, len(entries))
	totalBurst, latestArrival := 0, 0
	for i, entry := range entries {
		name := fmt.Sprintf("P%d", i+1)
		if entry.ArrivalTime < 0 {
			return ProcessSet{}, fmt.Errorf("%w: %s arrival time %d must not be negative", ErrInvalidProcess, name, entry.ArrivalTime)
		}
		if entry.BurstTime <= 0 {
			return ProcessSet{}, fmt.Errorf("%w: %s burst time %d must be positive", ErrInvalidProcess, name, entry.BurstTime)
		}
		if entry.BurstTime > math.MaxInt-totalBurst {
			return ProcessSet{}, fmt.Errorf("%w: %s total burst time overflows", ErrInvalidProcess, name)
		}
		totalBurst += entry.BurstTime
		if entry.ArrivalTime > latestArrival {
			latestArrival = entry.ArrivalTime
		}
		if latestArrival > math.MaxInt-totalBurst {
			return ProcessSet{}, fmt.Errorf("%w: %s timeline ends past %d", ErrInvalidProcess, name, math.MaxInt)
		}
		processes = append(processes, Process{
			Index:       i,
			Name:        name,
			ArrivalTime: entry.ArrivalTime,
			BurstTime:   entry.BurstTime,
		})
	}
	return ProcessSet{processes: processes}, nil
}

func (s ProcessSet) Len() int {
	return len(s.processes)
}

func (s ProcessSet) At(i int) Process {
	return s.processes[i]
}

// Processes returns a copy in input order.
func (s ProcessSet) Processes() []Process {
	out := make([]Process, len(s.processes))
	copy(out, s.processes)
	return out
}

func (s ProcessSet) TotalBurst() int {
	total := 0
	for _, p := range s.processes {
		total += p.BurstTime
	}
	return total
}
