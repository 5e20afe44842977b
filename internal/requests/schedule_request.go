package requests

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"cpu-scheduler/internal/core"
)

var (
	ErrUnpairedInput = errors.New("input must be arrival/burst pairs")
	ErrNotNumeric    = errors.New("arrival and burst time must be numbers")
)

type Job struct {
	ArrivalTime int `json:"arrival_time"`
	BurstTime   int `json:"burst_time"`
}

type ScheduleRequests struct {
	Algorithm   string `json:"algorithm"`
	TimeQuantum *int   `json:"time_quantum"`
	Jobs        []Job  `json:"jobs"`
	// Input is the textual form read by ParseInput, used when Jobs is empty.
	Input string `json:"input"`
}

// ProcessSet builds the validated process set for the request. A request
// without jobs or input yields an empty set.
func (r *ScheduleRequests) ProcessSet() (core.ProcessSet, error) {
	jobs := r.Jobs
	if len(jobs) == 0 && strings.TrimSpace(r.Input) != "" {
		parsed, err := ParseInput(strings.NewReader(r.Input))
		if err != nil {
			return core.ProcessSet{}, err
		}
		jobs = parsed
	}
	return NewProcessSet(jobs)
}

func NewProcessSet(jobs []Job) (core.ProcessSet, error) {
	entries := make([]core.Entry, len(jobs))
	for i, job := range jobs {
		entries[i] = core.Entry{ArrivalTime: job.ArrivalTime, BurstTime: job.BurstTime}
	}
	return core.NewProcessSet(entries...)
}

// ParseInput reads whitespace separated integers as (arrival, burst) pairs,
// e.g. "0 10  1 2  2 5". Range checks are left to core.NewProcessSet.
func ParseInput(r io.Reader) ([]Job, error) {
	scanner := bufio.NewScanner(r)
	scanner.Split(bufio.ScanWords)

	var tokens []string
	for scanner.Scan() {
		tokens = append(tokens, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading input: %w", err)
	}
	if len(tokens)%2 != 0 {
		return nil, fmt.Errorf("%w: got %d numbers", ErrUnpairedInput, len(tokens))
	}

	jobs := make([]Job, 0, len(tokens)/2)
	for i := 0; i < len(tokens); i += 2 {
		name := fmt.Sprintf("P%d", i/2+1)
		arrival, err := strconv.Atoi(tokens[i])
		if err != nil {
			return nil, fmt.Errorf("%w: %s arrival time %q", ErrNotNumeric, name, tokens[i])
		}
		burst, err := strconv.Atoi(tokens[i+1])
		if err != nil {
			return nil, fmt.Errorf("%w: %s burst time %q", ErrNotNumeric, name, tokens[i+1])
		}
		jobs = append(jobs, Job{ArrivalTime: arrival, BurstTime: burst})
	}
	return jobs, nil
}
