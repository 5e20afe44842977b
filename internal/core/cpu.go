package core

import (
	"errors"
	"fmt"
)

var ErrInvalidSlice = errors.New("invalid cpu slice")

// Segment is the half-open interval [Start, End) during which one process
// held the CPU.
type Segment struct {
	ProcessIndex int
	ProcessName  string
	Start        int
	End          int
}

func (s Segment) Duration() int {
	return s.End - s.Start
}

func (s Segment) String() string {
	return fmt.Sprintf("%s[%d,%d)", s.ProcessName, s.Start, s.End)
}

type CpuMetric struct {
	TotalTime       int
	UtilizationTime int
	IdleTime        int
	ContextSwitches int
}

// CPU records which process occupied the single simulated core and when.
// With coalescing enabled a slice that continues the previous segment of
// the same process extends it instead of opening a new one.
type CPU struct {
	coalesce bool
	trace    []Segment
}

func NewCPU(coalesce bool) *CPU {
	return &CPU{coalesce: coalesce, trace: make([]Segment, 0)}
}

// Execute appends the slice [start, end) for process. Slices must arrive in
// time order and never overlap the previous one; a rejected slice leaves the
// trace unchanged.
func (c *CPU) Execute(process Process, start, end int) error {
	if end <= start {
		return fmt.Errorf("%w: empty slice %s[%d,%d)", ErrInvalidSlice, process.Name, start, end)
	}
	if n := len(c.trace); n > 0 {
		last := &c.trace[n-1]
		if start < last.End {
			return fmt.Errorf("%w: slice %s[%d,%d) overlaps %s", ErrInvalidSlice, process.Name, start, end, last)
		}
		if c.coalesce && last.ProcessIndex == process.Index && last.End == start {
			last.End = end
			return nil
		}
	}
	c.trace = append(c.trace, Segment{
		ProcessIndex: process.Index,
		ProcessName:  process.Name,
		Start:        start,
		End:          end,
	})
	return nil
}

// Trace returns a copy of the recorded segments.
func (c *CPU) Trace() []Segment {
	out := make([]Segment, len(c.trace))
	copy(out, c.trace)
	return out
}

// Measure derives CPU-level figures from a trace. Time starts at 0, so idle
// time includes any gap before the first arrival.
func Measure(trace []Segment) CpuMetric {
	var metric CpuMetric
	for i, segment := range trace {
		metric.UtilizationTime += segment.Duration()
		if segment.End > metric.TotalTime {
			metric.TotalTime = segment.End
		}
		if i > 0 && trace[i-1].ProcessIndex != segment.ProcessIndex {
			metric.ContextSwitches++
		}
	}
	metric.IdleTime = metric.TotalTime - metric.UtilizationTime
	return metric
}
