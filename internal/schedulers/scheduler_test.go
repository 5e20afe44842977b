package schedulers

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cpu-scheduler/internal/core"
)

func processSet(t *testing.T, pairs ...[2]int) core.ProcessSet {
	t.Helper()
	entries := make([]core.Entry, len(pairs))
	for i, pair := range pairs {
		entries[i] = core.Entry{ArrivalTime: pair[0], BurstTime: pair[1]}
	}
	set, err := core.NewProcessSet(entries...)
	require.NoError(t, err)
	return set
}

// seg builds a segment for process Pn (1-based).
func seg(n, start, end int) core.Segment {
	return core.Segment{
		ProcessIndex: n - 1,
		ProcessName:  "P" + string(rune('0'+n)),
		Start:        start,
		End:          end,
	}
}

func sampleSet(t *testing.T) core.ProcessSet {
	return processSet(t, [2]int{0, 10}, [2]int{1, 2}, [2]int{2, 5})
}

func TestParseAlgorithm(t *testing.T) {
	for name, want := range map[string]Algorithm{
		"fcfs":        FirstComeFirstServe,
		"FCFS":        FirstComeFirstServe,
		"sjf":         ShortestJobFirst,
		"RoundRobin":  RoundRobin,
		"round-robin": RoundRobin,
		" rr ":        RoundRobin,
		"SRTN":        ShortestRemainingTimeNext,
		"srtf":        ShortestRemainingTimeNext,
	} {
		got, err := ParseAlgorithm(name)
		require.NoError(t, err, name)
		assert.Equal(t, want, got, name)
	}

	_, err := ParseAlgorithm("priority")
	assert.ErrorIs(t, err, ErrUnknownAlgorithm)
	_, err = ParseAlgorithm("")
	assert.ErrorIs(t, err, ErrUnknownAlgorithm)
}

func TestRunUnknownAlgorithm(t *testing.T) {
	_, err := Run(Algorithm("mlfq"), sampleSet(t), 2)
	assert.ErrorIs(t, err, ErrUnknownAlgorithm)
}

func TestRunRejectsNonPositiveQuantum(t *testing.T) {
	for _, quantum := range []int{0, -3} {
		_, err := Run(RoundRobin, sampleSet(t), quantum)
		assert.ErrorIs(t, err, ErrInvalidTimeQuantum)
	}

	// The quantum only matters for round robin.
	schedule, err := Run(FirstComeFirstServe, sampleSet(t), 0)
	require.NoError(t, err)
	assert.Zero(t, schedule.TimeQuantum)
}

func TestFirstComeFirstServe(t *testing.T) {
	schedule, err := Run(FirstComeFirstServe, sampleSet(t), 0)
	require.NoError(t, err)
	assert.Equal(t, []core.Segment{seg(1, 0, 10), seg(2, 10, 12), seg(3, 12, 17)}, schedule.Trace)
	assert.Equal(t, []int{10, 12, 17}, schedule.Completion)
}

func TestFirstComeFirstServeOrdersByArrivalThenInput(t *testing.T) {
	set := processSet(t, [2]int{5, 1}, [2]int{0, 2}, [2]int{5, 3})
	schedule, err := Run(FirstComeFirstServe, set, 0)
	require.NoError(t, err)
	assert.Equal(t, []core.Segment{seg(2, 0, 2), seg(1, 5, 6), seg(3, 6, 9)}, schedule.Trace)
}

func TestShortestJobFirst(t *testing.T) {
	schedule, err := Run(ShortestJobFirst, sampleSet(t), 0)
	require.NoError(t, err)
	assert.Equal(t, []core.Segment{seg(1, 0, 10), seg(2, 10, 12), seg(3, 12, 17)}, schedule.Trace)
	assert.Equal(t, []int{10, 12, 17}, schedule.Completion)
}

func TestShortestJobFirstPicksShortestReady(t *testing.T) {
	set := processSet(t, [2]int{0, 3}, [2]int{1, 6}, [2]int{1, 2}, [2]int{2, 2})
	schedule, err := Run(ShortestJobFirst, set, 0)
	require.NoError(t, err)
	// P3 and P4 tie on burst at t=3; P3 comes first in the input.
	assert.Equal(t, []core.Segment{seg(1, 0, 3), seg(3, 3, 5), seg(4, 5, 7), seg(2, 7, 13)}, schedule.Trace)
}

func TestShortestJobFirstIdlesUntilNextArrival(t *testing.T) {
	set := processSet(t, [2]int{7, 4}, [2]int{3, 2})
	schedule, err := Run(ShortestJobFirst, set, 0)
	require.NoError(t, err)
	assert.Equal(t, []core.Segment{seg(2, 3, 5), seg(1, 7, 11)}, schedule.Trace)
}

func TestRoundRobin(t *testing.T) {
	schedule, err := Run(RoundRobin, sampleSet(t), 2)
	require.NoError(t, err)
	assert.Equal(t, 2, schedule.TimeQuantum)
	assert.Equal(t, []core.Segment{
		seg(1, 0, 2),
		seg(2, 2, 4),
		seg(3, 4, 6),
		seg(1, 6, 8),
		seg(3, 8, 10),
		seg(1, 10, 12),
		seg(3, 12, 13),
		seg(1, 13, 15),
		seg(1, 15, 17),
	}, schedule.Trace)
	assert.Equal(t, []int{17, 4, 13}, schedule.Completion)
}

func TestRoundRobinQueuesArrivalsBeforePreemptedProcess(t *testing.T) {
	// P2 arrives exactly when P1's slice ends and must run before P1 again.
	set := processSet(t, [2]int{0, 4}, [2]int{3, 1})
	schedule, err := Run(RoundRobin, set, 3)
	require.NoError(t, err)
	assert.Equal(t, []core.Segment{seg(1, 0, 3), seg(2, 3, 4), seg(1, 4, 5)}, schedule.Trace)
}

func TestRoundRobinIdleGap(t *testing.T) {
	set := processSet(t, [2]int{2, 3}, [2]int{10, 1})
	schedule, err := Run(RoundRobin, set, 2)
	require.NoError(t, err)
	assert.Equal(t, []core.Segment{seg(1, 2, 4), seg(1, 4, 5), seg(2, 10, 11)}, schedule.Trace)
}

func TestShortestRemainingTimeNext(t *testing.T) {
	schedule, err := Run(ShortestRemainingTimeNext, sampleSet(t), 0)
	require.NoError(t, err)
	assert.Equal(t, []core.Segment{seg(1, 0, 1), seg(2, 1, 3), seg(3, 3, 8), seg(1, 8, 17)}, schedule.Trace)
	assert.Equal(t, []int{17, 3, 8}, schedule.Completion)
}

func TestShortestRemainingTimeNextTiesAndIdle(t *testing.T) {
	set := processSet(t, [2]int{1, 2}, [2]int{1, 2}, [2]int{9, 1})
	schedule, err := Run(ShortestRemainingTimeNext, set, 0)
	require.NoError(t, err)
	assert.Equal(t, []core.Segment{seg(1, 1, 3), seg(2, 3, 5), seg(3, 9, 10)}, schedule.Trace)
}

func TestEmptyProcessSet(t *testing.T) {
	for _, algorithm := range Algorithms {
		schedule, err := Run(algorithm, core.ProcessSet{}, 1)
		require.NoError(t, err, algorithm)
		assert.Empty(t, schedule.Trace, algorithm)
		assert.Empty(t, schedule.Completion, algorithm)
	}
}

func TestRoundRobinWithLargeQuantumMatchesFirstComeFirstServe(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for round := 0; round < 50; round++ {
		set := randomSet(t, rng)
		fcfs, err := Run(FirstComeFirstServe, set, 0)
		require.NoError(t, err)
		rr, err := Run(RoundRobin, set, 20)
		require.NoError(t, err)
		assert.Equal(t, fcfs.Trace, rr.Trace)
		assert.Equal(t, fcfs.Completion, rr.Completion)
	}
}

func TestSchedulingProperties(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	for round := 0; round < 200; round++ {
		set := randomSet(t, rng)
		quantum := rng.Intn(4) + 1
		for _, algorithm := range Algorithms {
			schedule, err := Run(algorithm, set, quantum)
			require.NoError(t, err)

			executed := 0
			for i, segment := range schedule.Trace {
				executed += segment.Duration()
				if i > 0 {
					require.LessOrEqual(t, schedule.Trace[i-1].End, segment.Start, "%s overlap in %v", algorithm, schedule.Trace)
				}
				if algorithm == ShortestRemainingTimeNext && i > 0 {
					prev := schedule.Trace[i-1]
					require.False(t, prev.ProcessIndex == segment.ProcessIndex && prev.End == segment.Start,
						"srtn left contiguous segments unmerged: %v", schedule.Trace)
				}
			}
			assert.Equal(t, set.TotalBurst(), executed, algorithm)

			for _, p := range set.Processes() {
				completion := schedule.Completion[p.Index]
				assert.GreaterOrEqual(t, completion-p.ArrivalTime, p.BurstTime, "%s %s", algorithm, p.Name)
			}
		}
	}
}

func TestRunAll(t *testing.T) {
	schedules, err := RunAll(sampleSet(t), 2)
	require.NoError(t, err)
	require.Len(t, schedules, len(Algorithms))
	for i, algorithm := range Algorithms {
		assert.Equal(t, algorithm, schedules[i].Algorithm)
		single, err := Run(algorithm, sampleSet(t), 2)
		require.NoError(t, err)
		assert.Equal(t, single.Trace, schedules[i].Trace)
	}

	_, err = RunAll(sampleSet(t), 0)
	assert.ErrorIs(t, err, ErrInvalidTimeQuantum)
}

// zeroSliceDispatcher hands out empty slices, which the CPU must refuse.
type zeroSliceDispatcher struct{}

func (zeroSliceDispatcher) next(*simulation) (int, int, bool) { return 0, 0, true }
func (zeroSliceDispatcher) yield(*simulation, int)            {}
func (zeroSliceDispatcher) coalesce() bool                    { return false }

func TestSimulateReportsRejectedSlices(t *testing.T) {
	s, err := simulate(processSet(t, [2]int{0, 3}), zeroSliceDispatcher{})
	assert.Nil(t, s)
	assert.ErrorIs(t, err, ErrInconsistentTrace)
	assert.ErrorIs(t, err, core.ErrInvalidSlice)
}

func TestRunNearMaxIntTimeline(t *testing.T) {
	set := processSet(t, [2]int{math.MaxInt - 10, 4}, [2]int{math.MaxInt - 9, 1})
	for _, algorithm := range Algorithms {
		schedule, err := Run(algorithm, set, 2)
		require.NoError(t, err, algorithm)
		assert.Equal(t, math.MaxInt-5, schedule.Trace[len(schedule.Trace)-1].End, algorithm)
	}
}

func TestVerify(t *testing.T) {
	set := processSet(t, [2]int{0, 2}, [2]int{0, 1})

	valid := Schedule{Processes: set, Trace: []core.Segment{seg(1, 0, 2), seg(2, 2, 3)}, Completion: []int{2, 3}}
	assert.NoError(t, valid.Verify())

	overlap := Schedule{Processes: set, Trace: []core.Segment{seg(1, 0, 2), seg(2, 1, 2)}, Completion: []int{2, 2}}
	assert.ErrorIs(t, overlap.Verify(), ErrInconsistentTrace)

	short := Schedule{Processes: set, Trace: []core.Segment{seg(1, 0, 1), seg(2, 1, 2)}, Completion: []int{1, 2}}
	assert.ErrorIs(t, short.Verify(), ErrInconsistentTrace)

	wrongCompletion := Schedule{Processes: set, Trace: []core.Segment{seg(1, 0, 2), seg(2, 2, 3)}, Completion: []int{2, 4}}
	assert.ErrorIs(t, wrongCompletion.Verify(), ErrInconsistentTrace)
}

func randomSet(t *testing.T, rng *rand.Rand) core.ProcessSet {
	t.Helper()
	n := rng.Intn(8)
	pairs := make([][2]int, n)
	for i := range pairs {
		pairs[i] = [2]int{rng.Intn(15), rng.Intn(9) + 1}
	}
	return processSet(t, pairs...)
}
