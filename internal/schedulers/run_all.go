package schedulers

import (
	"fmt"
	"sync"

	"cpu-scheduler/internal/core"
)

// RunAll simulates set under every algorithm concurrently. Runs share only
// the read-only process set.
func RunAll(set core.ProcessSet, timeQuantum int) ([]Schedule, error) {
	if timeQuantum <= 0 {
		return nil, fmt.Errorf("%w: %d, round robin needs a positive time quantum", ErrInvalidTimeQuantum, timeQuantum)
	}

	schedules := make([]Schedule, len(Algorithms))
	errs := make([]error, len(Algorithms))

	var wg sync.WaitGroup
	wg.Add(len(Algorithms))
	for i, algorithm := range Algorithms {
		go func(i int, algorithm Algorithm) {
			defer wg.Done()
			schedules[i], errs[i] = Run(algorithm, set, timeQuantum)
		}(i, algorithm)
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}
	return schedules, nil
}
