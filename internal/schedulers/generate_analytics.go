package schedulers

import (
	"cpu-scheduler/internal/core"
	"cpu-scheduler/internal/responses"
	"cpu-scheduler/internal/util"
)

var ganttColors = []string{
	"#FF6B6B",
	"#4ECDC4",
	"#45B7D1",
	"#96CEB4",
	"#FFEAA7",
	"#DDA0DD",
	"#98D8C8",
	"#F7DC6F",
	"#BB8FCE",
	"#85C1E9",
	"#F8C471",
	"#82E0AA",
}

// ProcessColor is the display color of the process at input index.
func ProcessColor(index int) string {
	return ganttColors[index%len(ganttColors)]
}

// GenerateResponse turns a schedule into per-process timings, averages and
// CPU figures. Details are listed in input order.
func GenerateResponse(schedule Schedule) responses.ScheduleResponse {
	metric := core.Measure(schedule.Trace)
	processDetails := generateProcessDetails(schedule)
	averageWaitingTime, averageResponseTime, averageTurnAroundTime := util.CalculateAverage(processDetails)

	gantt := make([]responses.GanttItem, 0, len(schedule.Trace))
	for _, segment := range schedule.Trace {
		gantt = append(gantt, responses.GanttItem{
			ProcessName: segment.ProcessName,
			StartTime:   segment.Start,
			EndTime:     segment.End,
			Color:       ProcessColor(segment.ProcessIndex),
		})
	}

	return responses.ScheduleResponse{
		Algorithm:             string(schedule.Algorithm),
		TimeQuantum:           schedule.TimeQuantum,
		TotalTime:             metric.TotalTime,
		IdleTime:              metric.IdleTime,
		CpuUtilization:        util.Ratio(metric.UtilizationTime, metric.TotalTime),
		CpuThroughput:         util.Ratio(schedule.Processes.Len(), metric.TotalTime),
		ContextSwitches:       metric.ContextSwitches,
		AverageWaitingTime:    averageWaitingTime,
		AverageResponseTime:   averageResponseTime,
		AverageTurnAroundTime: averageTurnAroundTime,
		Gantt:                 gantt,
		Details:               processDetails,
	}
}

func generateProcessDetails(schedule Schedule) []responses.ProcessResponse {
	firstRun := make([]int, schedule.Processes.Len())
	seen := make([]bool, schedule.Processes.Len())
	for _, segment := range schedule.Trace {
		if !seen[segment.ProcessIndex] {
			firstRun[segment.ProcessIndex] = segment.Start
			seen[segment.ProcessIndex] = true
		}
	}

	details := make([]responses.ProcessResponse, 0, schedule.Processes.Len())
	for _, process := range schedule.Processes.Processes() {
		completion := schedule.Completion[process.Index]
		turnAroundTime := completion - process.ArrivalTime
		details = append(details, responses.ProcessResponse{
			ProcessName:    process.Name,
			ArrivalTime:    process.ArrivalTime,
			BurstTime:      process.BurstTime,
			StartTime:      firstRun[process.Index],
			CompletionTime: completion,
			TurnAroundTime: turnAroundTime,
			WaitingTime:    turnAroundTime - process.BurstTime,
			ResponseTime:   firstRun[process.Index] - process.ArrivalTime,
		})
	}
	return details
}
