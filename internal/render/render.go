package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/olekukonko/tablewriter"

	"cpu-scheduler/internal/responses"
)

const idleLabel = "idle"

// Schedule writes the title, Gantt chart and result table of one response.
func Schedule(w io.Writer, title string, response responses.ScheduleResponse) {
	Title(w, title)
	Gantt(w, response.Gantt)
	Table(w, response)
	_, _ = fmt.Fprintln(w)
}

func Title(w io.Writer, title string) {
	_, _ = fmt.Fprintln(w, strings.Repeat("-", len(title)*2))
	_, _ = fmt.Fprintln(w, strings.Repeat(" ", len(title)/2), title)
	_, _ = fmt.Fprintln(w, strings.Repeat("-", len(title)*2))
}

// Gantt draws one cell per segment with the boundary times beneath. Idle
// gaps get their own cell.
func Gantt(w io.Writer, gantt []responses.GanttItem) {
	_, _ = fmt.Fprintln(w, "Gantt schedule")
	if len(gantt) == 0 {
		_, _ = fmt.Fprintln(w, "(no processes)")
		_, _ = fmt.Fprintln(w)
		return
	}

	type cell struct {
		label string
		start int
	}
	var cells []cell
	end := 0
	for _, item := range gantt {
		if item.StartTime > end {
			cells = append(cells, cell{label: idleLabel, start: end})
		}
		cells = append(cells, cell{label: item.ProcessName, start: item.StartTime})
		end = item.EndTime
	}

	var bar, times strings.Builder
	bar.WriteString("|")
	for _, c := range cells {
		padding := ""
		if len(c.label) < 8 {
			padding = strings.Repeat(" ", (8-len(c.label))/2)
		}
		bar.WriteString(padding + c.label + padding + "|")
		times.WriteString(fmt.Sprint(c.start) + "\t")
	}
	times.WriteString(fmt.Sprint(end))

	_, _ = fmt.Fprintln(w, bar.String())
	_, _ = fmt.Fprintln(w, times.String())
	_, _ = fmt.Fprintln(w)
}

// Table writes the per-process timings with the averages in the footer.
func Table(w io.Writer, response responses.ScheduleResponse) {
	_, _ = fmt.Fprintln(w, "Schedule table")
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Process", "Arrival", "Burst", "Start", "Completion", "Response", "Wait", "Turnaround"})
	for _, detail := range response.Details {
		table.Append([]string{
			detail.ProcessName,
			fmt.Sprint(detail.ArrivalTime),
			fmt.Sprint(detail.BurstTime),
			fmt.Sprint(detail.StartTime),
			fmt.Sprint(detail.CompletionTime),
			fmt.Sprint(detail.ResponseTime),
			fmt.Sprint(detail.WaitingTime),
			fmt.Sprint(detail.TurnAroundTime),
		})
	}
	table.SetFooter([]string{"", "", "", "",
		fmt.Sprintf("Utilization\n%.2f", response.CpuUtilization),
		fmt.Sprintf("Average\n%.2f", response.AverageResponseTime),
		fmt.Sprintf("Average\n%.2f", response.AverageWaitingTime),
		fmt.Sprintf("Average\n%.2f", response.AverageTurnAroundTime)})
	table.Render()
}
