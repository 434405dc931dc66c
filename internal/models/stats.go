package models

import (
	"math"
	"time"

	"github.com/samber/lo"
)

type TaskStats struct {
	TotalTasks     int `json:"totalTasks"`
	Completed      int `json:"completed"`
	InProgress     int `json:"inProgress"`
	Todo           int `json:"todo"`
	CompletionRate int `json:"completionRate"`
	Overdue        int `json:"overdue"`
	HighPriority   int `json:"highPriority"`
	// Urgent is kept for payload compatibility with older dashboards.
	// "urgent" is not a valid priority, so the count is always zero.
	Urgent int `json:"urgent"`
}

// ComputeStats derives board statistics from a task list. It is the single
// aggregation used by both the project stats endpoint and the board client.
func ComputeStats(tasks []Task, now time.Time) TaskStats {
	byStatus := lo.CountValuesBy(tasks, func(t Task) string { return t.Status })

	stats := TaskStats{
		TotalTasks: len(tasks),
		Completed:  byStatus[StatusDone],
		InProgress: byStatus[StatusInProgress],
		Todo:       byStatus[StatusTodo],
		Overdue: lo.CountBy(tasks, func(t Task) bool {
			return t.Overdue(now)
		}),
		HighPriority: lo.CountBy(tasks, func(t Task) bool {
			return t.Priority == PriorityHigh
		}),
		Urgent: lo.CountBy(tasks, func(t Task) bool {
			return t.Priority == "urgent"
		}),
	}

	if stats.TotalTasks > 0 {
		stats.CompletionRate = int(math.Round(float64(stats.Completed) / float64(stats.TotalTasks) * 100))
	}

	return stats
}
