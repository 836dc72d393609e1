// Package stats computes the dashboard's completion summary from a task
// list.
package stats

import (
	"math"

	"github.com/taskflow-app/taskflow/internal/task/dto"
)

type Summary struct {
	Total          int
	Completed      int
	Active         int
	CompletionRate int // percent, rounded; 0 for an empty list
}

func Summarize(tasks []dto.TaskOutput) Summary {
	s := Summary{Total: len(tasks)}

	for _, t := range tasks {
		if t.Completed {
			s.Completed++
		}
	}
	s.Active = s.Total - s.Completed

	if s.Total > 0 {
		s.CompletionRate = int(math.Round(float64(s.Completed) / float64(s.Total) * 100))
	}

	return s
}
