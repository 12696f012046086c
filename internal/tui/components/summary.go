package components

import (
	"fmt"
	"strings"
)

// SummaryData aggregates counts for rendering summaries.
type SummaryData struct {
	Total     int
	Completed int
	Failed    int
	Finished  bool
	Cancelled bool
}

// Summary renders a textual execution summary.
type Summary struct {
	data SummaryData
}

// NewSummary creates a new Summary component.
func NewSummary(data SummaryData) Summary {
	return Summary{data: data}
}

// View renders the summary.
func (s Summary) View() string {
	var lines []string
	if s.data.Total > 0 {
		lines = append(lines, fmt.Sprintf("Nodes: %d/%d completed", s.data.Completed, s.data.Total))
	}
	if s.data.Failed > 0 {
		lines = append(lines, fmt.Sprintf("Failed: %d", s.data.Failed))
	}

	if s.data.Cancelled {
		lines = append(lines, "Execution cancelled")
	} else if s.data.Finished && s.data.Total > 0 {
		if s.data.Failed == 0 && s.data.Completed == s.data.Total {
			lines = append(lines, "Execution finished successfully")
		} else {
			lines = append(lines, "Execution finished with errors")
		}
	}

	return strings.Join(lines, "\n")
}
