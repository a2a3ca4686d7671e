package timer

import (
	"fmt"
	"time"
)

// Section is one named, timestamped segment of the tour. Times are offsets
// into the elapsed (running-only) time of the stopwatch.
type Section struct {
	Title     string        `json:"title"`
	StartTime time.Duration `json:"start_time"`
	EndTime   time.Duration `json:"end_time"`
	Duration  time.Duration `json:"duration"`
}

// NewSection builds a section spanning start to end.
func NewSection(title string, start, end time.Duration) Section {
	return Section{
		Title:     title,
		StartTime: start,
		EndTime:   end,
		Duration:  end - start,
	}
}

// DefaultTitle is the title given to the nth section (1-based).
func DefaultTitle(n int) string {
	return fmt.Sprintf("Section %d", n)
}
