package pipeline

import "time"

// Status is the outcome for one document of a batch.
type Status string

const (
	StatusCompleted Status = "completed"
	StatusFailed    Status = "failed"
	StatusSkipped   Status = "skipped"
)

// DocumentResult records what happened to one document.
type DocumentResult struct {
	Filename string `json:"filename"`
	Status   Status `json:"status"`
	Title    string `json:"title,omitempty"`
	Headings int    `json:"headings"`
	Sections int    `json:"sections,omitempty"`
	Error    string `json:"error,omitempty"`
}

// Report summarises one batch run.
type Report struct {
	RunID     string           `json:"run_id"`
	Mode      string           `json:"mode"`
	StartedAt time.Time        `json:"started_at"`
	Duration  time.Duration    `json:"duration"`
	Documents []DocumentResult `json:"documents"`
	Output    string           `json:"output,omitempty"`
}

func (r *Report) add(res DocumentResult) {
	r.Documents = append(r.Documents, res)
}

// Count returns how many documents ended with status s.
func (r *Report) Count(s Status) int {
	n := 0
	for _, d := range r.Documents {
		if d.Status == s {
			n++
		}
	}
	return n
}
