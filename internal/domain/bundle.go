package domain

import "time"

// OutputBundle is the persisted artifact set of one pipeline invocation.
// PreviewPath and CSVPath may be empty when the corresponding rendering step
// was skipped or failed; RecordPath and ReportPath are always set.
type OutputBundle struct {
	Workspace   string    `json:"workspace"`
	RecordPath  string    `json:"record_path"`
	ReportPath  string    `json:"report_path"`
	PreviewPath string    `json:"preview_path,omitempty"`
	CSVPath     string    `json:"csv_path,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}
