package models

// RunStatus summarizes the outcome of a whole measurement run.
// Fatal failures abort before a report exists, so they have no value here.
type RunStatus string

const (
	StatusAllSucceeded   RunStatus = "all_succeeded"
	StatusPartialFailure RunStatus = "partial_failure"
)

// TransferRecord is the outcome of one file moving in one direction.
// Write and read outcomes are tracked independently; a failed write never
// zeroes the read timing for the same file.
type TransferRecord struct {
	File    string  `json:"file"`
	Bytes   int64   `json:"bytes"`
	Seconds float64 `json:"seconds"`
	Error   string  `json:"error,omitempty"`
}

func (r TransferRecord) Failed() bool {
	return r.Error != ""
}

// PhaseResult aggregates one direction of the run. TransferredBytes counts
// only successful copies, so Mbps always reflects bytes that actually moved.
type PhaseResult struct {
	Transfers        []TransferRecord `json:"transfers"`
	TotalSeconds     float64          `json:"total_seconds"`
	TransferredBytes int64            `json:"transferred_bytes"`
	FailedCount      int              `json:"failed_count"`
	Mbps             float64          `json:"mbps"`
}

type SpeedTestReport struct {
	TimeStamp      string      `json:"timestamp"`
	Status         RunStatus   `json:"status"`
	Target         string      `json:"target"`
	FileCount      int         `json:"file_count"`
	TotalSizeBytes int64       `json:"total_size_bytes"`
	TotalSizeHuman string      `json:"total_size_human"`
	Write          PhaseResult `json:"write"`
	Read           PhaseResult `json:"read"`
	WriteMbps      float64     `json:"write_mbps"`
	ReadMbps       float64     `json:"read_mbps"`
}

type ErrorResponse struct {
	Error     string `json:"error"`
	Timestamp string `json:"timestamp"`
	Command   string `json:"command"`
}
