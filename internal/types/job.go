package types

import "time"

type ExportJobStatus string

const (
	ExportJobStatusProcessing ExportJobStatus = "processing"
	ExportJobStatusComplete   ExportJobStatus = "complete"
	ExportJobStatusFailed     ExportJobStatus = "failed"
)

// ExportJob tracks one asynchronous render. Progress is monotone and stays
// below 100 until the job reaches a terminal state; terminal states are final.
type ExportJob struct {
	Id          string          `json:"id"`
	Status      ExportJobStatus `json:"status"`
	Progress    int             `json:"progress"`
	CreatedAt   time.Time       `json:"createdAt"`
	DownloadUrl string          `json:"downloadUrl,omitempty"`
	Error       string          `json:"error,omitempty"`
}

func (j ExportJob) IsTerminal() bool {
	return j.Status == ExportJobStatusComplete || j.Status == ExportJobStatusFailed
}

// Clone returns an independent copy so repository reads never expose the
// executor's record to the caller.
func (j ExportJob) Clone() *ExportJob {
	copied := j
	return &copied
}
