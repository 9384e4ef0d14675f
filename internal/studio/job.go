package studio

import "time"

type JobStatus string

const (
	JobQueued    JobStatus = "queued"
	JobRunning   JobStatus = "running"
	JobSucceeded JobStatus = "succeeded"
	JobFailed    JobStatus = "failed"
)

// GenerationJob is an asynchronously executed style synthesis. The HTTP
// layer enqueues the job id; the worker resolves it.
type GenerationJob struct {
	ID string `gorm:"primaryKey;size:26"` // ULID length

	SessionID string `gorm:"size:26;index;not null"`
	StyleID   string `gorm:"type:varchar(32);not null"`

	Status JobStatus `gorm:"type:varchar(16);index;not null"`

	// Filled when failed
	Error *string `gorm:"type:text"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (GenerationJob) TableName() string { return "generation_jobs" }
