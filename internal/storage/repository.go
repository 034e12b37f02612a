package storage

import (
	"errors"
	"sync"
	"time"

	"caption-studio/internal/types"
)

// ErrTerminal is returned when a write targets a job that already reached a
// terminal state.
var ErrTerminal = errors.New("job already in terminal state")

// JobRepository owns every ExportJob record. The executor is the only writer
// for a given id after creation; the polling endpoint only reads. Get returns
// (nil, nil) for unknown ids so callers can distinguish not-found from
// still-processing.
type JobRepository interface {
	Create(job *types.ExportJob) error
	Get(id string) (*types.ExportJob, error)
	UpdateProgress(id string, progress int) error
	Complete(id string, downloadUrl string) error
	Fail(id string, message string) error
}

// MemoryJobRepository is the default process-lifetime store.
type MemoryJobRepository struct {
	mu   sync.RWMutex
	jobs map[string]*types.ExportJob
}

func NewMemoryJobRepository() *MemoryJobRepository {
	return &MemoryJobRepository{jobs: make(map[string]*types.ExportJob)}
}

func (r *MemoryJobRepository) Create(job *types.ExportJob) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.jobs[job.Id]; exists {
		return errors.New("job id already exists: " + job.Id)
	}
	if job.CreatedAt.IsZero() {
		job.CreatedAt = time.Now()
	}
	r.jobs[job.Id] = job.Clone()
	return nil
}

func (r *MemoryJobRepository) Get(id string) (*types.ExportJob, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	job, ok := r.jobs[id]
	if !ok {
		return nil, nil
	}
	return job.Clone(), nil
}

// UpdateProgress clamps to [0, 99] and ignores regressions: the display value
// is monotone even if the encoder's progress stream is not.
func (r *MemoryJobRepository) UpdateProgress(id string, progress int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	job, ok := r.jobs[id]
	if !ok {
		return errors.New("unknown job id: " + id)
	}
	if job.IsTerminal() {
		return ErrTerminal
	}
	if progress < 0 {
		progress = 0
	}
	if progress > 99 {
		progress = 99
	}
	if progress > job.Progress {
		job.Progress = progress
	}
	return nil
}

func (r *MemoryJobRepository) Complete(id string, downloadUrl string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	job, ok := r.jobs[id]
	if !ok {
		return errors.New("unknown job id: " + id)
	}
	if job.IsTerminal() {
		return ErrTerminal
	}
	job.Status = types.ExportJobStatusComplete
	job.Progress = 100
	job.DownloadUrl = downloadUrl
	return nil
}

func (r *MemoryJobRepository) Fail(id string, message string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	job, ok := r.jobs[id]
	if !ok {
		return errors.New("unknown job id: " + id)
	}
	if job.IsTerminal() {
		return ErrTerminal
	}
	job.Status = types.ExportJobStatusFailed
	job.Error = message
	return nil
}
