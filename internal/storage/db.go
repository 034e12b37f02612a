package storage

import (
	"errors"
	"os"
	"path/filepath"
	"time"

	"caption-studio/internal/appdirs"
	"caption-studio/internal/types"
	"caption-studio/log"

	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var appDirsResolver = appdirs.Resolve

// ExportJobRecord is the gorm model backing the sqlite job repository.
type ExportJobRecord struct {
	Id          uint   `gorm:"primaryKey;autoIncrement"`
	JobId       string `gorm:"uniqueIndex;size:64"`
	Status      string `gorm:"size:16"`
	Progress    int
	DownloadUrl string
	Error       string
	CreatedAt   time.Time
}

func (ExportJobRecord) TableName() string { return "export_jobs" }

// SqliteJobRepository persists jobs across restarts. Semantics match the
// memory repository; in-flight jobs from a previous process are marked failed
// at startup since their goroutines are gone.
type SqliteJobRepository struct {
	db *gorm.DB
}

func NewSqliteJobRepository() (*SqliteJobRepository, error) {
	dbPath, err := resolveDBPath()
	if err != nil {
		return nil, err
	}

	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}

	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, err
	}

	if err = db.AutoMigrate(&ExportJobRecord{}); err != nil {
		return nil, err
	}

	repo := &SqliteJobRepository{db: db}
	if count, err := repo.markStaleJobs(); err != nil {
		log.GetLogger().Warn("failed to mark stale export jobs", zap.Error(err))
	} else if count > 0 {
		log.GetLogger().Info("marked stale export jobs as failed", zap.Int64("count", count))
	}

	log.GetLogger().Info("job database initialized", zap.String("path", dbPath))
	return repo, nil
}

func resolveDBPath() (string, error) {
	dirs, err := appDirsResolver()
	if err != nil {
		return "", err
	}
	return appdirs.DBPathFor(dirs), nil
}

// markStaleJobs fails every job left in processing by a previous run.
func (r *SqliteJobRepository) markStaleJobs() (int64, error) {
	result := r.db.Model(&ExportJobRecord{}).
		Where("status = ?", string(types.ExportJobStatusProcessing)).
		Updates(map[string]interface{}{
			"status": string(types.ExportJobStatusFailed),
			"error":  "Job interrupted by server restart",
		})
	return result.RowsAffected, result.Error
}

func (r *SqliteJobRepository) Create(job *types.ExportJob) error {
	if job.CreatedAt.IsZero() {
		job.CreatedAt = time.Now()
	}
	record := ExportJobRecord{
		JobId:       job.Id,
		Status:      string(job.Status),
		Progress:    job.Progress,
		DownloadUrl: job.DownloadUrl,
		Error:       job.Error,
		CreatedAt:   job.CreatedAt,
	}
	return r.db.Create(&record).Error
}

func (r *SqliteJobRepository) Get(id string) (*types.ExportJob, error) {
	var record ExportJobRecord
	err := r.db.Where("job_id = ?", id).First(&record).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &types.ExportJob{
		Id:          record.JobId,
		Status:      types.ExportJobStatus(record.Status),
		Progress:    record.Progress,
		CreatedAt:   record.CreatedAt,
		DownloadUrl: record.DownloadUrl,
		Error:       record.Error,
	}, nil
}

func (r *SqliteJobRepository) UpdateProgress(id string, progress int) error {
	if progress < 0 {
		progress = 0
	}
	if progress > 99 {
		progress = 99
	}
	return r.db.Model(&ExportJobRecord{}).
		Where("job_id = ? AND status = ? AND progress < ?",
			id, string(types.ExportJobStatusProcessing), progress).
		Update("progress", progress).Error
}

func (r *SqliteJobRepository) Complete(id string, downloadUrl string) error {
	return r.terminal(id, map[string]interface{}{
		"status":       string(types.ExportJobStatusComplete),
		"progress":     100,
		"download_url": downloadUrl,
	})
}

func (r *SqliteJobRepository) Fail(id string, message string) error {
	return r.terminal(id, map[string]interface{}{
		"status": string(types.ExportJobStatusFailed),
		"error":  message,
	})
}

func (r *SqliteJobRepository) terminal(id string, updates map[string]interface{}) error {
	result := r.db.Model(&ExportJobRecord{}).
		Where("job_id = ? AND status = ?", id, string(types.ExportJobStatusProcessing)).
		Updates(updates)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrTerminal
	}
	return nil
}
