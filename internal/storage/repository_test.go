package storage

import (
	"testing"

	"caption-studio/internal/types"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newJob(id string) *types.ExportJob {
	return &types.ExportJob{
		Id:       id,
		Status:   types.ExportJobStatusProcessing,
		Progress: 0,
	}
}

func TestMemoryRepositoryGetUnknownReturnsNil(t *testing.T) {
	repo := NewMemoryJobRepository()

	job, err := repo.Get("nope")
	require.NoError(t, err)
	assert.Nil(t, job)
}

func TestMemoryRepositoryProgressIsMonotoneAndClamped(t *testing.T) {
	repo := NewMemoryJobRepository()
	require.NoError(t, repo.Create(newJob("j1")))

	require.NoError(t, repo.UpdateProgress("j1", 40))
	// Regression is ignored
	require.NoError(t, repo.UpdateProgress("j1", 10))
	job, err := repo.Get("j1")
	require.NoError(t, err)
	assert.Equal(t, 40, job.Progress)

	// Never shown as 100 while processing
	require.NoError(t, repo.UpdateProgress("j1", 250))
	job, _ = repo.Get("j1")
	assert.Equal(t, 99, job.Progress)
	assert.Equal(t, types.ExportJobStatusProcessing, job.Status)
}

func TestMemoryRepositoryTerminalStatesAreFinal(t *testing.T) {
	repo := NewMemoryJobRepository()
	require.NoError(t, repo.Create(newJob("j1")))

	require.NoError(t, repo.Complete("j1", "/exports/export_j1.mp4"))
	job, _ := repo.Get("j1")
	assert.Equal(t, types.ExportJobStatusComplete, job.Status)
	assert.Equal(t, 100, job.Progress)
	assert.Equal(t, "/exports/export_j1.mp4", job.DownloadUrl)

	// No mutation after terminal
	assert.ErrorIs(t, repo.UpdateProgress("j1", 50), ErrTerminal)
	assert.ErrorIs(t, repo.Fail("j1", "late failure"), ErrTerminal)
	job, _ = repo.Get("j1")
	assert.Equal(t, types.ExportJobStatusComplete, job.Status)
	assert.Empty(t, job.Error)
}

func TestMemoryRepositoryFail(t *testing.T) {
	repo := NewMemoryJobRepository()
	require.NoError(t, repo.Create(newJob("j1")))

	require.NoError(t, repo.Fail("j1", "ffmpeg exited with status 1"))
	job, _ := repo.Get("j1")
	assert.Equal(t, types.ExportJobStatusFailed, job.Status)
	assert.Equal(t, "ffmpeg exited with status 1", job.Error)
	assert.Empty(t, job.DownloadUrl)

	assert.ErrorIs(t, repo.Complete("j1", "url"), ErrTerminal)
}

func TestMemoryRepositoryGetReturnsCopies(t *testing.T) {
	repo := NewMemoryJobRepository()
	require.NoError(t, repo.Create(newJob("j1")))

	job, _ := repo.Get("j1")
	job.Progress = 77

	again, _ := repo.Get("j1")
	assert.Equal(t, 0, again.Progress)
}

func TestMemoryRepositoryDuplicateCreate(t *testing.T) {
	repo := NewMemoryJobRepository()
	require.NoError(t, repo.Create(newJob("j1")))
	assert.Error(t, repo.Create(newJob("j1")))
}
