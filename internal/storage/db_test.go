package storage

import (
	"path/filepath"
	"testing"

	"caption-studio/internal/appdirs"
	"caption-studio/internal/types"
	"caption-studio/log"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setTestDataDir(t *testing.T) string {
	t.Helper()

	tmp := t.TempDir()
	old := appDirsResolver
	appDirsResolver = func() (appdirs.Paths, error) {
		return appdirs.Paths{DataDir: tmp, LogDir: filepath.Join(tmp, "logs")}, nil
	}
	t.Cleanup(func() { appDirsResolver = old })
	return tmp
}

func init() {
	log.InitLogger()
}

func TestSqliteRepositoryLifecycle(t *testing.T) {
	setTestDataDir(t)

	repo, err := NewSqliteJobRepository()
	require.NoError(t, err)

	require.NoError(t, repo.Create(newJob("j1")))

	job, err := repo.Get("j1")
	require.NoError(t, err)
	require.NotNil(t, job)
	assert.Equal(t, types.ExportJobStatusProcessing, job.Status)

	require.NoError(t, repo.UpdateProgress("j1", 150))
	job, _ = repo.Get("j1")
	assert.Equal(t, 99, job.Progress)

	require.NoError(t, repo.Complete("j1", "/exports/export_j1.mp4"))
	job, _ = repo.Get("j1")
	assert.Equal(t, types.ExportJobStatusComplete, job.Status)
	assert.Equal(t, 100, job.Progress)

	assert.ErrorIs(t, repo.Fail("j1", "too late"), ErrTerminal)

	missing, err := repo.Get("nope")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestSqliteRepositoryMarksStaleJobsOnStartup(t *testing.T) {
	setTestDataDir(t)

	repo, err := NewSqliteJobRepository()
	require.NoError(t, err)
	require.NoError(t, repo.Create(newJob("stale")))

	// Reopen: the processing row belongs to a dead goroutine now.
	reopened, err := NewSqliteJobRepository()
	require.NoError(t, err)

	job, err := reopened.Get("stale")
	require.NoError(t, err)
	require.NotNil(t, job)
	assert.Equal(t, types.ExportJobStatusFailed, job.Status)
	assert.NotEmpty(t, job.Error)
}
