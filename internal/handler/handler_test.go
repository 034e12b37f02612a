package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"caption-studio/internal/appdirs"
	"caption-studio/internal/service"
	"caption-studio/internal/storage"
	"caption-studio/internal/types"
	"caption-studio/log"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	log.InitLogger()
}

func configurePathResolverForTest(t *testing.T) string {
	t.Helper()

	tempDir := t.TempDir()
	originalResolver := appDirsResolver
	appDirsResolver = func() (appdirs.Paths, error) {
		return appdirs.Paths{
			ExportDir: filepath.Join(tempDir, "exports"),
			UploadDir: filepath.Join(tempDir, "uploads"),
		}, nil
	}
	t.Cleanup(func() {
		appDirsResolver = originalResolver
	})
	return tempDir
}

func buildTestHandler() *Handler {
	jobs := storage.NewMemoryJobRepository()
	return &Handler{
		Service: &service.Service{Jobs: jobs},
		jobs:    jobs,
	}
}

func buildProgressRouter(h *Handler) *gin.Engine {
	router := gin.New()
	router.GET("/api/export/progress/:jobId", h.GetExportProgress)
	return router
}

func TestGetExportProgress_UnknownJobReturns404(t *testing.T) {
	gin.SetMode(gin.TestMode)

	router := buildProgressRouter(buildTestHandler())

	req, _ := http.NewRequest("GET", "/api/export/progress/nope", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGetExportProgress_KnownJobReturnsRecord(t *testing.T) {
	gin.SetMode(gin.TestMode)

	h := buildTestHandler()
	require.NoError(t, h.jobs.Create(&types.ExportJob{
		Id:        "job-1",
		Status:    types.ExportJobStatusProcessing,
		Progress:  42,
		CreatedAt: time.Now(),
	}))

	router := buildProgressRouter(h)

	req, _ := http.NewRequest("GET", "/api/export/progress/job-1", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var job types.ExportJob
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &job))
	assert.Equal(t, "job-1", job.Id)
	assert.Equal(t, types.ExportJobStatusProcessing, job.Status)
	assert.Equal(t, 42, job.Progress)
}

func buildFileRouter(h *Handler) *gin.Engine {
	router := gin.New()
	router.GET("/api/file/*filepath", h.DownloadFile)
	router.HEAD("/api/file/*filepath", h.DownloadFile)
	return router
}

func TestDownloadFile_NotFound(t *testing.T) {
	gin.SetMode(gin.TestMode)
	configurePathResolverForTest(t)

	router := buildFileRouter(buildTestHandler())

	req, _ := http.NewRequest("HEAD", "/api/file/exports/nonexistent.mp4", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code, "Should return 404 for non-existent file")
}

func TestDownloadFile_Exists(t *testing.T) {
	gin.SetMode(gin.TestMode)
	tempDir := configurePathResolverForTest(t)

	exportsDir := filepath.Join(tempDir, "exports")
	require.NoError(t, os.MkdirAll(exportsDir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(exportsDir, "export_ok.mp4"), []byte("video"), 0o644))

	router := buildFileRouter(buildTestHandler())

	req, _ := http.NewRequest("HEAD", "/api/file/exports/export_ok.mp4", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code, "Should return 200 for existing file")
}

func TestDownloadFile_TraversalRejected(t *testing.T) {
	gin.SetMode(gin.TestMode)
	tempDir := configurePathResolverForTest(t)

	require.NoError(t, os.MkdirAll(filepath.Join(tempDir, "exports"), 0o755))
	secret := filepath.Join(tempDir, "secret.txt")
	require.NoError(t, os.WriteFile(secret, []byte("secret"), 0o644))

	router := buildFileRouter(buildTestHandler())

	req, _ := http.NewRequest("GET", "/api/file/exports/../secret.txt", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.NotEqual(t, http.StatusOK, w.Code, "Traversal outside the export root must not resolve")
}

func TestGenerateTimestamps_BadRequest(t *testing.T) {
	gin.SetMode(gin.TestMode)

	h := buildTestHandler()
	router := gin.New()
	router.POST("/api/captions/generate-timestamps", h.GenerateTimestamps)

	req, _ := http.NewRequest("POST", "/api/captions/generate-timestamps",
		bytes.NewBufferString(`{"script":""}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var envelope map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	assert.NotEqual(t, float64(0), envelope["error"])
}
