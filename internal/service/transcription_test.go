package service

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"caption-studio/config"
	"caption-studio/internal/dto"
	"caption-studio/internal/mocks"
	apperrors "caption-studio/pkg/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func withTranscribeKey(t *testing.T, apiKey string) {
	t.Helper()
	original := config.Conf.Transcribe
	config.Conf.Transcribe.Assemblyai.ApiKey = apiKey
	t.Cleanup(func() { config.Conf.Transcribe = original })
}

func TestAutoGenerateCaptions_MissingApiKey(t *testing.T) {
	withTranscribeKey(t, "")

	svc := Service{Transcriber: new(mocks.MockTranscriber)}

	_, err := svc.AutoGenerateCaptions(context.Background(), dto.AutoGenerateCaptionsReq{
		VideoPath: "/tmp/video.mp4",
	})

	assert.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.CodeConfigMissing))
}

func TestAutoGenerateCaptions_PlaceholderApiKey(t *testing.T) {
	withTranscribeKey(t, "your_api_key_here")

	svc := Service{Transcriber: new(mocks.MockTranscriber)}

	_, err := svc.AutoGenerateCaptions(context.Background(), dto.AutoGenerateCaptionsReq{
		VideoPath: "/tmp/video.mp4",
	})

	assert.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.CodeConfigMissing))
}

func TestAutoGenerateCaptions_VideoNotFound(t *testing.T) {
	withTranscribeKey(t, "test-key")

	svc := Service{Transcriber: new(mocks.MockTranscriber)}

	missing := filepath.Join(t.TempDir(), "missing.mp4")
	_, err := svc.AutoGenerateCaptions(context.Background(), dto.AutoGenerateCaptionsReq{
		VideoPath: missing,
	})

	assert.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.CodeVideoNotFound))
}

func TestGenerateScriptTimestamps_EmptyScript(t *testing.T) {
	svc := Service{}

	_, err := svc.GenerateScriptTimestamps(dto.GenerateTimestampsReq{Script: "   "})

	assert.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.CodeInvalidParams))
}

func TestGenerateScriptTimestamps_EvenSpacing(t *testing.T) {
	svc := Service{}

	result, err := svc.GenerateScriptTimestamps(dto.GenerateTimestampsReq{
		Script: "Hello there, this is fine!",
	})

	require.NoError(t, err)
	require.Equal(t, 5, result.WordCount)
	assert.Equal(t, "Hello", result.Timestamps[0].Word)
	assert.Equal(t, "there", result.Timestamps[1].Word)
	assert.Equal(t, "fine", result.Timestamps[4].Word)
	assert.InDelta(t, 0.0, result.Timestamps[0].Start, 1e-9)
	assert.InDelta(t, 0.4, result.Timestamps[0].End, 1e-9)
	assert.InDelta(t, 1.6, result.Timestamps[4].Start, 1e-9)
	assert.InDelta(t, 2.0, result.Timestamps[4].End, 1e-9)
}

func TestGenerateScriptTimestamps_KeepsApostropheAndHyphen(t *testing.T) {
	svc := Service{}

	result, err := svc.GenerateScriptTimestamps(dto.GenerateTimestampsReq{
		Script: "don't re-run",
	})

	require.NoError(t, err)
	assert.Equal(t, "don't", result.Timestamps[0].Word)
	assert.Equal(t, "re-run", result.Timestamps[1].Word)
}

func TestResolveVideoPath_AbsoluteExisting(t *testing.T) {
	svc := Service{}

	videoPath := filepath.Join(t.TempDir(), "input.mp4")
	require.NoError(t, os.WriteFile(videoPath, []byte("x"), 0o644))

	resolved, err := svc.resolveVideoPath(videoPath)

	require.NoError(t, err)
	assert.Equal(t, videoPath, resolved)
}
