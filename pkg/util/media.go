package util

import (
	"bytes"
	"fmt"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"caption-studio/internal/storage"
	"caption-studio/log"

	"go.uber.org/zap"
)

// ExtractAudio pulls the audio track out of a video into an mp3 under
// destDir. The caller owns cleanup of the returned file.
func ExtractAudio(videoPath, destDir string) (string, error) {
	dest := filepath.Join(destDir, fmt.Sprintf("audio_%d.mp3", time.Now().UnixMilli()))
	cmdArgs := []string{"-y", "-i", videoPath, "-vn", "-acodec", "libmp3lame", "-q:a", "2", dest}
	cmd := exec.Command(storage.FfmpegPath, cmdArgs...)
	output, err := cmd.CombinedOutput()
	if err != nil {
		log.GetLogger().Error("audio extraction failed", zap.Error(err),
			zap.String("video file", videoPath), zap.String("output", string(output)))
		return "", err
	}
	return dest, nil
}

// ProbeDuration returns the container duration in seconds.
func ProbeDuration(mediaPath string) (float64, error) {
	cmdArgs := []string{
		"-v", "error",
		"-show_entries", "format=duration",
		"-of", "default=noprint_wrappers=1:nokey=1",
		mediaPath,
	}
	cmd := exec.Command(storage.FfprobePath, cmdArgs...)
	var out bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &out

	if err := cmd.Run(); err != nil {
		log.GetLogger().Error("probing media duration failed", zap.String("output", out.String()), zap.Error(err))
		return 0, err
	}

	duration, err := strconv.ParseFloat(strings.TrimSpace(out.String()), 64)
	if err != nil {
		log.GetLogger().Error("unexpected ffprobe duration output", zap.String("output", out.String()))
		return 0, fmt.Errorf("invalid duration output: %s", out.String())
	}
	return duration, nil
}
