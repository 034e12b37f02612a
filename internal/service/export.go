package service

import (
	"bufio"
	"bytes"
	"fmt"
	"math"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"
	"time"

	"caption-studio/config"
	"caption-studio/internal/dto"
	"caption-studio/internal/render"
	"caption-studio/internal/storage"
	"caption-studio/internal/types"
	"caption-studio/log"
	apperrors "caption-studio/pkg/errors"
	"caption-studio/pkg/util"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// StartExport validates the request, registers a processing job and kicks off
// the render in the background. The returned job id is immediately pollable.
func (s Service) StartExport(req dto.StartExportReq) (*dto.StartExportResData, error) {
	videoPath, err := s.resolveVideoPath(req.VideoPath)
	if err != nil {
		return nil, err
	}

	tempDir, err := resolveTempDir()
	if err != nil {
		return nil, apperrors.Wrap(apperrors.CodeUnknown, "Failed to resolve temp directory", err)
	}
	exportDir, err := resolveExportDir()
	if err != nil {
		return nil, apperrors.Wrap(apperrors.CodeUnknown, "Failed to resolve export directory", err)
	}

	// The style is copied into the job before the goroutine starts, so later
	// editor changes cannot affect a render already underway.
	style := types.DefaultCaptionStyle()
	if req.CaptionStyle != nil {
		style = *req.CaptionStyle
	}

	jobId := uuid.NewString()
	subtitlePath := filepath.Join(tempDir, fmt.Sprintf("subtitles_%s.srt", jobId))
	outputPath := filepath.Join(exportDir, fmt.Sprintf("export_%s.mp4", jobId))

	program := render.Build(req.Layers, req.WordTimestamps, style, subtitlePath)

	job := &types.ExportJob{
		Id:        jobId,
		Status:    types.ExportJobStatusProcessing,
		Progress:  0,
		CreatedAt: time.Now(),
	}
	if err := s.Jobs.Create(job); err != nil {
		log.GetLogger().Error("StartExport create job err", zap.String("jobId", jobId), zap.Error(err))
		return nil, apperrors.Wrap(apperrors.CodeDBError, "Failed to save export job", err)
	}

	log.GetLogger().Info("export job created", zap.String("jobId", jobId),
		zap.String("video", videoPath), zap.Int("filters", len(program.Filters)),
		zap.Int("wordCount", len(req.WordTimestamps)))

	go func() {
		defer func() {
			if r := recover(); r != nil {
				const size = 64 << 10
				buf := make([]byte, size)
				buf = buf[:runtime.Stack(buf, false)]
				log.GetLogger().Error("runExport panic", zap.Any("panic:", r), zap.Any("stack:", buf))
				_ = s.Jobs.Fail(jobId, "Export render failed")
			}
		}()
		s.runExport(jobId, videoPath, outputPath, program)
	}()

	return &dto.StartExportResData{
		JobId:   jobId,
		Message: "Export job created",
	}, nil
}

// GetExportProgress returns the current job record. An unknown id is a
// not-found error, distinct from a job that is still processing.
func (s Service) GetExportProgress(jobId string) (*types.ExportJob, error) {
	job, err := s.Jobs.Get(jobId)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.CodeDBError, "Failed to query export job", err)
	}
	if job == nil {
		return nil, apperrors.New(apperrors.CodeNotFound, "Job not found")
	}
	return job, nil
}

func (s Service) runExport(jobId, videoPath, outputPath string, program render.Program) {
	if program.HasSubtitleTrack() {
		if err := os.WriteFile(program.SubtitlePath, []byte(program.SubtitleContent), 0o644); err != nil {
			log.GetLogger().Error("runExport write subtitle err",
				zap.String("jobId", jobId), zap.String("path", program.SubtitlePath), zap.Error(err))
			_ = s.Jobs.Fail(jobId, "Failed to write subtitle file")
			return
		}
		defer func() {
			if err := os.Remove(program.SubtitlePath); err != nil {
				log.GetLogger().Warn("removing subtitle artifact failed",
					zap.String("path", program.SubtitlePath), zap.Error(err))
			}
		}()
	}

	// Needed to turn encoder time into a percentage; on probe failure the
	// job simply stays at 0 until it finishes.
	duration, err := util.ProbeDuration(videoPath)
	if err != nil {
		log.GetLogger().Warn("runExport probe duration err", zap.String("jobId", jobId), zap.Error(err))
		duration = 0
	}

	videoCodec := config.Conf.Export.VideoCodec
	if videoCodec == "" {
		videoCodec = "libx264"
	}

	cmdArgs := []string{"-y", "-i", videoPath}
	if len(program.Filters) > 0 {
		cmdArgs = append(cmdArgs, "-vf", program.FilterChain())
	}
	cmdArgs = append(cmdArgs,
		"-c:v", videoCodec,
		"-c:a", "copy",
		"-progress", "pipe:1",
		"-nostats",
		outputPath,
	)

	cmd := exec.Command(storage.FfmpegPath, cmdArgs...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		log.GetLogger().Error("runExport stdout pipe err", zap.String("jobId", jobId), zap.Error(err))
		_ = s.Jobs.Fail(jobId, "Export render failed")
		return
	}

	log.GetLogger().Info("encoder started", zap.String("jobId", jobId), zap.Strings("args", cmdArgs))
	if err := cmd.Start(); err != nil {
		log.GetLogger().Error("runExport start encoder err", zap.String("jobId", jobId), zap.Error(err))
		_ = s.Jobs.Fail(jobId, "Export render failed")
		return
	}

	var group errgroup.Group
	group.Go(func() error {
		scanner := bufio.NewScanner(stdout)
		for scanner.Scan() {
			percent, ok := parseProgressLine(scanner.Text(), duration)
			if !ok {
				continue
			}
			if err := s.Jobs.UpdateProgress(jobId, percent); err != nil {
				log.GetLogger().Warn("runExport update progress err",
					zap.String("jobId", jobId), zap.Int("percent", percent), zap.Error(err))
			}
		}
		return scanner.Err()
	})
	if err := group.Wait(); err != nil {
		log.GetLogger().Warn("runExport progress scan err", zap.String("jobId", jobId), zap.Error(err))
	}

	if err := cmd.Wait(); err != nil {
		log.GetLogger().Error("runExport encoder err", zap.String("jobId", jobId),
			zap.String("stderr", stderr.String()), zap.Error(err))
		_ = s.Jobs.Fail(jobId, "Export render failed")
		return
	}

	downloadUrl, err := resolveDownloadPath(outputPath)
	if err != nil {
		log.GetLogger().Error("runExport resolve download path err",
			zap.String("jobId", jobId), zap.String("output", outputPath), zap.Error(err))
		_ = s.Jobs.Fail(jobId, "Export render failed")
		return
	}

	if err := s.Jobs.Complete(jobId, "/api/file/"+downloadUrl); err != nil {
		log.GetLogger().Error("runExport complete job err", zap.String("jobId", jobId), zap.Error(err))
		return
	}
	log.GetLogger().Info("export job complete", zap.String("jobId", jobId), zap.String("output", outputPath))
}

// parseProgressLine extracts a clamped percentage from one key=value line of
// the encoder's progress stream. The out_time_ms value is in microseconds,
// matching out_time_us.
func parseProgressLine(line string, duration float64) (int, bool) {
	key, value, found := strings.Cut(strings.TrimSpace(line), "=")
	if !found || (key != "out_time_us" && key != "out_time_ms") {
		return 0, false
	}
	if duration <= 0 {
		return 0, false
	}
	outTimeUs, err := strconv.ParseInt(value, 10, 64)
	if err != nil || outTimeUs < 0 {
		return 0, false
	}
	percent := int(math.Round(float64(outTimeUs) / 1e6 / duration * 100))
	if percent < 0 {
		percent = 0
	}
	if percent > 99 {
		percent = 99
	}
	return percent, true
}
