package service

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"unicode"

	"caption-studio/config"
	"caption-studio/internal/dto"
	"caption-studio/internal/types"
	"caption-studio/log"
	apperrors "caption-studio/pkg/errors"
	"caption-studio/pkg/util"

	"go.uber.org/zap"
)

// Average speaking rate of ~150 words per minute.
const scriptSecondsPerWord = 0.4

// AutoGenerateCaptions extracts the audio track from an uploaded video and
// turns it into word-level timestamps via the transcription collaborator.
// The intermediate audio artifact is removed on every path.
func (s Service) AutoGenerateCaptions(ctx context.Context, req dto.AutoGenerateCaptionsReq) (*dto.AutoGenerateCaptionsResData, error) {
	apiKey := config.Conf.Transcribe.Assemblyai.ApiKey
	if apiKey == "" || apiKey == "your_api_key_here" {
		return nil, apperrors.New(apperrors.CodeConfigMissing, "Transcription API key not configured")
	}

	videoPath, err := s.resolveVideoPath(req.VideoPath)
	if err != nil {
		return nil, err
	}

	tempDir, err := resolveTempDir()
	if err != nil {
		return nil, apperrors.Wrap(apperrors.CodeUnknown, "Failed to resolve temp directory", err)
	}

	log.GetLogger().Info("auto-generating captions",
		zap.String("video", videoPath), zap.String("language", req.Language))

	audioPath, err := util.ExtractAudio(videoPath, tempDir)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.CodeAudioExtract, "Failed to extract audio", err)
	}
	defer func() {
		if removeErr := os.Remove(audioPath); removeErr != nil {
			log.GetLogger().Warn("removing extracted audio failed",
				zap.String("audio", audioPath), zap.Error(removeErr))
		}
	}()

	captions, err := s.Transcriber.Transcribe(ctx, audioPath, req.Language)
	if err != nil {
		var appErr *apperrors.AppError
		if errors.As(err, &appErr) {
			return nil, err
		}
		return nil, apperrors.Wrap(apperrors.CodeTranscribeFailed, "Failed to generate captions", err)
	}

	return &dto.AutoGenerateCaptionsResData{
		Captions:   captions,
		WordCount:  len(captions),
		Confidence: averageConfidence(captions),
	}, nil
}

// GenerateScriptTimestamps evenly spaces a script's words at the average
// speaking rate, for the flow where no audio track exists to transcribe.
func (s Service) GenerateScriptTimestamps(req dto.GenerateTimestampsReq) (*dto.GenerateTimestampsResData, error) {
	script := strings.TrimSpace(req.Script)
	if script == "" {
		return nil, apperrors.New(apperrors.CodeInvalidParams, "Script is required")
	}

	words := strings.Fields(script)
	timestamps := make([]types.WordTimestamp, len(words))
	for index, word := range words {
		timestamps[index] = types.WordTimestamp{
			Word:  stripPunctuation(word),
			Start: float64(index) * scriptSecondsPerWord,
			End:   float64(index+1) * scriptSecondsPerWord,
		}
	}

	return &dto.GenerateTimestampsResData{
		Timestamps: timestamps,
		WordCount:  len(timestamps),
	}, nil
}

func (s Service) resolveVideoPath(videoPath string) (string, error) {
	candidate := videoPath
	if !filepath.IsAbs(candidate) {
		uploadDir, err := resolveUploadDir()
		if err != nil {
			return "", apperrors.Wrap(apperrors.CodeUnknown, "Failed to resolve upload directory", err)
		}
		candidate = filepath.Join(uploadDir, filepath.Clean(videoPath))
	}
	if _, err := os.Stat(candidate); err != nil {
		return "", apperrors.WrapWithDetail(apperrors.CodeVideoNotFound, "Video file not found", candidate, err)
	}
	return candidate, nil
}

func stripPunctuation(word string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '\'' || r == '-' || r == '_' {
			return r
		}
		return -1
	}, word)
}

func averageConfidence(words []types.WordTimestamp) float64 {
	if len(words) == 0 {
		return 0
	}
	var total float64
	for _, word := range words {
		total += word.Confidence
	}
	return total / float64(len(words))
}
