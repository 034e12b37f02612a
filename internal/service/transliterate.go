package service

import (
	"strings"

	"caption-studio/config"
	"caption-studio/internal/dto"
	"caption-studio/internal/types"
	"caption-studio/log"
	apperrors "caption-studio/pkg/errors"
	"caption-studio/pkg/util"

	"github.com/texttheater/golang-levenshtein/levenshtein"
	"go.uber.org/zap"
)

const transliterateSystemPrompt = "Convert Hindi text to Hinglish (Roman script). " +
	"Rules: 1) Convert Hindi to phonetic Roman letters 2) Keep English words same " +
	"3) Same word count 4) Return only converted text. " +
	"Examples: नमस्ते→Namaste, अच्छा→Accha, मैं→Main"

const fallbackModelName = "fallback-rules"

// TransliterateCaptions rewrites each caption word into roman script while
// leaving every timestamp untouched. The chat completion is the primary
// transform; any collaborator failure falls back to the built-in substitution
// table, so the operation itself never fails once the input validates.
func (s Service) TransliterateCaptions(req dto.TransliterateReq) (*dto.TransliterateResData, error) {
	if len(req.Captions) == 0 {
		return nil, apperrors.New(apperrors.CodeInvalidParams, "Captions are required")
	}

	originalWords := make([]string, 0, len(req.Captions))
	for _, caption := range req.Captions {
		originalWords = append(originalWords, caption.Word)
	}
	originalText := strings.Join(originalWords, " ")

	convertedText, model := s.transliterateText(originalText)
	candidateWords := util.SplitWords(convertedText)

	if len(candidateWords) != len(req.Captions) {
		log.GetLogger().Warn("transliteration word count mismatch",
			zap.Int("original", len(req.Captions)),
			zap.Int("converted", len(candidateWords)),
			zap.String("model", model))
	}

	// Positional reconciliation: timing always comes from the input, the
	// word comes from the candidate at the same index when one exists.
	captions := make([]types.WordTimestamp, len(req.Captions))
	for index, caption := range req.Captions {
		word := caption.Word
		if index < len(candidateWords) && candidateWords[index] != "" {
			word = candidateWords[index]
		}
		confidence := caption.Confidence
		if confidence == 0 {
			confidence = 1.0
		}
		captions[index] = types.WordTimestamp{
			Word:       word,
			Start:      caption.Start,
			End:        caption.End,
			Confidence: confidence,
		}
	}

	distance := levenshtein.DistanceForStrings([]rune(originalText), []rune(convertedText), levenshtein.DefaultOptions)
	log.GetLogger().Info("transliteration done",
		zap.Int("wordCount", len(captions)),
		zap.String("model", model),
		zap.Int("editDistance", distance))

	return &dto.TransliterateResData{
		Captions:      captions,
		WordCount:     len(captions),
		OriginalText:  originalText,
		ConvertedText: convertedText,
		Model:         model,
	}, nil
}

// transliterateText runs the chat completion when the collaborator is
// configured and healthy, the substitution table otherwise. It reports which
// transform produced the text.
func (s Service) transliterateText(originalText string) (string, string) {
	if s.llmModelName() == "" {
		return romanizeLocally(originalText), fallbackModelName
	}

	content, err := s.ChatCompleter.ChatCompletion(transliterateSystemPrompt, originalText)
	if err != nil {
		log.GetLogger().Warn("chat completion failed, using substitution table", zap.Error(err))
		return romanizeLocally(originalText), fallbackModelName
	}

	cleaned := util.CleanCompletionText(content)
	if cleaned == "" {
		log.GetLogger().Warn("chat completion returned no content, using substitution table")
		return romanizeLocally(originalText), fallbackModelName
	}
	return cleaned, s.llmModelName()
}

// llmModelName reports the configured completion model, or "" when the
// collaborator is unavailable and the local table must serve.
func (s Service) llmModelName() string {
	if s.ChatCompleter == nil || config.Conf.Llm.ApiKey == "" {
		return ""
	}
	return config.Conf.Llm.Model
}
