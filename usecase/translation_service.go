package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/text/unicode/norm"

	"github.com/satriahrh/bhasha/domain"
	"github.com/satriahrh/bhasha/domain/entities"
	"github.com/satriahrh/bhasha/domain/repositories"
)

// TranslationService runs the translate-then-speak pipeline. Each call is independent:
// nothing is cached and every stage is attempted exactly once.
type TranslationService struct {
	llm     repositories.LargeLanguageModel
	tts     repositories.TextToSpeech
	store   repositories.AudioStore
	timeout time.Duration
	logger  *zap.Logger
}

// NewTranslationService creates a new translation service. A zero timeout leaves the
// caller's context deadline untouched.
func NewTranslationService(
	llm repositories.LargeLanguageModel,
	tts repositories.TextToSpeech,
	store repositories.AudioStore,
	timeout time.Duration,
	logger *zap.Logger,
) *TranslationService {
	return &TranslationService{
		llm:     llm,
		tts:     tts,
		store:   store,
		timeout: timeout,
		logger:  logger,
	}
}

// CheckModel verifies the inference endpoint is reachable
func (s *TranslationService) CheckModel(ctx context.Context) error {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	if err := s.llm.Ping(ctx); err != nil {
		if errors.Is(err, domain.ErrModelUnreachable) {
			return err
		}
		return fmt.Errorf("%w: %w", domain.ErrModelUnreachable, err)
	}
	return nil
}

// Translate validates the request, asks the model for a translation and synthesizes it
func (s *TranslationService) Translate(ctx context.Context, req entities.TranslationRequest) (*entities.TranslationResult, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	logger := s.logger.With(
		zap.String("language", req.TargetLanguage.String()),
		zap.String("provider", s.llm.Name()))

	// Step 1: Translation
	start := time.Now()
	translated, err := s.invokeModel(ctx, req)
	if err != nil {
		logger.Warn("Translation failed", zap.Error(err), zap.Duration("latency", time.Since(start)))
		return nil, err
	}
	logger.Info("Translation completed",
		zap.Int("sourceLength", len(req.SourceText)),
		zap.Int("translatedLength", len(translated)),
		zap.Duration("latency", time.Since(start)))

	// Step 2: Text to Speech
	code := req.TargetLanguage.SpeechCode()
	start = time.Now()
	audio, err := s.tts.SynthesizeSpeech(ctx, translated, code)
	if err != nil {
		logger.Warn("Speech synthesis failed", zap.Error(err))
		return nil, fmt.Errorf("%w: speech synthesis: %w", domain.ErrTranslation, err)
	}
	if audio == nil || len(audio.Data) == 0 {
		return nil, fmt.Errorf("%w: speech synthesis returned no audio", domain.ErrTranslation)
	}

	// Step 3: Store the clip for playback
	audioID, err := s.store.Save(ctx, audio)
	if err != nil {
		logger.Warn("Storing audio failed", zap.Error(err))
		return nil, fmt.Errorf("%w: storing audio: %w", domain.ErrTranslation, err)
	}
	logger.Info("TTS completed",
		zap.String("speechCode", code),
		zap.Int("audioSize", len(audio.Data)),
		zap.String("audioID", audioID),
		zap.Duration("latency", time.Since(start)))

	return &entities.TranslationResult{
		TranslatedText: translated,
		TargetLanguage: req.TargetLanguage,
		SpeechCode:     code,
		Audio:          audio.Data,
		AudioFormat:    audio.Format,
		AudioID:        audioID,
	}, nil
}

func (s *TranslationService) invokeModel(ctx context.Context, req entities.TranslationRequest) (string, error) {
	reply, err := s.llm.Chat(ctx, BuildPrompt(req))
	if err != nil {
		if errors.Is(err, domain.ErrModelUnreachable) {
			return "", err
		}
		return "", fmt.Errorf("%w: %w", domain.ErrTranslation, err)
	}

	translated := ParseModelOutput(reply)
	if translated == "" {
		return "", fmt.Errorf("%w: model returned an empty translation", domain.ErrTranslation)
	}
	return translated, nil
}

func (s *TranslationService) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, s.timeout)
}

// BuildPrompt returns the system instruction followed by the user's text verbatim
func BuildPrompt(req entities.TranslationRequest) []repositories.ChatMessage {
	return []repositories.ChatMessage{
		{Role: repositories.SystemRole, Content: req.SystemPrompt()},
		{Role: repositories.UserRole, Content: req.SourceText},
	}
}

// ParseModelOutput reduces a raw completion to display text.
// Indic scripts can arrive in decomposed form, so the result is NFC-normalized.
func ParseModelOutput(raw string) string {
	return norm.NFC.String(strings.TrimSpace(raw))
}
