package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/satriahrh/bhasha/domain"
	"github.com/satriahrh/bhasha/domain/repositories"
)

// TranscriptionService turns a recorded utterance into source text for the form.
// Failures here never reach the translation pipeline; the user retries or types instead.
type TranscriptionService struct {
	stt      repositories.SpeechToText
	defaults repositories.AudioConfig
	timeout  time.Duration
	logger   *zap.Logger
}

func NewTranscriptionService(
	stt repositories.SpeechToText,
	defaults repositories.AudioConfig,
	timeout time.Duration,
	logger *zap.Logger,
) *TranscriptionService {
	return &TranscriptionService{
		stt:      stt,
		defaults: defaults,
		timeout:  timeout,
		logger:   logger,
	}
}

// Transcribe converts a complete recording. Empty encoding or sample rate fall back to
// the configured defaults.
func (s *TranscriptionService) Transcribe(ctx context.Context, audio []byte, encoding string, sampleRate int) (string, error) {
	if len(audio) == 0 {
		return "", fmt.Errorf("%w: no audio data received", domain.ErrTranscriptionUnintelligible)
	}

	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	config := s.AudioConfig(encoding, sampleRate)
	s.logger.Info("Transcribing audio",
		zap.Int("audioSize", len(audio)),
		zap.String("encoding", config.Encoding),
		zap.Int("sampleRate", config.SampleRate))

	text, err := s.stt.TranscribeAudio(ctx, audio, config)
	if err != nil {
		err = classifyTranscriptionError(err)
		s.logger.Warn("Transcription failed", zap.Error(err))
		return "", err
	}

	text = strings.TrimSpace(text)
	if text == "" {
		return "", fmt.Errorf("%w: empty transcript", domain.ErrTranscriptionUnintelligible)
	}

	s.logger.Info("Transcription completed", zap.String("text", text))
	return text, nil
}

// OpenStream starts a streaming session for audio arriving in chunks. The configured
// timeout bounds the whole session, from opening to End.
func (s *TranscriptionService) OpenStream(ctx context.Context, encoding string, sampleRate int) (repositories.SpeechToTextStreaming, error) {
	var cancel context.CancelFunc
	if s.timeout > 0 {
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
	} else {
		ctx, cancel = context.WithCancel(ctx)
	}

	stream, err := s.stt.InitTranscribeStreaming(ctx, s.AudioConfig(encoding, sampleRate))
	if err != nil {
		cancel()
		return nil, classifyTranscriptionError(err)
	}
	return &classifiedStream{inner: stream, cancel: cancel}, nil
}

// AudioConfig merges per-request values over the configured defaults
func (s *TranscriptionService) AudioConfig(encoding string, sampleRate int) repositories.AudioConfig {
	config := s.defaults
	if encoding != "" {
		config.Encoding = encoding
	}
	if sampleRate > 0 {
		config.SampleRate = sampleRate
	}
	return config
}

// classifyTranscriptionError treats anything the adapter did not classify as a
// backend failure.
func classifyTranscriptionError(err error) error {
	if errors.Is(err, domain.ErrTranscriptionUnintelligible) || errors.Is(err, domain.ErrTranscriptionServiceUnavailable) {
		return err
	}
	return fmt.Errorf("%w: %w", domain.ErrTranscriptionServiceUnavailable, err)
}

type classifiedStream struct {
	inner  repositories.SpeechToTextStreaming
	cancel context.CancelFunc
}

func (c *classifiedStream) Stream(data []byte) error {
	if err := c.inner.Stream(data); err != nil {
		return classifyTranscriptionError(err)
	}
	return nil
}

func (c *classifiedStream) End() (string, error) {
	defer c.cancel()

	text, err := c.inner.End()
	if err != nil {
		return "", classifyTranscriptionError(err)
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return "", fmt.Errorf("%w: empty transcript", domain.ErrTranscriptionUnintelligible)
	}
	return text, nil
}

func (c *classifiedStream) Close() error {
	defer c.cancel()
	return c.inner.Close()
}
