package stt

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/satriahrh/bhasha/domain"
	"github.com/satriahrh/bhasha/domain/repositories"
)

// MockSpeechToText is a placeholder implementation for speech recognition
type MockSpeechToText struct {
	logger *zap.Logger
}

// MockSpeechToTextStream is a mock implementation of streaming speech recognition
type MockSpeechToTextStream struct {
	logger        *zap.Logger
	receivedBytes int
}

// NewMockSpeechToText creates a new mock speech-to-text service
func NewMockSpeechToText(logger *zap.Logger) *MockSpeechToText {
	return &MockSpeechToText{
		logger: logger,
	}
}

// InitTranscribeStreaming creates a new mock streaming session
func (s *MockSpeechToText) InitTranscribeStreaming(ctx context.Context, config repositories.AudioConfig) (repositories.SpeechToTextStreaming, error) {
	s.logger.Info("Initializing mock streaming transcription",
		zap.Int("sampleRate", config.SampleRate),
		zap.String("encoding", config.Encoding),
		zap.String("language", config.Language))

	return &MockSpeechToTextStream{logger: s.logger}, nil
}

// Stream implements mock streaming audio processing
func (m *MockSpeechToTextStream) Stream(data []byte) error {
	m.logger.Debug("Processing mock audio chunk", zap.Int("size", len(data)))
	m.receivedBytes += len(data)
	return nil
}

// End returns the mock transcription result
func (m *MockSpeechToTextStream) End() (string, error) {
	text := mockTranscript(m.receivedBytes)
	if text == "" {
		return "", fmt.Errorf("%w: no audio data received", domain.ErrTranscriptionUnintelligible)
	}
	m.logger.Info("Ending mock transcription stream", zap.String("result", text))
	return text, nil
}

// Close discards the session
func (m *MockSpeechToTextStream) Close() error {
	return nil
}

// TranscribeAudio implements repositories.SpeechToText
func (s *MockSpeechToText) TranscribeAudio(ctx context.Context, audioData []byte, config repositories.AudioConfig) (string, error) {
	s.logger.Info("Processing speech-to-text",
		zap.Int("audioSize", len(audioData)),
		zap.Int("sampleRate", config.SampleRate),
		zap.String("encoding", config.Encoding))

	text := mockTranscript(len(audioData))
	if text == "" {
		return "", fmt.Errorf("%w: no audio data received", domain.ErrTranscriptionUnintelligible)
	}
	return text, nil
}

// Mock transcription based on audio size
func mockTranscript(size int) string {
	switch {
	case size > 10000:
		return "Good morning, how are you today?"
	case size > 1000:
		return "Thank you very much."
	case size > 0:
		return "Hello"
	default:
		return ""
	}
}
