package tts

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/satriahrh/bhasha/domain/repositories"
)

// A single silent MPEG-1 Layer III frame header followed by padding
var silentFrame = append([]byte{0xFF, 0xFB, 0x90, 0x64}, make([]byte, 413)...)

// MockTextToSpeech is a placeholder implementation for text-to-speech
type MockTextToSpeech struct {
	logger *zap.Logger
}

func NewMockTextToSpeech(logger *zap.Logger) *MockTextToSpeech {
	return &MockTextToSpeech{logger: logger}
}

// SynthesizeSpeech implements repositories.TextToSpeech
func (m *MockTextToSpeech) SynthesizeSpeech(ctx context.Context, text string, languageCode string) (*repositories.SpeechAudio, error) {
	if strings.TrimSpace(text) == "" {
		return nil, fmt.Errorf("text cannot be empty")
	}

	m.logger.Info("Processing text-to-speech",
		zap.Int("textLength", len(text)),
		zap.String("languageCode", languageCode))

	data := make([]byte, len(silentFrame))
	copy(data, silentFrame)
	return &repositories.SpeechAudio{Data: data, Format: "mp3", ContentType: "audio/mpeg"}, nil
}
