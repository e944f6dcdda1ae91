package repositories

import "context"

// SpeechToText abstracts speech recognition services.
// Implementations wrap domain.ErrTranscriptionUnintelligible when no speech could be
// decoded and domain.ErrTranscriptionServiceUnavailable when the backend failed.
type SpeechToText interface {
	// TranscribeAudio converts audio data to text
	TranscribeAudio(ctx context.Context, audioData []byte, config AudioConfig) (string, error)
	// InitTranscribeStreaming initializes a streaming transcription session
	InitTranscribeStreaming(ctx context.Context, config AudioConfig) (SpeechToTextStreaming, error)
}

// AudioConfig represents audio configuration for speech recognition
type AudioConfig struct {
	SampleRate int    `json:"sample_rate"`
	Encoding   string `json:"encoding"`
	Language   string `json:"language"`
}

// SpeechToTextStreaming is one recognition session. End returns the transcript and
// releases the session; Close releases it without waiting for a result. Both are
// safe to call more than once.
type SpeechToTextStreaming interface {
	Stream(data []byte) error
	End() (string, error)
	Close() error
}
