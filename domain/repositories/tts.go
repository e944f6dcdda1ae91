package repositories

import "context"

// TextToSpeech abstracts speech synthesis services
type TextToSpeech interface {
	// SynthesizeSpeech converts text to encoded audio for a two-letter language code
	SynthesizeSpeech(ctx context.Context, text string, languageCode string) (*SpeechAudio, error)
}

// SpeechAudio is a complete encoded audio clip
type SpeechAudio struct {
	Data        []byte
	Format      string // e.g. "mp3"
	ContentType string // e.g. "audio/mpeg"
}
