package repositories

import (
	"context"
	"errors"
	"io"
)

// ErrAudioNotFound is returned when an artifact id does not resolve
var ErrAudioNotFound = errors.New("audio not found")

// AudioStore keeps synthesized clips long enough for the browser to play them.
// Each Save produces a new uniquely named artifact; nothing is deduplicated.
type AudioStore interface {
	Save(ctx context.Context, audio *SpeechAudio) (string, error)
	Open(ctx context.Context, id string) (io.ReadCloser, string, error)
}
