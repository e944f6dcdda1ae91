package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/satriahrh/bhasha/domain/repositories"
)

const artifactPrefix = "bhasha-"

// TempDirAudioStore writes each clip to its own uniquely named file.
// Files are left in place; cleanup belongs to the operating system's temp policy.
type TempDirAudioStore struct {
	dir    string
	logger *zap.Logger
}

var _ repositories.AudioStore = (*TempDirAudioStore)(nil)

// NewTempDirAudioStore uses os.TempDir() when dir is empty
func NewTempDirAudioStore(dir string, logger *zap.Logger) (*TempDirAudioStore, error) {
	if dir == "" {
		dir = os.TempDir()
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create audio directory: %w", err)
	}
	return &TempDirAudioStore{dir: dir, logger: logger}, nil
}

func (s *TempDirAudioStore) Save(ctx context.Context, audio *repositories.SpeechAudio) (string, error) {
	if audio == nil || len(audio.Data) == 0 {
		return "", errors.New("audio cannot be empty")
	}

	id := uuid.NewString()
	path := s.path(id, audio.Format)
	if err := os.WriteFile(path, audio.Data, 0o644); err != nil {
		return "", fmt.Errorf("failed to write audio file: %w", err)
	}

	s.logger.Debug("Stored audio artifact", zap.String("path", path), zap.Int("size", len(audio.Data)))
	return id, nil
}

func (s *TempDirAudioStore) Open(ctx context.Context, id string) (io.ReadCloser, string, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, "", repositories.ErrAudioNotFound
	}

	// The format is not part of the id, so look for whichever extension was written
	matches, err := filepath.Glob(filepath.Join(s.dir, artifactPrefix+id+".*"))
	if err != nil || len(matches) == 0 {
		return nil, "", repositories.ErrAudioNotFound
	}

	f, err := os.Open(matches[0])
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, "", repositories.ErrAudioNotFound
		}
		return nil, "", fmt.Errorf("failed to open audio file: %w", err)
	}
	return f, contentTypeFor(filepath.Ext(matches[0])), nil
}

func (s *TempDirAudioStore) path(id, format string) string {
	if format == "" {
		format = "mp3"
	}
	return filepath.Join(s.dir, artifactPrefix+id+"."+format)
}

func contentTypeFor(ext string) string {
	switch ext {
	case ".mp3":
		return "audio/mpeg"
	case ".wav":
		return "audio/wav"
	case ".ogg":
		return "audio/ogg"
	default:
		return "application/octet-stream"
	}
}
