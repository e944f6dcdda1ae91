package usecase

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"go.uber.org/zap/zaptest"

	"github.com/satriahrh/bhasha/domain"
	"github.com/satriahrh/bhasha/domain/repositories"
)

var defaultAudio = repositories.AudioConfig{SampleRate: 48000, Encoding: "WEBM_OPUS", Language: "en-US"}

func TestTranscribe_Success(t *testing.T) {
	stt := &fakeSTT{text: "  Hello there "}
	svc := NewTranscriptionService(stt, defaultAudio, time.Second, zaptest.NewLogger(t))

	text, err := svc.Transcribe(context.Background(), []byte("audio"), "", 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if text != "Hello there" {
		t.Errorf("expected trimmed transcript, got %q", text)
	}
	if stt.config != defaultAudio {
		t.Errorf("expected default audio config, got %+v", stt.config)
	}
}

func TestTranscribe_OverridesConfig(t *testing.T) {
	stt := &fakeSTT{text: "ok"}
	svc := NewTranscriptionService(stt, defaultAudio, 0, zaptest.NewLogger(t))

	if _, err := svc.Transcribe(context.Background(), []byte("audio"), "LINEAR16", 16000); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if stt.config.Encoding != "LINEAR16" || stt.config.SampleRate != 16000 || stt.config.Language != "en-US" {
		t.Errorf("unexpected merged config: %+v", stt.config)
	}
}

func TestTranscribe_ErrorKinds(t *testing.T) {
	tests := []struct {
		name  string
		audio []byte
		stt   *fakeSTT
		want  domain.ErrorKind
	}{
		{"no audio", nil, &fakeSTT{text: "x"}, domain.KindTranscriptionUnintelligible},
		{"empty transcript", []byte("a"), &fakeSTT{text: "  "}, domain.KindTranscriptionUnintelligible},
		{"adapter unintelligible", []byte("a"), &fakeSTT{err: fmt.Errorf("%w: silence", domain.ErrTranscriptionUnintelligible)}, domain.KindTranscriptionUnintelligible},
		{"adapter unavailable", []byte("a"), &fakeSTT{err: fmt.Errorf("%w: 503", domain.ErrTranscriptionServiceUnavailable)}, domain.KindTranscriptionServiceUnavailable},
		{"unclassified", []byte("a"), &fakeSTT{err: errors.New("grpc: deadline exceeded")}, domain.KindTranscriptionServiceUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewTranscriptionService(tt.stt, defaultAudio, time.Second, zaptest.NewLogger(t))
			_, err := svc.Transcribe(context.Background(), tt.audio, "", 0)
			if got := domain.KindOf(err); got != tt.want {
				t.Errorf("expected %v, got %v (%v)", tt.want, got, err)
			}
		})
	}
}

func TestOpenStream(t *testing.T) {
	stt := &fakeSTT{text: " streamed "}
	svc := NewTranscriptionService(stt, defaultAudio, time.Second, zaptest.NewLogger(t))

	stream, err := svc.OpenStream(context.Background(), "", 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	stream.Stream([]byte("abc"))
	stream.Stream([]byte("def"))

	text, err := stream.End()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if text != "streamed" {
		t.Errorf("expected trimmed transcript, got %q", text)
	}
	if stt.stream.received != 6 {
		t.Errorf("expected 6 bytes forwarded, got %d", stt.stream.received)
	}

	stt = &fakeSTT{err: errors.New("auth failed")}
	svc = NewTranscriptionService(stt, defaultAudio, time.Second, zaptest.NewLogger(t))
	if _, err := svc.OpenStream(context.Background(), "", 0); !errors.Is(err, domain.ErrTranscriptionServiceUnavailable) {
		t.Errorf("expected ErrTranscriptionServiceUnavailable, got %v", err)
	}
}

func TestOpenStream_SessionIsBoundedByTimeout(t *testing.T) {
	stt := &fakeSTT{text: "hello"}
	svc := NewTranscriptionService(stt, defaultAudio, 30*time.Second, zaptest.NewLogger(t))

	stream, err := svc.OpenStream(context.Background(), "", 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	deadline, ok := stt.ctx.Deadline()
	if !ok {
		t.Fatal("expected the session context to carry a deadline")
	}
	if remaining := time.Until(deadline); remaining <= 0 || remaining > 30*time.Second {
		t.Errorf("unexpected deadline in %v", remaining)
	}

	if _, err := stream.End(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if stt.ctx.Err() == nil {
		t.Error("expected the session context to be released after End")
	}
}

func TestOpenStream_CloseReleasesSession(t *testing.T) {
	stt := &fakeSTT{text: "hello"}
	svc := NewTranscriptionService(stt, defaultAudio, 0, zaptest.NewLogger(t))

	stream, err := svc.OpenStream(context.Background(), "", 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := stt.ctx.Deadline(); ok {
		t.Error("expected no deadline when the timeout is disabled")
	}

	if err := stream.Close(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if stt.stream.closed != 1 {
		t.Errorf("expected the adapter session to be closed once, got %d", stt.stream.closed)
	}
	if stt.ctx.Err() == nil {
		t.Error("expected the session context to be cancelled after Close")
	}
}
