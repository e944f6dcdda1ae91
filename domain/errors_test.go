package domain

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"testing"
)

func TestKindOf(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want ErrorKind
	}{
		{"nil", nil, KindNone},
		{"empty input", ErrEmptyInput, KindEmptyInput},
		{"wrapped unintelligible", fmt.Errorf("google stt: %w", ErrTranscriptionUnintelligible), KindTranscriptionUnintelligible},
		{"wrapped unavailable", fmt.Errorf("dial: %w", ErrTranscriptionServiceUnavailable), KindTranscriptionServiceUnavailable},
		{"double wrapped model", fmt.Errorf("chat: %w", fmt.Errorf("%w: refused", ErrModelUnreachable)), KindModelUnreachable},
		{"explicit translation", fmt.Errorf("%w: boom", ErrTranslation), KindTranslation},
		{"unknown", errors.New("something else"), KindTranslation},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := KindOf(tt.err); got != tt.want {
				t.Errorf("KindOf() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestUserMessage(t *testing.T) {
	if msg := UserMessage(nil); msg != "" {
		t.Errorf("expected empty message for nil, got %q", msg)
	}

	if msg := UserMessage(ErrEmptyInput); msg != "Please enter a word or sentence to translate!" {
		t.Errorf("unexpected empty input message: %q", msg)
	}

	err := fmt.Errorf("%w: connection refused", ErrModelUnreachable)
	msg := UserMessage(err)
	if !strings.HasPrefix(msg, "Error connecting to the language model: ") {
		t.Errorf("unexpected prefix: %q", msg)
	}
	if !strings.Contains(msg, "connection refused") {
		t.Errorf("expected underlying message verbatim, got %q", msg)
	}

	msg = UserMessage(errors.New("disk full"))
	if msg != "Error during translation: disk full" {
		t.Errorf("unexpected catch-all message: %q", msg)
	}
}

func TestHTTPStatus(t *testing.T) {
	cases := map[ErrorKind]int{
		KindNone:                            http.StatusOK,
		KindEmptyInput:                      http.StatusBadRequest,
		KindTranscriptionUnintelligible:     http.StatusUnprocessableEntity,
		KindTranscriptionServiceUnavailable: http.StatusServiceUnavailable,
		KindModelUnreachable:                http.StatusBadGateway,
		KindTranslation:                     http.StatusInternalServerError,
	}
	for kind, want := range cases {
		if got := HTTPStatus(kind); got != want {
			t.Errorf("HTTPStatus(%v) = %d, want %d", kind, got, want)
		}
	}
}
