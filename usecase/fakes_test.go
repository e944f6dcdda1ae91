package usecase

import (
	"context"
	"errors"
	"io"

	"github.com/google/uuid"

	"github.com/satriahrh/bhasha/domain/repositories"
)

type fakeLLM struct {
	reply    string
	err      error
	pingErr  error
	calls    int
	messages [][]repositories.ChatMessage
}

func (f *fakeLLM) Chat(ctx context.Context, messages []repositories.ChatMessage) (string, error) {
	f.calls++
	f.messages = append(f.messages, messages)
	return f.reply, f.err
}

func (f *fakeLLM) Ping(ctx context.Context) error { return f.pingErr }

func (f *fakeLLM) Name() string { return "fake" }

type fakeTTS struct {
	err   error
	calls int
	codes []string
	texts []string
}

func (f *fakeTTS) SynthesizeSpeech(ctx context.Context, text, code string) (*repositories.SpeechAudio, error) {
	f.calls++
	f.codes = append(f.codes, code)
	f.texts = append(f.texts, text)
	if f.err != nil {
		return nil, f.err
	}
	return &repositories.SpeechAudio{Data: []byte("audio:" + text), Format: "mp3", ContentType: "audio/mpeg"}, nil
}

type fakeStore struct {
	err   error
	saved map[string][]byte
}

func (f *fakeStore) Save(ctx context.Context, audio *repositories.SpeechAudio) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	if f.saved == nil {
		f.saved = map[string][]byte{}
	}
	id := uuid.NewString()
	f.saved[id] = audio.Data
	return id, nil
}

func (f *fakeStore) Open(ctx context.Context, id string) (io.ReadCloser, string, error) {
	return nil, "", errors.New("not implemented")
}

type fakeSTT struct {
	text   string
	err    error
	config repositories.AudioConfig
	ctx    context.Context
	stream *fakeSTTStream
}

func (f *fakeSTT) TranscribeAudio(ctx context.Context, audio []byte, config repositories.AudioConfig) (string, error) {
	f.config = config
	return f.text, f.err
}

func (f *fakeSTT) InitTranscribeStreaming(ctx context.Context, config repositories.AudioConfig) (repositories.SpeechToTextStreaming, error) {
	f.config = config
	f.ctx = ctx
	if f.err != nil {
		return nil, f.err
	}
	f.stream = &fakeSTTStream{text: f.text}
	return f.stream, nil
}

type fakeSTTStream struct {
	text     string
	received int
	endErr   error
	closed   int
}

func (f *fakeSTTStream) Stream(data []byte) error {
	f.received += len(data)
	return nil
}

func (f *fakeSTTStream) End() (string, error) {
	return f.text, f.endErr
}

func (f *fakeSTTStream) Close() error {
	f.closed++
	return nil
}
