package api

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"mime/multipart"
	"net"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap/zaptest"

	"github.com/satriahrh/bhasha/adapters/llm"
	"github.com/satriahrh/bhasha/adapters/storage"
	"github.com/satriahrh/bhasha/adapters/stt"
	"github.com/satriahrh/bhasha/adapters/tts"
	"github.com/satriahrh/bhasha/domain"
	"github.com/satriahrh/bhasha/domain/repositories"
	"github.com/satriahrh/bhasha/internal/websocket"
	"github.com/satriahrh/bhasha/usecase"
)

// unreachableLLM fails every call the way a stopped inference server does
type unreachableLLM struct{}

func (unreachableLLM) Name() string { return "unreachable" }

func (unreachableLLM) Chat(ctx context.Context, messages []repositories.ChatMessage) (string, error) {
	return "", errors.Join(domain.ErrModelUnreachable, &net.OpError{Op: "dial", Net: "tcp", Err: errors.New("connection refused")})
}

func (unreachableLLM) Ping(ctx context.Context) error {
	return domain.ErrModelUnreachable
}

func newTestEcho(t *testing.T, model repositories.LargeLanguageModel) *echo.Echo {
	t.Helper()
	logger := zaptest.NewLogger(t)

	store, err := storage.NewTempDirAudioStore(t.TempDir(), logger)
	if err != nil {
		t.Fatalf("store: %v", err)
	}
	translation := usecase.NewTranslationService(model, tts.NewMockTextToSpeech(logger), store, 5*time.Second, logger)
	transcription := usecase.NewTranscriptionService(
		stt.NewMockSpeechToText(logger),
		repositories.AudioConfig{Encoding: "WEBM_OPUS", SampleRate: 48000, Language: "en-US"},
		5*time.Second,
		logger,
	)

	e := echo.New()
	h := NewHandler(translation, transcription, store, logger)
	if err := InitRoutes(e, h, websocket.NewHandler(transcription, logger), logger); err != nil {
		t.Fatalf("InitRoutes: %v", err)
	}
	return e
}

func serve(e *echo.Echo, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func postJSON(path, body string) *http.Request {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	return req
}

func TestTranslate_Success(t *testing.T) {
	e := newTestEcho(t, llm.NewMockLLM())

	rec := serve(e, postJSON("/api/v1/translate", `{"text": "Good morning", "language": "tamil"}`))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}

	var resp TranslateResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.TranslatedText != "[Translate the following into Tamil:] Good morning" {
		t.Errorf("translated_text = %q", resp.TranslatedText)
	}
	if resp.Language != "Tamil" || resp.SpeechCode != "ta" {
		t.Errorf("language = %q, speech_code = %q", resp.Language, resp.SpeechCode)
	}
	if !strings.HasPrefix(resp.AudioURL, "/audio/") {
		t.Errorf("audio_url = %q", resp.AudioURL)
	}
	if _, err := base64.StdEncoding.DecodeString(resp.AudioBase64); err != nil || resp.AudioBase64 == "" {
		t.Errorf("audio_base64 not decodable: %v", err)
	}

	audio := serve(e, httptest.NewRequest(http.MethodGet, resp.AudioURL, nil))
	if audio.Code != http.StatusOK {
		t.Fatalf("audio status = %d", audio.Code)
	}
	if ct := audio.Header().Get(echo.HeaderContentType); ct != "audio/mpeg" {
		t.Errorf("audio content type = %q", ct)
	}
	if audio.Body.Len() == 0 {
		t.Error("audio body is empty")
	}
}

func TestTranslate_EmptyLanguageDefaultsToHindi(t *testing.T) {
	e := newTestEcho(t, llm.NewMockLLM())

	rec := serve(e, postJSON("/api/v1/translate", `{"text": "hello"}`))
	var resp TranslateResponse
	json.Unmarshal(rec.Body.Bytes(), &resp)
	if resp.Language != "Hindi" || resp.SpeechCode != "hi" {
		t.Errorf("got language %q speech code %q", resp.Language, resp.SpeechCode)
	}
}

func TestTranslate_UnknownLanguageUsesDefaultSpeechCode(t *testing.T) {
	e := newTestEcho(t, llm.NewMockLLM())

	rec := serve(e, postJSON("/api/v1/translate", `{"text": "hello", "language": "Klingon"}`))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var resp TranslateResponse
	json.Unmarshal(rec.Body.Bytes(), &resp)
	if resp.Language != "Klingon" || resp.SpeechCode != "hi" {
		t.Errorf("got language %q speech code %q", resp.Language, resp.SpeechCode)
	}
}

func TestTranslate_Errors(t *testing.T) {
	tests := []struct {
		name       string
		model      repositories.LargeLanguageModel
		body       string
		wantStatus int
		wantKind   string
		wantPrefix string
	}{
		{
			name:       "whitespace input",
			model:      llm.NewMockLLM(),
			body:       `{"text": "   ", "language": "Hindi"}`,
			wantStatus: http.StatusBadRequest,
			wantKind:   "empty_input",
			wantPrefix: "Please enter a word or sentence to translate!",
		},
		{
			name:       "model unreachable",
			model:      unreachableLLM{},
			body:       `{"text": "hello", "language": "Hindi"}`,
			wantStatus: http.StatusBadGateway,
			wantKind:   "model_unreachable",
			wantPrefix: "Error connecting to the language model: ",
		},
		{
			name:       "malformed body",
			model:      llm.NewMockLLM(),
			body:       `{"text": `,
			wantStatus: http.StatusBadRequest,
			wantKind:   "invalid_request",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := serve(newTestEcho(t, tt.model), postJSON("/api/v1/translate", tt.body))
			if rec.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
			var resp ErrorResponse
			if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
				t.Fatalf("decode: %v", err)
			}
			if resp.Error != tt.wantKind {
				t.Errorf("error = %q, want %q", resp.Error, tt.wantKind)
			}
			if !strings.HasPrefix(resp.Message, tt.wantPrefix) {
				t.Errorf("message = %q, want prefix %q", resp.Message, tt.wantPrefix)
			}
		})
	}
}

func multipartAudio(t *testing.T, audio []byte, fields map[string]string) *http.Request {
	t.Helper()
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	if audio != nil {
		part, err := writer.CreateFormFile("audio", "recording.webm")
		if err != nil {
			t.Fatalf("form file: %v", err)
		}
		part.Write(audio)
	}
	for k, v := range fields {
		writer.WriteField(k, v)
	}
	writer.Close()

	req := httptest.NewRequest(http.MethodPost, "/api/v1/transcribe", &body)
	req.Header.Set(echo.HeaderContentType, writer.FormDataContentType())
	return req
}

func TestTranscribe(t *testing.T) {
	e := newTestEcho(t, llm.NewMockLLM())

	rec := serve(e, multipartAudio(t, make([]byte, 2048), map[string]string{"encoding": "WEBM_OPUS", "sample_rate": "48000"}))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	var resp TranscribeResponse
	json.Unmarshal(rec.Body.Bytes(), &resp)
	if resp.Text != "Thank you very much." {
		t.Errorf("text = %q", resp.Text)
	}
}

func TestTranscribe_Errors(t *testing.T) {
	e := newTestEcho(t, llm.NewMockLLM())

	rec := serve(e, multipartAudio(t, nil, nil))
	if rec.Code != http.StatusBadRequest {
		t.Errorf("missing file: status = %d", rec.Code)
	}

	rec = serve(e, multipartAudio(t, []byte{}, nil))
	if rec.Code != http.StatusUnprocessableEntity {
		t.Errorf("empty recording: status = %d", rec.Code)
	}
	var resp ErrorResponse
	json.Unmarshal(rec.Body.Bytes(), &resp)
	if resp.Message != "Sorry, I could not understand the audio. Please try again." {
		t.Errorf("message = %q", resp.Message)
	}

	rec = serve(e, multipartAudio(t, []byte{1}, map[string]string{"sample_rate": "fast"}))
	if rec.Code != http.StatusBadRequest {
		t.Errorf("bad sample rate: status = %d", rec.Code)
	}
}

func TestAudio_NotFound(t *testing.T) {
	e := newTestEcho(t, llm.NewMockLLM())

	for _, id := range []string{"not-a-uuid", "6f1d3b7e-8f57-4c4b-9d43-5b8a9f0c1e2d"} {
		rec := serve(e, httptest.NewRequest(http.MethodGet, "/audio/"+id, nil))
		if rec.Code != http.StatusNotFound {
			t.Errorf("id %s: status = %d", id, rec.Code)
		}
	}
}

func TestLanguages(t *testing.T) {
	e := newTestEcho(t, llm.NewMockLLM())

	rec := serve(e, httptest.NewRequest(http.MethodGet, "/api/v1/languages", nil))
	var options []LanguageOption
	if err := json.Unmarshal(rec.Body.Bytes(), &options); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(options) != 12 {
		t.Fatalf("got %d languages, want 12", len(options))
	}
	if options[0].Name != "Hindi" || options[0].SpeechCode != "hi" {
		t.Errorf("first option = %+v", options[0])
	}
	if options[11].Name != "Odia" || options[11].SpeechCode != "or" {
		t.Errorf("last option = %+v", options[11])
	}
}

func TestHealth(t *testing.T) {
	rec := serve(newTestEcho(t, llm.NewMockLLM()), httptest.NewRequest(http.MethodGet, "/health", nil))
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), `"ok"`) {
		t.Errorf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
}

func TestIndexPage(t *testing.T) {
	e := newTestEcho(t, llm.NewMockLLM())

	rec := serve(e, httptest.NewRequest(http.MethodGet, "/?text=namaste&language=Bengali", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	body := rec.Body.String()
	for _, want := range []string{">namaste</textarea>", `value="Bengali" selected`, "বাংলা", "/api/v1/transcribe"} {
		if !strings.Contains(body, want) {
			t.Errorf("page missing %q", want)
		}
	}
}

func TestTranslateForm(t *testing.T) {
	tests := []struct {
		name  string
		model repositories.LargeLanguageModel
		text  string
		want  string
	}{
		{name: "renders translation", model: llm.NewMockLLM(), text: "hello", want: "[Translate the following into Marathi:] hello"},
		{name: "renders empty input message", model: llm.NewMockLLM(), text: " ", want: "Please enter a word or sentence to translate!"},
		{name: "renders model error", model: unreachableLLM{}, text: "hello", want: "Error connecting to the language model: "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			form := url.Values{"text": {tt.text}, "language": {"Marathi"}}
			req := httptest.NewRequest(http.MethodPost, "/translate", strings.NewReader(form.Encode()))
			req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)

			rec := serve(newTestEcho(t, tt.model), req)
			if rec.Code != http.StatusOK {
				t.Fatalf("status = %d", rec.Code)
			}
			if body := rec.Body.String(); !strings.Contains(body, tt.want) {
				t.Errorf("page missing %q", tt.want)
			}
		})
	}
}
