package tts

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/satriahrh/bhasha/domain/repositories"
)

const (
	defaultGoogleTranslateBaseURL = "https://translate.google.com"
	// The endpoint rejects queries longer than this many characters
	googleTranslateMaxChars = 100
	googleTranslateUA       = "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0 Safari/537.36"
)

// GoogleTranslateConfig holds configuration for the Google Translate TTS adapter
type GoogleTranslateConfig struct {
	BaseURL string // Optional: defaults to https://translate.google.com
}

// GoogleTranslateTTS synthesizes MP3 speech through the public Google Translate voice.
// Long text is split into chunks and the MP3 frames of every chunk are concatenated.
type GoogleTranslateTTS struct {
	baseURL string
	client  *http.Client
	logger  *zap.Logger
}

var _ repositories.TextToSpeech = (*GoogleTranslateTTS)(nil)

func NewGoogleTranslateTTS(config GoogleTranslateConfig, logger *zap.Logger) *GoogleTranslateTTS {
	baseURL := strings.TrimRight(config.BaseURL, "/")
	if baseURL == "" {
		baseURL = defaultGoogleTranslateBaseURL
	}

	return &GoogleTranslateTTS{
		baseURL: baseURL,
		client:  &http.Client{},
		logger:  logger,
	}
}

// SynthesizeSpeech implements repositories.TextToSpeech
func (g *GoogleTranslateTTS) SynthesizeSpeech(ctx context.Context, text string, languageCode string) (*repositories.SpeechAudio, error) {
	chunks := splitText(text, googleTranslateMaxChars)
	if len(chunks) == 0 {
		return nil, fmt.Errorf("text cannot be empty")
	}

	g.logger.Info("Converting text to speech",
		zap.String("languageCode", languageCode),
		zap.Int("chunks", len(chunks)))

	var audio bytes.Buffer
	for i, chunk := range chunks {
		if err := g.fetchChunk(ctx, &audio, chunk, languageCode, i, len(chunks)); err != nil {
			return nil, fmt.Errorf("chunk %d/%d: %w", i+1, len(chunks), err)
		}
	}

	g.logger.Info("Finished synthesizing speech", zap.Int("totalBytes", audio.Len()))

	return &repositories.SpeechAudio{
		Data:        audio.Bytes(),
		Format:      "mp3",
		ContentType: "audio/mpeg",
	}, nil
}

func (g *GoogleTranslateTTS) fetchChunk(ctx context.Context, w io.Writer, chunk, languageCode string, idx, total int) error {
	query := url.Values{}
	query.Set("ie", "UTF-8")
	query.Set("client", "tw-ob")
	query.Set("tl", languageCode)
	query.Set("q", chunk)
	query.Set("total", strconv.Itoa(total))
	query.Set("idx", strconv.Itoa(idx))
	query.Set("textlen", strconv.Itoa(utf8.RuneCountInString(chunk)))

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, g.baseURL+"/translate_tts?"+query.Encode(), nil)
	if err != nil {
		return fmt.Errorf("failed to create HTTP request: %w", err)
	}
	httpReq.Header.Set("User-Agent", googleTranslateUA)
	httpReq.Header.Set("Referer", g.baseURL+"/")

	resp, err := g.client.Do(httpReq)
	if err != nil {
		return fmt.Errorf("failed to execute HTTP request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		errorBody, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return fmt.Errorf("google translate tts returned status %d: %s", resp.StatusCode, strings.TrimSpace(string(errorBody)))
	}

	n, err := io.Copy(w, resp.Body)
	if err != nil {
		return fmt.Errorf("error reading response body: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("google translate tts returned no audio")
	}
	return nil
}

// splitText breaks text into pieces of at most limit runes, preferring sentence
// punctuation, then whitespace, then a hard cut.
func splitText(text string, limit int) []string {
	var chunks []string
	for _, sentence := range splitAfterFunc(text, isSentenceBreak) {
		for _, piece := range packWords(sentence, limit) {
			if piece = strings.TrimSpace(piece); piece != "" {
				chunks = append(chunks, piece)
			}
		}
	}
	return chunks
}

func isSentenceBreak(r rune) bool {
	switch r {
	case '.', '!', '?', ';', ':', ',', '\n', '।', '॥', '۔', '؟', '،':
		return true
	}
	return false
}

func splitAfterFunc(s string, f func(rune) bool) []string {
	var parts []string
	start := 0
	for i, r := range s {
		if f(r) {
			end := i + utf8.RuneLen(r)
			parts = append(parts, s[start:end])
			start = end
		}
	}
	if start < len(s) {
		parts = append(parts, s[start:])
	}
	return parts
}

// packWords greedily fills chunks with whole words, hard-splitting oversized words
func packWords(s string, limit int) []string {
	if utf8.RuneCountInString(s) <= limit {
		return []string{s}
	}

	var chunks []string
	var current []rune
	for _, word := range strings.FieldsFunc(s, unicode.IsSpace) {
		w := []rune(word)
		for len(w) > limit {
			if len(current) > 0 {
				chunks = append(chunks, string(current))
				current = nil
			}
			chunks = append(chunks, string(w[:limit]))
			w = w[limit:]
		}

		switch {
		case len(current) == 0:
			current = w
		case len(current)+1+len(w) <= limit:
			current = append(append(current, ' '), w...)
		default:
			chunks = append(chunks, string(current))
			current = w
		}
	}
	if len(current) > 0 {
		chunks = append(chunks, string(current))
	}
	return chunks
}
