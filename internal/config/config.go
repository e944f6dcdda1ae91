// Package config loads server settings from the environment, optionally seeded
// from a .env file.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/text/language"

	"github.com/satriahrh/bhasha/adapters/llm"
	"github.com/satriahrh/bhasha/adapters/storage"
	"github.com/satriahrh/bhasha/adapters/tts"
)

// Provider names accepted in the *_PROVIDER variables
const (
	ProviderOllama          = "ollama"
	ProviderOpenAI          = "openai"
	ProviderGemini          = "gemini"
	ProviderGoogle          = "google"
	ProviderGoogleTranslate = "gtranslate"
	ProviderElevenLabs      = "elevenlabs"
	ProviderMock            = "mock"

	StoreTempDir = "tempdir"
	StoreMinio   = "minio"
)

type Config struct {
	Port           string
	RequestTimeout time.Duration

	LLMProvider string
	Ollama      llm.OllamaConfig
	OpenAI      llm.OpenAIConfig
	Gemini      llm.GeminiConfig

	STTProvider   string
	STTLanguage   string
	STTEncoding   string
	STTSampleRate int

	TTSProvider     string
	GoogleTranslate tts.GoogleTranslateConfig
	ElevenLabs      tts.ElevenLabsConfig

	AudioStore string
	AudioDir   string
	Minio      storage.MinioConfig
}

// Load reads .env if present, then the process environment
func Load() (*Config, error) {
	// A missing .env is normal outside development
	_ = godotenv.Load()
	return FromEnv()
}

// FromEnv builds a Config from the current environment and validates it
func FromEnv() (*Config, error) {
	timeout, err := durationEnv("REQUEST_TIMEOUT", 120*time.Second)
	if err != nil {
		return nil, err
	}
	sampleRate, err := intEnv("STT_SAMPLE_RATE", 48000)
	if err != nil {
		return nil, err
	}
	useSSL, err := boolEnv("MINIO_USE_SSL", false)
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		Port:           stringEnv("PORT", "8080"),
		RequestTimeout: timeout,

		LLMProvider: strings.ToLower(stringEnv("LLM_PROVIDER", ProviderOllama)),
		Ollama: llm.OllamaConfig{
			BaseURL: os.Getenv("OLLAMA_BASE_URL"),
			Model:   os.Getenv("OLLAMA_MODEL"),
		},
		OpenAI: llm.OpenAIConfig{
			BaseURL: os.Getenv("OPENAI_BASE_URL"),
			APIKey:  os.Getenv("OPENAI_API_KEY"),
			Model:   os.Getenv("OPENAI_MODEL"),
		},
		Gemini: llm.GeminiConfig{
			APIKey: os.Getenv("GEMINI_API_KEY"),
			Model:  os.Getenv("GEMINI_MODEL"),
		},

		STTProvider:   strings.ToLower(stringEnv("STT_PROVIDER", ProviderGoogle)),
		STTLanguage:   stringEnv("STT_LANGUAGE", "en-US"),
		STTEncoding:   strings.ToUpper(stringEnv("STT_ENCODING", "WEBM_OPUS")),
		STTSampleRate: sampleRate,

		TTSProvider: strings.ToLower(stringEnv("TTS_PROVIDER", ProviderGoogleTranslate)),
		GoogleTranslate: tts.GoogleTranslateConfig{
			BaseURL: os.Getenv("GTTS_BASE_URL"),
		},
		ElevenLabs: tts.NewElevenLabsConfigFromEnv(),

		AudioStore: strings.ToLower(stringEnv("AUDIO_STORE", StoreTempDir)),
		AudioDir:   os.Getenv("AUDIO_DIR"),
		Minio: storage.MinioConfig{
			Endpoint:  os.Getenv("MINIO_ENDPOINT"),
			AccessKey: os.Getenv("MINIO_ACCESS_KEY"),
			SecretKey: os.Getenv("MINIO_SECRET_KEY"),
			Bucket:    stringEnv("MINIO_BUCKET", "bhasha-audio"),
			Region:    os.Getenv("MINIO_REGION"),
			UseSSL:    useSSL,
			Prefix:    os.Getenv("MINIO_PREFIX"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks provider names and provider specific requirements
func (c *Config) Validate() error {
	switch c.LLMProvider {
	case ProviderOllama, ProviderOpenAI, ProviderMock:
	case ProviderGemini:
		if c.Gemini.APIKey == "" {
			return fmt.Errorf("GEMINI_API_KEY is required when LLM_PROVIDER=gemini")
		}
	default:
		return fmt.Errorf("unknown LLM_PROVIDER %q", c.LLMProvider)
	}

	switch c.STTProvider {
	case ProviderGoogle, ProviderMock:
	default:
		return fmt.Errorf("unknown STT_PROVIDER %q", c.STTProvider)
	}

	tag, err := language.Parse(c.STTLanguage)
	if err != nil {
		return fmt.Errorf("invalid STT_LANGUAGE %q: %w", c.STTLanguage, err)
	}
	c.STTLanguage = tag.String()

	if c.STTSampleRate < 8000 || c.STTSampleRate > 48000 {
		return fmt.Errorf("STT_SAMPLE_RATE must be between 8000 and 48000, got %d", c.STTSampleRate)
	}

	switch c.TTSProvider {
	case ProviderGoogleTranslate, ProviderMock:
	case ProviderElevenLabs:
		if err := tts.ValidateElevenLabsConfig(c.ElevenLabs); err != nil {
			return fmt.Errorf("invalid eleven labs configuration: %w", err)
		}
	default:
		return fmt.Errorf("unknown TTS_PROVIDER %q", c.TTSProvider)
	}

	switch c.AudioStore {
	case StoreTempDir:
	case StoreMinio:
		if c.Minio.Endpoint == "" {
			return fmt.Errorf("MINIO_ENDPOINT is required when AUDIO_STORE=minio")
		}
	default:
		return fmt.Errorf("unknown AUDIO_STORE %q", c.AudioStore)
	}

	if c.RequestTimeout < 0 {
		return fmt.Errorf("REQUEST_TIMEOUT must not be negative")
	}

	return nil
}

func stringEnv(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func intEnv(key string, fallback int) (int, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, v, err)
	}
	return n, nil
}

func boolEnv(key string, fallback bool) (bool, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, fmt.Errorf("invalid %s %q: %w", key, v, err)
	}
	return b, nil
}

// durationEnv accepts Go durations ("90s") or a plain number of seconds
func durationEnv(key string, fallback time.Duration) (time.Duration, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback, nil
	}
	if secs, err := strconv.Atoi(v); err == nil {
		return time.Duration(secs) * time.Second, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, v, err)
	}
	return d, nil
}
