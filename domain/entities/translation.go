package entities

import (
	"strings"

	"github.com/satriahrh/bhasha/domain"
)

// TranslationRequest is created per submission and discarded once answered
type TranslationRequest struct {
	SourceText     string   `json:"text"`
	TargetLanguage Language `json:"language"`
}

// TranslationResult holds the output of one pipeline run
type TranslationResult struct {
	TranslatedText string   `json:"translated_text"`
	TargetLanguage Language `json:"language"`
	SpeechCode     string   `json:"speech_code"`
	Audio          []byte   `json:"-"`
	AudioFormat    string   `json:"audio_format"`
	AudioID        string   `json:"audio_id"`
}

// Validate rejects requests whose source text is empty after trimming.
// Unknown target languages pass; they synthesize with the default speech code.
func (r *TranslationRequest) Validate() error {
	if strings.TrimSpace(r.SourceText) == "" {
		return domain.ErrEmptyInput
	}
	return nil
}

// SystemPrompt is the fixed instruction sent ahead of the user's text.
func (r *TranslationRequest) SystemPrompt() string {
	return "Translate the following into " + string(r.TargetLanguage) + ":"
}
