package api

import "github.com/satriahrh/bhasha/domain/entities"

// TranslateRequest represents the request payload for a translation
type TranslateRequest struct {
	Text     string `json:"text" form:"text"`
	Language string `json:"language" form:"language"`
}

// TranslateResponse represents the response payload for a translation
type TranslateResponse struct {
	TranslatedText string `json:"translated_text"`
	Language       string `json:"language"`
	SpeechCode     string `json:"speech_code"`
	AudioURL       string `json:"audio_url"`
	AudioBase64    string `json:"audio_base64,omitempty"`
}

// TranscribeResponse carries the transcript used to pre-fill the source text
type TranscribeResponse struct {
	Text string `json:"text"`
}

// LanguageOption describes one entry of the language selector
type LanguageOption struct {
	Name       string `json:"name"`
	NativeName string `json:"native_name"`
	SpeechCode string `json:"speech_code"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

func languageOptions() []LanguageOption {
	languages := entities.Languages()
	options := make([]LanguageOption, 0, len(languages))
	for _, lang := range languages {
		options = append(options, LanguageOption{
			Name:       lang.String(),
			NativeName: lang.NativeName(),
			SpeechCode: lang.SpeechCode(),
		})
	}
	return options
}
