package domain

import (
	"errors"
	"net/http"
)

// Pipeline failures. Adapters wrap one of these so callers can classify with errors.Is.
var (
	ErrEmptyInput                      = errors.New("source text is empty")
	ErrTranscriptionUnintelligible     = errors.New("speech could not be understood")
	ErrTranscriptionServiceUnavailable = errors.New("speech recognition service unavailable")
	ErrModelUnreachable                = errors.New("language model unreachable")
	ErrTranslation                     = errors.New("translation failed")
)

// ErrorKind is the closed set of failures a request can end with
type ErrorKind int

const (
	KindNone ErrorKind = iota
	KindEmptyInput
	KindTranscriptionUnintelligible
	KindTranscriptionServiceUnavailable
	KindModelUnreachable
	KindTranslation
)

func (k ErrorKind) String() string {
	switch k {
	case KindNone:
		return "none"
	case KindEmptyInput:
		return "empty_input"
	case KindTranscriptionUnintelligible:
		return "transcription_unintelligible"
	case KindTranscriptionServiceUnavailable:
		return "transcription_service_unavailable"
	case KindModelUnreachable:
		return "model_unreachable"
	case KindTranslation:
		return "translation_error"
	default:
		return "unknown"
	}
}

// KindOf classifies err. Anything not matching a known sentinel is a translation error.
func KindOf(err error) ErrorKind {
	switch {
	case err == nil:
		return KindNone
	case errors.Is(err, ErrEmptyInput):
		return KindEmptyInput
	case errors.Is(err, ErrTranscriptionUnintelligible):
		return KindTranscriptionUnintelligible
	case errors.Is(err, ErrTranscriptionServiceUnavailable):
		return KindTranscriptionServiceUnavailable
	case errors.Is(err, ErrModelUnreachable):
		return KindModelUnreachable
	default:
		return KindTranslation
	}
}

// UserMessage renders err the way it is shown on the page.
func UserMessage(err error) string {
	switch KindOf(err) {
	case KindNone:
		return ""
	case KindEmptyInput:
		return "Please enter a word or sentence to translate!"
	case KindTranscriptionUnintelligible:
		return "Sorry, I could not understand the audio. Please try again."
	case KindTranscriptionServiceUnavailable:
		return "Could not request results from the speech recognition service: " + err.Error()
	case KindModelUnreachable:
		return "Error connecting to the language model: " + err.Error()
	default:
		return "Error during translation: " + err.Error()
	}
}

// HTTPStatus maps a kind to the status code used by the JSON API.
func HTTPStatus(kind ErrorKind) int {
	switch kind {
	case KindNone:
		return http.StatusOK
	case KindEmptyInput:
		return http.StatusBadRequest
	case KindTranscriptionUnintelligible:
		return http.StatusUnprocessableEntity
	case KindTranscriptionServiceUnavailable:
		return http.StatusServiceUnavailable
	case KindModelUnreachable:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
