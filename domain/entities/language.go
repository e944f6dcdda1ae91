package entities

import "strings"

// Language is a translation target. Only the twelve values below are offered to users.
type Language string

const (
	LanguageHindi     Language = "Hindi"
	LanguageBengali   Language = "Bengali"
	LanguageTelugu    Language = "Telugu"
	LanguageMarathi   Language = "Marathi"
	LanguageTamil     Language = "Tamil"
	LanguageGujarati  Language = "Gujarati"
	LanguageUrdu      Language = "Urdu"
	LanguageKannada   Language = "Kannada"
	LanguageMalayalam Language = "Malayalam"
	LanguagePunjabi   Language = "Punjabi"
	LanguageAssamese  Language = "Assamese"
	LanguageOdia      Language = "Odia"
)

// DefaultSpeechCode is used for any language outside the supported set.
const DefaultSpeechCode = "hi"

type languageInfo struct {
	speechCode string
	nativeName string
}

var supportedLanguages = []Language{
	LanguageHindi,
	LanguageBengali,
	LanguageTelugu,
	LanguageMarathi,
	LanguageTamil,
	LanguageGujarati,
	LanguageUrdu,
	LanguageKannada,
	LanguageMalayalam,
	LanguagePunjabi,
	LanguageAssamese,
	LanguageOdia,
}

var languageTable = map[Language]languageInfo{
	LanguageHindi:     {speechCode: "hi", nativeName: "हिन्दी"},
	LanguageBengali:   {speechCode: "bn", nativeName: "বাংলা"},
	LanguageTelugu:    {speechCode: "te", nativeName: "తెలుగు"},
	LanguageMarathi:   {speechCode: "mr", nativeName: "मराठी"},
	LanguageTamil:     {speechCode: "ta", nativeName: "தமிழ்"},
	LanguageGujarati:  {speechCode: "gu", nativeName: "ગુજરાતી"},
	LanguageUrdu:      {speechCode: "ur", nativeName: "اردو"},
	LanguageKannada:   {speechCode: "kn", nativeName: "ಕನ್ನಡ"},
	LanguageMalayalam: {speechCode: "ml", nativeName: "മലയാളം"},
	LanguagePunjabi:   {speechCode: "pa", nativeName: "ਪੰਜਾਬੀ"},
	LanguageAssamese:  {speechCode: "as", nativeName: "অসমীয়া"},
	LanguageOdia:      {speechCode: "or", nativeName: "ଓଡ଼ିଆ"},
}

// Languages returns the supported target languages in display order.
func Languages() []Language {
	out := make([]Language, len(supportedLanguages))
	copy(out, supportedLanguages)
	return out
}

// ParseLanguage resolves a user supplied name, ignoring case and surrounding whitespace.
func ParseLanguage(name string) (Language, bool) {
	name = strings.TrimSpace(name)
	for _, lang := range supportedLanguages {
		if strings.EqualFold(string(lang), name) {
			return lang, true
		}
	}
	return Language(name), false
}

// IsSupported reports whether l is one of the twelve target languages.
func (l Language) IsSupported() bool {
	_, ok := languageTable[l]
	return ok
}

// SpeechCode returns the two-letter speech synthesis code, falling back to "hi".
func (l Language) SpeechCode() string {
	if info, ok := languageTable[l]; ok {
		return info.speechCode
	}
	return DefaultSpeechCode
}

// NativeName returns the language name in its own script, or the English name if unknown.
func (l Language) NativeName() string {
	if info, ok := languageTable[l]; ok {
		return info.nativeName
	}
	return string(l)
}

func (l Language) String() string {
	return string(l)
}
