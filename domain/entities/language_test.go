package entities

import "testing"

func TestLanguages_Order(t *testing.T) {
	want := []string{
		"Hindi", "Bengali", "Telugu", "Marathi", "Tamil", "Gujarati",
		"Urdu", "Kannada", "Malayalam", "Punjabi", "Assamese", "Odia",
	}

	got := Languages()
	if len(got) != len(want) {
		t.Fatalf("Expected %d languages, got %d", len(want), len(got))
	}
	for i, name := range want {
		if string(got[i]) != name {
			t.Errorf("Expected language %d to be %s, got %s", i, name, got[i])
		}
	}

	// Mutating the returned slice must not affect the registry
	got[0] = "Klingon"
	if Languages()[0] != LanguageHindi {
		t.Error("Languages() returned the shared backing slice")
	}
}

func TestSpeechCode(t *testing.T) {
	want := map[Language]string{
		LanguageHindi:     "hi",
		LanguageBengali:   "bn",
		LanguageTelugu:    "te",
		LanguageMarathi:   "mr",
		LanguageTamil:     "ta",
		LanguageGujarati:  "gu",
		LanguageUrdu:      "ur",
		LanguageKannada:   "kn",
		LanguageMalayalam: "ml",
		LanguagePunjabi:   "pa",
		LanguageAssamese:  "as",
		LanguageOdia:      "or",
	}

	for lang, code := range want {
		if got := lang.SpeechCode(); got != code {
			t.Errorf("Expected %s -> %s, got %s", lang, code, got)
		}
	}
}

func TestSpeechCode_DefaultsToHindi(t *testing.T) {
	for _, lang := range []Language{"", "French", "hindi", "Sanskrit", "   "} {
		if got := lang.SpeechCode(); got != DefaultSpeechCode {
			t.Errorf("Expected default code for %q, got %s", lang, got)
		}
	}
}

func TestParseLanguage(t *testing.T) {
	lang, ok := ParseLanguage("  tamil ")
	if !ok || lang != LanguageTamil {
		t.Errorf("Expected Tamil, got %q (ok=%v)", lang, ok)
	}

	lang, ok = ParseLanguage("Esperanto")
	if ok {
		t.Error("Expected Esperanto to be unsupported")
	}
	if lang.IsSupported() {
		t.Error("Unsupported language reported as supported")
	}
	if lang.NativeName() != "Esperanto" {
		t.Errorf("Expected native name fallback, got %s", lang.NativeName())
	}
}
