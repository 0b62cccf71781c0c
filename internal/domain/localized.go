package domain

import (
	"encoding/json"
	"strings"
)

type Lang string

const (
	LangFR Lang = "fr"
	LangES Lang = "es"
	LangEN Lang = "en"
)

// Languages lists the supported languages in form order.
var Languages = []Lang{LangFR, LangES, LangEN}

// LocalizedText holds one string per language. Any language may be empty.
type LocalizedText struct {
	FR string `json:"fr,omitempty"`
	ES string `json:"es,omitempty"`
	EN string `json:"en,omitempty"`
}

// UnmarshalJSON accepts either an object keyed by language or a bare string,
// which is read as French.
func (t *LocalizedText) UnmarshalJSON(data []byte) error {
	trimmed := strings.TrimSpace(string(data))
	if trimmed == "null" {
		*t = LocalizedText{}
		return nil
	}
	if strings.HasPrefix(trimmed, `"`) {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*t = LocalizedText{FR: s}
		return nil
	}
	type plain LocalizedText
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	*t = LocalizedText(p)
	return nil
}

// Get returns the value stored for lang, without fallback.
func (t LocalizedText) Get(lang Lang) string {
	switch lang {
	case LangFR:
		return t.FR
	case LangES:
		return t.ES
	case LangEN:
		return t.EN
	}
	return ""
}

// Set stores value for lang. Unknown languages are ignored.
func (t *LocalizedText) Set(lang Lang, value string) {
	switch lang {
	case LangFR:
		t.FR = value
	case LangES:
		t.ES = value
	case LangEN:
		t.EN = value
	}
}

// Resolve picks the display string: requested language, then fr, then es.
func (t LocalizedText) Resolve(lang Lang) string {
	if v := t.Get(lang); v != "" {
		return v
	}
	if t.FR != "" {
		return t.FR
	}
	return t.ES
}

func (t LocalizedText) IsZero() bool {
	return t.FR == "" && t.ES == "" && t.EN == ""
}

// RequireFR reports a validation problem on field when the French value is blank.
func (t LocalizedText) RequireFR(field string, verr *ValidationError) {
	if strings.TrimSpace(t.FR) == "" {
		verr.Add(field+"Fr", "French value is required")
	}
}

// AssembleLocalized builds a LocalizedText from suffix-keyed values such as
// {"Fr": "...", "es": "..."}. Suffixes are matched case-insensitively.
func AssembleLocalized(fields map[string]string) LocalizedText {
	var t LocalizedText
	for key, value := range fields {
		t.Set(Lang(strings.ToLower(key)), value)
	}
	return t
}

// DisassembleLocalized returns one entry per supported language, with an
// empty string for absent languages.
func DisassembleLocalized(t LocalizedText) map[string]string {
	out := make(map[string]string, len(Languages))
	for _, lang := range Languages {
		out[string(lang)] = t.Get(lang)
	}
	return out
}

// LocalizedFromForm reads prefix+"Fr", prefix+"Es", prefix+"En" from a flat
// form value set.
func LocalizedFromForm(prefix string, form map[string]string) LocalizedText {
	fields := make(map[string]string, len(Languages))
	for _, lang := range Languages {
		if v, ok := form[prefix+suffix(lang)]; ok {
			fields[string(lang)] = v
		}
	}
	return AssembleLocalized(fields)
}

// FormFields is the reverse of LocalizedFromForm.
func FormFields(prefix string, t LocalizedText) map[string]string {
	out := make(map[string]string, len(Languages))
	for lang, value := range DisassembleLocalized(t) {
		out[prefix+suffix(Lang(lang))] = value
	}
	return out
}

// ApplyForm overwrites the languages the form carries for prefix and leaves
// the others untouched. An empty form value clears that language.
func (t *LocalizedText) ApplyForm(prefix string, form map[string]string) {
	flat := LocalizedFromForm(prefix, form)
	for _, lang := range Languages {
		if _, ok := form[prefix+suffix(lang)]; ok {
			t.Set(lang, flat.Get(lang))
		}
	}
}

func suffix(lang Lang) string {
	s := string(lang)
	return strings.ToUpper(s[:1]) + s[1:]
}
