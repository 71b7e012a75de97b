package models

// LanguageVocabulary is the fixed set of languages a user may speak.
var LanguageVocabulary = []string{"English", "Spanish", "French", "German", "Chinese"}

// IsLanguage reports whether token belongs to LanguageVocabulary.
func IsLanguage(token string) bool {
	for _, lang := range LanguageVocabulary {
		if lang == token {
			return true
		}
	}
	return false
}

// LanguageSet is an insertion-ordered set of language tokens.
type LanguageSet []string

// NewLanguageSet builds a set from tokens, dropping duplicates.
func NewLanguageSet(tokens ...string) LanguageSet {
	set := LanguageSet{}
	for _, token := range tokens {
		if !set.Has(token) {
			set = append(set, token)
		}
	}
	return set
}

// Has reports whether token is in the set.
func (s LanguageSet) Has(token string) bool {
	for _, t := range s {
		if t == token {
			return true
		}
	}
	return false
}

// Toggle adds token when absent and removes it when present.
func (s LanguageSet) Toggle(token string) LanguageSet {
	if !s.Has(token) {
		out := make(LanguageSet, 0, len(s)+1)
		out = append(out, s...)
		return append(out, token)
	}
	out := make(LanguageSet, 0, len(s))
	for _, t := range s {
		if t != token {
			out = append(out, t)
		}
	}
	return out
}

// Slice returns a copy of the tokens as a plain slice.
func (s LanguageSet) Slice() []string {
	out := make([]string, len(s))
	copy(out, s)
	return out
}
