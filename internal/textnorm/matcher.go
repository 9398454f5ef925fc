package textnorm

import (
	"strings"

	"github.com/agnivade/levenshtein"
	"github.com/xrash/smetrics"
)

// maxFuzzyEdits caps the edit distance accepted by fuzzy matching
const maxFuzzyEdits = 2

var jurisdictionPrefixes = []string{"barangay", "brgy"}

// Matcher decides whether a jurisdiction name covers a free-text address
type Matcher struct {
	normalizer     *Normalizer
	fuzzyThreshold float64
}

// NewMatcher creates a matcher. A fuzzyThreshold of 0 disables fuzzy matching.
func NewMatcher(normalizer *Normalizer, fuzzyThreshold float64) *Matcher {
	return &Matcher{normalizer: normalizer, fuzzyThreshold: fuzzyThreshold}
}

// Key normalizes text and drops leading "barangay"/"brgy" words
func (m *Matcher) Key(text string) string {
	key := Normalize(text)
	for {
		stripped := false
		for _, p := range jurisdictionPrefixes {
			if key == p {
				return ""
			}
			if strings.HasPrefix(key, p+" ") {
				key = strings.TrimPrefix(key, p+" ")
				stripped = true
			}
		}
		if !stripped {
			return key
		}
	}
}

// Matches reports whether jurisdiction covers address. An empty jurisdiction
// covers everything; an empty address is covered by nothing.
func (m *Matcher) Matches(jurisdiction, address string) bool {
	jKey := m.Key(jurisdiction)
	if jKey == "" {
		return true
	}
	aKey := m.Key(address)
	if aKey == "" {
		return false
	}

	if strings.Contains(aKey, jKey) || strings.Contains(jKey, aKey) {
		return true
	}

	jCanon := m.normalizer.Canonicalize(jKey)
	aCanon := m.normalizer.Canonicalize(aKey)
	if jCanon == aCanon || strings.Contains(aCanon, jCanon) || strings.Contains(jCanon, aCanon) {
		return true
	}

	return m.fuzzy(jCanon, aCanon)
}

func (m *Matcher) fuzzy(a, b string) bool {
	if m.fuzzyThreshold <= 0 {
		return false
	}
	if smetrics.JaroWinkler(a, b, 0.7, 4) < m.fuzzyThreshold {
		return false
	}
	return levenshtein.ComputeDistance(a, b) <= maxFuzzyEdits
}
