package textnorm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestMatcher(t *testing.T, threshold float64) *Matcher {
	n, err := NewDefaultNormalizer()
	require.NoError(t, err)
	return NewMatcher(n, threshold)
}

func TestMatcher_Key(t *testing.T) {
	m := newTestMatcher(t, 0)

	assert.Equal(t, "pahina", m.Key("Barangay Pahina"))
	assert.Equal(t, "pahina", m.Key("Brgy. Pahina"))
	assert.Equal(t, "pahina", m.Key("brgy barangay pahina"))
	assert.Equal(t, "", m.Key("Barangay"))
	assert.Equal(t, "barangayan", m.Key("Barangayan"))
}

func TestMatcher_Matches(t *testing.T) {
	m := newTestMatcher(t, 0)

	tests := []struct {
		name         string
		jurisdiction string
		address      string
		want         bool
	}{
		{"prefix insensitive substring", "Barangay Pahina", "123 Pahina San Nicolas St", true},
		{"empty jurisdiction matches all", "", "anything at all", true},
		{"prefix-only jurisdiction matches all", "Brgy.", "Tisa", true},
		{"empty address matches none", "Duljo", "", false},
		{"address contained in jurisdiction", "Brgy. Duljo Fatima", "Duljo", true},
		{"case and punctuation", "LAHUG", "lahug, cebu city", true},
		{"alias variants", "Brgy. Sto. Niño", "Santo Nino Chapel", true},
		{"different places", "Barangay Pahina Central", "Pahina San Nicolas", false},
		{"unrelated", "Tisa", "Labangon", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, m.Matches(tt.jurisdiction, tt.address))
		})
	}
}

func TestMatcher_Reflexive(t *testing.T) {
	m := newTestMatcher(t, 0)
	for _, name := range []string{"Pahina", "Brgy. Sto. Niño", "Kamagayan", "Barangay 7"} {
		assert.True(t, m.Matches(name, name), name)
	}
}

func TestMatcher_FuzzyTolerance(t *testing.T) {
	strict := newTestMatcher(t, 0)
	fuzzy := newTestMatcher(t, 0.9)

	assert.False(t, strict.Matches("Kalunasan", "Kalunsan"))
	assert.True(t, fuzzy.Matches("Kalunasan", "Kalunsan"))
	assert.False(t, fuzzy.Matches("Kalunasan", "Labangon"))
}
