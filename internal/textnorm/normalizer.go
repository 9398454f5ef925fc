// Package textnorm canonicalizes free-text place names and matches
// barangay jurisdictions against resident addresses.
package textnorm

import (
	_ "embed"
	"fmt"
	"os"
	"strings"
	"unicode"

	"github.com/mozillazg/go-unidecode"
	"gopkg.in/yaml.v3"
)

//go:embed aliases.yaml
var defaultAliases []byte

// Alias maps every text containing all Markers to Canonical
type Alias struct {
	Canonical string   `yaml:"canonical"`
	Markers   []string `yaml:"markers"`
}

type aliasFile struct {
	Aliases []Alias `yaml:"aliases"`
}

// Normalizer turns free text into comparable keys
type Normalizer struct {
	aliases []Alias
}

// NewNormalizer builds a normalizer over the given alias table.
// Markers and canonical tokens are normalized so the table may be written loosely.
func NewNormalizer(aliases []Alias) *Normalizer {
	n := &Normalizer{}
	for _, a := range aliases {
		entry := Alias{Canonical: Normalize(a.Canonical)}
		for _, m := range a.Markers {
			if m = Normalize(m); m != "" {
				entry.Markers = append(entry.Markers, m)
			}
		}
		if entry.Canonical == "" || len(entry.Markers) == 0 {
			continue
		}
		n.aliases = append(n.aliases, entry)
	}
	return n
}

// NewDefaultNormalizer uses the alias table shipped with the binary
func NewDefaultNormalizer() (*Normalizer, error) {
	aliases, err := ParseAliases(defaultAliases)
	if err != nil {
		return nil, err
	}
	return NewNormalizer(aliases), nil
}

// LoadNormalizer reads the alias table from path, or the embedded table when path is empty
func LoadNormalizer(path string) (*Normalizer, error) {
	if path == "" {
		return NewDefaultNormalizer()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read alias file: %w", err)
	}
	aliases, err := ParseAliases(data)
	if err != nil {
		return nil, err
	}
	return NewNormalizer(aliases), nil
}

// ParseAliases decodes a YAML alias table
func ParseAliases(data []byte) ([]Alias, error) {
	var f aliasFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse alias table: %w", err)
	}
	return f.Aliases, nil
}

// Normalize lowercases text, turns every non-alphanumeric run into a single
// space and trims the result. Accented letters are transliterated first.
func Normalize(text string) string {
	if text == "" {
		return ""
	}
	ascii := strings.ToLower(unidecode.Unidecode(text))

	var b strings.Builder
	b.Grow(len(ascii))
	pendingSpace := false
	for _, r := range ascii {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			if pendingSpace && b.Len() > 0 {
				b.WriteByte(' ')
			}
			pendingSpace = false
			b.WriteRune(r)
			continue
		}
		pendingSpace = true
	}
	return b.String()
}

// Normalize is a convenience wrapper so callers holding a Normalizer need no package import
func (n *Normalizer) Normalize(text string) string {
	return Normalize(text)
}

// Canonicalize maps a normalized key to the canonical token of the first alias
// whose markers are all present. Unknown keys are returned unchanged.
func (n *Normalizer) Canonicalize(key string) string {
	if key == "" {
		return ""
	}
	for _, a := range n.aliases {
		if containsAll(key, a.Markers) {
			return a.Canonical
		}
	}
	return key
}

func containsAll(s string, markers []string) bool {
	for _, m := range markers {
		if !strings.Contains(s, m) {
			return false
		}
	}
	return true
}
