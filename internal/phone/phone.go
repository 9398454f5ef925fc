// Package phone converts free-text Philippine mobile numbers into the
// formats expected by SMS providers.
package phone

import (
	"strings"
)

// Clean keeps digits and a single leading '+'
func Clean(raw string) string {
	raw = strings.TrimSpace(raw)
	var b strings.Builder
	for i, r := range raw {
		switch {
		case r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == '+' && i == 0:
			b.WriteRune(r)
		}
	}
	return b.String()
}

func digitsOnly(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// ToE164 formats raw as +63XXXXXXXXXX when it is a recognisable Philippine mobile
// number. Unrecognised input is returned cleaned but otherwise unchanged, and
// empty input gives an empty string.
func ToE164(raw string) string {
	cleaned := Clean(raw)
	if cleaned == "" || cleaned == "+" {
		return ""
	}
	if strings.HasPrefix(cleaned, "+") {
		return cleaned
	}
	switch {
	case len(cleaned) == 11 && strings.HasPrefix(cleaned, "09"):
		return "+63" + cleaned[1:]
	case len(cleaned) == 10 && strings.HasPrefix(cleaned, "9"):
		return "+63" + cleaned
	case len(cleaned) == 12 && strings.HasPrefix(cleaned, "63"):
		return "+" + cleaned
	}
	return cleaned
}

// ToLocal formats raw as 09XXXXXXXXX for providers that expect local numbers
func ToLocal(raw string) string {
	digits := digitsOnly(ToE164(raw))
	switch {
	case len(digits) == 12 && strings.HasPrefix(digits, "63"):
		return "0" + digits[2:]
	case len(digits) == 10 && strings.HasPrefix(digits, "9"):
		return "0" + digits
	}
	return digits
}
