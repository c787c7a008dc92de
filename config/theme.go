package config

import (
	"github.com/mingue/arch-audit-notify/errors"
)

// Theme is a validated icon theme name. The value is concatenated into
// filesystem paths when resolving icon directories, so it must never be
// constructed from unvalidated input: ParseTheme is the only constructor,
// and after it succeeds the value is safe to use inside a path.
type Theme struct {
	s string
}

// DefaultTheme returns the built-in "default" theme.
func DefaultTheme() Theme {
	return Theme{s: "default"}
}

// ParseTheme validates a raw theme name. Only lowercase ASCII letters are
// accepted; anything else (path separators, dots, digits, uppercase, empty
// input) is rejected so the name cannot smuggle path segments.
func ParseTheme(raw string) (Theme, error) {
	if raw == "" {
		return Theme{}, errors.ThemeInvalid(raw)
	}
	for _, c := range raw {
		if c < 'a' || c > 'z' {
			return Theme{}, errors.ThemeInvalid(raw)
		}
	}
	return Theme{s: raw}, nil
}

// String returns the validated theme name.
func (t Theme) String() string {
	return t.s
}

// IsZero reports whether the theme was never constructed via ParseTheme.
func (t Theme) IsZero() bool {
	return t.s == ""
}
