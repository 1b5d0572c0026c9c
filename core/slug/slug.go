package slug

import (
	"errors"
	"strings"
)

// DefaultMaxLength is the slug length used by most remote object types.
const DefaultMaxLength = 50

// ErrEmptyInput is returned when the text to format is empty.
var ErrEmptyInput = errors.New("slug: input text can't be empty")

var separators = strings.NewReplacer(" ", "-", ",", "-", ".", "-")

// Format converts text into a slug no longer than maxLen.
// Spaces, commas and periods become dashes; every other character outside
// [a-z0-9_-] is dropped after lowercasing. A maxLen <= 0 disables truncation.
func Format(text string, maxLen int) (string, error) {
	if len(text) == 0 {
		return "", ErrEmptyInput
	}

	text = strings.ToLower(separators.Replace(text))

	var b strings.Builder
	b.Grow(len(text))
	for _, r := range text {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '_' || r == '-' {
			b.WriteRune(r)
		}
	}

	out := b.String()
	if maxLen > 0 && len(out) > maxLen {
		out = out[:maxLen]
	}

	return out, nil
}

// MustFormat is like Format but panics on empty input.
// Only use it with constant input.
func MustFormat(text string, maxLen int) string {
	s, err := Format(text, maxLen)
	if err != nil {
		panic(err)
	}
	return s
}
