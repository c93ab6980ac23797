package normalization

import (
  "strings"
  "unicode/utf8"
)

func ParseInputString(input string) string {
  normalized := strings.ToLower(strings.TrimSpace(input))
  return normalized
}

// TrimInputString trims whitespace but preserves case, for titles and content.
func TrimInputString(input string) string {
  return strings.TrimSpace(input)
}

// ClampString truncates to at most max runes, never splitting a multi-byte
// character.
func ClampString(input string, max int) string {
  if max <= 0 || utf8.RuneCountInString(input) <= max {
    return input
  }
  count := 0
  for i := range input {
    if count == max {
      return input[:i]
    }
    count++
  }
  return input
}
