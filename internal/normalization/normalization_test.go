package normalization

import (
  "strings"
  "testing"
  "unicode/utf8"
)

func TestClampStringRuneBoundary(t *testing.T) {
  clamped := ClampString(strings.Repeat("é", 100), 55)
  if !utf8.ValidString(clamped) {
    t.Fatalf("clamp produced invalid utf-8: %q", clamped)
  }
  if got := utf8.RuneCountInString(clamped); got != 55 {
    t.Fatalf("expected 55 runes, got %d", got)
  }
}

func TestClampString(t *testing.T) {
  cases := []struct {
    in   string
    max  int
    want string
  }{
    {"hello", 10, "hello"},
    {"hello", 3, "hel"},
    {"hello", 0, "hello"},
    {"", 5, ""},
    {"研究ノート", 2, "研究"},
  }
  for _, tc := range cases {
    if got := ClampString(tc.in, tc.max); got != tc.want {
      t.Fatalf("ClampString(%q, %d) = %q, want %q", tc.in, tc.max, got, tc.want)
    }
  }
}
