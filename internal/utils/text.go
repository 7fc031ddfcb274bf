package utils

import (
	"strings"
	"unicode/utf8"
)

var markdownEscaper = strings.NewReplacer(
	"_", "\\_",
	"*", "\\*",
	"[", "\\[",
	"]", "\\]",
	"`", "\\`",
)

// EscapeMarkdown escapes the characters Telegram's legacy Markdown treats as
// markup and drops invalid UTF-8
func EscapeMarkdown(s string) string {
	return markdownEscaper.Replace(strings.ToValidUTF8(s, ""))
}

// Truncate shortens s to at most max runes, ending it with "..." when cut
func Truncate(s string, max int) string {
	if max <= 0 {
		return ""
	}
	if utf8.RuneCountInString(s) <= max {
		return s
	}
	if max <= 3 {
		return string([]rune(s)[:max])
	}
	return string([]rune(s)[:max-3]) + "..."
}
