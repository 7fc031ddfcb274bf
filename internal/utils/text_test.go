package utils_test

import (
	"testing"

	"github.com/Cinemaker123/nutrition-tracker/internal/utils"
)

func TestEscapeMarkdown(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"plain", "plain"},
		{"soy_milk *light*", "soy\\_milk \\*light\\*"},
		{"[link](x) `code`", "\\[link\\](x) \\`code\\`"},
		{"bad\xffbyte", "badbyte"},
	}
	for _, tt := range tests {
		if got := utils.EscapeMarkdown(tt.in); got != tt.want {
			t.Errorf("EscapeMarkdown(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		in   string
		max  int
		want string
	}{
		{"short", 10, "short"},
		{"exactly10!", 10, "exactly10!"},
		{"this is too long", 10, "this is..."},
		{"äöüäöüäöü", 5, "äö..."},
		{"abc", 2, "ab"},
		{"abc", 0, ""},
	}
	for _, tt := range tests {
		if got := utils.Truncate(tt.in, tt.max); got != tt.want {
			t.Errorf("Truncate(%q, %d) = %q, want %q", tt.in, tt.max, got, tt.want)
		}
	}
}
