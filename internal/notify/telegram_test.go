package notify

import (
	"strings"
	"testing"
	"time"
)

func TestEscapeMarkdownV2(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"plain text", "plain text"},
		{"$70.5 billion", "$70\\.5 billion"},
		{"growth (10.2%)", "growth \\(10\\.2%\\)"},
		{"a_b*c[d]", "a\\_b\\*c\\[d\\]"},
		{"", ""},
	}

	for _, tt := range tests {
		if got := escapeMarkdownV2(tt.input); got != tt.expected {
			t.Errorf("escapeMarkdownV2(%q) = %q, expected %q", tt.input, got, tt.expected)
		}
	}
}

func TestFormatMessage(t *testing.T) {
	generatedAt := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	msg := formatMessage("Global market: $95.1B\nChina: $38.2B (40.2% of global)\n", generatedAt)

	if !strings.Contains(msg, "*Robotics Projection Summary*") {
		t.Errorf("message missing bold header: %q", msg)
	}
	if !strings.Contains(msg, "2025\\-06\\-01 12:00:00") {
		t.Errorf("message missing escaped timestamp: %q", msg)
	}
	if !strings.Contains(msg, "$95\\.1B") {
		t.Errorf("summary values not escaped: %q", msg)
	}
	if strings.Contains(msg, "(40.2% of global)") {
		t.Errorf("parentheses left unescaped: %q", msg)
	}
}
