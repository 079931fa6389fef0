package output

import (
	"fmt"
	"testing"
)

func TestNewReportWriter(t *testing.T) {
	tests := []struct {
		name         string
		format       OutputFormat
		expectedType string
	}{
		{name: "Console", format: FormatConsole, expectedType: "*output.ConsoleWriter"},
		{name: "JSON", format: FormatJSON, expectedType: "*output.JSONWriter"},
		{name: "CSV", format: FormatCSV, expectedType: "*output.CSVWriter"},
		{name: "Markdown", format: FormatMarkdown, expectedType: "*output.MarkdownWriter"},
		{name: "NDJSON", format: FormatNDJSON, expectedType: "*output.NDJSONWriter"},
		{name: "Unknown defaults to Console", format: "unknown", expectedType: "*output.ConsoleWriter"},
		{name: "Empty defaults to Console", format: "", expectedType: "*output.ConsoleWriter"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			writer := NewReportWriter(tt.format)
			if writer == nil {
				t.Fatal("NewReportWriter returned nil")
			}
			if got := fmt.Sprintf("%T", writer); got != tt.expectedType {
				t.Errorf("NewReportWriter(%q) = %s, expected %s", tt.format, got, tt.expectedType)
			}
		})
	}
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in       string
		expected OutputFormat
		wantErr  bool
	}{
		{in: "", expected: FormatConsole},
		{in: "json", expected: FormatJSON},
		{in: "CSV", expected: FormatCSV},
		{in: "ndjson", expected: FormatNDJSON},
		{in: "xml", wantErr: true},
	}

	for _, tt := range tests {
		got, err := ParseFormat(tt.in)
		if tt.wantErr {
			if err == nil {
				t.Errorf("ParseFormat(%q) expected error", tt.in)
			}
			continue
		}
		if err != nil || got != tt.expected {
			t.Errorf("ParseFormat(%q) = %q, %v; expected %q", tt.in, got, err, tt.expected)
		}
	}
}

func TestLimitTop(t *testing.T) {
	items := []int{1, 2, 3}

	tests := []struct {
		name string
		top  int
		want []int
	}{
		{name: "NoLimitWhenZero", top: 0, want: []int{1, 2, 3}},
		{name: "NoLimitWhenNegative", top: -1, want: []int{1, 2, 3}},
		{name: "Limited", top: 2, want: []int{1, 2}},
		{name: "NoLimitWhenTopExceedsLength", top: 5, want: []int{1, 2, 3}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := limitTop(items, tt.top)
			if len(got) != len(tt.want) {
				t.Fatalf("len(limitTop(..., %d)) = %d, want %d", tt.top, len(got), len(tt.want))
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Fatalf("limitTop(..., %d)[%d] = %d, want %d", tt.top, i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestTruncateMessage(t *testing.T) {
	tests := []struct {
		name     string
		msg      string
		maxLen   int
		expected string
	}{
		{name: "Short message", msg: "hello", maxLen: 40, expected: "hello"},
		{name: "Exact length", msg: "1234567890", maxLen: 10, expected: "1234567890"},
		{name: "Over max length", msg: "a very long message here", maxLen: 10, expected: "a very ..."},
		{name: "Multibyte", msg: "日本語のコミットメッセージ", maxLen: 6, expected: "日本語..."},
		{name: "Empty message", msg: "", maxLen: 40, expected: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := truncateMessage(tt.msg, tt.maxLen)
			if result != tt.expected {
				t.Errorf("truncateMessage(%q, %d) = %q, expected %q", tt.msg, tt.maxLen, result, tt.expected)
			}
		})
	}
}

func TestEscapeMarkdown(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "Pipe", input: "a|b", expected: "a\\|b"},
		{name: "Asterisk", input: "a*b", expected: "a\\*b"},
		{name: "Underscore", input: "a_b", expected: "a\\_b"},
		{name: "Backtick", input: "a`b", expected: "a\\`b"},
		{name: "No specials", input: "plain text", expected: "plain text"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := escapeMarkdown(tt.input)
			if result != tt.expected {
				t.Errorf("escapeMarkdown(%q) = %q, expected %q", tt.input, result, tt.expected)
			}
		})
	}
}

func TestShortHashAndRange(t *testing.T) {
	if got := shortHash("0123456789abcdef"); got != "01234567" {
		t.Errorf("shortHash = %q, expected 01234567", got)
	}
	if got := shortHash("abc"); got != "abc" {
		t.Errorf("shortHash = %q, expected abc", got)
	}
	if got := rangeLabel("", "HEAD"); got != "HEAD" {
		t.Errorf("rangeLabel = %q, expected HEAD", got)
	}
	if got := rangeLabel("a", "b"); got != "a..b" {
		t.Errorf("rangeLabel = %q, expected a..b", got)
	}
}
