// internal/utils/text_test.go
package utils

import (
	"testing"
)

func TestCleanText(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "empty string",
			input:    "",
			expected: "",
		},
		{
			name:     "surrounding whitespace trimmed",
			input:    "  hello world  ",
			expected: "hello world",
		},
		{
			name:     "internal runs collapsed",
			input:    "hello\n\t  world",
			expected: "hello world",
		},
		{
			name:     "whitespace only",
			input:    " \n\t ",
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CleanText(tt.input); got != tt.expected {
				t.Errorf("CleanText(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestParseCompactCount(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected int
		found    bool
	}{
		{
			name:     "plain number",
			input:    "42",
			expected: 42,
			found:    true,
		},
		{
			name:     "thousands separator",
			input:    "1,234",
			expected: 1234,
			found:    true,
		},
		{
			name:     "decimal K suffix",
			input:    "2.5K",
			expected: 2500,
			found:    true,
		},
		{
			name:     "integer K suffix",
			input:    "3K",
			expected: 3000,
			found:    true,
		},
		{
			name:     "M suffix",
			input:    "1M",
			expected: 1000000,
			found:    true,
		},
		{
			name:     "decimal M suffix",
			input:    "1.2M",
			expected: 1200000,
			found:    true,
		},
		{
			name:     "embedded in label",
			input:    "1,024 reactions",
			expected: 1024,
			found:    true,
		},
		{
			name:  "no digits",
			input: "Like",
			found: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseCompactCount(tt.input)
			if ok != tt.found {
				t.Fatalf("ParseCompactCount(%q) found = %v, want %v", tt.input, ok, tt.found)
			}
			if got != tt.expected {
				t.Errorf("ParseCompactCount(%q) = %d, want %d", tt.input, got, tt.expected)
			}
		})
	}
}

func TestParseConnectionsFollowers(t *testing.T) {
	tests := []struct {
		name        string
		input       []string
		connections string
		followers   string
	}{
		{
			name:        "both present",
			input:       []string{"500+ connections", "12,345 followers"},
			connections: "500+",
			followers:   "12345",
		},
		{
			name:        "connections only",
			input:       []string{"301 connections"},
			connections: "301",
		},
		{
			name:      "followers only",
			input:     []string{"1,000 followers"},
			followers: "1000",
		},
		{
			name:        "no count falls back to raw text",
			input:       []string{"many connections"},
			connections: "many connections",
		},
		{
			name:  "unrelated spans ignored",
			input: []string{"San Francisco Bay Area", "Contact info"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			connections, followers := ParseConnectionsFollowers(tt.input)
			if connections != tt.connections {
				t.Errorf("connections = %q, want %q", connections, tt.connections)
			}
			if followers != tt.followers {
				t.Errorf("followers = %q, want %q", followers, tt.followers)
			}
		})
	}
}

func TestUsernameFromURL(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "profile URL",
			input:    "https://www.linkedin.com/in/jane-doe/",
			expected: "jane-doe",
		},
		{
			name:     "company URL",
			input:    "https://www.linkedin.com/company/acme-corp",
			expected: "acme-corp",
		},
		{
			name:     "query string stripped",
			input:    "https://www.linkedin.com/in/jane-doe?trk=public",
			expected: "jane-doe",
		},
		{
			name:     "non-linkedin URL falls back to host",
			input:    "https://example.com/somebody",
			expected: "example.com",
		},
		{
			name:     "empty input",
			input:    "",
			expected: "unknown-profile",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := UsernameFromURL(tt.input); got != tt.expected {
				t.Errorf("UsernameFromURL(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestDisplayNameFromUsername(t *testing.T) {
	if got := DisplayNameFromUsername("jane-doe"); got != "Jane Doe" {
		t.Errorf("DisplayNameFromUsername(jane-doe) = %q, want %q", got, "Jane Doe")
	}
}

func TestParseISOTime(t *testing.T) {
	ts, err := ParseISOTime("2024-03-15T10:30:00Z")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := ts.Format("2006-01-02 15:04"); got != "2024-03-15 10:30" {
		t.Errorf("parsed time = %q, want %q", got, "2024-03-15 10:30")
	}

	if _, err := ParseISOTime("3d ago"); err == nil {
		t.Error("expected error for relative timestamp, got nil")
	}
}
