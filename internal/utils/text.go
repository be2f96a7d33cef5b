// internal/utils/text.go - text normalization for scraped LinkedIn content
package utils

import (
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var (
	whitespaceRe    = regexp.MustCompile(`\s+`)
	countRe         = regexp.MustCompile(`([\d,]+)`)
	countPlusRe     = regexp.MustCompile(`([\d,]+)\+?`)
	usernameRe      = regexp.MustCompile(`linkedin\.com/(?:in|company)/([^/?#]+)`)
	titleCaser      = cases.Title(language.English)
)

// CleanText trims a raw extracted string and collapses runs of whitespace
// into single spaces.
func CleanText(text string) string {
	if text == "" {
		return ""
	}
	return whitespaceRe.ReplaceAllString(strings.TrimSpace(text), " ")
}

// ParseCompactCount parses an engagement count rendered for humans, such as
// "1,234", "2.5K" or "1M". The bool result reports whether a count was found.
func ParseCompactCount(text string) (int, bool) {
	match := countRe.FindStringSubmatch(text)
	if match == nil {
		return 0, false
	}

	numStr := strings.ReplaceAll(match[1], ",", "")
	lower := strings.ToLower(text)

	// Suffixes apply to the numeric portion, which may carry decimals
	// rendered before the comma stripping ("2.5K").
	if dotIdx := strings.Index(text, "."); dotIdx >= 0 {
		if f, err := strconv.ParseFloat(extractDecimal(text), 64); err == nil {
			switch {
			case strings.Contains(lower, "k"):
				return int(f * 1000), true
			case strings.Contains(lower, "m"):
				return int(f * 1000000), true
			}
		}
	}

	n, err := strconv.Atoi(numStr)
	if err != nil {
		return 0, false
	}
	switch {
	case strings.Contains(lower, "k"):
		return n * 1000, true
	case strings.Contains(lower, "m"):
		return n * 1000000, true
	}
	return n, true
}

// extractDecimal pulls a decimal number like "2.5" out of surrounding text.
func extractDecimal(text string) string {
	re := regexp.MustCompile(`[\d]+\.[\d]+`)
	if m := re.FindString(text); m != "" {
		return m
	}
	return text
}

// ParseConnectionsFollowers scans a list of free-text spans ("500+
// connections", "12,345 followers") and returns the connection and follower
// counts as strings. A trailing "+" is preserved because LinkedIn caps the
// public connection count. When no numeric count can be isolated the raw
// span text is returned so the caller never loses information.
func ParseConnectionsFollowers(texts []string) (connections, followers string) {
	for _, text := range texts {
		lower := strings.ToLower(text)

		var countStr string
		if match := countPlusRe.FindStringSubmatch(text); match != nil {
			countStr = strings.ReplaceAll(match[1], ",", "")
			if strings.Contains(text, "+") {
				countStr += "+"
			}
		}

		switch {
		case strings.Contains(lower, "connection"):
			if countStr != "" {
				connections = countStr
			} else {
				connections = text
			}
		case strings.Contains(lower, "follower"):
			if countStr != "" {
				followers = countStr
			} else {
				followers = text
			}
		}
	}
	return connections, followers
}

// UsernameFromURL extracts the profile identifier from a LinkedIn profile or
// company URL. It falls back to the URL host when no path pattern matches.
func UsernameFromURL(profileURL string) string {
	if match := usernameRe.FindStringSubmatch(profileURL); match != nil {
		return match[1]
	}
	if parsed, err := url.Parse(profileURL); err == nil && parsed.Host != "" {
		return parsed.Host
	}
	trimmed := strings.Trim(profileURL, "/")
	parts := strings.Split(trimmed, "/")
	if len(parts) == 0 || parts[len(parts)-1] == "" {
		return "unknown-profile"
	}
	last := parts[len(parts)-1]
	if qIdx := strings.Index(last, "?"); qIdx >= 0 {
		last = last[:qIdx]
	}
	return last
}

// DisplayNameFromUsername turns a URL slug like "jane-doe" into a
// presentable "Jane Doe". Used only when the page itself yields no name.
func DisplayNameFromUsername(username string) string {
	return titleCaser.String(strings.ReplaceAll(username, "-", " "))
}

// ParseISOTime parses an ISO 8601 timestamp as published in JSON-LD blocks,
// including the trailing "Z" UTC designator.
func ParseISOTime(iso string) (time.Time, error) {
	return time.Parse(time.RFC3339, iso)
}
