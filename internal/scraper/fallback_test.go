// internal/scraper/fallback_test.go
package scraper

import (
	"testing"
)

func TestFallbackExtractContent(t *testing.T) {
	page := `<html><body>
		<p data-test-id="main-feed-activity-card__commentary">
			Excited to   share
			our launch!
		</p>
	</body></html>`

	fields := NewFallbackExtractor().TryExtract(mustParse(t, page))

	if fields.Content != "Excited to share our launch!" {
		t.Errorf("content = %q, want cleaned commentary text", fields.Content)
	}
}

func TestFallbackExtractReactions(t *testing.T) {
	tests := []struct {
		name     string
		html     string
		expected int
		found    bool
	}{
		{
			name:     "plain count",
			html:     `<a data-test-id="social-actions__reactions"><span aria-hidden="true">128</span></a>`,
			expected: 128,
			found:    true,
		},
		{
			name:     "compact K suffix",
			html:     `<a data-test-id="social-actions__reactions"><span aria-hidden="true">1.2K</span></a>`,
			expected: 1200,
			found:    true,
		},
		{
			name:     "feed renderer markup",
			html:     `<button><span class="social-details-social-counts__reactions-count"><span class="artdeco-button__text">3,456</span></span></button>`,
			expected: 3456,
			found:    true,
		},
		{
			name:  "no reaction element",
			html:  `<p>nothing here</p>`,
			found: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := mustParse(t, "<html><body>"+tt.html+"</body></html>")
			fields := NewFallbackExtractor().TryExtract(doc)

			if tt.found {
				if fields.Likes == nil {
					t.Fatal("expected a reaction count")
				}
				if *fields.Likes != tt.expected {
					t.Errorf("likes = %d, want %d", *fields.Likes, tt.expected)
				}
			} else if fields.Likes != nil {
				t.Errorf("likes = %d, want absent", *fields.Likes)
			}
		})
	}
}

func TestFallbackRelativeTimestampLeftAbsent(t *testing.T) {
	page := `<html><body>
		<div class="main-feed-activity-card__entity-lockup"><time>3d ago</time></div>
	</body></html>`

	fields := NewFallbackExtractor().TryExtract(mustParse(t, page))

	if fields.Published != nil {
		t.Error("relative timestamp must never be converted to a publish time")
	}
	if len(fields.Warnings) == 0 {
		t.Error("expected a warning noting the relative timestamp")
	}
}

func TestVisualContentType(t *testing.T) {
	tests := []struct {
		name           string
		html           string
		includeArticle bool
		expected       ContentType
	}{
		{
			name:     "image container",
			html:     `<ul class="feed-images-content"></ul>`,
			expected: ContentImage,
		},
		{
			name:     "video container",
			html:     `<div class="update-components-video"></div>`,
			expected: ContentVideo,
		},
		{
			name:           "article container included",
			html:           `<div class="update-components-article"></div>`,
			includeArticle: true,
			expected:       ContentArticle,
		},
		{
			name:     "article container excluded",
			html:     `<div class="update-components-article"></div>`,
			expected: ContentUnknown,
		},
		{
			name:     "poll container",
			html:     `<div class="feed-shared-poll"></div>`,
			expected: ContentPoll,
		},
		{
			name:     "document container",
			html:     `<div class="update-components-document"></div>`,
			expected: ContentDocument,
		},
		{
			name:     "image beats video when both present",
			html:     `<div class="update-components-video"></div><ul class="feed-images-content"></ul>`,
			expected: ContentImage,
		},
		{
			name:     "no container",
			html:     `<p>text only</p>`,
			expected: ContentUnknown,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := mustParse(t, "<html><body>"+tt.html+"</body></html>")
			if got := VisualContentType(doc, tt.includeArticle); got != tt.expected {
				t.Errorf("VisualContentType() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestParseDocumentEmptyMarkup(t *testing.T) {
	if _, err := parseDocument("   \n"); err != ErrEmptyMarkup {
		t.Errorf("parseDocument(blank) error = %v, want ErrEmptyMarkup", err)
	}
	if _, err := parseDocument("<html><body></body></html>"); err != nil {
		t.Errorf("parseDocument(valid) error = %v, want nil", err)
	}
}
