// internal/scraper/jsonld_test.go
package scraper

import (
	"testing"
)

func TestStructuredExtractGraphPriority(t *testing.T) {
	// The DiscussionForumPosting must win even though the VideoObject comes
	// first in document order.
	page := jsonldPage(`{
		"@graph": [
			{"@type": "VideoObject", "description": "video description"},
			{"@type": "DiscussionForumPosting", "text": "the actual post body", "datePublished": "2024-03-15T10:30:00Z", "commentCount": 7}
		]
	}`)

	fields := NewStructuredExtractor().TryExtract(mustParse(t, page))

	if fields.TypeTag != "DiscussionForumPosting" {
		t.Errorf("type tag = %q, want DiscussionForumPosting", fields.TypeTag)
	}
	if fields.Content != "the actual post body" {
		t.Errorf("content = %q, want post body", fields.Content)
	}
	if fields.Published == nil {
		t.Fatal("expected a parsed publish timestamp")
	}
	if got := fields.Published.Format("2006-01-02 15:04"); got != "2024-03-15 10:30" {
		t.Errorf("published = %q, want 2024-03-15 10:30", got)
	}
	if fields.Comments == nil || *fields.Comments != 7 {
		t.Errorf("comments = %v, want 7", fields.Comments)
	}
}

func TestStructuredExtractTopLevelObject(t *testing.T) {
	page := jsonldPage(`{"@type": "Article", "articleBody": "long form piece"}`)

	fields := NewStructuredExtractor().TryExtract(mustParse(t, page))

	if fields.TypeTag != "Article" {
		t.Errorf("type tag = %q, want Article", fields.TypeTag)
	}
	if fields.Content != "long form piece" {
		t.Errorf("content = %q, want article body", fields.Content)
	}
}

func TestStructuredExtractVideoDescriptionFallback(t *testing.T) {
	page := jsonldPage(`{"@type": "VideoObject", "description": "clip summary"}`)

	fields := NewStructuredExtractor().TryExtract(mustParse(t, page))

	if fields.Content != "clip summary" {
		t.Errorf("content = %q, want description fallback", fields.Content)
	}
}

func TestStructuredExtractCommentListFallback(t *testing.T) {
	page := jsonldPage(`{"@type": "DiscussionForumPosting", "text": "hi", "comment": [{}, {}, {}]}`)

	fields := NewStructuredExtractor().TryExtract(mustParse(t, page))

	if fields.Comments == nil || *fields.Comments != 3 {
		t.Errorf("comments = %v, want 3 from comment list length", fields.Comments)
	}
}

func TestStructuredExtractQuotedCommentCount(t *testing.T) {
	page := jsonldPage(`{"@type": "DiscussionForumPosting", "text": "hi", "commentCount": "12"}`)

	fields := NewStructuredExtractor().TryExtract(mustParse(t, page))

	if fields.Comments == nil || *fields.Comments != 12 {
		t.Errorf("comments = %v, want 12 from quoted count", fields.Comments)
	}
}

func TestStructuredExtractDegenerateInputs(t *testing.T) {
	tests := []struct {
		name string
		html string
	}{
		{
			name: "no script tag",
			html: `<html><body><main></main></body></html>`,
		},
		{
			name: "empty script tag",
			html: jsonldPage(``),
		},
		{
			name: "malformed JSON",
			html: jsonldPage(`{"@type": "DiscussionForumPosting",`),
		},
		{
			name: "unrecognized type",
			html: jsonldPage(`{"@type": "Person", "name": "Jane"}`),
		},
		{
			name: "graph without recognized types",
			html: jsonldPage(`{"@graph": [{"@type": "Organization"}]}`),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fields := NewStructuredExtractor().TryExtract(mustParse(t, tt.html))
			if fields.TypeTag != "" || fields.Content != "" || fields.Published != nil || fields.Comments != nil {
				t.Errorf("expected empty fields, got %+v", fields)
			}
		})
	}
}

func TestStructuredExtractBadTimestampWarns(t *testing.T) {
	page := jsonldPage(`{"@type": "DiscussionForumPosting", "text": "hi", "datePublished": "yesterday"}`)

	fields := NewStructuredExtractor().TryExtract(mustParse(t, page))

	if fields.Published != nil {
		t.Error("unparseable timestamp must stay absent")
	}
	if len(fields.Warnings) == 0 {
		t.Error("expected a warning for the unparseable timestamp")
	}
	if fields.Content != "hi" {
		t.Errorf("content = %q; a bad timestamp must not abort extraction", fields.Content)
	}
}
