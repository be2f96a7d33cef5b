// internal/scraper/types.go
package scraper

import (
	"context"
	"fmt"
	"time"
)

// Common errors
var (
	ErrEmptyMarkup     = fmt.Errorf("page markup is empty")
	ErrNoProfile       = fmt.Errorf("profile attributes could not be extracted")
	ErrExtractionAbort = fmt.Errorf("post extraction aborted")
)

// Fetcher renders a page and returns its markup. Implemented by the browser
// package; tests substitute fakes.
type Fetcher interface {
	Fetch(ctx context.Context, pageURL, readySelector string) (string, error)
}

// ContentType classifies what a post primarily contains.
type ContentType string

const (
	ContentText     ContentType = "text"
	ContentImage    ContentType = "image"
	ContentVideo    ContentType = "video"
	ContentArticle  ContentType = "article"
	ContentPoll     ContentType = "poll"
	ContentDocument ContentType = "document"
	ContentUnknown  ContentType = "unknown"
)

// LengthBucket classifies post content length.
type LengthBucket string

const (
	LengthShort  LengthBucket = "short"
	LengthMedium LengthBucket = "medium"
	LengthLong   LengthBucket = "long"
)

// ProfileRecord is the assembled summary of one acquisition run. It is
// immutable after assembly and upserted by ProfileURL.
type ProfileRecord struct {
	ProfileURL    string  `bson:"profile_url" json:"profile_url"`
	Username      string  `bson:"username" json:"username"`
	Name          string  `bson:"name" json:"name"`
	Headline      string  `bson:"headline,omitempty" json:"headline,omitempty"`
	Location      string  `bson:"location,omitempty" json:"location,omitempty"`
	Connections   string  `bson:"connections,omitempty" json:"connections,omitempty"`
	Followers     string  `bson:"followers,omitempty" json:"followers,omitempty"`
	PostsScraped  int     `bson:"posts_scraped" json:"posts_scraped"`
	AvgEngagement float64 `bson:"avg_engagement" json:"avg_engagement"`
	ScrapeFailed  bool    `bson:"scrape_failed,omitempty" json:"scrape_failed,omitempty"`
}

// PostRecord is the normalized result of one post extraction. It is created
// once per successful pipeline run, never mutated, and upserted by PostURL.
// Date and Time are empty when no publish timestamp could be extracted.
type PostRecord struct {
	PostURL           string       `bson:"post_url" json:"post_url"`
	ProfileURL        string       `bson:"profile_url" json:"profile_url"`
	ProfileName       string       `bson:"profile_name,omitempty" json:"profile_name,omitempty"`
	Date              string       `bson:"date,omitempty" json:"date,omitempty"`
	Time              string       `bson:"time,omitempty" json:"time,omitempty"`
	Content           string       `bson:"content" json:"content"`
	Type              ContentType  `bson:"type" json:"type"`
	ContentLength     int          `bson:"content_length" json:"content_length"`
	ContentLengthType LengthBucket `bson:"content_length_type" json:"content_length_type"`
	Likes             int          `bson:"likes" json:"likes"`
	Comments          int          `bson:"comments" json:"comments"`
	Shares            int          `bson:"shares" json:"shares"`
	Engagement        int          `bson:"engagement" json:"engagement"`
	HasHashtags       bool         `bson:"has_hashtags" json:"has_hashtags"`
	Hashtags          []string     `bson:"hashtags_list" json:"hashtags_list"`
	HasLinks          bool         `bson:"has_links" json:"has_links"`
	HasQuestions      bool         `bson:"has_questions" json:"has_questions"`
	HasMentions       bool         `bson:"has_mentions" json:"has_mentions"`
}

// PostResult carries a best-effort record plus field-level warnings, letting
// callers distinguish a degraded record from a failed one.
type PostResult struct {
	Record   PostRecord
	Warnings []string
}

// Degraded reports whether any field fell back to a documented default.
func (r *PostResult) Degraded() bool {
	return len(r.Warnings) > 0
}

// PartialFields is the discriminated outcome of one extraction strategy.
// A nil pointer or empty string means "not found"; documented defaults are
// applied only once, when the pipeline assembles the final record.
type PartialFields struct {
	Published *time.Time
	Content   string
	TypeTag   string
	Likes     *int
	Comments  *int
	Warnings  []string
}

// Merge fills fields of p that are still empty from other, so that earlier
// strategies in the chain take precedence for every field they supply.
// Warnings accumulate from both sides.
func (p *PartialFields) Merge(other PartialFields) {
	if p.Published == nil {
		p.Published = other.Published
	}
	if p.Content == "" {
		p.Content = other.Content
	}
	if p.TypeTag == "" {
		p.TypeTag = other.TypeTag
	}
	if p.Likes == nil {
		p.Likes = other.Likes
	}
	if p.Comments == nil {
		p.Comments = other.Comments
	}
	p.Warnings = append(p.Warnings, other.Warnings...)
}

// ExtractionFailure reports a post extraction that produced no record at
// all, carrying the underlying cause (typically a fetch failure).
type ExtractionFailure struct {
	PostURL string
	Err     error
}

func (e *ExtractionFailure) Error() string {
	return fmt.Sprintf("extraction of %s failed: %v", e.PostURL, e.Err)
}

func (e *ExtractionFailure) Unwrap() error {
	return e.Err
}
