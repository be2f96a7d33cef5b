// internal/scraper/pipeline.go - per-post extraction orchestration
package scraper

import (
	"context"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"

	"github.com/datalens/linkedscout/internal/monitoring"
	"github.com/datalens/linkedscout/internal/utils"
)

// PostReadySelector signals that a single-post page finished its initial
// render.
const PostReadySelector = "main, body"

// Pipeline extracts one post page into a normalized record. Extraction runs
// an ordered chain of strategies: structured data first, visual markup for
// whatever it left empty. A fetch failure fails the unit; extraction misses
// degrade to documented defaults so a partially changed page still yields a
// best-effort record.
type Pipeline struct {
	fetcher    Fetcher
	structured *StructuredExtractor
	fallback   *FallbackExtractor
	logger     utils.Logger
	metrics    *monitoring.Metrics
}

// NewPipeline creates a post extraction pipeline. metrics may be nil.
func NewPipeline(fetcher Fetcher, metrics *monitoring.Metrics) *Pipeline {
	return &Pipeline{
		fetcher:    fetcher,
		structured: NewStructuredExtractor(),
		fallback:   NewFallbackExtractor(),
		logger:     utils.NewComponentLogger("pipeline"),
		metrics:    metrics,
	}
}

// Extract fetches and parses a single post page. It returns an
// ExtractionFailure only when no record could be produced at all; missing
// fields yield a degraded record with warnings instead.
func (p *Pipeline) Extract(ctx context.Context, postURL string) (*PostResult, error) {
	start := time.Now()
	html, err := p.fetcher.Fetch(ctx, postURL, PostReadySelector)
	if err != nil {
		p.metrics.PageFetched("post", "error", 0)
		p.metrics.PostExtracted("failed")
		return nil, &ExtractionFailure{PostURL: postURL, Err: err}
	}
	p.metrics.PageFetched("post", "ok", time.Since(start))

	doc, err := parseDocument(html)
	if err != nil {
		p.metrics.PostExtracted("failed")
		return nil, &ExtractionFailure{PostURL: postURL, Err: err}
	}

	fields := p.structured.TryExtract(doc)

	missingContent := fields.Content == ""
	missingLikes := fields.Likes == nil
	visual := p.fallback.TryExtract(doc)
	fields.Merge(visual)

	if missingContent && fields.Content != "" {
		p.metrics.FallbackUsed("content")
	}
	if missingLikes && fields.Likes != nil {
		p.metrics.FallbackUsed("likes")
	}

	result := p.assemble(postURL, fields, doc)

	status := "ok"
	if result.Degraded() {
		status = "degraded"
	}
	p.metrics.PostExtracted(status)
	p.logger.Debugf("extracted post url=%s type=%s likes=%d comments=%d warnings=%d",
		postURL, result.Record.Type, result.Record.Likes, result.Record.Comments, len(result.Warnings))

	return result, nil
}

// assemble applies documented defaults for still-missing fields and computes
// the derived analytics columns.
func (p *Pipeline) assemble(postURL string, fields PartialFields, doc *goquery.Document) *PostResult {
	warnings := fields.Warnings

	record := PostRecord{
		PostURL: postURL,
		Content: fields.Content,
		Shares:  0, // not publicly observable, permanently zero
	}

	if fields.Published != nil {
		record.Date = fields.Published.Format("2006-01-02")
		record.Time = fields.Published.Format("15:04")
	} else {
		warnings = append(warnings, "publish timestamp absent")
	}

	if fields.Likes != nil {
		record.Likes = *fields.Likes
	} else {
		warnings = append(warnings, "likes defaulted to 0")
	}
	if fields.Comments != nil {
		record.Comments = *fields.Comments
	} else {
		warnings = append(warnings, "comments defaulted to 0")
	}
	if record.Content == "" {
		warnings = append(warnings, "content empty")
	}

	record.Engagement = EngagementScore(record.Likes, record.Comments, record.Shares)
	record.Type = InferContentType(fields.TypeTag, doc, record.Content)
	record.ContentLength = utf8.RuneCountInString(record.Content)
	record.ContentLengthType = ContentLengthBucket(record.Content)
	record.Hashtags = ExtractHashtags(record.Content)
	record.HasHashtags = len(record.Hashtags) > 0
	record.HasLinks = strings.Contains(record.Content, "http")
	record.HasQuestions = strings.Contains(record.Content, "?")
	record.HasMentions = strings.Contains(record.Content, "@")

	return &PostResult{Record: record, Warnings: warnings}
}
