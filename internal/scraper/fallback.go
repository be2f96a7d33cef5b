// internal/scraper/fallback.go - visual-markup fallback extraction
package scraper

import (
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/datalens/linkedscout/internal/utils"
)

var fallbackLogger = utils.NewComponentLogger("fallback")

// Selector patterns per field, in priority order. LinkedIn ships several
// generations of post markup; the public single-post page and the feed
// renderer use different class vocabularies, so both are listed.
var (
	timestampSelectors = []string{
		".main-feed-activity-card__entity-lockup time",
		`span.feed-shared-actor__sub-description span[aria-hidden="true"]`,
	}
	contentSelectors = []string{
		`p[data-test-id="main-feed-activity-card__commentary"]`,
		"div.feed-shared-update-v2__description-wrapper .update-components-text",
	}
	reactionSelectors = []string{
		`a[data-test-id="social-actions__reactions"]`,
		"button span.social-details-social-counts__reactions-count",
	}
	reactionCountSelectors = []string{
		`span[aria-hidden="true"]`,
		"span.artdeco-button__text",
	}

	imageContainerSelector    = "ul.feed-images-content, div.update-components-image"
	videoContainerSelector    = "div.feed-shared-update-v2__content--includes-video, div.update-components-video"
	articleContainerSelector  = "div.feed-shared-article, div.update-components-article"
	pollContainerSelector     = "div.feed-shared-poll, div.update-components-poll"
	documentContainerSelector = "div.feed-shared-document, div.update-components-document"
)

// FallbackExtractor derives post fields from the rendered markup via
// selector patterns. Each field lookup is independently fallible: a miss
// leaves the field empty in PartialFields and the pipeline applies the
// documented default.
type FallbackExtractor struct {
	logger utils.Logger
}

// NewFallbackExtractor creates a visual-markup extractor.
func NewFallbackExtractor() *FallbackExtractor {
	return &FallbackExtractor{logger: fallbackLogger}
}

// TryExtract applies the per-field selector chains. The timestamp path only
// ever finds a relative time string ("3d ago"); it is logged and the field
// is left absent rather than guessed at.
func (e *FallbackExtractor) TryExtract(doc *goquery.Document) PartialFields {
	var fields PartialFields

	if rel := firstMatchText(doc, timestampSelectors); rel != "" {
		e.logger.Warnf("visual timestamp is relative (%q), leaving publish time absent", rel)
		fields.Warnings = append(fields.Warnings, "timestamp only available as relative text")
	}

	if content := firstMatchText(doc, contentSelectors); content != "" {
		fields.Content = content
	}

	if likes, ok := e.extractReactions(doc); ok {
		fields.Likes = &likes
	}

	return fields
}

// extractReactions reads the visible reaction count, which may be rendered
// compactly ("1.2K").
func (e *FallbackExtractor) extractReactions(doc *goquery.Document) (int, bool) {
	for _, sel := range reactionSelectors {
		container := doc.Find(sel).First()
		if container.Length() == 0 {
			continue
		}
		for _, countSel := range reactionCountSelectors {
			span := container.Find(countSel).First()
			if span.Length() == 0 {
				continue
			}
			if n, ok := utils.ParseCompactCount(utils.CleanText(span.Text())); ok {
				return n, true
			}
		}
	}
	return 0, false
}

// VisualContentType inspects type-indicating container classes. It returns
// ContentUnknown when no container matches; the caller decides the final
// classification from content presence.
func VisualContentType(doc *goquery.Document, includeArticle bool) ContentType {
	if doc.Find(imageContainerSelector).Length() > 0 {
		return ContentImage
	}
	if doc.Find(videoContainerSelector).Length() > 0 {
		return ContentVideo
	}
	if includeArticle && doc.Find(articleContainerSelector).Length() > 0 {
		return ContentArticle
	}
	if doc.Find(pollContainerSelector).Length() > 0 {
		return ContentPoll
	}
	if doc.Find(documentContainerSelector).Length() > 0 {
		return ContentDocument
	}
	return ContentUnknown
}

// firstMatchText returns the cleaned text of the first selector that
// matches anything.
func firstMatchText(doc *goquery.Document, selectors []string) string {
	for _, sel := range selectors {
		if node := doc.Find(sel).First(); node.Length() > 0 {
			if text := utils.CleanText(node.Text()); text != "" {
				return text
			}
		}
	}
	return ""
}

// parseDocument builds a goquery document from rendered markup.
func parseDocument(html string) (*goquery.Document, error) {
	if strings.TrimSpace(html) == "" {
		return nil, ErrEmptyMarkup
	}
	return goquery.NewDocumentFromReader(strings.NewReader(html))
}
