// internal/scraper/derive.go - derived analytics fields
package scraper

import (
	"regexp"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
)

// Engagement weights: comments and shares signal more audience effort than
// likes.
const (
	commentWeight = 3
	shareWeight   = 5
)

var hashtagRe = regexp.MustCompile(`#(\w+)`)

// EngagementScore computes the weighted engagement of a post. It is always
// recomputed from the three base counts, never stored independently.
func EngagementScore(likes, comments, shares int) int {
	return likes + comments*commentWeight + shares*shareWeight
}

// ContentLengthBucket maps content length in characters to a bucket.
// Boundaries are inclusive on the lower bucket: 200 is short, 500 is medium.
func ContentLengthBucket(content string) LengthBucket {
	switch n := utf8.RuneCountInString(content); {
	case n <= 200:
		return LengthShort
	case n <= 500:
		return LengthMedium
	default:
		return LengthLong
	}
}

// ExtractHashtags returns the deduplicated, lower-cased hashtag set of the
// content, sorted for stable output.
func ExtractHashtags(content string) []string {
	matches := hashtagRe.FindAllStringSubmatch(content, -1)
	if len(matches) == 0 {
		return []string{}
	}
	seen := make(map[string]struct{}, len(matches))
	tags := make([]string, 0, len(matches))
	for _, m := range matches {
		tag := strings.ToLower(m[1])
		if _, dup := seen[tag]; dup {
			continue
		}
		seen[tag] = struct{}{}
		tags = append(tags, tag)
	}
	sort.Strings(tags)
	return tags
}

// InferContentType classifies a post. Precedence is fixed: an explicit
// structured-data type tag wins; a DiscussionForumPosting (or an absent tag)
// is refined from visual container classes; a non-empty body defaults to
// text; otherwise the type is unknown.
func InferContentType(structuredTag string, doc *goquery.Document, content string) ContentType {
	switch structuredTag {
	case "VideoObject":
		return ContentVideo
	case "Article":
		return ContentArticle
	case "ImageObject":
		return ContentImage
	}

	if doc != nil {
		// The article container only disambiguates untagged posts; a
		// DiscussionForumPosting embedding an article preview is still a post.
		includeArticle := structuredTag != "DiscussionForumPosting"
		if visual := VisualContentType(doc, includeArticle); visual != ContentUnknown {
			return visual
		}
	}

	if content != "" {
		return ContentText
	}
	return ContentUnknown
}
