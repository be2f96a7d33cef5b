// internal/scraper/jsonld.go - structured-data (JSON-LD) extraction
package scraper

import (
	"encoding/json"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/datalens/linkedscout/internal/utils"
)

var jsonldLogger = utils.NewComponentLogger("jsonld")

// postObjectTypes lists the recognized JSON-LD type tags in priority order.
var postObjectTypes = []string{
	"DiscussionForumPosting",
	"VideoObject",
	"Article",
	"ImageObject",
}

// flexInt decodes a JSON value that may arrive as a number or a quoted
// number; LinkedIn is not consistent about commentCount.
type flexInt int

func (f *flexInt) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	if s == "" || s == "null" {
		return nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		// A malformed count must not poison the whole block.
		return nil
	}
	*f = flexInt(n)
	return nil
}

// ldObject is the subset of a JSON-LD typed object the extractor reads.
type ldObject struct {
	Type          string            `json:"@type"`
	DatePublished string            `json:"datePublished"`
	Text          string            `json:"text"`
	ArticleBody   string            `json:"articleBody"`
	Description   string            `json:"description"`
	CommentCount  *flexInt          `json:"commentCount"`
	Comment       []json.RawMessage `json:"comment"`
}

// ldRoot is the top-level JSON-LD document: either a single typed object or
// a @graph container of typed objects.
type ldRoot struct {
	ldObject
	Graph []ldObject `json:"@graph"`
}

// StructuredExtractor reads post fields from the page's embedded JSON-LD
// block. It never returns an error past the caller: an absent, malformed or
// unrecognized block yields empty PartialFields plus a logged warning.
type StructuredExtractor struct {
	logger utils.Logger
}

// NewStructuredExtractor creates a structured-data extractor.
func NewStructuredExtractor() *StructuredExtractor {
	return &StructuredExtractor{logger: jsonldLogger}
}

// TryExtract locates the JSON-LD post object and maps its typed fields into
// PartialFields. Likes are never present in public JSON-LD and are left to
// the visual fallback.
func (e *StructuredExtractor) TryExtract(doc *goquery.Document) PartialFields {
	var fields PartialFields

	obj := e.findPostObject(doc)
	if obj == nil {
		return fields
	}
	fields.TypeTag = obj.Type

	if obj.DatePublished != "" {
		if ts, err := utils.ParseISOTime(obj.DatePublished); err == nil {
			fields.Published = &ts
		} else {
			e.logger.Warnf("could not parse JSON-LD timestamp %q: %v", obj.DatePublished, err)
			fields.Warnings = append(fields.Warnings, "unparseable structured timestamp")
		}
	}

	// Body text lives under different keys per object type; description is
	// the common fallback for VideoObject.
	for _, candidate := range []string{obj.Text, obj.ArticleBody, obj.Description} {
		if cleaned := utils.CleanText(candidate); cleaned != "" {
			fields.Content = cleaned
			break
		}
	}

	switch {
	case obj.CommentCount != nil:
		n := int(*obj.CommentCount)
		fields.Comments = &n
	case obj.Comment != nil:
		n := len(obj.Comment)
		fields.Comments = &n
	}

	return fields
}

// findPostObject parses the first JSON-LD script block and selects the post
// object: graph members are scanned in the fixed type priority order, and a
// single top-level object is used directly when its type is recognized.
func (e *StructuredExtractor) findPostObject(doc *goquery.Document) *ldObject {
	script := doc.Find(`script[type="application/ld+json"]`).First()
	if script.Length() == 0 {
		e.logger.Warn("JSON-LD script tag not found")
		return nil
	}

	raw := strings.TrimSpace(script.Text())
	if raw == "" {
		e.logger.Warn("JSON-LD script tag is empty")
		return nil
	}

	var root ldRoot
	if err := json.Unmarshal([]byte(raw), &root); err != nil {
		e.logger.Warnf("failed to decode JSON-LD block: %v", err)
		return nil
	}

	if len(root.Graph) > 0 {
		for _, wanted := range postObjectTypes {
			for i := range root.Graph {
				if root.Graph[i].Type == wanted {
					e.logger.Debugf("found JSON-LD object of type %s in @graph", wanted)
					return &root.Graph[i]
				}
			}
		}
		e.logger.Warn("no recognized post object inside JSON-LD @graph")
		return nil
	}

	for _, wanted := range postObjectTypes {
		if root.ldObject.Type == wanted {
			e.logger.Debugf("found top-level JSON-LD object of type %s", wanted)
			return &root.ldObject
		}
	}

	e.logger.Warnf("JSON-LD structure not recognized (type %q)", root.ldObject.Type)
	return nil
}
