// internal/scraper/helpers_test.go - shared test fixtures
package scraper

import (
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
)

// docArg lets table entries default to a nil document.
type docArg struct {
	doc *goquery.Document
}

func mustParse(t *testing.T, html string) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		t.Fatalf("failed to parse fixture markup: %v", err)
	}
	return doc
}

// jsonldPage embeds a JSON-LD block into minimal post page markup.
func jsonldPage(block string) string {
	return `<html><head><script type="application/ld+json">` + block + `</script></head><body><main></main></body></html>`
}
