// internal/scraper/profile.go - profile page parsing and post-link discovery
package scraper

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/datalens/linkedscout/internal/utils"
)

var profileLogger = utils.NewComponentLogger("profile")

// headlineRe strips the trailing experience/education summary LinkedIn
// appends to the meta description.
var headlineRe = regexp.MustCompile(`^(.*?)\s*·\s*Experience:`)

// Profile page selectors (public, logged-out view).
const (
	profileNameSelector     = "h1.top-card-layout__title"
	profileSublineSelector  = "h3.top-card-layout__first-subline span.top-card__subline-item"
	profileCountsSelector   = "div.not-first-middot span"
	activitySectionSelector = `section[data-section="posts"]`
	activityListSelector    = `ul[data-test-id="activities__list"]`
	postLinkSelector        = "a.base-card__full-link"
)

// ParseProfilePage extracts profile attributes and the ordered list of post
// URLs from rendered profile page markup. Only links exposed by the single
// page load are collected; there is no pagination. Attribute extraction is
// best-effort per field; the username-derived fallbacks guarantee a usable
// record whenever the markup parses at all.
func ParseProfilePage(html, profileURL string) (*ProfileRecord, []string, error) {
	doc, err := parseDocument(html)
	if err != nil {
		return nil, nil, err
	}

	username := utils.UsernameFromURL(profileURL)
	record := &ProfileRecord{
		ProfileURL: profileURL,
		Username:   username,
	}

	record.Name = utils.CleanText(doc.Find(profileNameSelector).First().Text())
	if record.Name == "" {
		record.Name = utils.DisplayNameFromUsername(username)
	}

	record.Headline = extractHeadline(doc)
	if record.Headline == "" {
		record.Headline = "Profile of " + record.Name
	}

	record.Location = utils.CleanText(doc.Find(profileSublineSelector).First().Text())

	var spans []string
	doc.Find(profileCountsSelector).Each(func(_ int, s *goquery.Selection) {
		spans = append(spans, utils.CleanText(s.Text()))
	})
	record.Connections, record.Followers = utils.ParseConnectionsFollowers(spans)

	postURLs := extractPostLinks(doc)
	profileLogger.Infof("parsed profile %s: %d post links discovered", username, len(postURLs))

	return record, postURLs, nil
}

// extractHeadline reads the profile headline from the page's description
// meta tags.
func extractHeadline(doc *goquery.Document) string {
	for _, sel := range []string{`meta[name="description"]`, `meta[property="og:description"]`} {
		content, exists := doc.Find(sel).First().Attr("content")
		if !exists || content == "" {
			continue
		}
		if match := headlineRe.FindStringSubmatch(content); match != nil {
			return utils.CleanText(match[1])
		}
	}
	return ""
}

// extractPostLinks collects post URLs from the activity sections in
// discovery order. Relative links are made absolute.
func extractPostLinks(doc *goquery.Document) []string {
	var postURLs []string
	doc.Find(activitySectionSelector).Each(func(_ int, section *goquery.Selection) {
		section.Find(activityListSelector).First().ChildrenFiltered("li").Each(func(_ int, item *goquery.Selection) {
			href, exists := item.Find(postLinkSelector).First().Attr("href")
			if !exists {
				return
			}
			switch {
			case strings.HasPrefix(href, "http"):
				postURLs = append(postURLs, href)
			case strings.HasPrefix(href, "/"):
				postURLs = append(postURLs, "https://www.linkedin.com"+href)
			}
		})
	})
	return postURLs
}
