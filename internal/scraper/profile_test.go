// internal/scraper/profile_test.go
package scraper

import (
	"reflect"
	"testing"
)

const profileFixture = `<html>
<head>
	<meta name="description" content="Jane Doe - VP of Engineering at Acme · Experience: Acme · Education: MIT · Location: Boston">
</head>
<body>
	<h1 class="top-card-layout__title">Jane Doe</h1>
	<h3 class="top-card-layout__first-subline">
		<span class="top-card__subline-item">Boston, Massachusetts</span>
	</h3>
	<div class="not-first-middot">
		<span>500+ connections</span>
		<span>12,345 followers</span>
	</div>
	<section data-section="posts">
		<ul data-test-id="activities__list">
			<li><a class="base-card__full-link" href="https://www.linkedin.com/posts/jane-doe_one"></a></li>
			<li><a class="base-card__full-link" href="/posts/jane-doe_two"></a></li>
			<li><div>promoted card without a link</div></li>
		</ul>
	</section>
</body>
</html>`

func TestParseProfilePage(t *testing.T) {
	profile, postURLs, err := ParseProfilePage(profileFixture, "https://www.linkedin.com/in/jane-doe/")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if profile.Username != "jane-doe" {
		t.Errorf("username = %q, want jane-doe", profile.Username)
	}
	if profile.Name != "Jane Doe" {
		t.Errorf("name = %q, want Jane Doe", profile.Name)
	}
	if profile.Headline != "Jane Doe - VP of Engineering at Acme" {
		t.Errorf("headline = %q, want meta description prefix", profile.Headline)
	}
	if profile.Location != "Boston, Massachusetts" {
		t.Errorf("location = %q, want Boston, Massachusetts", profile.Location)
	}
	if profile.Connections != "500+" {
		t.Errorf("connections = %q, want 500+", profile.Connections)
	}
	if profile.Followers != "12345" {
		t.Errorf("followers = %q, want 12345", profile.Followers)
	}

	wantURLs := []string{
		"https://www.linkedin.com/posts/jane-doe_one",
		"https://www.linkedin.com/posts/jane-doe_two",
	}
	if !reflect.DeepEqual(postURLs, wantURLs) {
		t.Errorf("post URLs = %v, want %v", postURLs, wantURLs)
	}
}

func TestParseProfilePageFallbacks(t *testing.T) {
	// A page that rendered but carries none of the expected profile markup
	// must still produce a usable record from the URL alone.
	profile, postURLs, err := ParseProfilePage("<html><body><p>wall</p></body></html>",
		"https://www.linkedin.com/in/john-smith/")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if profile.Name != "John Smith" {
		t.Errorf("name = %q, want username-derived John Smith", profile.Name)
	}
	if profile.Headline != "Profile of John Smith" {
		t.Errorf("headline = %q, want generated placeholder", profile.Headline)
	}
	if len(postURLs) != 0 {
		t.Errorf("post URLs = %v, want none", postURLs)
	}
	if profile.ScrapeFailed {
		t.Error("a parseable page must not be marked as failed")
	}
}

func TestParseProfilePageEmptyMarkup(t *testing.T) {
	if _, _, err := ParseProfilePage("", "https://www.linkedin.com/in/jane-doe/"); err == nil {
		t.Error("expected error for empty markup, got nil")
	}
}

func TestParseProfilePageOgDescriptionFallback(t *testing.T) {
	page := `<html><head>
		<meta property="og:description" content="Builder of things · Experience: Startup">
	</head><body><h1 class="top-card-layout__title">Sam Lee</h1></body></html>`

	profile, _, err := ParseProfilePage(page, "https://www.linkedin.com/in/sam-lee/")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if profile.Headline != "Builder of things" {
		t.Errorf("headline = %q, want og:description prefix", profile.Headline)
	}
}
