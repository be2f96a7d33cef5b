// internal/output/json_test.go
package output

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/datalens/linkedscout/internal/scraper"
)

func testProfile() *scraper.ProfileRecord {
	return &scraper.ProfileRecord{
		ProfileURL:    "https://www.linkedin.com/in/jane-doe/",
		Username:      "jane-doe",
		Name:          "Jane Doe",
		PostsScraped:  1,
		AvgEngagement: 16,
	}
}

func testPost(url string, likes int) scraper.PostRecord {
	return scraper.PostRecord{
		PostURL:    url,
		ProfileURL: "https://www.linkedin.com/in/jane-doe/",
		Content:    "hello",
		Type:       scraper.ContentText,
		Likes:      likes,
		Engagement: likes,
		Hashtags:   []string{},
	}
}

func TestJSONStoreUpsertIdempotent(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "out.json")

	store, err := NewJSONStore(FileOptions{Path: path})
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	defer store.Close(ctx)

	post := testPost("https://www.linkedin.com/posts/p0", 10)
	if err := store.UpsertProfile(ctx, testProfile()); err != nil {
		t.Fatalf("first profile upsert: %v", err)
	}
	if err := store.UpsertPosts(ctx, []scraper.PostRecord{post}); err != nil {
		t.Fatalf("first post upsert: %v", err)
	}

	// Re-acquisition with changed counts must overwrite, not duplicate.
	post.Likes = 25
	if err := store.UpsertProfile(ctx, testProfile()); err != nil {
		t.Fatalf("second profile upsert: %v", err)
	}
	if err := store.UpsertPosts(ctx, []scraper.PostRecord{post}); err != nil {
		t.Fatalf("second post upsert: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read output file: %v", err)
	}

	var doc struct {
		Profiles map[string]scraper.ProfileRecord `json:"profiles"`
		Posts    map[string]scraper.PostRecord    `json:"posts"`
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		t.Fatalf("failed to decode output file: %v", err)
	}

	if len(doc.Profiles) != 1 {
		t.Errorf("profiles = %d, want 1", len(doc.Profiles))
	}
	if len(doc.Posts) != 1 {
		t.Errorf("posts = %d, want 1", len(doc.Posts))
	}
	if got := doc.Posts[post.PostURL].Likes; got != 25 {
		t.Errorf("post likes = %d, want updated value 25", got)
	}
}

func TestJSONStoreEmptyPosts(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.json")
	store, err := NewJSONStore(FileOptions{Path: path})
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}

	if err := store.UpsertPosts(context.Background(), nil); err != nil {
		t.Fatalf("empty upsert must be a no-op: %v", err)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Error("empty upsert should not create the output file")
	}
}

func TestJSONStoreCreatesDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "out.json")
	store, err := NewJSONStore(FileOptions{Path: path})
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}

	if err := store.UpsertProfile(context.Background(), testProfile()); err != nil {
		t.Fatalf("upsert into nested directory: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("output file missing: %v", err)
	}
}
