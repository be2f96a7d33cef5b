// internal/output/json.go - JSON file persistence adapter
package output

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/datalens/linkedscout/internal/scraper"
	"github.com/datalens/linkedscout/internal/utils"
)

var jsonLogger = utils.NewComponentLogger("json-output")

// jsonDocument is the on-disk layout: records keyed by their natural key so
// repeated runs overwrite instead of appending duplicates.
type jsonDocument struct {
	Profiles map[string]scraper.ProfileRecord `json:"profiles"`
	Posts    map[string]scraper.PostRecord    `json:"posts"`
}

// JSONStore persists records into a single JSON document on disk. Writes
// merge into the existing file and replace it atomically.
type JSONStore struct {
	path string
	mu   sync.Mutex
}

// NewJSONStore creates a JSON file store at the configured path.
func NewJSONStore(opts FileOptions) (*JSONStore, error) {
	if dir := filepath.Dir(opts.Path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create output directory: %w", err)
		}
	}
	return &JSONStore{path: opts.Path}, nil
}

// UpsertProfile merges the profile into the document under its URL key.
func (s *JSONStore) UpsertProfile(ctx context.Context, profile *scraper.ProfileRecord) error {
	return s.update(func(doc *jsonDocument) {
		doc.Profiles[profile.ProfileURL] = *profile
	})
}

// UpsertPosts merges post records into the document under their URL keys.
func (s *JSONStore) UpsertPosts(ctx context.Context, posts []scraper.PostRecord) error {
	if len(posts) == 0 {
		return nil
	}
	return s.update(func(doc *jsonDocument) {
		for _, post := range posts {
			doc.Posts[post.PostURL] = post
		}
	})
}

// Close is a no-op; every write is flushed immediately.
func (s *JSONStore) Close(ctx context.Context) error {
	return nil
}

// update loads the current document, applies fn and writes the result back
// via a temp-file rename.
func (s *JSONStore) update(fn func(*jsonDocument)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.load()
	if err != nil {
		return err
	}
	fn(doc)

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode output document: %w", err)
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("failed to replace output file: %w", err)
	}

	jsonLogger.Debugf("wrote %s (%d profiles, %d posts)", s.path, len(doc.Profiles), len(doc.Posts))
	return nil
}

// load reads the existing document, tolerating a missing or empty file.
func (s *JSONStore) load() (*jsonDocument, error) {
	doc := &jsonDocument{
		Profiles: make(map[string]scraper.ProfileRecord),
		Posts:    make(map[string]scraper.PostRecord),
	}

	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) || (err == nil && len(data) == 0) {
		return doc, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read output file: %w", err)
	}
	if err := json.Unmarshal(data, doc); err != nil {
		return nil, fmt.Errorf("failed to decode output file: %w", err)
	}
	if doc.Profiles == nil {
		doc.Profiles = make(map[string]scraper.ProfileRecord)
	}
	if doc.Posts == nil {
		doc.Posts = make(map[string]scraper.PostRecord)
	}
	return doc, nil
}
