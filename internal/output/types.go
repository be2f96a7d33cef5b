// internal/output/types.go
package output

import (
	"context"
	"fmt"

	"github.com/datalens/linkedscout/internal/scraper"
	"github.com/datalens/linkedscout/internal/utils"
)

// Store persists acquisition results. Both operations are idempotent by
// natural key: re-acquiring the same profile or post overwrites the prior
// stored record rather than duplicating it.
type Store interface {
	UpsertProfile(ctx context.Context, profile *scraper.ProfileRecord) error
	UpsertPosts(ctx context.Context, posts []scraper.PostRecord) error
	Close(ctx context.Context) error
}

// Store type names accepted in configuration.
const (
	TypeMongoDB = "mongodb"
	TypeSQLite  = "sqlite"
	TypeJSON    = "json"
)

// MongoOptions configures the MongoDB store.
type MongoOptions struct {
	URI                string        `yaml:"uri" json:"uri"`
	Database           string        `yaml:"database" json:"database"`
	ProfilesCollection string        `yaml:"profiles_collection" json:"profiles_collection"`
	PostsCollection    string        `yaml:"posts_collection" json:"posts_collection"`
	Timeout            utils.Duration `yaml:"timeout,omitempty" json:"timeout,omitempty"`
}

// SQLiteOptions configures the SQLite store.
type SQLiteOptions struct {
	Path string `yaml:"path" json:"path"`
}

// FileOptions configures the JSON file store.
type FileOptions struct {
	Path string `yaml:"path" json:"path"`
}

// Options selects and configures the persistence backend.
type Options struct {
	Type    string        `yaml:"type" json:"type"`
	MongoDB MongoOptions  `yaml:"mongodb,omitempty" json:"mongodb,omitempty"`
	SQLite  SQLiteOptions `yaml:"sqlite,omitempty" json:"sqlite,omitempty"`
	File    FileOptions   `yaml:"file,omitempty" json:"file,omitempty"`
}

// Validate checks that the selected backend is fully configured.
func (o *Options) Validate() error {
	switch o.Type {
	case TypeMongoDB:
		if o.MongoDB.URI == "" {
			return fmt.Errorf("mongodb output requires a connection URI")
		}
		if o.MongoDB.Database == "" {
			return fmt.Errorf("mongodb output requires a database name")
		}
	case TypeSQLite:
		if o.SQLite.Path == "" {
			return fmt.Errorf("sqlite output requires a database path")
		}
	case TypeJSON:
		if o.File.Path == "" {
			return fmt.Errorf("json output requires a file path")
		}
	case "":
		return fmt.Errorf("output type is required")
	default:
		return fmt.Errorf("unsupported output type: %s", o.Type)
	}
	return nil
}
