// internal/output/manager.go
package output

import (
	"context"
	"fmt"

	"github.com/datalens/linkedscout/internal/monitoring"
	"github.com/datalens/linkedscout/internal/scraper"
	"github.com/datalens/linkedscout/internal/utils"
)

// Manager wraps the configured Store with logging and metrics. Persistence
// errors are returned to the caller, who logs them without treating the
// acquisition itself as failed.
type Manager struct {
	store     Store
	storeType string
	logger    utils.Logger
	metrics   *monitoring.Metrics
}

// NewManager builds the Store selected by opts. metrics may be nil.
func NewManager(ctx context.Context, opts *Options, metrics *monitoring.Metrics) (*Manager, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	var (
		store Store
		err   error
	)
	switch opts.Type {
	case TypeMongoDB:
		store, err = NewMongoStore(ctx, opts.MongoDB)
	case TypeSQLite:
		store, err = NewSQLiteStore(ctx, opts.SQLite)
	case TypeJSON:
		store, err = NewJSONStore(opts.File)
	default:
		err = fmt.Errorf("unsupported output type: %s", opts.Type)
	}
	if err != nil {
		return nil, err
	}

	return &Manager{
		store:     store,
		storeType: opts.Type,
		logger:    utils.NewComponentLogger("output"),
		metrics:   metrics,
	}, nil
}

// WriteResults upserts the profile summary and its post records.
func (m *Manager) WriteResults(ctx context.Context, profile *scraper.ProfileRecord, posts []scraper.PostRecord) error {
	if err := m.store.UpsertProfile(ctx, profile); err != nil {
		return err
	}
	m.metrics.RecordsWritten(m.storeType, "profile", 1)

	if err := m.store.UpsertPosts(ctx, posts); err != nil {
		return err
	}
	m.metrics.RecordsWritten(m.storeType, "post", len(posts))

	m.logger.Infof("persisted profile %s with %d posts via %s", profile.Username, len(posts), m.storeType)
	return nil
}

// Close releases the underlying store.
func (m *Manager) Close(ctx context.Context) error {
	return m.store.Close(ctx)
}
