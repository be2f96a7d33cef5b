// internal/output/sqlite.go - SQLite persistence adapter
package output

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	_ "github.com/mattn/go-sqlite3"

	"github.com/datalens/linkedscout/internal/scraper"
	"github.com/datalens/linkedscout/internal/utils"
)

var sqliteLogger = utils.NewComponentLogger("sqlite-output")

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS profiles (
	profile_url    TEXT PRIMARY KEY,
	username       TEXT NOT NULL,
	name           TEXT NOT NULL,
	headline       TEXT,
	location       TEXT,
	connections    TEXT,
	followers      TEXT,
	posts_scraped  INTEGER NOT NULL DEFAULT 0,
	avg_engagement REAL NOT NULL DEFAULT 0,
	scrape_failed  INTEGER NOT NULL DEFAULT 0,
	updated_at     TIMESTAMP DEFAULT CURRENT_TIMESTAMP
);
CREATE TABLE IF NOT EXISTS posts (
	post_url            TEXT PRIMARY KEY,
	profile_url         TEXT NOT NULL,
	profile_name        TEXT,
	date                TEXT,
	time                TEXT,
	content             TEXT,
	type                TEXT NOT NULL,
	content_length      INTEGER NOT NULL DEFAULT 0,
	content_length_type TEXT NOT NULL,
	likes               INTEGER NOT NULL DEFAULT 0,
	comments            INTEGER NOT NULL DEFAULT 0,
	shares              INTEGER NOT NULL DEFAULT 0,
	engagement          INTEGER NOT NULL DEFAULT 0,
	has_hashtags        INTEGER NOT NULL DEFAULT 0,
	hashtags_list       TEXT NOT NULL DEFAULT '[]',
	has_links           INTEGER NOT NULL DEFAULT 0,
	has_questions       INTEGER NOT NULL DEFAULT 0,
	has_mentions        INTEGER NOT NULL DEFAULT 0,
	updated_at          TIMESTAMP DEFAULT CURRENT_TIMESTAMP
);
CREATE INDEX IF NOT EXISTS idx_posts_profile_url ON posts(profile_url);
`

const upsertProfileSQL = `
INSERT INTO profiles (profile_url, username, name, headline, location, connections,
	followers, posts_scraped, avg_engagement, scrape_failed, updated_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, CURRENT_TIMESTAMP)
ON CONFLICT(profile_url) DO UPDATE SET
	username = excluded.username,
	name = excluded.name,
	headline = excluded.headline,
	location = excluded.location,
	connections = excluded.connections,
	followers = excluded.followers,
	posts_scraped = excluded.posts_scraped,
	avg_engagement = excluded.avg_engagement,
	scrape_failed = excluded.scrape_failed,
	updated_at = CURRENT_TIMESTAMP
`

const upsertPostSQL = `
INSERT INTO posts (post_url, profile_url, profile_name, date, time, content, type,
	content_length, content_length_type, likes, comments, shares, engagement,
	has_hashtags, hashtags_list, has_links, has_questions, has_mentions, updated_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, CURRENT_TIMESTAMP)
ON CONFLICT(post_url) DO UPDATE SET
	profile_url = excluded.profile_url,
	profile_name = excluded.profile_name,
	date = excluded.date,
	time = excluded.time,
	content = excluded.content,
	type = excluded.type,
	content_length = excluded.content_length,
	content_length_type = excluded.content_length_type,
	likes = excluded.likes,
	comments = excluded.comments,
	shares = excluded.shares,
	engagement = excluded.engagement,
	has_hashtags = excluded.has_hashtags,
	hashtags_list = excluded.hashtags_list,
	has_links = excluded.has_links,
	has_questions = excluded.has_questions,
	has_mentions = excluded.has_mentions,
	updated_at = CURRENT_TIMESTAMP
`

// SQLiteStore persists records to an embedded SQLite database, useful for
// credential-free local runs.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore opens (and if needed initializes) the database at path.
func NewSQLiteStore(ctx context.Context, opts SQLiteOptions) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", opts.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite database: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping sqlite database: %w", err)
	}
	if _, err := db.ExecContext(ctx, sqliteSchema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	sqliteLogger.Infof("opened sqlite database %s", opts.Path)
	return &SQLiteStore{db: db}, nil
}

// UpsertProfile writes the profile summary, overwriting any prior row for
// the same URL.
func (s *SQLiteStore) UpsertProfile(ctx context.Context, profile *scraper.ProfileRecord) error {
	_, err := s.db.ExecContext(ctx, upsertProfileSQL,
		profile.ProfileURL, profile.Username, profile.Name, profile.Headline,
		profile.Location, profile.Connections, profile.Followers,
		profile.PostsScraped, profile.AvgEngagement, boolToInt(profile.ScrapeFailed),
	)
	if err != nil {
		return fmt.Errorf("failed to upsert profile %s: %w", profile.ProfileURL, err)
	}
	return nil
}

// UpsertPosts writes post records in a single transaction.
func (s *SQLiteStore) UpsertPosts(ctx context.Context, posts []scraper.PostRecord) error {
	if len(posts) == 0 {
		return nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, upsertPostSQL)
	if err != nil {
		return fmt.Errorf("failed to prepare upsert: %w", err)
	}
	defer stmt.Close()

	for _, post := range posts {
		hashtags, err := json.Marshal(post.Hashtags)
		if err != nil {
			return fmt.Errorf("failed to encode hashtags for %s: %w", post.PostURL, err)
		}
		_, err = stmt.ExecContext(ctx,
			post.PostURL, post.ProfileURL, post.ProfileName, post.Date, post.Time,
			post.Content, string(post.Type), post.ContentLength, string(post.ContentLengthType),
			post.Likes, post.Comments, post.Shares, post.Engagement,
			boolToInt(post.HasHashtags), string(hashtags),
			boolToInt(post.HasLinks), boolToInt(post.HasQuestions), boolToInt(post.HasMentions),
		)
		if err != nil {
			return fmt.Errorf("failed to upsert post %s: %w", post.PostURL, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit posts: %w", err)
	}
	sqliteLogger.Debugf("upserted %d posts", len(posts))
	return nil
}

// Close closes the database handle.
func (s *SQLiteStore) Close(ctx context.Context) error {
	return s.db.Close()
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
