// internal/output/mongodb.go - MongoDB persistence adapter
package output

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/datalens/linkedscout/internal/scraper"
	"github.com/datalens/linkedscout/internal/utils"
)

var mongoLogger = utils.NewComponentLogger("mongodb-output")

// MongoStore persists records to MongoDB, keyed by the natural URL keys.
type MongoStore struct {
	client   *mongo.Client
	profiles *mongo.Collection
	posts    *mongo.Collection
	config   MongoOptions
}

// NewMongoStore connects to MongoDB and ensures unique indexes on the
// natural keys so upserts stay idempotent even under concurrent runs.
func NewMongoStore(ctx context.Context, opts MongoOptions) (*MongoStore, error) {
	if opts.ProfilesCollection == "" {
		opts.ProfilesCollection = "profiles"
	}
	if opts.PostsCollection == "" {
		opts.PostsCollection = "posts"
	}
	if opts.Timeout == 0 {
		opts.Timeout = utils.Duration(15 * time.Second)
	}

	connectCtx, cancel := context.WithTimeout(ctx, opts.Timeout.Std())
	defer cancel()

	client, err := mongo.Connect(connectCtx, options.Client().ApplyURI(opts.URI))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
	}
	if err := client.Ping(connectCtx, nil); err != nil {
		_ = client.Disconnect(connectCtx)
		return nil, fmt.Errorf("failed to ping MongoDB: %w", err)
	}

	db := client.Database(opts.Database)
	store := &MongoStore{
		client:   client,
		profiles: db.Collection(opts.ProfilesCollection),
		posts:    db.Collection(opts.PostsCollection),
		config:   opts,
	}

	if err := store.ensureIndexes(connectCtx); err != nil {
		mongoLogger.Warnf("could not ensure natural-key indexes: %v", err)
	}

	mongoLogger.Infof("connected to MongoDB database %s (%s, %s)",
		opts.Database, opts.ProfilesCollection, opts.PostsCollection)
	return store, nil
}

// ensureIndexes creates unique indexes on profile_url and post_url.
func (s *MongoStore) ensureIndexes(ctx context.Context) error {
	_, err := s.profiles.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "profile_url", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return err
	}
	_, err = s.posts.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "post_url", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return err
}

// UpsertProfile replaces the stored profile summary for its URL.
func (s *MongoStore) UpsertProfile(ctx context.Context, profile *scraper.ProfileRecord) error {
	filter := bson.M{"profile_url": profile.ProfileURL}
	update := bson.M{"$set": profile}
	_, err := s.profiles.UpdateOne(ctx, filter, update, options.Update().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("failed to upsert profile %s: %w", profile.ProfileURL, err)
	}
	return nil
}

// UpsertPosts bulk-upserts post records keyed by post URL.
func (s *MongoStore) UpsertPosts(ctx context.Context, posts []scraper.PostRecord) error {
	if len(posts) == 0 {
		return nil
	}

	models := make([]mongo.WriteModel, len(posts))
	for i, post := range posts {
		models[i] = mongo.NewReplaceOneModel().
			SetFilter(bson.M{"post_url": post.PostURL}).
			SetReplacement(post).
			SetUpsert(true)
	}

	result, err := s.posts.BulkWrite(ctx, models)
	if err != nil {
		return fmt.Errorf("failed to upsert posts: %w", err)
	}
	mongoLogger.Debugf("upserted %d posts (inserted=%d modified=%d)",
		len(posts), result.UpsertedCount, result.ModifiedCount)
	return nil
}

// Close disconnects from MongoDB.
func (s *MongoStore) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}
