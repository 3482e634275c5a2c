package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const defaultTimeout = 10 * time.Second

const (
	collectionUsers    = "users"
	collectionClients  = "clients"
	collectionProjects = "projects"
	collectionActivity = "activity_events"
)

// ErrClearInProduction is returned by Store.Clear when the store was opened
// for the production environment.
var ErrClearInProduction = errors.New("mongo: refusing to clear a production database")

// Config captures the minimal settings required to establish a MongoDB connection.
type Config struct {
	URI      string
	Database string
	Timeout  time.Duration
	// Env guards destructive operations; Clear is refused when it is "production".
	Env string
}

// Store owns the client and database handle. Repositories are built from
// Store.DB and share its connection pool.
type Store struct {
	client *mongo.Client
	db     *mongo.Database
	env    string
}

// Connect establishes a MongoDB client, verifies connectivity with a ping, and
// returns a Store bound to the configured database. A default timeout is
// applied when none is provided.
func Connect(ctx context.Context, cfg Config) (*Store, error) {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	connectCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	client, err := mongo.Connect(connectCtx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, fmt.Errorf("mongo connect: %w", err)
	}

	if err := client.Ping(connectCtx, nil); err != nil {
		_ = client.Disconnect(connectCtx)
		return nil, fmt.Errorf("mongo ping: %w", err)
	}

	return NewStore(client, cfg.Database, cfg.Env), nil
}

// NewStore wraps an already connected client.
func NewStore(client *mongo.Client, database, env string) *Store {
	return &Store{client: client, db: client.Database(database), env: env}
}

func (s *Store) DB() *mongo.Database { return s.db }

// Ping reports whether the deployment is reachable.
func (s *Store) Ping(ctx context.Context) error {
	return s.client.Ping(ctx, nil)
}

func (s *Store) Disconnect(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

// Clear removes every document from the managed collections. It is meant for
// development and test databases.
func (s *Store) Clear(ctx context.Context) error {
	if s.env == "production" {
		return ErrClearInProduction
	}

	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	for _, name := range []string{collectionUsers, collectionClients, collectionProjects, collectionActivity} {
		if _, err := s.db.Collection(name).DeleteMany(ctx, bson.D{}); err != nil {
			return fmt.Errorf("clear %s: %w", name, err)
		}
	}
	return nil
}

// EnsureIndexes creates the indexes the repositories rely on. The unique
// index on users.email backs the duplicate-account check.
func (s *Store) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	plan := map[string][]mongo.IndexModel{
		collectionUsers: {
			{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true)},
		},
		collectionClients: {
			{Keys: bson.D{{Key: "user_email", Value: 1}}},
		},
		collectionProjects: {
			{Keys: bson.D{{Key: "user_email", Value: 1}}},
			{Keys: bson.D{{Key: "client_id", Value: 1}}},
		},
		collectionActivity: {
			{Keys: bson.D{{Key: "entity", Value: 1}, {Key: "entity_id", Value: 1}, {Key: "occurred_at", Value: 1}}},
		},
	}

	for _, name := range []string{collectionUsers, collectionClients, collectionProjects, collectionActivity} {
		if _, err := s.db.Collection(name).Indexes().CreateMany(ctx, plan[name]); err != nil {
			return fmt.Errorf("indexes %s: %w", name, err)
		}
	}
	return nil
}
