package database

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

const (
	ProjectsCollection   = "projects"
	FeedbackCollection   = "feedback"
	CommentsCollection   = "comments"
	MigrationsCollection = "schema_migrations"
)

var ErrNotFound = errors.New("not found")

type Cfg struct {
	URI  string
	User string
	Pass string
	Name string
}

func (c Cfg) Creds() *options.Credential {
	if c.Pass != "" && c.User != "" {
		return &options.Credential{
			Username:    c.User,
			Password:    c.Pass,
			PasswordSet: true,
		}
	}

	return nil
}

type DatabaseClient struct {
	client   *mongo.Client
	db       *mongo.Database
	projects *mongo.Collection
	feedback *mongo.Collection
	comments *mongo.Collection
}

func NewDatabaseClient(ctx context.Context, cfg Cfg) (*DatabaseClient, error) {
	opts := options.Client().
		ApplyURI(cfg.URI).
		SetConnectTimeout(5 * time.Second).
		SetTimeout(10 * time.Second)

	if creds := cfg.Creds(); creds != nil {
		opts.SetAuth(*creds)
	}

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	db := client.Database(cfg.Name)

	return &DatabaseClient{
		client:   client,
		db:       db,
		projects: db.Collection(ProjectsCollection),
		feedback: db.Collection(FeedbackCollection),
		comments: db.Collection(CommentsCollection),
	}, nil
}

func (d *DatabaseClient) Database() *mongo.Database {
	return d.db
}

func (d *DatabaseClient) Ping(ctx context.Context) error {
	return d.client.Ping(ctx, readpref.Primary())
}

func (d *DatabaseClient) Close(ctx context.Context) error {
	return d.client.Disconnect(ctx)
}

func handleMongoError(err error) error {
	if errors.Is(err, mongo.ErrNoDocuments) {
		return errors.Join(err, ErrNotFound)
	}

	return err
}
