package database

import (
	"context"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

//go:embed migrations/*.json
var migrationsFS embed.FS

// Migration declares the indexes one collection needs.
type Migration struct {
	Collection string      `json:"collection"`
	Indexes    []IndexSpec `json:"indexes"`
}

type IndexSpec struct {
	Name string     `json:"name"`
	Keys []IndexKey `json:"keys"`
}

type IndexKey struct {
	Field string `json:"field"`
	Order int    `json:"order"`
}

func (s IndexSpec) model() mongo.IndexModel {
	keys := bson.D{}
	for _, k := range s.Keys {
		keys = append(keys, bson.E{Key: k.Field, Value: k.Order})
	}
	return mongo.IndexModel{Keys: keys, Options: options.Index().SetName(s.Name)}
}

type appliedMigration struct {
	Name      string    `bson:"_id"`
	AppliedAt time.Time `bson:"appliedAt"`
}

type Migrator struct {
	db     *mongo.Database
	logger *slog.Logger
}

func NewMigrator(db *mongo.Database, logger *slog.Logger) *Migrator {
	return &Migrator{db: db, logger: logger}
}

// Run applies every embedded migration not yet recorded in schema_migrations,
// in file name order.
func (m *Migrator) Run(ctx context.Context) error {
	entries, err := migrationsFS.ReadDir("migrations")
	if err != nil {
		return fmt.Errorf("failed to read migrations directory: %w", err)
	}

	records := m.db.Collection(MigrationsCollection)

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		name := entry.Name()

		applied, err := m.isApplied(ctx, records, name)
		if err != nil {
			return fmt.Errorf("failed to check migration status: %w", err)
		}
		if applied {
			m.logger.Debug("migration already applied, skipping", "migration", name)
			continue
		}

		migration, err := ParseMigration(name)
		if err != nil {
			return err
		}

		m.logger.Info("applying migration", "migration", name, "collection", migration.Collection)

		models := make([]mongo.IndexModel, 0, len(migration.Indexes))
		for _, idx := range migration.Indexes {
			models = append(models, idx.model())
		}
		if _, err := m.db.Collection(migration.Collection).Indexes().CreateMany(ctx, models); err != nil {
			return fmt.Errorf("failed to execute migration %s: %w", name, err)
		}

		if _, err := records.InsertOne(ctx, appliedMigration{Name: name, AppliedAt: time.Now().UTC()}); err != nil {
			return fmt.Errorf("failed to record migration %s: %w", name, err)
		}
	}

	return nil
}

func (m *Migrator) isApplied(ctx context.Context, records *mongo.Collection, name string) (bool, error) {
	err := records.FindOne(ctx, bson.D{{Key: "_id", Value: name}}).Err()
	if errors.Is(err, mongo.ErrNoDocuments) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// ParseMigration reads one embedded migration file.
func ParseMigration(name string) (*Migration, error) {
	data, err := migrationsFS.ReadFile("migrations/" + name)
	if err != nil {
		return nil, fmt.Errorf("failed to read migration %s: %w", name, err)
	}

	var migration Migration
	if err := json.Unmarshal(data, &migration); err != nil {
		return nil, fmt.Errorf("failed to parse migration %s: %w", name, err)
	}
	if migration.Collection == "" || len(migration.Indexes) == 0 {
		return nil, fmt.Errorf("migration %s declares no indexes", name)
	}
	return &migration, nil
}
