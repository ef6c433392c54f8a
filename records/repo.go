package records

import (
	"context"
	"fmt"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/gridflow/bmra/store"
)

//go:generate mockgen --build_flags=--mod=mod -source=./repo.go -destination=./test/mock_repository.go -package test MockRepository

type Repository interface {
	// Insert stores the record unless one with the same natural key exists.
	Insert(ctx context.Context, record Record) (Outcome, error)
	// Upsert stores the record, replacing any with the same natural key.
	Upsert(ctx context.Context, record Record) (Outcome, error)
	Initialize(ctx context.Context) error
}

// Save writes a record according to its policy.
func Save(ctx context.Context, repo Repository, record Record) (Outcome, error) {
	if record.Policy() == LastWriteWins {
		return repo.Upsert(ctx, record)
	}
	return repo.Insert(ctx, record)
}

func NewRepository(db *mongo.Database, logger *zap.SugaredLogger, lifecycle fx.Lifecycle) (Repository, error) {
	repo := newRepository(db, logger)

	lifecycle.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			return repo.Initialize(ctx)
		},
	})

	return repo, nil
}

func newRepository(db *mongo.Database, logger *zap.SugaredLogger) *repository {
	repo := &repository{
		collections: map[string]*mongo.Collection{},
		prototypes:  map[string]document{},
		logger:      logger,
	}
	for _, f := range families {
		if _, ok := repo.collections[f.collection]; ok {
			continue
		}
		repo.collections[f.collection] = db.Collection(f.collection)
		repo.prototypes[f.collection] = f.prototype
	}
	return repo
}

type repository struct {
	collections map[string]*mongo.Collection
	prototypes  map[string]document
	logger      *zap.SugaredLogger
}

func (r *repository) Initialize(ctx context.Context) error {
	for name, collection := range r.collections {
		_, err := collection.Indexes().CreateOne(ctx, mongo.IndexModel{
			Keys: indexKeys(r.prototypes[name].NaturalKey()),
			Options: options.Index().
				SetBackground(true).
				SetUnique(true).
				SetName(indexName(name)),
		})
		if err != nil {
			return fmt.Errorf("unable to create natural key index of %s: %w", name, err)
		}
	}
	return nil
}

func (r *repository) Insert(ctx context.Context, record Record) (Outcome, error) {
	collection, err := r.collection(record)
	if err != nil {
		return Duplicate, err
	}

	update := bson.M{"$setOnInsert": record}
	res, err := collection.UpdateOne(ctx, record.NaturalKey(), update, options.Update().SetUpsert(true))
	if err != nil {
		// Two concurrent upserts on the same key can race to insert.
		if store.IsDuplicateKeyError(err) {
			return Duplicate, nil
		}
		return Duplicate, fmt.Errorf("error inserting record into %s: %w", collection.Name(), err)
	}

	if res.UpsertedCount == 1 {
		return Inserted, nil
	}
	r.logger.Debugw("duplicate record", "collection", collection.Name(), "key", record.NaturalKey())
	return Duplicate, nil
}

func (r *repository) Upsert(ctx context.Context, record Record) (Outcome, error) {
	collection, err := r.collection(record)
	if err != nil {
		return Replaced, err
	}

	res, err := collection.ReplaceOne(ctx, record.NaturalKey(), record, options.Replace().SetUpsert(true))
	if err != nil {
		return Replaced, fmt.Errorf("error replacing record in %s: %w", collection.Name(), err)
	}

	if res.UpsertedCount == 1 {
		return Inserted, nil
	}
	return Replaced, nil
}

func (r *repository) collection(record Record) (*mongo.Collection, error) {
	collection, ok := r.collections[record.Collection()]
	if !ok {
		return nil, fmt.Errorf("unknown collection %q", record.Collection())
	}
	return collection, nil
}

func indexKeys(naturalKey bson.D) bson.D {
	keys := make(bson.D, 0, len(naturalKey))
	for _, e := range naturalKey {
		keys = append(keys, bson.E{Key: e.Key, Value: 1})
	}
	return keys
}

// indexName turns physical_notifications into PhysicalNotificationsNaturalKey.
func indexName(collection string) string {
	title := cases.Title(language.English).String(strings.ReplaceAll(collection, "_", " "))
	return strings.ReplaceAll(title, " ", "") + "NaturalKey"
}
