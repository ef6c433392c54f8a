// Package units keeps the registry of balancing mechanism units seen in the feed.
package units

import (
	"context"
	"fmt"
	"time"

	lru "github.com/hashicorp/golang-lru"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	"github.com/gridflow/bmra/config"
	"github.com/gridflow/bmra/errors"
	"github.com/gridflow/bmra/store"
)

const (
	unitsCollectionName = "units"
)

type Unit struct {
	Id          string    `bson:"_id"`
	CreatedTime time.Time `bson:"createdTime"`
}

//go:generate mockgen --build_flags=--mod=mod -source=./units.go -destination=./test/mock_registry.go -package test MockRegistry

type Registry interface {
	// EnsureExists registers the unit if it is not known yet and reports
	// whether it was created by this call.
	EnsureExists(ctx context.Context, unitId string) (bool, error)
	Get(ctx context.Context, unitId string) (*Unit, error)
}

func NewRegistry(db *mongo.Database, cfg *config.Config, logger *zap.SugaredLogger) (Registry, error) {
	cache, err := lru.New(cfg.UnitCacheSize)
	if err != nil {
		return nil, fmt.Errorf("unable to create unit cache: %w", err)
	}

	return &registry{
		collection: db.Collection(unitsCollectionName),
		cache:      cache,
		logger:     logger,
	}, nil
}

type registry struct {
	collection *mongo.Collection
	cache      *lru.Cache
	logger     *zap.SugaredLogger
}

func (r *registry) EnsureExists(ctx context.Context, unitId string) (bool, error) {
	if unitId == "" {
		return false, fmt.Errorf("unit id is required")
	}
	if r.cache.Contains(unitId) {
		return false, nil
	}

	selector := bson.M{"_id": unitId}
	update := bson.M{"$setOnInsert": bson.M{"createdTime": time.Now().UTC()}}
	res, err := r.collection.UpdateOne(ctx, selector, update, options.Update().SetUpsert(true))
	if err != nil && !store.IsDuplicateKeyError(err) {
		return false, fmt.Errorf("error registering unit %s: %w", unitId, err)
	}

	r.cache.Add(unitId, struct{}{})
	created := err == nil && res.UpsertedCount == 1
	if created {
		r.logger.Infow("registered new unit", "unitId", unitId)
	}
	return created, nil
}

func (r *registry) Get(ctx context.Context, unitId string) (*Unit, error) {
	unit := &Unit{}
	err := r.collection.FindOne(ctx, bson.M{"_id": unitId}).Decode(unit)
	if err == mongo.ErrNoDocuments {
		return nil, fmt.Errorf("unit %s: %w", unitId, errors.NotFound)
	} else if err != nil {
		return nil, err
	}
	return unit, nil
}
