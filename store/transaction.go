package store

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readconcern"
	"go.mongodb.org/mongo-driver/mongo/writeconcern"
)

type Transaction = func(sessCtx mongo.SessionContext) (interface{}, error)

func WithTransaction(ctx context.Context, dbClient *mongo.Client, txn Transaction) (interface{}, error) {
	session, err := dbClient.StartSession()
	if err != nil {
		return nil, fmt.Errorf("unable to start sessions %w", err)
	}
	defer session.EndSession(ctx)

	wc := writeconcern.Majority()
	rc := readconcern.Snapshot()
	txnOpts := options.Transaction().SetWriteConcern(wc).SetReadConcern(rc)
	return session.WithTransaction(ctx, txn, txnOpts)
}

//go:generate mockgen --build_flags=--mod=mod -source=./transaction.go -destination=./test/mock_transactor.go -package test MockTransactor

// Transactor runs a unit of work atomically. The callback may be invoked more
// than once when the transaction is retried, so it must not leak state between
// attempts.
type Transactor interface {
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

func NewTransactor(client *mongo.Client) Transactor {
	return &transactor{client: client}
}

type transactor struct {
	client *mongo.Client
}

func (t *transactor) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	_, err := WithTransaction(ctx, t.client, func(sessCtx mongo.SessionContext) (interface{}, error) {
		return nil, fn(sessCtx)
	})
	return err
}
