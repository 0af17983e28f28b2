package store

import (
	"context"
	stderrors "errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/matzehuels/uccalint/pkg/errors"
)

// DefaultDatabase is used when no database name is configured.
const DefaultDatabase = "uccalint"

const reportsCollection = "reports"

// MongoStore persists records in the "reports" collection.
type MongoStore struct {
	client  *mongo.Client
	reports *mongo.Collection
}

// NewMongoStore connects to uri, pings the primary and ensures the
// (passage_id, created_at) index exists.
func NewMongoStore(ctx context.Context, uri, database string) (*MongoStore, error) {
	if database == "" {
		database = DefaultDatabase
	}
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("connect mongo: %w", err)
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("ping mongo: %w", err)
	}

	s := &MongoStore{
		client:  client,
		reports: client.Database(database).Collection(reportsCollection),
	}
	_, err = s.reports.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "passage_id", Value: 1}, {Key: "created_at", Value: -1}},
	})
	if err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("create index: %w", err)
	}
	return s, nil
}

func (s *MongoStore) Save(ctx context.Context, rec *Record) error {
	if rec == nil || rec.ID == "" {
		return errors.New(errors.ErrCodeInvalidInput, "record without ID")
	}
	if _, err := s.reports.InsertOne(ctx, rec); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "save report %s", rec.ID)
	}
	return nil
}

func (s *MongoStore) Get(ctx context.Context, id string) (*Record, error) {
	var rec Record
	err := s.reports.FindOne(ctx, bson.M{"_id": id}).Decode(&rec)
	if stderrors.Is(err, mongo.ErrNoDocuments) {
		return nil, errors.New(errors.ErrCodeNotFound, "report %s not found", id)
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "load report %s", id)
	}
	return &rec, nil
}

func (s *MongoStore) History(ctx context.Context, passageID string, limit int) ([]*Record, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: 1}})
	if limit > 0 {
		opts.SetLimit(int64(limit))
	}
	cur, err := s.reports.Find(ctx, bson.M{"passage_id": passageID}, opts)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "query history for %s", passageID)
	}
	var out []*Record
	if err := cur.All(ctx, &out); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "decode history for %s", passageID)
	}
	return out, nil
}

func (s *MongoStore) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

var _ ReportStore = (*MongoStore)(nil)
