package store

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/deciviz/deciviz/pkg/errors"
	"github.com/deciviz/deciviz/pkg/observability"
)

// MongoStore persists documents in a MongoDB collection, one document
// per graph with the graph ID as _id.
type MongoStore struct {
	client *mongo.Client
	coll   *mongo.Collection
}

// NewMongoStore connects to MongoDB and returns a store over the given
// database and collection. The connection is verified with a ping.
func NewMongoStore(ctx context.Context, uri, database, collection string) (*MongoStore, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("connect mongodb: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, errors.Wrap(errors.ErrCodeNetwork, err, "ping mongodb")
	}

	return &MongoStore{
		client: client,
		coll:   client.Database(database).Collection(collection),
	}, nil
}

// Load reads and migrates a document.
func (s *MongoStore) Load(ctx context.Context, id string) (*Document, error) {
	start := time.Now()
	doc, err := s.load(ctx, id)
	observability.Store().OnLoad(ctx, id, time.Since(start), err)
	return doc, err
}

func (s *MongoStore) load(ctx context.Context, id string) (*Document, error) {
	if err := errors.ValidateGraphID(id); err != nil {
		return nil, err
	}

	var doc Document
	err := s.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&doc)
	if err == mongo.ErrNoDocuments {
		return nil, notFound(id)
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeNetwork, err, "load graph %q", id)
	}
	if err := Migrate(ctx, &doc); err != nil {
		return nil, err
	}
	return &doc, nil
}

// Save writes a document, replacing any existing one with the same ID.
func (s *MongoStore) Save(ctx context.Context, doc *Document) error {
	start := time.Now()
	err := s.save(ctx, doc)
	observability.Store().OnSave(ctx, doc.ID, time.Since(start), err)
	return err
}

func (s *MongoStore) save(ctx context.Context, doc *Document) error {
	stamp(doc)
	if err := errors.ValidateGraphID(doc.ID); err != nil {
		return err
	}

	opts := options.Replace().SetUpsert(true)
	if _, err := s.coll.ReplaceOne(ctx, bson.M{"_id": doc.ID}, doc, opts); err != nil {
		return errors.Wrap(errors.ErrCodeNetwork, err, "save graph %q", doc.ID)
	}
	return nil
}

// Delete removes a document.
func (s *MongoStore) Delete(ctx context.Context, id string) error {
	if err := errors.ValidateGraphID(id); err != nil {
		return err
	}
	if _, err := s.coll.DeleteOne(ctx, bson.M{"_id": id}); err != nil {
		return errors.Wrap(errors.ErrCodeNetwork, err, "delete graph %q", id)
	}
	return nil
}

// List returns the stored document IDs in ascending order.
func (s *MongoStore) List(ctx context.Context) ([]string, error) {
	opts := options.Find().
		SetProjection(bson.M{"_id": 1}).
		SetSort(bson.M{"_id": 1})

	cursor, err := s.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeNetwork, err, "list graphs")
	}
	defer cursor.Close(ctx)

	var ids []string
	for cursor.Next(ctx) {
		var row struct {
			ID string `bson:"_id"`
		}
		if err := cursor.Decode(&row); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInternal, err, "decode graph id")
		}
		ids = append(ids, row.ID)
	}
	if err := cursor.Err(); err != nil {
		return nil, errors.Wrap(errors.ErrCodeNetwork, err, "list graphs")
	}
	return ids, nil
}

// Close disconnects from MongoDB.
func (s *MongoStore) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

// Ensure MongoStore implements Store.
var _ Store = (*MongoStore)(nil)
