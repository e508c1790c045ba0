package store

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/cdmlens/cdmlens/pkg/catalog"
	"github.com/cdmlens/cdmlens/pkg/errors"
	"github.com/cdmlens/cdmlens/pkg/graph"
)

// Collection names.
const (
	collObjects = "objects"
	collLists   = "lists"
	collGraphs  = "graphs"
)

// MongoStore persists the catalog in MongoDB. Objects and lists use their
// ID as the document _id; saved graphs are wrapped in a named document.
type MongoStore struct {
	client *mongo.Client
	db     *mongo.Database
}

// MongoConfig configures the MongoDB connection.
type MongoConfig struct {
	URI      string // e.g. mongodb://localhost:27017
	Database string // e.g. cdmlens
}

// NewMongoStore connects to MongoDB and verifies the connection with a ping.
func NewMongoStore(ctx context.Context, cfg MongoConfig) (*MongoStore, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, fmt.Errorf("connect %s: %w", cfg.URI, err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("ping %s: %w", cfg.URI, err)
	}
	return &MongoStore{
		client: client,
		db:     client.Database(cfg.Database),
	}, nil
}

// PutObject inserts or replaces an object.
func (s *MongoStore) PutObject(ctx context.Context, o catalog.Object) error {
	if err := o.Validate(); err != nil {
		return err
	}
	_, err := s.db.Collection(collObjects).ReplaceOne(ctx,
		bson.M{"_id": o.ID}, o, options.Replace().SetUpsert(true))
	if err != nil {
		return errors.Wrap(errors.ErrCodeStore, err, "put object %s", o.ID)
	}
	return nil
}

// GetObject retrieves an object by ID.
func (s *MongoStore) GetObject(ctx context.Context, id string) (catalog.Object, error) {
	var o catalog.Object
	err := s.db.Collection(collObjects).FindOne(ctx, bson.M{"_id": id}).Decode(&o)
	if err == mongo.ErrNoDocuments {
		return catalog.Object{}, errors.New(errors.ErrCodeObjectNotFound, "object %s", id)
	}
	if err != nil {
		return catalog.Object{}, errors.Wrap(errors.ErrCodeStore, err, "get object %s", id)
	}
	return o, nil
}

// ListObjects returns all objects sorted by ID.
func (s *MongoStore) ListObjects(ctx context.Context) ([]catalog.Object, error) {
	cur, err := s.db.Collection(collObjects).Find(ctx, bson.M{},
		options.Find().SetSort(bson.M{"_id": 1}))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeStore, err, "list objects")
	}
	var out []catalog.Object
	if err := cur.All(ctx, &out); err != nil {
		return nil, errors.Wrap(errors.ErrCodeStore, err, "decode objects")
	}
	return out, nil
}

// DeleteObject removes an object by ID.
func (s *MongoStore) DeleteObject(ctx context.Context, id string) error {
	res, err := s.db.Collection(collObjects).DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return errors.Wrap(errors.ErrCodeStore, err, "delete object %s", id)
	}
	if res.DeletedCount == 0 {
		return errors.New(errors.ErrCodeObjectNotFound, "object %s", id)
	}
	return nil
}

// PutList inserts or replaces a list.
func (s *MongoStore) PutList(ctx context.Context, l catalog.List) error {
	if err := l.Validate(); err != nil {
		return err
	}
	_, err := s.db.Collection(collLists).ReplaceOne(ctx,
		bson.M{"_id": l.ID}, l, options.Replace().SetUpsert(true))
	if err != nil {
		return errors.Wrap(errors.ErrCodeStore, err, "put list %s", l.ID)
	}
	return nil
}

// GetList retrieves a list by ID.
func (s *MongoStore) GetList(ctx context.Context, id string) (catalog.List, error) {
	var l catalog.List
	err := s.db.Collection(collLists).FindOne(ctx, bson.M{"_id": id}).Decode(&l)
	if err == mongo.ErrNoDocuments {
		return catalog.List{}, errors.New(errors.ErrCodeNotFound, "list %s", id)
	}
	if err != nil {
		return catalog.List{}, errors.Wrap(errors.ErrCodeStore, err, "get list %s", id)
	}
	return l, nil
}

// ListLists returns all lists sorted by ID.
func (s *MongoStore) ListLists(ctx context.Context) ([]catalog.List, error) {
	cur, err := s.db.Collection(collLists).Find(ctx, bson.M{},
		options.Find().SetSort(bson.M{"_id": 1}))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeStore, err, "list lists")
	}
	var out []catalog.List
	if err := cur.All(ctx, &out); err != nil {
		return nil, errors.Wrap(errors.ErrCodeStore, err, "decode lists")
	}
	return out, nil
}

// DeleteList removes a list by ID.
func (s *MongoStore) DeleteList(ctx context.Context, id string) error {
	res, err := s.db.Collection(collLists).DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return errors.Wrap(errors.ErrCodeStore, err, "delete list %s", id)
	}
	if res.DeletedCount == 0 {
		return errors.New(errors.ErrCodeNotFound, "list %s", id)
	}
	return nil
}

// graphDoc wraps a saved graph view with its name for storage.
type graphDoc struct {
	Name  string      `bson:"_id"`
	Graph graph.Graph `bson:"graph"`
}

// PutGraph saves a projected graph view under a name.
func (s *MongoStore) PutGraph(ctx context.Context, name string, g graph.Graph) error {
	_, err := s.db.Collection(collGraphs).ReplaceOne(ctx,
		bson.M{"_id": name}, graphDoc{Name: name, Graph: g},
		options.Replace().SetUpsert(true))
	if err != nil {
		return errors.Wrap(errors.ErrCodeStore, err, "put graph %s", name)
	}
	return nil
}

// GetGraph retrieves a saved graph view by name.
func (s *MongoStore) GetGraph(ctx context.Context, name string) (graph.Graph, error) {
	var doc graphDoc
	err := s.db.Collection(collGraphs).FindOne(ctx, bson.M{"_id": name}).Decode(&doc)
	if err == mongo.ErrNoDocuments {
		return graph.Graph{}, errors.New(errors.ErrCodeGraphNotFound, "graph %s", name)
	}
	if err != nil {
		return graph.Graph{}, errors.Wrap(errors.ErrCodeStore, err, "get graph %s", name)
	}
	return doc.Graph, nil
}

// Close disconnects from MongoDB.
func (s *MongoStore) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

// Ensure MongoStore implements Store.
var _ Store = (*MongoStore)(nil)
