package store

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/amplistack/amplistack/pkg/errors"
	"github.com/amplistack/amplistack/pkg/observability"
	"github.com/amplistack/amplistack/pkg/snapshot"
)

const backendMongo = "mongo"

// Default MongoDB names.
const (
	DefaultMongoDatabase   = "amplistack"
	DefaultMongoCollection = "diagrams"
)

// MongoConfig selects the database and collection.
type MongoConfig struct {
	URI        string
	Database   string
	Collection string
}

// MongoStore keeps one document per diagram.
type MongoStore struct {
	client *mongo.Client
	coll   *mongo.Collection
}

type mongoDocument struct {
	ID      string    `bson:"_id"`
	State   string    `bson:"state"`
	Title   string    `bson:"title,omitempty"`
	SavedAt time.Time `bson:"saved_at"`
}

// NewMongoStore connects to cfg.URI and checks the connection.
func NewMongoStore(ctx context.Context, cfg MongoConfig) (*MongoStore, error) {
	if cfg.URI == "" {
		return nil, errors.New(errors.ErrCodeInvalidInput, "mongo uri cannot be empty")
	}
	if cfg.Database == "" {
		cfg.Database = DefaultMongoDatabase
	}
	if cfg.Collection == "" {
		cfg.Collection = DefaultMongoCollection
	}

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeNetwork, err, "connect to mongo")
	}
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, errors.Wrap(errors.ErrCodeNetwork, err, "ping mongo")
	}
	return &MongoStore{
		client: client,
		coll:   client.Database(cfg.Database).Collection(cfg.Collection),
	}, nil
}

// Get loads the document of id.
func (s *MongoStore) Get(ctx context.Context, id string) (*snapshot.Snapshot, error) {
	if err := errors.ValidateDiagramID(id); err != nil {
		return nil, err
	}
	var doc mongoDocument
	err := s.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&doc)
	if err == mongo.ErrNoDocuments {
		observability.Store().OnStoreMiss(ctx, backendMongo)
		return nil, notFound(id)
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeNetwork, err, "load snapshot")
	}
	snap, err := snapshot.Unmarshal([]byte(doc.State))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode stored snapshot %q", id)
	}
	observability.Store().OnStoreHit(ctx, backendMongo)
	return snap, nil
}

// Put upserts the document of id.
func (s *MongoStore) Put(ctx context.Context, id string, snap *snapshot.Snapshot) error {
	if err := errors.ValidateDiagramID(id); err != nil {
		return err
	}
	if snap == nil {
		return errors.New(errors.ErrCodeInvalidInput, "nil snapshot")
	}
	state, err := snapshot.Marshal(snap)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "encode snapshot")
	}
	doc := mongoDocument{ID: id, State: string(state), Title: snap.Title, SavedAt: time.Now().UTC()}
	_, err = s.coll.ReplaceOne(ctx, bson.M{"_id": id}, doc, options.Replace().SetUpsert(true))
	if err != nil {
		return errors.Wrap(errors.ErrCodeNetwork, err, "save snapshot")
	}
	observability.Store().OnStorePut(ctx, backendMongo, len(state))
	return nil
}

// Delete removes the document of id.
func (s *MongoStore) Delete(ctx context.Context, id string) error {
	if _, err := s.coll.DeleteOne(ctx, bson.M{"_id": id}); err != nil {
		return errors.Wrap(errors.ErrCodeNetwork, err, "delete snapshot")
	}
	return nil
}

// Close disconnects the client.
func (s *MongoStore) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return s.client.Disconnect(ctx)
}

var _ Store = (*MongoStore)(nil)
