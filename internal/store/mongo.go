package store

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

type Mongo struct {
	client *mongo.Client
	db     *mongo.Database
}

// OpenMongo connects to uri and verifies the connection with a ping.
func OpenMongo(ctx context.Context, uri, database string) (*Mongo, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("mongo connect: %w", err)
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("mongo ping: %w", err)
	}
	return &Mongo{client: client, db: client.Database(database)}, nil
}

func (m *Mongo) Prepare(ctx context.Context, specs []CollectionSpec) error {
	for _, spec := range specs {
		for _, field := range spec.Unique {
			_, err := m.db.Collection(spec.Name).Indexes().CreateOne(ctx, mongo.IndexModel{
				Keys:    bson.D{{Key: field, Value: 1}},
				Options: options.Index().SetUnique(true).SetName(spec.Name + "_" + field + "_unique"),
			})
			if err != nil {
				return fmt.Errorf("mongo unique index %s.%s: %w", spec.Name, field, err)
			}
		}
	}
	return nil
}

func (m *Mongo) InsertOne(ctx context.Context, collection string, doc Document) (string, error) {
	res, err := m.db.Collection(collection).InsertOne(ctx, bson.M(doc))
	if mongo.IsDuplicateKeyError(err) {
		return "", fmt.Errorf("mongo insert %s: %w", collection, ErrDuplicate)
	}
	if err != nil {
		return "", fmt.Errorf("mongo insert %s: %w", collection, err)
	}
	return idString(res.InsertedID), nil
}

func (m *Mongo) FindOne(ctx context.Context, collection string, filter Filter) (Document, error) {
	var out bson.M
	err := m.db.Collection(collection).FindOne(ctx, bson.M(filter)).Decode(&out)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("mongo find %s: %w", collection, err)
	}
	return fromBSON(out), nil
}

// FindMany sorts by _id; ObjectIDs grow with insertion time.
func (m *Mongo) FindMany(ctx context.Context, collection string, filter Filter) ([]Document, error) {
	opts := options.Find().SetSort(bson.D{{Key: IDField, Value: 1}})
	cur, err := m.db.Collection(collection).Find(ctx, bson.M(filter), opts)
	if err != nil {
		return nil, fmt.Errorf("mongo find %s: %w", collection, err)
	}
	defer cur.Close(ctx)

	var rows []bson.M
	if err := cur.All(ctx, &rows); err != nil {
		return nil, fmt.Errorf("mongo decode %s: %w", collection, err)
	}
	out := make([]Document, 0, len(rows))
	for _, row := range rows {
		out = append(out, fromBSON(row))
	}
	return out, nil
}

func (m *Mongo) Ping(ctx context.Context) error {
	return m.client.Ping(ctx, readpref.Primary())
}

func (m *Mongo) Close(ctx context.Context) error {
	return m.client.Disconnect(ctx)
}

func fromBSON(m bson.M) Document {
	doc := Document(m)
	if id, ok := doc[IDField]; ok {
		doc[IDField] = idString(id)
	}
	return doc
}

func idString(v any) string {
	switch id := v.(type) {
	case primitive.ObjectID:
		return id.Hex()
	case string:
		return id
	default:
		return fmt.Sprint(id)
	}
}
