package store

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
	"go.mongodb.org/mongo-driver/v2/mongo/readpref"
)

// Mongo implements DocumentStore on a MongoDB database.
type Mongo struct {
	client *mongo.Client
	db     *mongo.Database
}

// NewMongo connects to MongoDB and verifies the connection.
func NewMongo(ctx context.Context, uri, database string) (*Mongo, error) {
	client, err := mongo.Connect(options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongo: %w", err)
	}

	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		return nil, fmt.Errorf("failed to ping mongo: %w", err)
	}

	return &Mongo{client: client, db: client.Database(database)}, nil
}

// Close disconnects the underlying client.
func (m *Mongo) Close(ctx context.Context) error {
	return m.client.Disconnect(ctx)
}

func (m *Mongo) Count(ctx context.Context, collection string) (int64, error) {
	n, err := m.db.Collection(collection).CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, fmt.Errorf("count %s: %w", collection, err)
	}
	return n, nil
}

func (m *Mongo) FindByField(ctx context.Context, collection, field, value string) (map[string]any, error) {
	var doc bson.M
	err := m.db.Collection(collection).FindOne(ctx, bson.M{field: value}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("find %s by %s: %w", collection, field, err)
	}
	return doc, nil
}

func (m *Mongo) Set(ctx context.Context, doc Document) error {
	_, err := m.db.Collection(doc.Collection).ReplaceOne(ctx,
		bson.M{"_id": doc.ID}, doc.Data, options.Replace().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("set %s/%s: %w", doc.Collection, doc.ID, err)
	}
	return nil
}

// BulkSet commits upserts as one ordered bulk write per collection, the
// store's native multi-write unit.
func (m *Mongo) BulkSet(ctx context.Context, docs []Document) error {
	grouped := make(map[string][]mongo.WriteModel)
	order := make([]string, 0, 1)
	for _, doc := range docs {
		if _, seen := grouped[doc.Collection]; !seen {
			order = append(order, doc.Collection)
		}
		grouped[doc.Collection] = append(grouped[doc.Collection],
			mongo.NewReplaceOneModel().
				SetFilter(bson.M{"_id": doc.ID}).
				SetReplacement(doc.Data).
				SetUpsert(true))
	}

	for _, collection := range order {
		_, err := m.db.Collection(collection).BulkWrite(ctx, grouped[collection],
			options.BulkWrite().SetOrdered(true))
		if err != nil {
			return fmt.Errorf("bulk write %s: %w", collection, err)
		}
	}
	return nil
}

func (m *Mongo) DeleteAll(ctx context.Context, collection string) (int64, error) {
	res, err := m.db.Collection(collection).DeleteMany(ctx, bson.M{})
	if err != nil {
		return 0, fmt.Errorf("delete all %s: %w", collection, err)
	}
	return res.DeletedCount, nil
}

func (m *Mongo) GroupCount(ctx context.Context, collection, field string) (map[string]int64, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: "$" + field},
			{Key: "count", Value: bson.D{{Key: "$sum", Value: 1}}},
		}}},
	}

	cur, err := m.db.Collection(collection).Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("group count %s by %s: %w", collection, field, err)
	}
	defer cur.Close(ctx)

	counts := make(map[string]int64)
	for cur.Next(ctx) {
		var row struct {
			ID    string `bson:"_id"`
			Count int64  `bson:"count"`
		}
		if err := cur.Decode(&row); err != nil {
			return nil, fmt.Errorf("group count decode: %w", err)
		}
		counts[row.ID] = row.Count
	}
	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("group count cursor: %w", err)
	}
	return counts, nil
}
