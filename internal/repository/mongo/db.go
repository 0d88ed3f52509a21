package mongo

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"alcyxob/gym-management/internal/repository"
)

// Default connection timeout
const defaultTimeout = 10 * time.Second

// Collection names.
const (
	userCollectionName         = "users"
	memberCollectionName       = "members"
	subscriptionCollectionName = "subscriptions"
	exerciseCollectionName     = "exercises"
	planCollectionName         = "plans"
)

// ConnectDB establishes a connection to MongoDB using the provided URI.
// It returns the mongo.Client which can be used to access databases and collections.
func ConnectDB(uri string) (*mongo.Client, error) {
	// Set context with timeout for the connection attempt
	ctx, cancel := context.WithTimeout(context.Background(), defaultTimeout)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("connect to mongodb: %w", err)
	}

	// Ping the primary so an unreachable server fails at startup, not on the first request.
	pingCtx, pingCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer pingCancel()

	if err := client.Ping(pingCtx, readpref.Primary()); err != nil {
		disconnectCtx, disconnectCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer disconnectCancel()
		if derr := client.Disconnect(disconnectCtx); derr != nil {
			slog.Warn("disconnect after failed ping", "error", derr)
		}
		return nil, fmt.Errorf("ping mongodb: %w", err)
	}

	slog.Info("connected to mongodb")
	return client, nil
}

// DisconnectDB gracefully disconnects the MongoDB client.
func DisconnectDB(client *mongo.Client) error {
	ctx, cancel := context.WithTimeout(context.Background(), defaultTimeout)
	defer cancel()
	return client.Disconnect(ctx)
}

// EnsureIndexes creates the indexes of every collection. The unique indexes
// back the username, email and user ID rules under concurrent writers, so a
// failure here must stop startup.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	steps := []struct {
		collection string
		ensure     func(context.Context, *mongo.Collection) error
	}{
		{userCollectionName, EnsureUserIndexes},
		{memberCollectionName, EnsureMemberIndexes},
		{subscriptionCollectionName, EnsureSubscriptionIndexes},
		{exerciseCollectionName, EnsureExerciseIndexes},
	}
	for _, step := range steps {
		if err := step.ensure(ctx, db.Collection(step.collection)); err != nil {
			return err
		}
	}
	return nil
}

func createIndexes(ctx context.Context, collection *mongo.Collection, indexes []mongo.IndexModel) error {
	if _, err := collection.Indexes().CreateMany(ctx, indexes); err != nil {
		return fmt.Errorf("create %s indexes: %w", collection.Name(), err)
	}
	return nil
}

// byID is the stable ordering shared with the in-memory store.
var byID = options.Find().SetSort(bson.D{{Key: "_id", Value: 1}})

// findDocs runs filter and decodes every match into D.
func findDocs[D any](ctx context.Context, collection *mongo.Collection, filter any) ([]D, error) {
	cursor, err := collection.Find(ctx, filter, byID)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var docs []D
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, err
	}
	return docs, cursor.Err()
}

// findOne decodes the single match of filter, mapping a miss to repository.ErrNotFound.
func findOne[D any](ctx context.Context, collection *mongo.Collection, filter any) (D, error) {
	var doc D
	err := collection.FindOne(ctx, filter).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return doc, repository.ErrNotFound
	}
	return doc, err
}

// toDomain converts decoded documents with convert, failing on the first bad one.
func toDomain[D, E any](docs []D, convert func(D) (E, error)) ([]E, error) {
	out := make([]E, 0, len(docs))
	for _, d := range docs {
		e, err := convert(d)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, nil
}

func countDocs(ctx context.Context, collection *mongo.Collection, filter any) (int, error) {
	n, err := collection.CountDocuments(ctx, filter)
	return int(n), err
}

func exists(ctx context.Context, collection *mongo.Collection, filter any) (bool, error) {
	n, err := collection.CountDocuments(ctx, filter, options.Count().SetLimit(1))
	return n > 0, err
}

func deleteOne(ctx context.Context, collection *mongo.Collection, id string) (bool, error) {
	result, err := collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return false, err
	}
	return result.DeletedCount > 0, nil
}

// upsert replaces the document stored under id, inserting it when missing.
func upsert(ctx context.Context, collection *mongo.Collection, id string, doc any) error {
	_, err := collection.ReplaceOne(ctx, bson.M{"_id": id}, doc, options.Replace().SetUpsert(true))
	return err
}

// sumAmount adds up the amount field of the documents matching filter.
func sumAmount(ctx context.Context, collection *mongo.Collection, filter bson.M) (float64, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: filter}},
		{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: nil},
			{Key: "total", Value: bson.D{{Key: "$sum", Value: "$amount"}}},
		}}},
	}
	cursor, err := collection.Aggregate(ctx, pipeline)
	if err != nil {
		return 0, err
	}
	defer cursor.Close(ctx)

	var rows []struct {
		Total float64 `bson:"total"`
	}
	if err := cursor.All(ctx, &rows); err != nil {
		return 0, err
	}
	if len(rows) == 0 {
		return 0, nil
	}
	return rows[0].Total, nil
}
