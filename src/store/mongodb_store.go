package store

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoStore implements MessageStore on top of a MongoDB collection.
type MongoStore struct {
	client     *mongo.Client
	collection *mongo.Collection
}

const mongoCloseTimeout = 5 * time.Second

type mongoMessage struct {
	ChatID           int64  `bson:"chat_id"`
	Timestamp        int64  `bson:"ts"`
	MessageID        int64  `bson:"message_id"`
	UserID           int64  `bson:"user_id"`
	Username         string `bson:"username"`
	Text             string `bson:"body"`
	ReplyToMessageID *int64 `bson:"reply_to,omitempty"`
	ThreadID         *int64 `bson:"thread_id,omitempty"`
	ForwardFromName  string `bson:"forward_from,omitempty"`
}

// NewMongoStore connects to MongoDB and returns a Mongo-backed MessageStore.
func NewMongoStore(ctx context.Context, uri, database, collection string) (*MongoStore, error) {
	if uri == "" {
		return nil, errors.New("mongo uri is required")
	}
	if database == "" {
		return nil, errors.New("mongo database name is required")
	}
	if collection == "" {
		return nil, errors.New("mongo collection name is required")
	}
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, err
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, err
	}
	return &MongoStore{
		client:     client,
		collection: client.Database(database).Collection(collection),
	}, nil
}

// Append inserts messages as individual documents.
func (ms *MongoStore) Append(ctx context.Context, msgs []StoredMessage) error {
	if ms == nil || ms.collection == nil || len(msgs) == 0 {
		return nil
	}
	docs := make([]any, 0, len(msgs))
	for _, m := range msgs {
		docs = append(docs, mongoMessage(m))
	}
	_, err := ms.collection.InsertMany(ctx, docs)
	return err
}

// Query retrieves messages for one chat. Time-bounded queries sort ascending
// by timestamp; count-bounded queries sort descending and limit, which
// callers reverse.
func (ms *MongoStore) Query(ctx context.Context, q MessageQuery) ([]StoredMessage, error) {
	if ms == nil || ms.collection == nil {
		return nil, nil
	}
	filter := bson.M{"chat_id": q.ChatID}
	ts := bson.M{}
	if q.StartTime != 0 {
		ts["$gte"] = q.StartTime
	}
	if q.EndTime != 0 {
		ts["$lte"] = q.EndTime
	}
	if len(ts) > 0 {
		filter["ts"] = ts
	}

	opts := options.Find().SetSort(bson.D{{Key: "ts", Value: 1}})
	if q.Limit > 0 {
		opts = options.Find().SetSort(bson.D{{Key: "ts", Value: -1}}).SetLimit(int64(q.Limit))
	}

	cursor, err := ms.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var msgs []StoredMessage
	for cursor.Next(ctx) {
		var doc mongoMessage
		if err := cursor.Decode(&doc); err != nil {
			return nil, err
		}
		msgs = append(msgs, StoredMessage(doc))
	}
	return msgs, cursor.Err()
}

// Close disconnects from MongoDB with a bounded timeout.
func (ms *MongoStore) Close() error {
	if ms == nil || ms.client == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), mongoCloseTimeout)
	defer cancel()
	return ms.client.Disconnect(ctx)
}

var (
	_ MessageStore = (*MongoStore)(nil)
	_ Appender     = (*MongoStore)(nil)
)
