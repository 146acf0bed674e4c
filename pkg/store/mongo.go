package store

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/matzehuels/netscore/pkg/errors"
	"github.com/matzehuels/netscore/pkg/metrics"
	"github.com/matzehuels/netscore/pkg/scoring"
)

const connectTimeout = 10 * time.Second

// Options configures a MongoDB connection.
type Options struct {
	URI        string
	Database   string
	Collection string
}

// Document is the stored form of a record. Unavailable scores are kept as -1
// to match the emitted NDJSON.
type Document struct {
	ID              string           `bson:"_id"`
	RunID           string           `bson:"run_id"`
	URL             string           `bson:"url"`
	NetScore        float64          `bson:"net_score"`
	NetScoreLatency float64          `bson:"net_score_latency"`
	Metrics         []MetricDocument `bson:"metrics"`
	Failed          bool             `bson:"failed"`
	CreatedAt       time.Time        `bson:"created_at"`
}

// MetricDocument is one metric outcome inside a [Document].
type MetricDocument struct {
	Name    string  `bson:"name"`
	Score   float64 `bson:"score"`
	Latency float64 `bson:"latency"`
	Error   string  `bson:"error,omitempty"`
}

// NewDocument converts r for storage under runID.
func NewDocument(runID string, r scoring.Record, now time.Time) Document {
	doc := Document{
		ID:              uuid.NewString(),
		RunID:           runID,
		URL:             r.URL,
		NetScore:        r.NetScore.Wire(),
		NetScoreLatency: scoring.Seconds(r.NetScoreLatency),
		Metrics:         make([]MetricDocument, 0, len(metrics.Names)),
		Failed:          r.Failed(),
		CreatedAt:       now.UTC(),
	}
	for _, name := range metrics.Names {
		m := r.Metric(name)
		md := MetricDocument{
			Name:    string(name),
			Score:   m.Score.Wire(),
			Latency: scoring.Seconds(m.Latency),
		}
		if m.Err != nil {
			md.Error = m.Err.Error()
		}
		doc.Metrics = append(doc.Metrics, md)
	}
	return doc
}

// inserter is the subset of *mongo.Collection used by MongoSink.
type inserter interface {
	InsertOne(ctx context.Context, doc any, opts ...*options.InsertOneOptions) (*mongo.InsertOneResult, error)
}

// Mongo holds an open MongoDB client and target collection.
type Mongo struct {
	client *mongo.Client
	coll   *mongo.Collection
}

// Open connects to MongoDB and verifies the connection with a ping.
func Open(ctx context.Context, opts Options) (*Mongo, error) {
	ctx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(opts.URI))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "connect to mongodb")
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, errors.Wrap(errors.ErrCodeNetwork, err, "ping mongodb")
	}
	return &Mongo{
		client: client,
		coll:   client.Database(opts.Database).Collection(opts.Collection),
	}, nil
}

// ForRun returns a sink that tags every written record with runID.
func (m *Mongo) ForRun(runID string) *MongoSink {
	return &MongoSink{coll: m.coll, runID: runID, now: time.Now}
}

// Runs lists stored documents of one run in insertion order.
func (m *Mongo) Runs(ctx context.Context, runID string) ([]Document, error) {
	cur, err := m.coll.Find(ctx, bson.M{"run_id": runID}, options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}}))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeNetwork, err, "query run %s", runID)
	}
	var docs []Document
	if err := cur.All(ctx, &docs); err != nil {
		return nil, errors.Wrap(errors.ErrCodeNetwork, err, "decode run %s", runID)
	}
	return docs, nil
}

// Close disconnects the client.
func (m *Mongo) Close(ctx context.Context) error {
	return m.client.Disconnect(ctx)
}

// MongoSink writes records to a collection. It implements scoring.Sink.
type MongoSink struct {
	coll  inserter
	runID string
	now   func() time.Time
}

// Write stores r as one document.
func (s *MongoSink) Write(ctx context.Context, r scoring.Record) error {
	if _, err := s.coll.InsertOne(ctx, NewDocument(s.runID, r, s.now())); err != nil {
		return errors.Wrap(errors.ErrCodeNetwork, err, "store record %s", r.URL)
	}
	return nil
}
