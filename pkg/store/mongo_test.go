package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	nserrors "github.com/matzehuels/netscore/pkg/errors"
	"github.com/matzehuels/netscore/pkg/metrics"
	"github.com/matzehuels/netscore/pkg/scoring"
)

type fakeCollection struct {
	docs []any
	err  error
}

func (f *fakeCollection) InsertOne(_ context.Context, doc any, _ ...*options.InsertOneOptions) (*mongo.InsertOneResult, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.docs = append(f.docs, doc)
	return &mongo.InsertOneResult{}, nil
}

var fixedNow = time.Date(2025, 6, 30, 12, 0, 0, 0, time.UTC)

func sampleRecord() scoring.Record {
	r := scoring.FailedRecord("https://github.com/o/r")
	r.NetScore = metrics.Valid(0.75)
	r.NetScoreLatency = 1234 * time.Millisecond
	r.Metrics[metrics.License] = scoring.MetricResult{
		Name:    metrics.License,
		Score:   metrics.Valid(1),
		Latency: 5 * time.Millisecond,
	}
	r.Metrics[metrics.CodeReview] = scoring.MetricResult{
		Name:  metrics.CodeReview,
		Score: metrics.Unavailable(),
		Err:   errors.New("timed out"),
	}
	return r
}

func TestNewDocument(t *testing.T) {
	doc := NewDocument("run-1", sampleRecord(), fixedNow)

	assert.NotEmpty(t, doc.ID)
	assert.Equal(t, "run-1", doc.RunID)
	assert.Equal(t, "https://github.com/o/r", doc.URL)
	assert.Equal(t, 0.75, doc.NetScore)
	assert.Equal(t, 1.234, doc.NetScoreLatency)
	assert.False(t, doc.Failed)
	assert.Equal(t, fixedNow, doc.CreatedAt)

	require.Len(t, doc.Metrics, len(metrics.Names))
	for i, name := range metrics.Names {
		assert.Equal(t, string(name), doc.Metrics[i].Name, "metrics kept in output order")
	}

	byName := map[string]MetricDocument{}
	for _, m := range doc.Metrics {
		byName[m.Name] = m
	}
	assert.Equal(t, 1.0, byName[string(metrics.License)].Score)
	assert.Equal(t, 0.005, byName[string(metrics.License)].Latency)
	assert.Equal(t, -1.0, byName[string(metrics.CodeReview)].Score)
	assert.Equal(t, "timed out", byName[string(metrics.CodeReview)].Error)
	assert.Equal(t, -1.0, byName[string(metrics.BusFactor)].Score)
}

func TestNewDocumentFailed(t *testing.T) {
	doc := NewDocument("run-1", scoring.FailedRecord("bad"), fixedNow)
	assert.True(t, doc.Failed)
	assert.Equal(t, -1.0, doc.NetScore)
}

func TestNewDocumentUniqueIDs(t *testing.T) {
	a := NewDocument("run", sampleRecord(), fixedNow)
	b := NewDocument("run", sampleRecord(), fixedNow)
	assert.NotEqual(t, a.ID, b.ID)
}

func TestMongoSinkWrite(t *testing.T) {
	coll := &fakeCollection{}
	sink := &MongoSink{coll: coll, runID: "run-7", now: func() time.Time { return fixedNow }}

	require.NoError(t, sink.Write(context.Background(), sampleRecord()))
	require.Len(t, coll.docs, 1)

	doc, ok := coll.docs[0].(Document)
	require.True(t, ok)
	assert.Equal(t, "run-7", doc.RunID)
}

func TestMongoSinkWriteError(t *testing.T) {
	sink := &MongoSink{coll: &fakeCollection{err: errors.New("connection reset")}, runID: "r", now: time.Now}

	err := sink.Write(context.Background(), sampleRecord())
	require.Error(t, err)
	assert.True(t, nserrors.Is(err, nserrors.ErrCodeNetwork))
}

var _ scoring.Sink = (*MongoSink)(nil)
