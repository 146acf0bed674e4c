package scoring

import (
	"context"
	"io"
	"sync"
)

// Sink receives finished records.
type Sink interface {
	Write(ctx context.Context, r Record) error
}

// NDJSONWriter writes one JSON object per line. Writes are serialized, so a
// single writer may be shared by concurrent producers without interleaving.
type NDJSONWriter struct {
	mu sync.Mutex
	w  io.Writer
}

// NewNDJSONWriter creates a writer emitting to w.
func NewNDJSONWriter(w io.Writer) *NDJSONWriter {
	return &NDJSONWriter{w: w}
}

// Write implements [Sink].
func (n *NDJSONWriter) Write(_ context.Context, r Record) error {
	line, err := r.MarshalJSON()
	if err != nil {
		return err
	}
	line = append(line, '\n')

	n.mu.Lock()
	defer n.mu.Unlock()
	_, err = n.w.Write(line)
	return err
}
