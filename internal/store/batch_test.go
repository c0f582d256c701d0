package store

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// flakyStore wraps Memory and fails BulkSet on a chosen call number.
type flakyStore struct {
	*Memory
	calls      int
	failOnCall int
}

func (f *flakyStore) BulkSet(ctx context.Context, docs []Document) error {
	f.calls++
	if f.failOnCall > 0 && f.calls == f.failOnCall {
		return errors.New("simulated commit failure")
	}
	return f.Memory.BulkSet(ctx, docs)
}

func testDocs(n int) []Document {
	docs := make([]Document, n)
	for i := range docs {
		docs[i] = Document{
			Collection: "products",
			ID:         fmt.Sprintf("p-%03d", i),
			Data:       map[string]string{"name": fmt.Sprintf("product %d", i)},
		}
	}
	return docs
}

func TestBatchWriterChunking(t *testing.T) {
	fs := &flakyStore{Memory: NewMemory()}
	w := NewBatchWriter(fs, 100)

	res, err := w.Write(context.Background(), testDocs(250))
	require.NoError(t, err)

	assert.Equal(t, 3, fs.calls, "250 docs with chunk size 100 should issue 3 commits")
	assert.Equal(t, 3, res.Batches)
	assert.Equal(t, 250, res.Processed)
	assert.Equal(t, 250, res.Total)

	count, err := fs.Count(context.Background(), "products")
	require.NoError(t, err)
	assert.Equal(t, int64(250), count)
}

func TestBatchWriterFailFast(t *testing.T) {
	fs := &flakyStore{Memory: NewMemory(), failOnCall: 2}
	w := NewBatchWriter(fs, 100)

	res, err := w.Write(context.Background(), testDocs(250))
	require.Error(t, err)

	assert.Equal(t, 2, fs.calls, "third commit must not be attempted after the second fails")
	assert.Equal(t, 100, res.Processed)
	assert.Equal(t, 1, res.Batches)
}

func TestBatchWriterHonorsCancellationBetweenChunks(t *testing.T) {
	fs := &flakyStore{Memory: NewMemory()}
	w := NewBatchWriter(fs, 100)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	res, err := w.Write(ctx, testDocs(250))
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 0, res.Processed)
	assert.Equal(t, 0, fs.calls)
}

func TestBatchWriterEmptyInput(t *testing.T) {
	fs := &flakyStore{Memory: NewMemory()}
	w := NewBatchWriter(fs, 100)

	res, err := w.Write(context.Background(), nil)
	require.NoError(t, err)
	assert.Zero(t, res.Processed)
	assert.Zero(t, fs.calls)
}
