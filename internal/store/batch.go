package store

import (
	"context"
	"fmt"
	"time"

	"github.com/samber/lo"
	"go.uber.org/zap"

	"catalog-reseeder/internal/util"
)

// DefaultBatchSize bounds one commit: large enough to amortize round-trips,
// small enough to respect store batch and payload limits.
const DefaultBatchSize = 100

// BatchWriter persists an ordered sequence of documents in fixed-size
// chunks. Chunks commit sequentially so only one chunk's writes are in
// flight at a time; a chunk failure aborts the remaining chunks.
type BatchWriter struct {
	store  DocumentStore
	size   int
	logger *zap.Logger
}

// NewBatchWriter creates a batch writer. A non-positive size falls back to
// DefaultBatchSize.
func NewBatchWriter(store DocumentStore, size int) *BatchWriter {
	if size <= 0 {
		size = DefaultBatchSize
	}
	return &BatchWriter{
		store:  store,
		size:   size,
		logger: util.GetLogger(),
	}
}

// WriteResult reports how far a write got.
type WriteResult struct {
	Processed int
	Total     int
	Batches   int
}

// Write commits docs chunk by chunk. Cancellation is honored only at chunk
// boundaries: a chunk in flight is never interrupted mid-write. On failure
// the result carries the exact count of documents already committed.
func (w *BatchWriter) Write(ctx context.Context, docs []Document) (WriteResult, error) {
	res := WriteResult{Total: len(docs)}
	if len(docs) == 0 {
		return res, nil
	}

	for _, chunk := range lo.Chunk(docs, w.size) {
		if err := ctx.Err(); err != nil {
			return res, fmt.Errorf("write cancelled after %d/%d documents: %w",
				res.Processed, res.Total, err)
		}

		start := time.Now()
		if err := w.store.BulkSet(ctx, chunk); err != nil {
			util.BatchesFailedTotal.Inc()
			return res, fmt.Errorf("batch %d failed after %d/%d documents: %w",
				res.Batches+1, res.Processed, res.Total, err)
		}
		util.BatchCommitLatency.Observe(time.Since(start).Seconds())
		util.BatchesCommittedTotal.Inc()

		res.Processed += len(chunk)
		res.Batches++
		w.logger.Info("Batch committed",
			zap.Int("batch", res.Batches),
			zap.Int("processed", res.Processed),
			zap.Int("total", res.Total),
			zap.String("progress", fmt.Sprintf("%.0f%%", float64(res.Processed)/float64(res.Total)*100)))
	}

	return res, nil
}
