// Package pipeline orchestrates the catalog reseed: a run-to-completion
// batch job that clears the target collections, seeds reference data,
// ingests vendor export files and verifies the result.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/samber/lo"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"catalog-reseeder/config"
	"catalog-reseeder/internal/catalog"
	"catalog-reseeder/internal/classify"
	"catalog-reseeder/internal/models"
	"catalog-reseeder/internal/normalize"
	"catalog-reseeder/internal/source"
	"catalog-reseeder/internal/store"
	"catalog-reseeder/internal/util"
)

const runLockTTL = 30 * time.Minute

// Locker guards against two concurrent runs on one store.
type Locker interface {
	AcquireRunLock(ctx context.Context, ttl time.Duration) error
	ReleaseRunLock(ctx context.Context) error
}

// Publisher announces a finished run to downstream consumers.
type Publisher interface {
	PublishCatalogReseeded(ctx context.Context, event *models.CatalogReseededEvent) error
}

// Pipeline drives one full-replace reseed run. It is the only component
// with side-effecting control flow; all stages below it are pure functions
// or store calls.
type Pipeline struct {
	store     store.DocumentStore
	resolver  *store.Resolver
	writer    *store.BatchWriter
	locker    Locker    // optional
	publisher Publisher // optional
	sources   []config.SourceFile
	currency  string
	batchSize int
	logger    *zap.Logger
}

// New creates a pipeline. locker and publisher may be nil.
func New(
	ds store.DocumentStore,
	resolver *store.Resolver,
	writer *store.BatchWriter,
	locker Locker,
	publisher Publisher,
	sources []config.SourceFile,
	currency string,
	batchSize int,
) *Pipeline {
	if batchSize <= 0 {
		batchSize = store.DefaultBatchSize
	}
	return &Pipeline{
		store:     ds,
		resolver:  resolver,
		writer:    writer,
		locker:    locker,
		publisher: publisher,
		sources:   sources,
		currency:  currency,
		batchSize: batchSize,
		logger:    util.GetLogger(),
	}
}

// sourceBatch carries one file's records through the stages.
type sourceBatch struct {
	file     config.SourceFile
	vendorID string
	products []models.Product
	stats    *models.SourceStats
}

// Run executes the full state machine. Partial writes already committed
// stay committed on failure; the run never rolls back. The returned stats
// are valid even when err is non-nil.
func (p *Pipeline) Run(ctx context.Context) (*models.RunStats, error) {
	start := time.Now()
	defer func() {
		util.RunDuration.Observe(time.Since(start).Seconds())
	}()

	stats := &models.RunStats{
		StartedAt:     start,
		Cleared:       make(map[string]int64),
		CategoryCount: make(map[string]int64),
	}

	if p.locker != nil {
		if err := p.locker.AcquireRunLock(ctx, runLockTTL); err != nil {
			return p.fail(stats, fmt.Errorf("run lock: %w", err))
		}
		defer func() {
			if err := p.locker.ReleaseRunLock(context.Background()); err != nil {
				p.logger.Error("Failed to release run lock", zap.Error(err))
			}
		}()
	}

	// Cached ids from a previous run must not leak across a clear.
	p.resolver.Flush()

	if err := p.clear(ctx, stats); err != nil {
		return p.fail(stats, err)
	}
	if err := p.seedReferenceData(ctx, stats); err != nil {
		return p.fail(stats, err)
	}

	batches, err := p.loadSources(ctx, stats)
	if err != nil {
		return p.fail(stats, err)
	}
	if err := p.classifyAndResolve(ctx, stats, batches); err != nil {
		return p.fail(stats, err)
	}
	if err := p.write(ctx, stats, batches); err != nil {
		return p.fail(stats, err)
	}
	p.verify(ctx, stats, batches)

	stats.State = models.StateDone
	stats.FinishedAt = time.Now()
	if stats.TotalErrors() > 0 || len(stats.Discrepancies) > 0 {
		stats.Outcome = models.OutcomeWithErrors
	} else {
		stats.Outcome = models.OutcomeClean
	}

	p.publish(ctx, stats, time.Since(start))

	p.logger.Info("Reseed run finished",
		zap.String("outcome", stats.Outcome),
		zap.Int("written", stats.TotalWritten()),
		zap.Int("errors", stats.TotalErrors()),
		zap.Duration("duration", time.Since(start)))
	return stats, nil
}

func (p *Pipeline) fail(stats *models.RunStats, err error) (*models.RunStats, error) {
	stats.State = models.StateFailed
	stats.Outcome = models.OutcomeAborted
	stats.FinishedAt = time.Now()
	p.logger.Error("Reseed run aborted", zap.Error(err))
	return stats, err
}

// clear deletes every document in the produced collections. Products go
// first so no product ever references a missing category or vendor, even
// if clearing is interrupted.
func (p *Pipeline) clear(ctx context.Context, stats *models.RunStats) error {
	ctx, span := util.StartSpan(ctx, "Pipeline.Clear")
	defer span.End()
	stats.State = models.StateClearing

	for _, collection := range []string{
		models.CollectionProducts,
		models.CollectionVendors,
		models.CollectionCategories,
	} {
		n, err := p.store.DeleteAll(ctx, collection)
		if err != nil {
			return fmt.Errorf("clearing %s: %w", collection, err)
		}
		stats.Cleared[collection] = n
		util.DocumentsClearedTotal.WithLabelValues(collection).Add(float64(n))
		p.logger.Info("Collection cleared",
			zap.String("collection", collection),
			zap.Int64("deleted", n))
	}
	return nil
}

// seedReferenceData writes the fixed category and vendor documents with
// caller-supplied ids, so lookups stay deterministic within the run.
func (p *Pipeline) seedReferenceData(ctx context.Context, stats *models.RunStats) error {
	ctx, span := util.StartSpan(ctx, "Pipeline.SeedReferenceData")
	defer span.End()
	stats.State = models.StateSeedingReferenceData

	categories := catalog.Categories()
	categoryDocs := lo.Map(categories, func(c models.Category, _ int) store.Document {
		return store.Document{Collection: models.CollectionCategories, ID: c.ID, Data: c}
	})
	if _, err := p.writer.Write(ctx, categoryDocs); err != nil {
		return fmt.Errorf("seeding categories: %w", err)
	}
	stats.Categories = len(categories)

	vendors := catalog.Vendors()
	vendorDocs := lo.Map(vendors, func(v models.Vendor, _ int) store.Document {
		return store.Document{Collection: models.CollectionVendors, ID: v.ID, Data: v}
	})
	if _, err := p.writer.Write(ctx, vendorDocs); err != nil {
		return fmt.Errorf("seeding vendors: %w", err)
	}
	stats.Vendors = len(vendors)

	p.logger.Info("Reference data seeded",
		zap.Int("categories", stats.Categories),
		zap.Int("vendors", stats.Vendors))
	return nil
}

// loadSources reads and normalizes every configured export file. Unreadable
// files are skipped with a warning and contribute zero products; malformed
// content aborts the run, since downstream stages assume well-formed input.
func (p *Pipeline) loadSources(ctx context.Context, stats *models.RunStats) ([]*sourceBatch, error) {
	_, span := util.StartSpan(ctx, "Pipeline.LoadSources")
	defer span.End()
	stats.State = models.StateLoadingSources

	now := time.Now()
	opts := normalize.Options{Currency: p.currency}

	// One entry per configured file, allocated up front: later stages hold
	// pointers into this slice, so the appends below must never reallocate.
	stats.Sources = make([]models.SourceStats, 0, len(p.sources))

	var batches []*sourceBatch
	for _, file := range p.sources {
		stats.Sources = append(stats.Sources, models.SourceStats{File: file.Path, Vendor: file.Vendor})
		fileStats := &stats.Sources[len(stats.Sources)-1]

		records, err := source.Load(file.Path)
		if errors.Is(err, source.ErrRead) {
			p.logger.Warn("Source file skipped", zap.String("file", file.Path), zap.Error(err))
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("loading %s: %w", file.Path, err)
		}

		products := make([]models.Product, 0, len(records))
		for _, raw := range records {
			products = append(products, normalize.Record(raw, "", opts, now))
			util.ProductsNormalizedTotal.Inc()
		}
		fileStats.Loaded = len(products)

		batches = append(batches, &sourceBatch{file: file, products: products, stats: fileStats})
		p.logger.Info("Source loaded",
			zap.String("file", file.Path),
			zap.String("vendor", file.Vendor),
			zap.Int("records", len(products)))
	}
	return batches, nil
}

// classifyAndResolve assigns every product its category and vendor ids. A
// file whose vendor cannot be resolved is excluded from the write set and
// counted as errors; the run continues with the remaining files.
func (p *Pipeline) classifyAndResolve(ctx context.Context, stats *models.RunStats, batches []*sourceBatch) error {
	ctx, span := util.StartSpan(ctx, "Pipeline.ClassifyAndResolve")
	defer span.End()
	stats.State = models.StateClassifyingAndResolving

	for _, batch := range batches {
		vendorID, err := p.resolver.VendorID(ctx, batch.file.Vendor)
		if err != nil {
			batch.stats.Errors = len(batch.products)
			batch.stats.LastError = err.Error()
			batch.products = nil
			util.VendorsUnresolvedTotal.Inc()
			util.ProductsFailedTotal.WithLabelValues("vendor_unresolved").Add(float64(batch.stats.Errors))
			p.logger.Warn("Source excluded: vendor unresolved",
				zap.String("file", batch.file.Path),
				zap.String("vendor", batch.file.Vendor),
				zap.Int("excluded", batch.stats.Errors))
			continue
		}

		batch.vendorID = vendorID
		if err := p.resolveCategories(ctx, batch, vendorID); err != nil {
			return err
		}
	}
	return nil
}

// resolveCategories classifies and resolves one file's records
// concurrently, one chunk at a time; these are independent pure or
// cached-lookup operations, so the fan-out is bounded by chunk size and
// never outlives the chunk. Resolved ids are written back into
// batch.products in place, so chunking must address the slice itself.
func (p *Pipeline) resolveCategories(ctx context.Context, batch *sourceBatch, vendorID string) error {
	products := batch.products
	for start := 0; start < len(products); start += p.batchSize {
		end := start + p.batchSize
		if end > len(products) {
			end = len(products)
		}

		g, gctx := errgroup.WithContext(ctx)
		g.SetLimit(p.batchSize)
		for i := start; i < end; i++ {
			product := &products[i]
			g.Go(func() error {
				categorySlug := classify.Categorize(product.Name + " " + product.Description)
				categoryID, err := p.resolver.CategoryID(gctx, categorySlug)
				if err != nil {
					return err
				}
				product.CategoryID = categoryID
				product.VendorID = vendorID
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return fmt.Errorf("resolving categories for %s: %w", batch.file.Path, err)
		}
	}
	return nil
}

// write hands each file's resolved records to the batch writer. A chunk
// failure aborts that file's remaining chunks but not the other files;
// cancellation aborts the whole run at the next chunk boundary.
func (p *Pipeline) write(ctx context.Context, stats *models.RunStats, batches []*sourceBatch) error {
	ctx, span := util.StartSpan(ctx, "Pipeline.Write")
	defer span.End()
	stats.State = models.StateWriting

	for _, batch := range batches {
		if len(batch.products) == 0 {
			continue
		}

		docs := lo.Map(batch.products, func(prod models.Product, _ int) store.Document {
			return store.Document{Collection: models.CollectionProducts, ID: prod.ID, Data: prod}
		})

		res, err := p.writer.Write(ctx, docs)
		batch.stats.Written = res.Processed
		util.ProductsWrittenTotal.Add(float64(res.Processed))

		if err != nil {
			if ctx.Err() != nil {
				return fmt.Errorf("writing %s: %w", batch.file.Path, err)
			}
			failed := res.Total - res.Processed
			batch.stats.Errors += failed
			batch.stats.LastError = err.Error()
			util.ProductsFailedTotal.WithLabelValues("write_failed").Add(float64(failed))
			p.logger.Error("Source write aborted",
				zap.String("file", batch.file.Path),
				zap.Int("written", res.Processed),
				zap.Int("failed", failed),
				zap.Error(err))
		}
	}
	return nil
}

// verify re-reads collection sizes and distributions and reports
// discrepancies. It never repairs: a mismatch marks the run as completed
// with errors, not failed.
func (p *Pipeline) verify(ctx context.Context, stats *models.RunStats, batches []*sourceBatch) {
	ctx, span := util.StartSpan(ctx, "Pipeline.Verify")
	defer span.End()
	stats.State = models.StateVerifying

	p.checkCount(ctx, stats, models.CollectionCategories, int64(stats.Categories))
	p.checkCount(ctx, stats, models.CollectionVendors, int64(stats.Vendors))
	p.checkCount(ctx, stats, models.CollectionProducts, int64(stats.TotalWritten()))

	categoryCount, err := p.store.GroupCount(ctx, models.CollectionProducts, "categoryId")
	if err != nil {
		stats.Discrepancies = append(stats.Discrepancies,
			fmt.Sprintf("category distribution unavailable: %v", err))
	} else {
		stats.CategoryCount = categoryCount

		// The writer commits each file's products in order, so the written
		// prefix of every batch is exactly what the store should hold.
		expectedCategories := make(map[string]int64)
		for _, batch := range batches {
			for _, prod := range batch.products[:batch.stats.Written] {
				expectedCategories[prod.CategoryID]++
			}
		}
		for categoryID, expected := range expectedCategories {
			if categoryCount[categoryID] != expected {
				stats.Discrepancies = append(stats.Discrepancies,
					fmt.Sprintf("category %s: expected %d products, found %d",
						categoryID, expected, categoryCount[categoryID]))
			}
		}
	}

	vendorCount, err := p.store.GroupCount(ctx, models.CollectionProducts, "vendorId")
	if err != nil {
		stats.Discrepancies = append(stats.Discrepancies,
			fmt.Sprintf("vendor distribution unavailable: %v", err))
		return
	}
	written := make(map[string]int64)
	for _, batch := range batches {
		if batch.vendorID != "" {
			written[batch.vendorID] += int64(batch.stats.Written)
		}
	}
	for vendorID, expected := range written {
		if vendorCount[vendorID] != expected {
			stats.Discrepancies = append(stats.Discrepancies,
				fmt.Sprintf("vendor %s: expected %d products, found %d",
					vendorID, expected, vendorCount[vendorID]))
		}
	}

	for _, d := range stats.Discrepancies {
		p.logger.Warn("Verification discrepancy", zap.String("detail", d))
	}
}

func (p *Pipeline) checkCount(ctx context.Context, stats *models.RunStats, collection string, expected int64) {
	actual, err := p.store.Count(ctx, collection)
	if err != nil {
		stats.Discrepancies = append(stats.Discrepancies,
			fmt.Sprintf("%s count unavailable: %v", collection, err))
		return
	}
	if actual != expected {
		stats.Discrepancies = append(stats.Discrepancies,
			fmt.Sprintf("%s: expected %d documents, found %d", collection, expected, actual))
	}
}

func (p *Pipeline) publish(ctx context.Context, stats *models.RunStats, elapsed time.Duration) {
	if p.publisher == nil {
		return
	}

	event := &models.CatalogReseededEvent{
		BaseEvent: models.BaseEvent{
			EventID:   uuid.New().String(),
			EventType: models.EventTypeCatalogReseeded,
			Timestamp: time.Now(),
		},
		Outcome:    stats.Outcome,
		Categories: stats.Categories,
		Vendors:    stats.Vendors,
		Products:   stats.TotalWritten(),
		Errors:     stats.TotalErrors(),
		DurationMs: elapsed.Milliseconds(),
		Sources: lo.Map(stats.Sources, func(s models.SourceStats, _ int) models.SourceSummary {
			return models.SourceSummary{File: s.File, Vendor: s.Vendor, Written: s.Written, Errors: s.Errors}
		}),
	}

	if err := p.publisher.PublishCatalogReseeded(ctx, event); err != nil {
		p.logger.Error("Failed to publish CatalogReseeded event", zap.Error(err))
	}
}
