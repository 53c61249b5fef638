package feed

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"job-calendar-feed/internal/cache"
	"job-calendar-feed/internal/models"
	"job-calendar-feed/internal/telemetry"
)

// operationListLimit caps how many operations one enrichment fetch asks
// the upstream for.
const operationListLimit = 100

// OperationLister is the slice of the upstream client the enricher needs.
type OperationLister interface {
	ListOperations(ctx context.Context, jobID string, limit int) ([]models.Operation, error)
}

// Enricher resolves per-job operation lists through the operation cache
// with a bounded worker pool in front of the upstream API.
type Enricher struct {
	lister  OperationLister
	cache   *cache.OperationCache
	workers int
	log     *zap.SugaredLogger
}

// NewEnricher builds an enricher. workers <= 0 falls back to 1.
func NewEnricher(lister OperationLister, opCache *cache.OperationCache, workers int, log *zap.SugaredLogger) *Enricher {
	if workers <= 0 {
		workers = 1
	}
	return &Enricher{lister: lister, cache: opCache, workers: workers, log: log}
}

// Enrich fetches the operation list for every job, keyed by job ID.
// Each job is processed exactly once; completion order is not defined.
// A failed fetch drops that job's entry so the mapper falls back to
// job-level fields, and never fails the batch.
func (e *Enricher) Enrich(ctx context.Context, jobs []models.Job) map[string][]models.Operation {
	results := make(map[string][]models.Operation, len(jobs))
	var mu sync.Mutex

	work := make(chan models.Job)
	var wg sync.WaitGroup
	for i := 0; i < e.workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for job := range work {
				ops, ok := e.cache.Get(job.ID)
				if !ok {
					var err error
					ops, err = e.lister.ListOperations(ctx, job.ID, operationListLimit)
					if err != nil {
						telemetry.EnrichmentFailures.Inc()
						e.log.Warnw("operation listing failed; mapping job without operations",
							"jobId", job.ID, "err", err)
						continue
					}
					e.cache.Put(job.ID, ops)
				}
				mu.Lock()
				results[job.ID] = ops
				mu.Unlock()
			}
		}()
	}

	for _, job := range jobs {
		work <- job
	}
	close(work)
	wg.Wait()

	return results
}
