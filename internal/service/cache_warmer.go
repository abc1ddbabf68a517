package service

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"go.uber.org/zap"

	"github.com/noah-isme/gradecalc-api/pkg/jobs"
)

// JobWarmCache is the queue job type that refills a cache entry.
const JobWarmCache = "cache.warm"

// Warm targets.
const (
	WarmTargetAnnouncements = "announcements"
	WarmTargetCatalog       = "catalog"
)

type warmQueue interface {
	Register(jobType string, handler jobs.Handler)
	Enqueue(job jobs.Job) error
}

// CacheWarmer refills read-through caches in the background so the first viewer after
// a change does not pay for the database round trip.
type CacheWarmer struct {
	queue   warmQueue
	logger  *zap.Logger
	mu      sync.RWMutex
	targets map[string]func(context.Context) error
}

// NewCacheWarmer binds the warmer to a queue.
func NewCacheWarmer(queue warmQueue, logger *zap.Logger) *CacheWarmer {
	if logger == nil {
		logger = zap.NewNop()
	}
	w := &CacheWarmer{queue: queue, logger: logger, targets: make(map[string]func(context.Context) error)}
	queue.Register(JobWarmCache, w.handle)
	return w
}

// Add registers a named warm function.
func (w *CacheWarmer) Add(target string, warm func(context.Context) error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.targets[target] = warm
}

// Schedule queues a refill of target. Failures to enqueue are logged only.
func (w *CacheWarmer) Schedule(target string) {
	if w == nil {
		return
	}
	if err := w.queue.Enqueue(jobs.Job{ID: target, Type: JobWarmCache, Key: target}); err != nil {
		w.logger.Warn("failed to schedule cache warm", zap.String("target", target), zap.Error(err))
	}
}

// ScheduleAll queues every registered target.
func (w *CacheWarmer) ScheduleAll() {
	w.mu.RLock()
	names := make([]string, 0, len(w.targets))
	for name := range w.targets {
		names = append(names, name)
	}
	w.mu.RUnlock()
	sort.Strings(names)
	for _, name := range names {
		w.Schedule(name)
	}
}

func (w *CacheWarmer) handle(ctx context.Context, job jobs.Job) error {
	w.mu.RLock()
	warm, ok := w.targets[job.Key]
	w.mu.RUnlock()
	if !ok {
		return fmt.Errorf("unknown warm target %q", job.Key)
	}
	if err := warm(ctx); err != nil {
		return err
	}
	w.logger.Debug("cache warmed", zap.String("target", job.Key))
	return nil
}
