package service

import (
	"context"
	"errors"
	"sync"

	"github.com/rs/zerolog"
	"golang.org/x/sync/singleflight"

	"github.com/simplexhr/hr-console/internal/core/domain"
	"github.com/simplexhr/hr-console/internal/core/ports"
	"github.com/simplexhr/hr-console/internal/metrics"
)

const listKey = "list"

// listEntry / recordEntry hold the last-known value, a stale bit, and a
// refreshing bit that limits background revalidation to one in-flight fetch
// per key.
type listEntry struct {
	value      []domain.Employee
	ok         bool
	stale      bool
	refreshing bool
}

type recordEntry struct {
	value      domain.Employee
	stale      bool
	refreshing bool
}

// EmployeeCache serves reads stale-while-revalidate: a fresh entry is
// returned as-is; a stale entry is returned immediately while exactly one
// background refetch runs; an absent entry blocks on a coalesced fetch.
// Concurrent readers of the same key share a single store call.
//
// All entry mutation happens in single steps under one mutex, so readers
// never observe a partial write.
//
// Each key carries a generation counter. Invalidation bumps the generation
// unconditionally, even when no entry exists yet; a fetch records the
// generation before calling the store and only writes a fresh entry if the
// generation is unchanged when the result lands. Without this, a mutation
// completing while a fetch for the same key is in flight would be clobbered
// by the fetch's pre-mutation snapshot.
type EmployeeCache struct {
	store ports.EmployeeStore
	log   zerolog.Logger

	group singleflight.Group

	mu         sync.Mutex
	list       listEntry
	listGen    uint64
	records    map[string]*recordEntry
	recordGens map[string]uint64
}

func NewEmployeeCache(store ports.EmployeeStore, log zerolog.Logger) *EmployeeCache {
	return &EmployeeCache{
		store:      store,
		log:        log,
		records:    make(map[string]*recordEntry),
		recordGens: make(map[string]uint64),
	}
}

// List returns the cached employee list, fetching or revalidating as needed.
func (c *EmployeeCache) List(ctx context.Context) ([]domain.Employee, error) {
	c.mu.Lock()
	e := c.list
	if e.ok && e.stale && !c.list.refreshing {
		c.list.refreshing = true
		go c.refreshList()
	}
	c.mu.Unlock()

	if e.ok {
		if e.stale {
			metrics.CacheReadsTotal.WithLabelValues(metrics.KeyKindList, "stale").Inc()
		} else {
			metrics.CacheReadsTotal.WithLabelValues(metrics.KeyKindList, "hit").Inc()
		}
		return e.value, nil
	}

	metrics.CacheReadsTotal.WithLabelValues(metrics.KeyKindList, "miss").Inc()
	v, err, _ := c.group.Do(listKey, func() (any, error) {
		return c.fetchList(ctx)
	})
	if err != nil {
		return nil, err
	}
	return v.([]domain.Employee), nil
}

// Get returns the cached record, fetching or revalidating as needed.
// Not-found results are not cached.
func (c *EmployeeCache) Get(ctx context.Context, id string) (*domain.Employee, error) {
	c.mu.Lock()
	var e recordEntry
	cached := false
	if r, ok := c.records[id]; ok {
		e = *r
		cached = true
		if r.stale && !r.refreshing {
			r.refreshing = true
			go c.refreshRecord(id)
		}
	}
	c.mu.Unlock()

	if cached {
		if e.stale {
			metrics.CacheReadsTotal.WithLabelValues(metrics.KeyKindRecord, "stale").Inc()
		} else {
			metrics.CacheReadsTotal.WithLabelValues(metrics.KeyKindRecord, "hit").Inc()
		}
		val := e.value
		return &val, nil
	}

	metrics.CacheReadsTotal.WithLabelValues(metrics.KeyKindRecord, "miss").Inc()
	v, err, _ := c.group.Do(recordKey(id), func() (any, error) {
		return c.fetchRecord(ctx, id)
	})
	if err != nil {
		return nil, err
	}
	val := v.(domain.Employee)
	return &val, nil
}

// InvalidateList marks the list entry stale, keeping its last-known value.
// The generation bump is unconditional so an in-flight fetch cannot install
// its pre-mutation snapshot as fresh.
func (c *EmployeeCache) InvalidateList() {
	c.mu.Lock()
	c.listGen++
	if c.list.ok {
		c.list.stale = true
	}
	c.mu.Unlock()
	metrics.CacheInvalidationsTotal.WithLabelValues(metrics.KeyKindList).Inc()
}

// InvalidateRecord marks the record's entry and the list entry stale.
func (c *EmployeeCache) InvalidateRecord(id string) {
	c.mu.Lock()
	c.recordGens[id]++
	if r, ok := c.records[id]; ok {
		r.stale = true
	}
	c.mu.Unlock()
	metrics.CacheInvalidationsTotal.WithLabelValues(metrics.KeyKindRecord).Inc()
	c.InvalidateList()
}

func recordKey(id string) string {
	return "record:" + id
}

// fetchList runs inside the singleflight group: one store call, one atomic
// cache write. The result lands stale when an invalidation raced the fetch,
// so the next read revalidates instead of serving the old snapshot as fresh.
func (c *EmployeeCache) fetchList(ctx context.Context) ([]domain.Employee, error) {
	c.mu.Lock()
	gen := c.listGen
	c.mu.Unlock()

	out, err := c.store.List(ctx)
	if err != nil {
		return nil, err
	}
	c.mu.Lock()
	c.list.value = out
	c.list.ok = true
	c.list.stale = gen != c.listGen
	c.mu.Unlock()
	return out, nil
}

func (c *EmployeeCache) fetchRecord(ctx context.Context, id string) (domain.Employee, error) {
	c.mu.Lock()
	gen := c.recordGens[id]
	c.mu.Unlock()

	out, err := c.store.Get(ctx, id)
	if err != nil {
		return domain.Employee{}, err
	}
	c.mu.Lock()
	c.records[id] = &recordEntry{value: *out, stale: gen != c.recordGens[id]}
	c.mu.Unlock()
	return *out, nil
}

// refreshList revalidates the stale list in the background. A failure leaves
// the entry stale so the next read tries again; the reader that was already
// served the last-known value never sees this error. The detached context is
// deliberate: the result must land in the shared cache even if the request
// that triggered the refresh is gone.
func (c *EmployeeCache) refreshList() {
	_, err, _ := c.group.Do(listKey, func() (any, error) {
		return c.fetchList(context.Background())
	})
	c.mu.Lock()
	c.list.refreshing = false
	c.mu.Unlock()
	if err != nil {
		c.log.Warn().Err(err).Msg("list revalidation failed, entry stays stale")
	}
}

func (c *EmployeeCache) refreshRecord(id string) {
	_, err, _ := c.group.Do(recordKey(id), func() (any, error) {
		return c.fetchRecord(context.Background(), id)
	})
	c.mu.Lock()
	if errors.Is(err, domain.ErrEmployeeNotFound) {
		// The record is gone upstream; the last-known value must not be
		// served forever.
		delete(c.records, id)
		delete(c.recordGens, id)
	} else if r, ok := c.records[id]; ok {
		r.refreshing = false
	}
	c.mu.Unlock()
	if err != nil {
		c.log.Warn().Err(err).Str("id", id).Msg("record revalidation failed")
	}
}
