package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/simplexhr/hr-console/internal/core/domain"
	"github.com/simplexhr/hr-console/internal/core/ports"
)

// ---------------------------------------------------------------------------
// Counting stub store
// ---------------------------------------------------------------------------

type countingStore struct {
	mu        sync.Mutex
	listCalls int
	getCalls  int
	employees []domain.Employee
	getErr    error
	gate      chan struct{} // when non-nil, List/Get block until closed
}

func (s *countingStore) List(_ context.Context) ([]domain.Employee, error) {
	s.mu.Lock()
	s.listCalls++
	gate := s.gate
	out := append([]domain.Employee(nil), s.employees...)
	s.mu.Unlock()
	if gate != nil {
		// The snapshot above predates the gate, so data swapped in while the
		// call is parked is not reflected in this response.
		<-gate
	}
	return out, nil
}

func (s *countingStore) Get(_ context.Context, id string) (*domain.Employee, error) {
	s.mu.Lock()
	s.getCalls++
	gate := s.gate
	err := s.getErr
	var found *domain.Employee
	for _, e := range s.employees {
		if e.ID == id {
			clone := e
			found = &clone
			break
		}
	}
	s.mu.Unlock()
	if gate != nil {
		<-gate
	}
	if err != nil {
		return nil, err
	}
	if found == nil {
		return nil, domain.ErrEmployeeNotFound
	}
	return found, nil
}

func (s *countingStore) Create(_ context.Context, _ ports.EmployeeDraft) (*domain.Employee, error) {
	return nil, errors.New("not implemented")
}

func (s *countingStore) Update(_ context.Context, _ string, _ ports.EmployeeDraft) (*domain.Employee, error) {
	return nil, errors.New("not implemented")
}

func (s *countingStore) Delete(_ context.Context, _ string) error {
	return errors.New("not implemented")
}

func (s *countingStore) calls() (int, int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.listCalls, s.getCalls
}

// waitUntil polls cond until it holds or the deadline passes.
func waitUntil(t *testing.T, cond func() bool, msg string) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for !cond() {
		if time.Now().After(deadline) {
			t.Fatal(msg)
		}
		time.Sleep(2 * time.Millisecond)
	}
}

func employee(id, name string) domain.Employee {
	return domain.Employee{
		ID:             id,
		FullName:       name,
		PhoneNumber:    "+998901234567",
		Email:          "a@b.co",
		BirthDate:      "1990-01-01",
		Position:       "Engineer",
		Department:     "Platform",
		StartDate:      "2024-03-01",
		EmploymentType: domain.EmploymentFullTime,
		ManagerName:    "Dilshod Karimov",
		Status:         domain.StatusActive,
	}
}

// ---------------------------------------------------------------------------
// List
// ---------------------------------------------------------------------------

func TestEmployeeCache_List_CachesAfterFirstFetch(t *testing.T) {
	store := &countingStore{employees: []domain.Employee{employee("1", "Aziza")}}
	cache := NewEmployeeCache(store, zerolog.Nop())
	ctx := context.Background()

	first, err := cache.List(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := cache.List(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(first) != 1 || len(second) != 1 {
		t.Fatalf("expected 1 employee, got %d then %d", len(first), len(second))
	}
	if calls, _ := store.calls(); calls != 1 {
		t.Errorf("expected exactly 1 store call, got %d", calls)
	}
}

func TestEmployeeCache_List_CoalescesConcurrentMisses(t *testing.T) {
	gate := make(chan struct{})
	store := &countingStore{
		employees: []domain.Employee{employee("1", "Aziza")},
		gate:      gate,
	}
	cache := NewEmployeeCache(store, zerolog.Nop())

	const readers = 8
	results := make(chan int, readers)

	// First reader enters the fetch and parks on the gate.
	go func() {
		out, _ := cache.List(context.Background())
		results <- len(out)
	}()
	waitUntil(t, func() bool { c, _ := store.calls(); return c == 1 }, "first fetch never started")

	// Remaining readers must join the in-flight call, not start their own.
	for i := 1; i < readers; i++ {
		go func() {
			out, _ := cache.List(context.Background())
			results <- len(out)
		}()
	}
	time.Sleep(10 * time.Millisecond)
	close(gate)

	for i := 0; i < readers; i++ {
		if n := <-results; n != 1 {
			t.Errorf("reader got %d employees, want 1", n)
		}
	}
	if calls, _ := store.calls(); calls != 1 {
		t.Errorf("expected 1 coalesced store call, got %d", calls)
	}
}

func TestEmployeeCache_List_StaleServesOldValueThenRevalidates(t *testing.T) {
	store := &countingStore{employees: []domain.Employee{employee("1", "Aziza")}}
	cache := NewEmployeeCache(store, zerolog.Nop())
	ctx := context.Background()

	if _, err := cache.List(ctx); err != nil {
		t.Fatalf("seed fetch failed: %v", err)
	}

	// New upstream state, then invalidate.
	store.mu.Lock()
	store.employees = []domain.Employee{employee("2", "Bekzod"), employee("1", "Aziza")}
	store.mu.Unlock()
	cache.InvalidateList()

	// The stale read returns the last-known value immediately.
	out, err := cache.List(ctx)
	if err != nil {
		t.Fatalf("stale read failed: %v", err)
	}
	if len(out) != 1 || out[0].ID != "1" {
		t.Fatalf("stale read must serve the old value, got %+v", out)
	}

	// Once the background revalidation lands, readers observe the new value.
	waitUntil(t, func() bool {
		out, err := cache.List(ctx)
		return err == nil && len(out) == 2
	}, "revalidated value never became visible")

	if calls, _ := store.calls(); calls != 2 {
		t.Errorf("expected seed fetch + one revalidation, got %d calls", calls)
	}
}

func TestEmployeeCache_List_StaleReadersShareOneRevalidation(t *testing.T) {
	store := &countingStore{employees: []domain.Employee{employee("1", "Aziza")}}
	cache := NewEmployeeCache(store, zerolog.Nop())
	ctx := context.Background()

	if _, err := cache.List(ctx); err != nil {
		t.Fatalf("seed fetch failed: %v", err)
	}

	gate := make(chan struct{})
	store.mu.Lock()
	store.gate = gate
	store.mu.Unlock()
	cache.InvalidateList()

	// Both stale reads return immediately while one refetch is parked.
	for i := 0; i < 2; i++ {
		out, err := cache.List(ctx)
		if err != nil {
			t.Fatalf("stale read failed: %v", err)
		}
		if len(out) != 1 {
			t.Fatalf("stale read must serve the old value, got %+v", out)
		}
	}

	close(gate)
	waitUntil(t, func() bool { c, _ := store.calls(); return c == 2 }, "revalidation never ran")

	// Give a wrongly spawned second refetch a moment to show up.
	time.Sleep(20 * time.Millisecond)
	if calls, _ := store.calls(); calls != 2 {
		t.Errorf("expected exactly one revalidation call, got %d total calls", calls)
	}
}

func TestEmployeeCache_List_InvalidationDuringMissFetchIsNotLost(t *testing.T) {
	gate := make(chan struct{})
	store := &countingStore{
		employees: []domain.Employee{employee("1", "Aziza")},
		gate:      gate,
	}
	cache := NewEmployeeCache(store, zerolog.Nop())
	ctx := context.Background()

	// Park the very first fetch, before any entry exists.
	first := make(chan []domain.Employee, 1)
	go func() {
		out, _ := cache.List(ctx)
		first <- out
	}()
	waitUntil(t, func() bool { c, _ := store.calls(); return c == 1 }, "miss fetch never started")

	// A create completes while the fetch is parked.
	store.mu.Lock()
	store.employees = []domain.Employee{employee("2", "Bekzod"), employee("1", "Aziza")}
	store.gate = nil
	store.mu.Unlock()
	cache.InvalidateList()

	close(gate)
	if out := <-first; len(out) != 1 {
		t.Fatalf("parked fetch must return its own snapshot, got %+v", out)
	}

	// The pre-create snapshot must not be installed as fresh: later reads
	// have to converge on the created record without another invalidation.
	waitUntil(t, func() bool {
		out, err := cache.List(ctx)
		return err == nil && len(out) == 2
	}, "created record never became visible")
}

func TestEmployeeCache_List_InvalidationDuringRevalidationIsNotLost(t *testing.T) {
	store := &countingStore{employees: []domain.Employee{employee("1", "Aziza")}}
	cache := NewEmployeeCache(store, zerolog.Nop())
	ctx := context.Background()

	if _, err := cache.List(ctx); err != nil {
		t.Fatalf("seed fetch failed: %v", err)
	}

	// First mutation; the stale read parks a background refresh on the gate.
	gate := make(chan struct{})
	store.mu.Lock()
	store.employees = []domain.Employee{employee("2", "Bekzod"), employee("1", "Aziza")}
	store.gate = gate
	store.mu.Unlock()
	cache.InvalidateList()
	if _, err := cache.List(ctx); err != nil {
		t.Fatalf("stale read failed: %v", err)
	}
	waitUntil(t, func() bool { c, _ := store.calls(); return c == 2 }, "revalidation never started")

	// Second mutation completes while the refresh is parked.
	store.mu.Lock()
	store.employees = []domain.Employee{
		employee("3", "Gulnora"), employee("2", "Bekzod"), employee("1", "Aziza"),
	}
	store.gate = nil
	store.mu.Unlock()
	cache.InvalidateList()

	close(gate)
	waitUntil(t, func() bool {
		out, err := cache.List(ctx)
		return err == nil && len(out) == 3
	}, "second mutation never became visible")
}

// ---------------------------------------------------------------------------
// Get
// ---------------------------------------------------------------------------

func TestEmployeeCache_Get_CachesRecord(t *testing.T) {
	store := &countingStore{employees: []domain.Employee{employee("7", "Aziza")}}
	cache := NewEmployeeCache(store, zerolog.Nop())
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		got, err := cache.Get(ctx, "7")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got.ID != "7" || got.FullName != "Aziza" {
			t.Fatalf("unexpected record: %+v", got)
		}
	}

	if _, calls := store.calls(); calls != 1 {
		t.Errorf("expected 1 store call, got %d", calls)
	}
}

func TestEmployeeCache_Get_NotFoundIsNotCached(t *testing.T) {
	store := &countingStore{}
	cache := NewEmployeeCache(store, zerolog.Nop())
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		if _, err := cache.Get(ctx, "404"); !errors.Is(err, domain.ErrEmployeeNotFound) {
			t.Fatalf("expected ErrEmployeeNotFound, got %v", err)
		}
	}

	// Errors must not poison the cache; each read retries.
	if _, calls := store.calls(); calls != 2 {
		t.Errorf("expected 2 store calls, got %d", calls)
	}
}

func TestEmployeeCache_Get_InvalidationDuringFetchIsNotLost(t *testing.T) {
	gate := make(chan struct{})
	store := &countingStore{
		employees: []domain.Employee{employee("7", "Aziza")},
		gate:      gate,
	}
	cache := NewEmployeeCache(store, zerolog.Nop())
	ctx := context.Background()

	first := make(chan *domain.Employee, 1)
	go func() {
		got, _ := cache.Get(ctx, "7")
		first <- got
	}()
	waitUntil(t, func() bool { _, c := store.calls(); return c == 1 }, "fetch never started")

	// An update completes while the fetch is parked; no entry exists yet, so
	// the invalidation has nothing to mark and must still take effect.
	store.mu.Lock()
	store.employees = []domain.Employee{employee("7", "Aziza Rahimova")}
	store.gate = nil
	store.mu.Unlock()
	cache.InvalidateRecord("7")

	close(gate)
	if got := <-first; got == nil || got.FullName != "Aziza" {
		t.Fatalf("parked fetch must return its own snapshot, got %+v", got)
	}

	waitUntil(t, func() bool {
		got, err := cache.Get(ctx, "7")
		return err == nil && got.FullName == "Aziza Rahimova"
	}, "updated record never became visible")
}

func TestEmployeeCache_InvalidateRecord_MarksRecordAndList(t *testing.T) {
	store := &countingStore{employees: []domain.Employee{employee("7", "Aziza")}}
	cache := NewEmployeeCache(store, zerolog.Nop())
	ctx := context.Background()

	if _, err := cache.List(ctx); err != nil {
		t.Fatalf("seed list failed: %v", err)
	}
	if _, err := cache.Get(ctx, "7"); err != nil {
		t.Fatalf("seed get failed: %v", err)
	}

	store.mu.Lock()
	store.employees = []domain.Employee{employee("7", "Aziza Rahimova")}
	store.mu.Unlock()
	cache.InvalidateRecord("7")

	waitUntil(t, func() bool {
		got, err := cache.Get(ctx, "7")
		return err == nil && got.FullName == "Aziza Rahimova"
	}, "record revalidation never became visible")

	waitUntil(t, func() bool {
		out, err := cache.List(ctx)
		return err == nil && len(out) == 1 && out[0].FullName == "Aziza Rahimova"
	}, "list revalidation never became visible")
}
