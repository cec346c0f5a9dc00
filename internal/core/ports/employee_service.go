package ports

import (
	"context"
	"sort"
	"strings"

	"github.com/simplexhr/hr-console/internal/core/domain"
)

// FieldErrors maps a draft field name (JSON name) to a human-readable
// validation message. It is returned by write operations before any store
// call is made; an upstream failure never produces field-level errors.
type FieldErrors map[string]string

func (fe FieldErrors) Error() string {
	fields := make([]string, 0, len(fe))
	for f := range fe {
		fields = append(fields, f)
	}
	sort.Strings(fields)
	return "invalid fields: " + strings.Join(fields, ", ")
}

// EmployeeCache is the read side: cached list/get plus explicit staleness
// marking. Invalidation keeps the last-known value so readers can render it
// while a refetch is in flight.
type EmployeeCache interface {
	List(ctx context.Context) ([]domain.Employee, error)
	Get(ctx context.Context, id string) (*domain.Employee, error)

	// InvalidateList marks the list entry stale. Used after create.
	InvalidateList()

	// InvalidateRecord marks the record's entry and the list entry stale.
	// Used after update and delete.
	InvalidateRecord(id string)
}

// EmployeeService defines the console's use-case operations. Reads are served
// through the cache; writes validate the draft, call the store exactly once,
// and invalidate the affected cache keys before returning.
type EmployeeService interface {
	List(ctx context.Context) ([]domain.Employee, error)
	Get(ctx context.Context, id string) (*domain.Employee, error)
	Create(ctx context.Context, draft EmployeeDraft) (*domain.Employee, error)
	Update(ctx context.Context, id string, draft EmployeeDraft) (*domain.Employee, error)
	Delete(ctx context.Context, id string) error
}
