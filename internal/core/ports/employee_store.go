package ports

import (
	"context"

	"github.com/simplexhr/hr-console/internal/core/domain"
)

// EmployeeDraft carries the ten mutable fields submitted by the create and
// edit screens. Validation tags are evaluated in a single pass, so every
// invalid field is reported together rather than first-failure-only.
type EmployeeDraft struct {
	FullName       string `json:"fullName"       validate:"required"`
	PhoneNumber    string `json:"phoneNumber"    validate:"required"`
	Email          string `json:"email"          validate:"required,email"`
	BirthDate      string `json:"birthDate"      validate:"required"`
	Position       string `json:"position"       validate:"required"`
	Department     string `json:"department"     validate:"required"`
	StartDate      string `json:"startDate"      validate:"required"`
	EmploymentType string `json:"employmentType" validate:"required,oneof=full-time part-time internship"`
	ManagerName    string `json:"managerName"    validate:"required"`
	Status         string `json:"status"         validate:"required,oneof=active onboarding probation inactive"`
}

// EmployeeStore defines the operations against the remote employee
// collection. Implementations perform exactly one attempt per call; retry
// policy, if any, belongs to the caller.
type EmployeeStore interface {
	// List fetches all records, returned newest-first (the reverse of the
	// store's native order; the collection itself guarantees no ordering).
	List(ctx context.Context) ([]domain.Employee, error)

	// Get retrieves one record by id.
	Get(ctx context.Context, id string) (*domain.Employee, error)

	// Create stores a new record; the remote collection assigns the id.
	Create(ctx context.Context, draft EmployeeDraft) (*domain.Employee, error)

	// Update replaces the record wholesale (PUT semantics). Fields omitted
	// from the draft are NOT preserved from the prior value; callers must
	// always send the complete field-map.
	Update(ctx context.Context, id string, draft EmployeeDraft) (*domain.Employee, error)

	// Delete removes the record. Irreversible from this side.
	Delete(ctx context.Context, id string) error
}
