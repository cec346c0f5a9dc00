package service

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/simplexhr/hr-console/internal/core/domain"
	"github.com/simplexhr/hr-console/internal/core/ports"
)

// EmployeeService is the submission pipeline behind the console's screens.
// Writes run strictly in order: validate the draft (no network on failure),
// call the store exactly once, invalidate the affected cache keys, return.
// The response a handler sends, which is the caller's signal to navigate
// away, therefore always follows invalidation.
type EmployeeService struct {
	store    ports.EmployeeStore
	cache    ports.EmployeeCache
	validate *validator.Validate
	log      zerolog.Logger
}

func NewEmployeeService(store ports.EmployeeStore, cache ports.EmployeeCache, log zerolog.Logger) *EmployeeService {
	v := validator.New()
	// Report failures under the JSON field name the screens bind to.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return &EmployeeService{store: store, cache: cache, validate: v, log: log}
}

// List serves the dashboard, newest-first, through the cache.
func (s *EmployeeService) List(ctx context.Context) ([]domain.Employee, error) {
	return s.cache.List(ctx)
}

// Get serves the detail screen and edit-screen initialization. Errors are
// returned as-is so a failed lookup abandons the screen instead of opening
// an empty draft.
func (s *EmployeeService) Get(ctx context.Context, id string) (*domain.Employee, error) {
	return s.cache.Get(ctx, id)
}

func (s *EmployeeService) Create(ctx context.Context, draft ports.EmployeeDraft) (*domain.Employee, error) {
	if err := s.validateDraft(draft); err != nil {
		return nil, err
	}

	created, err := s.store.Create(ctx, draft)
	if err != nil {
		s.log.Error().Err(err).Msg("failed to create employee")
		return nil, err
	}

	s.cache.InvalidateList()
	s.log.Info().Str("id", created.ID).Str("full_name", created.FullName).Msg("employee created")
	return created, nil
}

// Update replaces the record wholesale. The draft must be complete: a
// partial draft fails validation before any network call, so unedited fields
// can never be dropped silently.
func (s *EmployeeService) Update(ctx context.Context, id string, draft ports.EmployeeDraft) (*domain.Employee, error) {
	if err := s.validateDraft(draft); err != nil {
		return nil, err
	}

	updated, err := s.store.Update(ctx, id, draft)
	if err != nil {
		s.log.Error().Err(err).Str("id", id).Msg("failed to update employee")
		return nil, err
	}

	s.cache.InvalidateRecord(id)
	s.log.Info().Str("id", id).Msg("employee updated")
	return updated, nil
}

func (s *EmployeeService) Delete(ctx context.Context, id string) error {
	if err := s.store.Delete(ctx, id); err != nil {
		s.log.Error().Err(err).Str("id", id).Msg("failed to delete employee")
		return err
	}

	s.cache.InvalidateRecord(id)
	s.log.Info().Str("id", id).Msg("employee deleted")
	return nil
}

// validateDraft runs every rule in one pass and collects all failures into a
// ports.FieldErrors, keyed by JSON field name.
func (s *EmployeeService) validateDraft(draft ports.EmployeeDraft) error {
	err := s.validate.Struct(draft)
	if err == nil {
		return nil
	}

	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		return fmt.Errorf("validate draft: %w", err)
	}

	fields := make(ports.FieldErrors, len(ve))
	for _, fe := range ve {
		fields[fe.Field()] = fieldMessage(fe)
	}
	return fields
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fe.Field() + " is required"
	case "email":
		return fe.Field() + " must be a valid email"
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", fe.Field(), fe.Param())
	default:
		return fmt.Sprintf("%s failed validation (%s)", fe.Field(), fe.Tag())
	}
}
