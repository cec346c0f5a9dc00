package domain

import "errors"

// EmploymentType classifies how an employee is contracted.
type EmploymentType string

const (
	EmploymentFullTime   EmploymentType = "full-time"
	EmploymentPartTime   EmploymentType = "part-time"
	EmploymentInternship EmploymentType = "internship"
)

// EmployeeStatus represents the lifecycle state of an employee.
type EmployeeStatus string

const (
	StatusActive     EmployeeStatus = "active"
	StatusOnboarding EmployeeStatus = "onboarding"
	StatusProbation  EmployeeStatus = "probation"
	StatusInactive   EmployeeStatus = "inactive"
)

var ErrEmployeeNotFound = errors.New("employee not found")
var ErrInvalidCredentials = errors.New("invalid credentials")

// IsValid reports whether the employment type is one of the known values.
func (t EmploymentType) IsValid() bool {
	switch t {
	case EmploymentFullTime, EmploymentPartTime, EmploymentInternship:
		return true
	}
	return false
}

// IsValid reports whether the status is one of the known values.
func (s EmployeeStatus) IsValid() bool {
	switch s {
	case StatusActive, StatusOnboarding, StatusProbation, StatusInactive:
		return true
	}
	return false
}

// Employee is the core record. The id is assigned by the remote collection on
// creation and never changes; every other field is replaced wholesale on
// update. JSON field names mirror the remote collection's schema.
type Employee struct {
	ID             string         `json:"id"`
	FullName       string         `json:"fullName"`
	PhoneNumber    string         `json:"phoneNumber"`
	Email          string         `json:"email"`
	BirthDate      string         `json:"birthDate"`
	Position       string         `json:"position"`
	Department     string         `json:"department"`
	StartDate      string         `json:"startDate"`
	EmploymentType EmploymentType `json:"employmentType"`
	ManagerName    string         `json:"managerName"`
	Status         EmployeeStatus `json:"status"`
}
