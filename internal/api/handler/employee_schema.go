package handler

import (
	"github.com/simplexhr/hr-console/internal/core/domain"
	"github.com/simplexhr/hr-console/internal/core/ports"
)

// errorResponse is the standard error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Error string `json:"error"`
}

// validationErrorResponse adds the per-field messages a write screen renders
// next to its inputs.
type validationErrorResponse struct {
	Error  string            `json:"error"`
	Fields ports.FieldErrors `json:"fields"`
}

// --- Request / Response types ---

// employeeRequest is the full draft bound from create and edit submissions.
// Edit submissions must carry every field: updates replace the stored record
// wholesale.
type employeeRequest struct {
	FullName       string `json:"fullName"`
	PhoneNumber    string `json:"phoneNumber"`
	Email          string `json:"email"`
	BirthDate      string `json:"birthDate"`
	Position       string `json:"position"`
	Department     string `json:"department"`
	StartDate      string `json:"startDate"`
	EmploymentType string `json:"employmentType"`
	ManagerName    string `json:"managerName"`
	Status         string `json:"status"`
}

func (r employeeRequest) draft() ports.EmployeeDraft {
	return ports.EmployeeDraft{
		FullName:       r.FullName,
		PhoneNumber:    r.PhoneNumber,
		Email:          r.Email,
		BirthDate:      r.BirthDate,
		Position:       r.Position,
		Department:     r.Department,
		StartDate:      r.StartDate,
		EmploymentType: r.EmploymentType,
		ManagerName:    r.ManagerName,
		Status:         r.Status,
	}
}

// employeeResponse is owned by the transport layer so the JSON contract is
// not coupled to internal domain changes.
type employeeResponse struct {
	ID             string `json:"id"`
	FullName       string `json:"fullName"`
	PhoneNumber    string `json:"phoneNumber"`
	Email          string `json:"email"`
	BirthDate      string `json:"birthDate"`
	Position       string `json:"position"`
	Department     string `json:"department"`
	StartDate      string `json:"startDate"`
	EmploymentType string `json:"employmentType"`
	ManagerName    string `json:"managerName"`
	Status         string `json:"status"`
}

func newEmployeeResponse(e domain.Employee) employeeResponse {
	return employeeResponse{
		ID:             e.ID,
		FullName:       e.FullName,
		PhoneNumber:    e.PhoneNumber,
		Email:          e.Email,
		BirthDate:      e.BirthDate,
		Position:       e.Position,
		Department:     e.Department,
		StartDate:      e.StartDate,
		EmploymentType: string(e.EmploymentType),
		ManagerName:    e.ManagerName,
		Status:         string(e.Status),
	}
}

type listEmployeesResponse struct {
	Data []employeeResponse `json:"data"`
}

func newListEmployeesResponse(employees []domain.Employee) listEmployeesResponse {
	data := make([]employeeResponse, 0, len(employees))
	for _, e := range employees {
		data = append(data, newEmployeeResponse(e))
	}
	return listEmployeesResponse{Data: data}
}
