package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/simplexhr/hr-console/internal/core/domain"
	"github.com/simplexhr/hr-console/internal/core/ports"
)

// EmployeeHandler handles HTTP requests for employee records.
type EmployeeHandler struct {
	service ports.EmployeeService
}

func NewEmployeeHandler(service ports.EmployeeService) *EmployeeHandler {
	return &EmployeeHandler{service: service}
}

// List handles GET /v1/employees.
//
// @Summary      List all employees, newest first
// @Tags         employees
// @Produce      json
// @Success      200  {object}  listEmployeesResponse
// @Failure      401  {object}  errorResponse
// @Failure      502  {object}  errorResponse
// @Router       /v1/employees [get]
func (h *EmployeeHandler) List(c echo.Context) error {
	employees, err := h.service.List(c.Request().Context())
	if err != nil {
		return writeEmployeeError(c, err)
	}
	return c.JSON(http.StatusOK, newListEmployeesResponse(employees))
}

// Get handles GET /v1/employees/:id.
//
// @Summary      Get one employee by id
// @Tags         employees
// @Produce      json
// @Param        id   path      string  true  "Employee id"
// @Success      200  {object}  employeeResponse
// @Failure      401  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Failure      502  {object}  errorResponse
// @Router       /v1/employees/{id} [get]
func (h *EmployeeHandler) Get(c echo.Context) error {
	employee, err := h.service.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return writeEmployeeError(c, err)
	}
	return c.JSON(http.StatusOK, newEmployeeResponse(*employee))
}

// Create handles POST /v1/employees.
//
// @Summary      Create an employee
// @Tags         employees
// @Accept       json
// @Produce      json
// @Param        body  body      employeeRequest  true  "Employee draft"
// @Success      201   {object}  employeeResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      422   {object}  validationErrorResponse
// @Failure      502   {object}  errorResponse
// @Router       /v1/employees [post]
func (h *EmployeeHandler) Create(c echo.Context) error {
	var req employeeRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid payload"})
	}

	created, err := h.service.Create(c.Request().Context(), req.draft())
	if err != nil {
		return writeEmployeeError(c, err)
	}
	return c.JSON(http.StatusCreated, newEmployeeResponse(*created))
}

// Update handles PUT /v1/employees/:id. The body must carry the complete
// field-map: the stored record is replaced, not patched.
//
// @Summary      Replace an employee record
// @Tags         employees
// @Accept       json
// @Produce      json
// @Param        id    path      string           true  "Employee id"
// @Param        body  body      employeeRequest  true  "Complete employee draft"
// @Success      200   {object}  employeeResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Failure      422   {object}  validationErrorResponse
// @Failure      502   {object}  errorResponse
// @Router       /v1/employees/{id} [put]
func (h *EmployeeHandler) Update(c echo.Context) error {
	var req employeeRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid payload"})
	}

	updated, err := h.service.Update(c.Request().Context(), c.Param("id"), req.draft())
	if err != nil {
		return writeEmployeeError(c, err)
	}
	return c.JSON(http.StatusOK, newEmployeeResponse(*updated))
}

// Delete handles DELETE /v1/employees/:id.
//
// @Summary      Delete an employee
// @Tags         employees
// @Param        id  path  string  true  "Employee id"
// @Success      204
// @Failure      401  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Failure      502  {object}  errorResponse
// @Router       /v1/employees/{id} [delete]
func (h *EmployeeHandler) Delete(c echo.Context) error {
	if err := h.service.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return writeEmployeeError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// writeEmployeeError maps service errors onto the wire. Validation failures
// carry the field map; a failed write is operation-level only, so the caller
// keeps its draft and resubmits explicitly.
func writeEmployeeError(c echo.Context, err error) error {
	var fields ports.FieldErrors
	if errors.As(err, &fields) {
		return c.JSON(http.StatusUnprocessableEntity, validationErrorResponse{
			Error:  "validation failed",
			Fields: fields,
		})
	}
	if errors.Is(err, domain.ErrEmployeeNotFound) {
		return c.JSON(http.StatusNotFound, errorResponse{Error: "employee not found"})
	}
	var upstream *domain.UpstreamError
	if errors.As(err, &upstream) {
		return c.JSON(http.StatusBadGateway, errorResponse{Error: "employee store unavailable"})
	}
	return err
}
