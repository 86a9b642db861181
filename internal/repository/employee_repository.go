package repository

import (
	"context"
	"net/http"
	"net/url"

	"github.com/noah-isme/hrms-lite-console/internal/models"
	"github.com/noah-isme/hrms-lite-console/pkg/hrapi"
)

const (
	employeesRoute = "/api/employees"
	employeeRoute  = "/api/employees/{employee_id}"
)

// EmployeeRepository reads and writes employees through the HR API.
type EmployeeRepository struct {
	api apiClient
}

// NewEmployeeRepository constructs an EmployeeRepository.
func NewEmployeeRepository(api apiClient) *EmployeeRepository {
	return &EmployeeRepository{api: api}
}

// List returns every employee.
func (r *EmployeeRepository) List(ctx context.Context) ([]models.Employee, error) {
	employees := []models.Employee{}
	err := r.api.Do(ctx, hrapi.Request{Method: http.MethodGet, Route: employeesRoute, Path: employeesRoute}, &employees)
	if err != nil {
		return nil, err
	}
	return employees, nil
}

// FindByID fetches a single employee by business key.
func (r *EmployeeRepository) FindByID(ctx context.Context, employeeID string) (*models.Employee, error) {
	var employee models.Employee
	err := r.api.Do(ctx, hrapi.Request{Method: http.MethodGet, Route: employeeRoute, Path: employeePath(employeeID)}, &employee)
	if err != nil {
		return nil, err
	}
	return &employee, nil
}

// Create posts a new employee and returns the stored record.
func (r *EmployeeRepository) Create(ctx context.Context, employee models.NewEmployee) (*models.Employee, error) {
	var created models.Employee
	err := r.api.Do(ctx, hrapi.Request{Method: http.MethodPost, Route: employeesRoute, Path: employeesRoute, Body: employee}, &created)
	if err != nil {
		return nil, err
	}
	return &created, nil
}

// Delete removes an employee; the API cascades to attendance.
func (r *EmployeeRepository) Delete(ctx context.Context, employeeID string) error {
	return r.api.Do(ctx, hrapi.Request{Method: http.MethodDelete, Route: employeeRoute, Path: employeePath(employeeID)}, nil)
}

func employeePath(employeeID string) string {
	return employeesRoute + "/" + url.PathEscape(employeeID)
}
