package service

import (
	"context"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/hrms-lite-console/internal/dto"
	"github.com/noah-isme/hrms-lite-console/internal/models"
)

type employeeRepository interface {
	List(ctx context.Context) ([]models.Employee, error)
	FindByID(ctx context.Context, employeeID string) (*models.Employee, error)
	Create(ctx context.Context, employee models.NewEmployee) (*models.Employee, error)
	Delete(ctx context.Context, employeeID string) error
}

// EmployeeService handles employee use-cases. Upstream errors are returned
// as received so their detail reaches the administrator.
type EmployeeService struct {
	repo      employeeRepository
	validator *validator.Validate
	logger    *zap.Logger
}

// NewEmployeeService constructs the employee service.
func NewEmployeeService(repo employeeRepository, validate *validator.Validate, logger *zap.Logger) *EmployeeService {
	if validate == nil {
		validate = NewValidator(nil)
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &EmployeeService{repo: repo, validator: validate, logger: logger}
}

// List returns every employee.
func (s *EmployeeService) List(ctx context.Context) ([]models.Employee, error) {
	employees, err := s.repo.List(ctx)
	if err != nil {
		s.logger.Warn("list employees failed", zap.Error(err))
		return nil, err
	}
	return employees, nil
}

// Get returns one employee by business key.
func (s *EmployeeService) Get(ctx context.Context, employeeID string) (*models.Employee, error) {
	employee, err := s.repo.FindByID(ctx, employeeID)
	if err != nil {
		s.logger.Warn("get employee failed", zap.String("employee_id", employeeID), zap.Error(err))
		return nil, err
	}
	return employee, nil
}

// Validate checks a draft locally without contacting the API.
func (s *EmployeeService) Validate(draft dto.EmployeeDraft) error {
	if err := s.validator.Struct(draft.Trimmed()); err != nil {
		return validationError(err)
	}
	return nil
}

// Create validates and submits a new employee.
func (s *EmployeeService) Create(ctx context.Context, draft dto.EmployeeDraft) (*models.Employee, error) {
	if err := s.Validate(draft); err != nil {
		return nil, err
	}
	created, err := s.repo.Create(ctx, draft.Payload())
	if err != nil {
		s.logger.Warn("create employee failed", zap.String("employee_id", draft.Trimmed().EmployeeID), zap.Error(err))
		return nil, err
	}
	s.logger.Info("employee created", zap.String("employee_id", created.EmployeeID))
	return created, nil
}

// Delete removes an employee and, upstream, their attendance.
func (s *EmployeeService) Delete(ctx context.Context, employeeID string) error {
	if err := s.repo.Delete(ctx, employeeID); err != nil {
		s.logger.Warn("delete employee failed", zap.String("employee_id", employeeID), zap.Error(err))
		return err
	}
	s.logger.Info("employee deleted", zap.String("employee_id", employeeID))
	return nil
}
