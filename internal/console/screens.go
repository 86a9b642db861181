package console

import (
	"context"

	"go.uber.org/zap"

	"github.com/noah-isme/hrms-lite-console/internal/dto"
	"github.com/noah-isme/hrms-lite-console/internal/models"
)

// NoFilter is the filter type of unfiltered collections.
type NoFilter struct{}

// EmployeeSource is what the employees screen needs from the service layer.
type EmployeeSource interface {
	List(ctx context.Context) ([]models.Employee, error)
	Create(ctx context.Context, draft dto.EmployeeDraft) (*models.Employee, error)
	Delete(ctx context.Context, employeeID string) error
	Validate(draft dto.EmployeeDraft) error
}

// AttendanceSource is what the attendance and dashboard screens need.
type AttendanceSource interface {
	List(ctx context.Context, filter models.AttendanceFilter) ([]models.AttendanceRecord, error)
	Mark(ctx context.Context, draft dto.AttendanceDraft) (*models.AttendanceRecord, error)
	Stats(ctx context.Context) ([]models.AttendanceStat, error)
	Validate(draft dto.AttendanceDraft) error
	BlankDraft() dto.AttendanceDraft
}

// EmployeesScreen lists employees, adds them and deletes them after confirmation.
type EmployeesScreen struct {
	List   *ListController[models.Employee, NoFilter]
	Form   *FormController[dto.EmployeeDraft]
	Delete *Confirmation[string]
}

// AttendanceScreen lists filtered attendance and marks new days.
type AttendanceScreen struct {
	List      *ListController[models.AttendanceRecord, models.AttendanceFilter]
	Employees *ListController[models.Employee, NoFilter]
	Form      *FormController[dto.AttendanceDraft]
}

// DashboardScreen shows the attendance summary.
type DashboardScreen struct {
	Stats *StatsAggregator
}

// Workspace bundles the screen state of one administrator session.
type Workspace struct {
	ID         string
	Employees  *EmployeesScreen
	Attendance *AttendanceScreen
	Dashboard  *DashboardScreen
}

// NewWorkspace wires fresh screens over the given sources.
func NewWorkspace(id string, employees EmployeeSource, attendance AttendanceSource, logger *zap.Logger) *Workspace {
	if logger == nil {
		logger = zap.NewNop()
	}
	logger = logger.With(zap.String("workspace", id))
	return &Workspace{
		ID:         id,
		Employees:  NewEmployeesScreen(employees, logger),
		Attendance: NewAttendanceScreen(attendance, employees, logger),
		Dashboard:  NewDashboardScreen(employees, attendance, logger),
	}
}

// NewEmployeesScreen wires the employees list, form and delete confirmation.
func NewEmployeesScreen(src EmployeeSource, logger *zap.Logger) *EmployeesScreen {
	screen := &EmployeesScreen{}
	screen.List = NewListController(
		func(ctx context.Context, _ NoFilter) ([]models.Employee, error) { return src.List(ctx) },
		ListOptions{Name: "employees", Fallback: "Failed to load employees", Logger: logger},
	)
	reload := func(ctx context.Context) { _, _ = screen.List.Reload(ctx) }
	screen.Form = NewFormController(
		func(ctx context.Context, draft dto.EmployeeDraft) error {
			_, err := src.Create(ctx, draft)
			return err
		},
		FormOptions[dto.EmployeeDraft]{
			Name:      "employee",
			Validate:  src.Validate,
			Fallback:  "Failed to add employee",
			OnSuccess: reload,
			Logger:    logger,
		},
	)
	screen.Delete = NewConfirmation(src.Delete, ConfirmOptions{
		Name:      "delete-employee",
		Fallback:  "Failed to delete employee",
		OnSuccess: reload,
		Logger:    logger,
	})
	return screen
}

// NewAttendanceScreen wires the attendance list, employee picker and form.
func NewAttendanceScreen(src AttendanceSource, employees EmployeeSource, logger *zap.Logger) *AttendanceScreen {
	screen := &AttendanceScreen{}
	screen.List = NewListController(src.List, ListOptions{
		Name:     "attendance",
		Fallback: "Failed to load attendance records",
		Logger:   logger,
	})
	screen.Employees = NewListController(
		func(ctx context.Context, _ NoFilter) ([]models.Employee, error) { return employees.List(ctx) },
		ListOptions{Name: "attendance-employees", Fallback: "Failed to load employees", Logger: logger},
	)
	screen.Form = NewFormController(
		func(ctx context.Context, draft dto.AttendanceDraft) error {
			_, err := src.Mark(ctx, draft)
			return err
		},
		FormOptions[dto.AttendanceDraft]{
			Name:      "attendance",
			Blank:     src.BlankDraft,
			Validate:  src.Validate,
			Fallback:  "Failed to mark attendance",
			OnSuccess: func(ctx context.Context) { _, _ = screen.List.Reload(ctx) },
			Logger:    logger,
		},
	)
	return screen
}

// NewDashboardScreen wires the stats aggregator.
func NewDashboardScreen(employees EmployeeSource, attendance AttendanceSource, logger *zap.Logger) *DashboardScreen {
	return &DashboardScreen{
		Stats: NewStatsAggregator(employees.List, attendance.Stats, StatsOptions{Logger: logger}),
	}
}
