package service

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/noah-isme/hrms-lite-console/internal/console"
	"github.com/noah-isme/hrms-lite-console/internal/dto"
	"github.com/noah-isme/hrms-lite-console/internal/models"
	appErrors "github.com/noah-isme/hrms-lite-console/pkg/errors"
	"github.com/noah-isme/hrms-lite-console/pkg/export"
)

type exportEmployees interface {
	List(ctx context.Context) ([]models.Employee, error)
}

type exportAttendance interface {
	List(ctx context.Context, filter models.AttendanceFilter) ([]models.AttendanceRecord, error)
	Stats(ctx context.Context) ([]models.AttendanceStat, error)
}

type datasetRenderer interface {
	Render(format export.Format, data export.Dataset) ([]byte, error)
}

// ExportConfig tunes export behaviour.
type ExportConfig struct {
	Enabled bool
}

// ExportFile is a rendered download.
type ExportFile struct {
	Filename    string
	ContentType string
	Body        []byte
}

// ExportService builds datasets from the HR API and renders them.
type ExportService struct {
	employees  exportEmployees
	attendance exportAttendance
	renderer   datasetRenderer
	cfg        ExportConfig
	logger     *zap.Logger
	now        func() time.Time
}

// NewExportService constructs an ExportService.
func NewExportService(employees exportEmployees, attendance exportAttendance, renderer datasetRenderer, cfg ExportConfig, logger *zap.Logger) *ExportService {
	if renderer == nil {
		renderer = export.NewRenderer()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ExportService{
		employees:  employees,
		attendance: attendance,
		renderer:   renderer,
		cfg:        cfg,
		logger:     logger,
		now:        time.Now,
	}
}

var attendanceHeaders = []string{"Employee ID", "Employee", "Date", "Status"}

// Attendance renders the records matching filter.
func (s *ExportService) Attendance(ctx context.Context, filter models.AttendanceFilter, format export.Format) (*ExportFile, error) {
	if !s.cfg.Enabled {
		return nil, appErrors.ErrExportsDisabled
	}
	records, err := s.attendance.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	rows := make([]map[string]string, 0, len(records))
	for _, r := range records {
		rows = append(rows, map[string]string{
			"Employee ID": r.EmployeeID,
			"Employee":    r.DisplayName(),
			"Date":        r.Date,
			"Status":      string(r.Status),
		})
	}
	return s.render("attendance", format, export.Dataset{
		Title:   attendanceTitle(filter),
		Headers: attendanceHeaders,
		Rows:    rows,
	})
}

var statsHeaders = []string{"Employee ID", "Employee", "Present", "Absent", "Total Days", "Attendance Rate"}

// Dashboard renders the per-employee attendance summary.
func (s *ExportService) Dashboard(ctx context.Context, format export.Format) (*ExportFile, error) {
	if !s.cfg.Enabled {
		return nil, appErrors.ErrExportsDisabled
	}
	var (
		employees []models.Employee
		stats     []models.AttendanceStat
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		employees, err = s.employees.List(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		stats, err = s.attendance.Stats(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	summary := console.BuildDashboard(employees, stats)
	rows := make([]map[string]string, 0, len(summary.Rows)+1)
	for _, row := range summary.Rows {
		rows = append(rows, statRow(row))
	}
	rows = append(rows, map[string]string{
		"Employee ID":     "",
		"Employee":        fmt.Sprintf("All employees (%d)", summary.TotalEmployees),
		"Present":         strconv.Itoa(summary.TotalPresent),
		"Absent":          strconv.Itoa(summary.TotalAbsent),
		"Total Days":      strconv.Itoa(summary.TotalPresent + summary.TotalAbsent),
		"Attendance Rate": formatRate(summary.OverallRate),
	})
	return s.render("attendance-summary", format, export.Dataset{
		Title:   "Attendance Summary",
		Headers: statsHeaders,
		Rows:    rows,
	})
}

func (s *ExportService) render(base string, format export.Format, data export.Dataset) (*ExportFile, error) {
	body, err := s.renderer.Render(format, data)
	if err != nil {
		s.logger.Error("render export failed", zap.String("export", base), zap.String("format", string(format)), zap.Error(err))
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render export")
	}
	return &ExportFile{
		Filename:    fmt.Sprintf("%s-%s.%s", base, s.now().Format("20060102"), format),
		ContentType: format.ContentType(),
		Body:        body,
	}, nil
}

func statRow(row dto.AttendanceStatRow) map[string]string {
	return map[string]string{
		"Employee ID":     row.EmployeeID,
		"Employee":        row.EmployeeName,
		"Present":         strconv.Itoa(row.TotalPresent),
		"Absent":          strconv.Itoa(row.TotalAbsent),
		"Total Days":      strconv.Itoa(row.TotalDays),
		"Attendance Rate": formatRate(row.AttendanceRate),
	}
}

func formatRate(rate float64) string {
	return strconv.FormatFloat(rate, 'f', 1, 64) + "%"
}

func attendanceTitle(filter models.AttendanceFilter) string {
	title := "Attendance Records"
	switch {
	case filter.DateFrom != "" && filter.DateTo != "":
		title += fmt.Sprintf(" %s to %s", filter.DateFrom, filter.DateTo)
	case filter.DateFrom != "":
		title += " from " + filter.DateFrom
	case filter.DateTo != "":
		title += " until " + filter.DateTo
	}
	if filter.EmployeeID != "" {
		title += " (" + filter.EmployeeID + ")"
	}
	return title
}
