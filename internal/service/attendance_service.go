package service

import (
	"context"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/hrms-lite-console/internal/dto"
	"github.com/noah-isme/hrms-lite-console/internal/models"
	appErrors "github.com/noah-isme/hrms-lite-console/pkg/errors"
)

type attendanceRepository interface {
	List(ctx context.Context, filter models.AttendanceFilter) ([]models.AttendanceRecord, error)
	Create(ctx context.Context, record models.NewAttendance) (*models.AttendanceRecord, error)
	Stats(ctx context.Context) ([]models.AttendanceStat, error)
}

// AttendanceService handles attendance use-cases.
type AttendanceService struct {
	repo      attendanceRepository
	validator *validator.Validate
	logger    *zap.Logger
	now       func() time.Time
}

// NewAttendanceService constructs the attendance service. now defaults to
// time.Now and must be the clock the validator was built with.
func NewAttendanceService(repo attendanceRepository, validate *validator.Validate, logger *zap.Logger, now func() time.Time) *AttendanceService {
	if now == nil {
		now = time.Now
	}
	if validate == nil {
		validate = NewValidator(now)
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AttendanceService{repo: repo, validator: validate, logger: logger, now: now}
}

// List returns attendance records for the filter.
func (s *AttendanceService) List(ctx context.Context, filter models.AttendanceFilter) ([]models.AttendanceRecord, error) {
	if err := s.validateFilter(filter); err != nil {
		return nil, err
	}
	records, err := s.repo.List(ctx, filter)
	if err != nil {
		s.logger.Warn("list attendance failed", zap.Any("filter", filter), zap.Error(err))
		return nil, err
	}
	return records, nil
}

// BlankDraft is today's date with status Present.
func (s *AttendanceService) BlankDraft() dto.AttendanceDraft {
	return dto.AttendanceDraft{
		Date:   s.now().Format(models.DateLayout),
		Status: string(models.AttendanceStatusPresent),
	}
}

// Validate checks a draft locally without contacting the API.
func (s *AttendanceService) Validate(draft dto.AttendanceDraft) error {
	if err := s.validator.Struct(draft.Trimmed()); err != nil {
		return validationError(err)
	}
	return nil
}

// Mark validates and records one day of attendance.
func (s *AttendanceService) Mark(ctx context.Context, draft dto.AttendanceDraft) (*models.AttendanceRecord, error) {
	if err := s.Validate(draft); err != nil {
		return nil, err
	}
	payload := draft.Payload()
	created, err := s.repo.Create(ctx, payload)
	if err != nil {
		s.logger.Warn("mark attendance failed",
			zap.String("employee_id", payload.EmployeeID),
			zap.String("date", payload.Date),
			zap.Error(err),
		)
		return nil, err
	}
	s.logger.Info("attendance marked",
		zap.String("employee_id", created.EmployeeID),
		zap.String("date", created.Date),
		zap.String("status", string(created.Status)),
	)
	return created, nil
}

// Stats returns per-employee totals.
func (s *AttendanceService) Stats(ctx context.Context) ([]models.AttendanceStat, error) {
	stats, err := s.repo.Stats(ctx)
	if err != nil {
		s.logger.Warn("load attendance stats failed", zap.Error(err))
		return nil, err
	}
	return stats, nil
}

func (s *AttendanceService) validateFilter(filter models.AttendanceFilter) error {
	fields := map[string]string{}
	var from, to time.Time
	var err error
	if filter.DateFrom != "" {
		if from, err = time.Parse(models.DateLayout, filter.DateFrom); err != nil {
			fields["date_from"] = "From date must use the YYYY-MM-DD format"
		}
	}
	if filter.DateTo != "" {
		if to, err = time.Parse(models.DateLayout, filter.DateTo); err != nil {
			fields["date_to"] = "To date must use the YYYY-MM-DD format"
		}
	}
	if len(fields) == 0 && !from.IsZero() && !to.IsZero() && to.Before(from) {
		fields["date_to"] = "To date must not be before from date"
	}
	if len(fields) == 0 {
		return nil
	}
	msg := fields["date_from"]
	if msg == "" {
		msg = fields["date_to"]
	}
	appErr := appErrors.Clone(appErrors.ErrValidation, msg)
	appErr.Fields = fields
	return appErr
}
