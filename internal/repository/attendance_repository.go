package repository

import (
	"context"
	"net/http"

	"github.com/noah-isme/hrms-lite-console/internal/models"
	"github.com/noah-isme/hrms-lite-console/pkg/hrapi"
)

const (
	attendanceRoute      = "/api/attendance"
	attendanceStatsRoute = "/api/attendance/stats"
)

// AttendanceRepository reads and writes attendance through the HR API.
type AttendanceRepository struct {
	api apiClient
}

// NewAttendanceRepository constructs an AttendanceRepository.
func NewAttendanceRepository(api apiClient) *AttendanceRepository {
	return &AttendanceRepository{api: api}
}

// List returns attendance records matching the filter. Filtering happens server side.
func (r *AttendanceRepository) List(ctx context.Context, filter models.AttendanceFilter) ([]models.AttendanceRecord, error) {
	records := []models.AttendanceRecord{}
	req := hrapi.Request{Method: http.MethodGet, Route: attendanceRoute, Path: attendanceRoute, Query: filter.Query()}
	if err := r.api.Do(ctx, req, &records); err != nil {
		return nil, err
	}
	return records, nil
}

// Create posts one attendance record.
func (r *AttendanceRepository) Create(ctx context.Context, record models.NewAttendance) (*models.AttendanceRecord, error) {
	var created models.AttendanceRecord
	req := hrapi.Request{Method: http.MethodPost, Route: attendanceRoute, Path: attendanceRoute, Body: record}
	if err := r.api.Do(ctx, req, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// Stats returns per-employee present/absent totals.
func (r *AttendanceRepository) Stats(ctx context.Context) ([]models.AttendanceStat, error) {
	stats := []models.AttendanceStat{}
	req := hrapi.Request{Method: http.MethodGet, Route: attendanceStatsRoute, Path: attendanceStatsRoute}
	if err := r.api.Do(ctx, req, &stats); err != nil {
		return nil, err
	}
	for i := range stats {
		stats[i] = stats[i].Normalize()
	}
	return stats, nil
}
