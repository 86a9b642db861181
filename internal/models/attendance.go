package models

import (
	"math"
	"net/url"
)

// DateLayout is the calendar date format used on the wire.
const DateLayout = "2006-01-02"

// AttendanceStatus represents the status for attendance records.
type AttendanceStatus string

const (
	AttendanceStatusPresent AttendanceStatus = "Present"
	AttendanceStatusAbsent  AttendanceStatus = "Absent"
)

// Valid returns true when the status is a supported value.
func (s AttendanceStatus) Valid() bool {
	switch s {
	case AttendanceStatusPresent, AttendanceStatusAbsent:
		return true
	default:
		return false
	}
}

// AttendanceRecord is one day of attendance for one employee.
type AttendanceRecord struct {
	ID           string           `json:"_id,omitempty"`
	EmployeeID   string           `json:"employee_id"`
	Date         string           `json:"date"`
	Status       AttendanceStatus `json:"status"`
	EmployeeName *string          `json:"employee_name,omitempty"`
}

// DisplayName returns the joined employee name, falling back to the ID.
func (r AttendanceRecord) DisplayName() string {
	if r.EmployeeName != nil && *r.EmployeeName != "" {
		return *r.EmployeeName
	}
	return r.EmployeeID
}

// NewAttendance is the create payload accepted by POST /api/attendance.
type NewAttendance struct {
	EmployeeID string           `json:"employee_id"`
	Date       string           `json:"date"`
	Status     AttendanceStatus `json:"status"`
}

// AttendanceFilter narrows GET /api/attendance. Empty fields are not sent.
type AttendanceFilter struct {
	EmployeeID string `form:"employee_id" json:"employee_id,omitempty"`
	DateFrom   string `form:"date_from" json:"date_from,omitempty"`
	DateTo     string `form:"date_to" json:"date_to,omitempty"`
}

// Query encodes the non-empty filter fields.
func (f AttendanceFilter) Query() url.Values {
	q := url.Values{}
	if f.EmployeeID != "" {
		q.Set("employee_id", f.EmployeeID)
	}
	if f.DateFrom != "" {
		q.Set("date_from", f.DateFrom)
	}
	if f.DateTo != "" {
		q.Set("date_to", f.DateTo)
	}
	return q
}

// IsZero reports whether no filter is applied.
func (f AttendanceFilter) IsZero() bool {
	return f == AttendanceFilter{}
}

// AttendanceStat is the per-employee aggregate served by /api/attendance/stats.
type AttendanceStat struct {
	EmployeeID   string `json:"employee_id"`
	EmployeeName string `json:"employee_name"`
	TotalPresent int    `json:"total_present"`
	TotalAbsent  int    `json:"total_absent"`
	TotalDays    int    `json:"total_days"`
}

// Normalize pins TotalDays to present + absent.
func (s AttendanceStat) Normalize() AttendanceStat {
	s.TotalDays = s.TotalPresent + s.TotalAbsent
	return s
}

// AttendanceRate is present/days*100 rounded to one decimal, 0 when there are no days.
func (s AttendanceStat) AttendanceRate() float64 {
	return Rate(s.TotalPresent, s.TotalPresent+s.TotalAbsent)
}

// Rate computes a one-decimal percentage guarded against a zero denominator.
func Rate(present, days int) float64 {
	if days <= 0 {
		return 0
	}
	return math.Round(float64(present)/float64(days)*1000) / 10
}
