package dto

import (
	"strings"

	"github.com/noah-isme/hrms-lite-console/internal/models"
)

// EmployeeDraft is the unsaved employee form input.
type EmployeeDraft struct {
	EmployeeID string `form:"employee_id" json:"employee_id" validate:"required,max=50"`
	FullName   string `form:"full_name" json:"full_name" validate:"required,max=100"`
	Email      string `form:"email" json:"email" validate:"required,email"`
	Department string `form:"department" json:"department" validate:"required,max=100"`
}

// Trimmed strips surrounding whitespace from every field.
func (d EmployeeDraft) Trimmed() EmployeeDraft {
	return EmployeeDraft{
		EmployeeID: strings.TrimSpace(d.EmployeeID),
		FullName:   strings.TrimSpace(d.FullName),
		Email:      strings.TrimSpace(d.Email),
		Department: strings.TrimSpace(d.Department),
	}
}

// Payload converts the draft into the API create body.
func (d EmployeeDraft) Payload() models.NewEmployee {
	t := d.Trimmed()
	return models.NewEmployee{EmployeeID: t.EmployeeID, FullName: t.FullName, Email: t.Email, Department: t.Department}
}

// AttendanceDraft is the unsaved attendance form input.
type AttendanceDraft struct {
	EmployeeID string `form:"employee_id" json:"employee_id" validate:"required"`
	Date       string `form:"date" json:"date" validate:"required,datetime=2006-01-02,notfuture"`
	Status     string `form:"status" json:"status" validate:"required,oneof=Present Absent"`
}

// Trimmed strips surrounding whitespace from every field.
func (d AttendanceDraft) Trimmed() AttendanceDraft {
	return AttendanceDraft{
		EmployeeID: strings.TrimSpace(d.EmployeeID),
		Date:       strings.TrimSpace(d.Date),
		Status:     strings.TrimSpace(d.Status),
	}
}

// Payload converts the draft into the API create body.
func (d AttendanceDraft) Payload() models.NewAttendance {
	t := d.Trimmed()
	return models.NewAttendance{EmployeeID: t.EmployeeID, Date: t.Date, Status: models.AttendanceStatus(t.Status)}
}
