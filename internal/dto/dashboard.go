package dto

import "github.com/noah-isme/hrms-lite-console/internal/models"

// RateTier buckets an attendance rate for display.
type RateTier string

const (
	RateTierExcellent RateTier = "excellent"
	RateTierGood      RateTier = "good"
	RateTierLow       RateTier = "low"
)

// TierFor maps a percentage onto its display tier.
func TierFor(rate float64) RateTier {
	switch {
	case rate >= 90:
		return RateTierExcellent
	case rate >= 75:
		return RateTierGood
	default:
		return RateTierLow
	}
}

// DashboardStats is the aggregate summary rendered on the dashboard.
type DashboardStats struct {
	TotalEmployees int                 `json:"total_employees"`
	TotalPresent   int                 `json:"total_present"`
	TotalAbsent    int                 `json:"total_absent"`
	OverallRate    float64             `json:"overall_rate"`
	Rows           []AttendanceStatRow `json:"rows"`
}

// AttendanceStatRow is one employee line of the dashboard table.
type AttendanceStatRow struct {
	models.AttendanceStat
	AttendanceRate float64  `json:"attendance_rate"`
	Tier           RateTier `json:"tier"`
}
