package handler

import (
	"net/http"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/hrms-lite-console/internal/models"
)

func seededAPI() *fakeHRAPI {
	return &fakeHRAPI{
		employees: []models.Employee{
			{EmployeeID: "EMP001", FullName: "Jane Doe"},
			{EmployeeID: "EMP002", FullName: "John Roe"},
		},
		attendance: []models.AttendanceRecord{
			{EmployeeID: "EMP001", Date: "2024-05-01", Status: models.AttendanceStatusPresent},
			{EmployeeID: "EMP001", Date: "2024-05-03", Status: models.AttendanceStatusAbsent},
			{EmployeeID: "EMP002", Date: "2024-05-01", Status: models.AttendanceStatusPresent},
		},
	}
}

func TestAttendanceHandlerForwardsFilter(t *testing.T) {
	api := seededAPI()
	tc := newTestConsole(t, api)

	rec := tc.get("/attendance?employee_id=EMP001&date_from=2024-05-01&date_to=2024-05-01")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "EMP001", api.lastQuery.Get("employee_id"))
	assert.Equal(t, "2024-05-01", api.lastQuery.Get("date_from"))
	assert.Equal(t, "2024-05-01", api.lastQuery.Get("date_to"))
	body := rec.Body.String()
	assert.Contains(t, body, "<td>2024-05-01</td>")
	assert.NotContains(t, body, "<td>2024-05-03</td>")
}

func TestAttendanceHandlerOmitsEmptyFilters(t *testing.T) {
	api := seededAPI()
	tc := newTestConsole(t, api)

	tc.get("/attendance")

	assert.Empty(t, api.lastQuery)
}

func TestAttendanceHandlerEmptyFilterResult(t *testing.T) {
	tc := newTestConsole(t, seededAPI())

	rec := tc.get("/attendance?date_from=2023-01-01&date_to=2023-01-31")

	assert.Contains(t, rec.Body.String(), "No attendance records match the filter.")
}

func TestAttendanceHandlerMarkReloadsWithFilter(t *testing.T) {
	api := seededAPI()
	tc := newTestConsole(t, api)
	tc.get("/attendance/new?employee_id=EMP002")

	rec := tc.post("/attendance", url.Values{
		"employee_id": {"EMP002"},
		"date":        {"2024-05-02"},
		"status":      {"Absent"},
	})

	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/attendance?employee_id=EMP002", rec.Header().Get("Location"))
	assert.Equal(t, "EMP002", api.lastQuery.Get("employee_id"))
	assert.Len(t, api.attendance, 4)
}

func TestAttendanceHandlerRejectsFutureDate(t *testing.T) {
	api := seededAPI()
	tc := newTestConsole(t, api)

	rec := tc.post("/attendance", url.Values{
		"employee_id": {"EMP001"},
		"date":        {"2024-05-11"},
		"status":      {"Present"},
	})

	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, rec.Body.String(), "Attendance date cannot be in the future")
	assert.Contains(t, rec.Body.String(), `value="2024-05-11"`)
	assert.Len(t, api.attendance, 3)
}

func TestAttendanceHandlerNewDefaultsToToday(t *testing.T) {
	tc := newTestConsole(t, seededAPI())

	rec := tc.get("/attendance/new")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `value="2024-05-10" required`)
}

func TestAttendanceHandlerExportCSV(t *testing.T) {
	tc := newTestConsole(t, seededAPI())

	rec := tc.get("/attendance/export?employee_id=EMP002&format=csv")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/csv")
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "attachment;")
	assert.Contains(t, rec.Body.String(), "EMP002")
	assert.NotContains(t, rec.Body.String(), "EMP001")
}

func TestAttendanceHandlerExportRejectsUnknownFormat(t *testing.T) {
	tc := newTestConsole(t, seededAPI())

	rec := tc.get("/attendance/export?format=docx")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
