package console

import (
	"context"
	"net/http"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/hrms-lite-console/internal/dto"
	"github.com/noah-isme/hrms-lite-console/internal/models"
	appErrors "github.com/noah-isme/hrms-lite-console/pkg/errors"
)

type fakeEmployees struct {
	mu        sync.Mutex
	items     []models.Employee
	listCalls int
	deleted   []string
	createErr error
}

func (f *fakeEmployees) List(context.Context) ([]models.Employee, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.listCalls++
	out := make([]models.Employee, len(f.items))
	copy(out, f.items)
	return out, nil
}

func (f *fakeEmployees) Create(_ context.Context, d dto.EmployeeDraft) (*models.Employee, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createErr != nil {
		return nil, f.createErr
	}
	emp := models.Employee{EmployeeID: d.EmployeeID, FullName: d.FullName, Email: d.Email, Department: d.Department}
	f.items = append(f.items, emp)
	return &emp, nil
}

func (f *fakeEmployees) Delete(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deleted = append(f.deleted, id)
	kept := f.items[:0]
	for _, e := range f.items {
		if e.EmployeeID != id {
			kept = append(kept, e)
		}
	}
	f.items = kept
	return nil
}

func (f *fakeEmployees) Validate(dto.EmployeeDraft) error { return nil }

type fakeAttendance struct {
	mu      sync.Mutex
	records []models.AttendanceRecord
	filters []models.AttendanceFilter
}

func (f *fakeAttendance) List(_ context.Context, filter models.AttendanceFilter) ([]models.AttendanceRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.filters = append(f.filters, filter)
	var out []models.AttendanceRecord
	for _, r := range f.records {
		if filter.EmployeeID == "" || filter.EmployeeID == r.EmployeeID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeAttendance) Mark(_ context.Context, d dto.AttendanceDraft) (*models.AttendanceRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	rec := models.AttendanceRecord{EmployeeID: d.EmployeeID, Date: d.Date, Status: models.AttendanceStatus(d.Status)}
	f.records = append(f.records, rec)
	return &rec, nil
}

func (f *fakeAttendance) Stats(context.Context) ([]models.AttendanceStat, error) {
	return []models.AttendanceStat{{EmployeeID: "EMP001", TotalPresent: 1}}, nil
}

func (f *fakeAttendance) Validate(dto.AttendanceDraft) error { return nil }

func (f *fakeAttendance) BlankDraft() dto.AttendanceDraft {
	return dto.AttendanceDraft{Date: "2024-05-01", Status: string(models.AttendanceStatusPresent)}
}

func TestEmployeesScreenCreateReloadsList(t *testing.T) {
	src := &fakeEmployees{}
	screen := NewEmployeesScreen(src, nil)

	_, err := screen.List.Load(context.Background(), NoFilter{})
	require.NoError(t, err)
	assert.True(t, screen.List.Snapshot().Empty())

	_, err = screen.Form.Submit(context.Background(), validDraft())
	require.NoError(t, err)

	list := screen.List.Snapshot()
	require.Len(t, list.Items, 1)
	assert.Equal(t, "EMP001", list.Items[0].EmployeeID)
	assert.Equal(t, 2, src.listCalls)
}

func TestEmployeesScreenDuplicateKeepsList(t *testing.T) {
	src := &fakeEmployees{
		items:     []models.Employee{{EmployeeID: "EMP001"}},
		createErr: appErrors.Upstream(http.StatusBadRequest, "Employee ID already exists", nil),
	}
	screen := NewEmployeesScreen(src, nil)
	_, _ = screen.List.Load(context.Background(), NoFilter{})

	state, err := screen.Form.Submit(context.Background(), validDraft())

	require.Error(t, err)
	assert.Equal(t, "Employee ID already exists", state.Err)
	assert.Equal(t, validDraft(), state.Draft)
	assert.Equal(t, 1, src.listCalls)
	assert.Len(t, screen.List.Snapshot().Items, 1)
}

func TestEmployeesScreenDeleteRequiresConfirmation(t *testing.T) {
	src := &fakeEmployees{items: []models.Employee{{EmployeeID: "EMP001"}, {EmployeeID: "EMP002"}}}
	screen := NewEmployeesScreen(src, nil)
	_, _ = screen.List.Load(context.Background(), NoFilter{})

	_, err := screen.Delete.Confirm(context.Background(), "EMP001")
	assert.ErrorIs(t, err, appErrors.ErrNotConfirmed)
	assert.Empty(t, src.deleted)

	screen.Delete.Request("EMP001")
	_, err = screen.Delete.Confirm(context.Background(), "EMP001")
	require.NoError(t, err)

	assert.Equal(t, []string{"EMP001"}, src.deleted)
	items := screen.List.Snapshot().Items
	require.Len(t, items, 1)
	assert.Equal(t, "EMP002", items[0].EmployeeID)
}

func TestAttendanceScreenMarkReloadsWithFilter(t *testing.T) {
	src := &fakeAttendance{records: []models.AttendanceRecord{
		{EmployeeID: "EMP001", Date: "2024-04-01", Status: models.AttendanceStatusPresent},
		{EmployeeID: "EMP002", Date: "2024-04-01", Status: models.AttendanceStatusAbsent},
	}}
	screen := NewAttendanceScreen(src, &fakeEmployees{}, nil)

	filter := models.AttendanceFilter{EmployeeID: "EMP001"}
	state, err := screen.List.Load(context.Background(), filter)
	require.NoError(t, err)
	assert.Len(t, state.Items, 1)

	assert.Equal(t, "2024-05-01", screen.Form.Snapshot().Draft.Date)

	_, err = screen.Form.Submit(context.Background(), dto.AttendanceDraft{EmployeeID: "EMP001", Date: "2024-04-02", Status: "Absent"})
	require.NoError(t, err)

	assert.Len(t, screen.List.Snapshot().Items, 2)
	assert.Equal(t, []models.AttendanceFilter{filter, filter}, src.filters)
}

func TestNewWorkspaceWiresDashboard(t *testing.T) {
	ws := NewWorkspace("ws-1", &fakeEmployees{items: []models.Employee{{EmployeeID: "EMP001"}}}, &fakeAttendance{}, nil)

	state, err := ws.Dashboard.Stats.Compute(context.Background())

	require.NoError(t, err)
	assert.Equal(t, "ws-1", ws.ID)
	assert.Equal(t, 1, state.Stats.TotalEmployees)
	assert.Equal(t, 1, state.Stats.TotalPresent)
	assert.Equal(t, 100.0, state.Stats.OverallRate)
}
