package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/hrms-lite-console/internal/middleware"
	"github.com/noah-isme/hrms-lite-console/internal/models"
	"github.com/noah-isme/hrms-lite-console/internal/repository"
	"github.com/noah-isme/hrms-lite-console/internal/service"
	"github.com/noah-isme/hrms-lite-console/pkg/hrapi"
)

// fakeHRAPI is an in-memory stand-in for the HR REST API.
type fakeHRAPI struct {
	mu           sync.Mutex
	employees    []models.Employee
	attendance   []models.AttendanceRecord
	deletes      []string
	lastQuery    url.Values
	failStats    bool
	attendanceID int

	// when set, GET /api/employees signals arrival and waits for hold to close
	hold    chan struct{}
	arrived chan struct{}
}

func (f *fakeHRAPI) handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
	})
	mux.HandleFunc("GET /api/employees", func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		hold, arrived := f.hold, f.arrived
		f.mu.Unlock()
		if hold != nil {
			arrived <- struct{}{}
			<-hold
		}
		f.mu.Lock()
		defer f.mu.Unlock()
		writeJSON(w, http.StatusOK, f.employees)
	})
	mux.HandleFunc("POST /api/employees", func(w http.ResponseWriter, r *http.Request) {
		var in models.NewEmployee
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
			writeJSON(w, http.StatusUnprocessableEntity, map[string]string{"detail": "invalid body"})
			return
		}
		f.mu.Lock()
		defer f.mu.Unlock()
		for _, e := range f.employees {
			if e.EmployeeID == in.EmployeeID {
				writeJSON(w, http.StatusBadRequest, map[string]string{"detail": "Employee ID already exists"})
				return
			}
		}
		emp := models.Employee{ID: in.EmployeeID, EmployeeID: in.EmployeeID, FullName: in.FullName, Email: in.Email, Department: in.Department}
		f.employees = append(f.employees, emp)
		writeJSON(w, http.StatusCreated, emp)
	})
	mux.HandleFunc("DELETE /api/employees/{id}", func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		defer f.mu.Unlock()
		id := r.PathValue("id")
		f.deletes = append(f.deletes, id)
		kept := f.employees[:0]
		found := false
		for _, e := range f.employees {
			if e.EmployeeID == id {
				found = true
				continue
			}
			kept = append(kept, e)
		}
		f.employees = kept
		if !found {
			writeJSON(w, http.StatusNotFound, map[string]string{"detail": "Employee not found"})
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"message": "Employee deleted successfully"})
	})
	mux.HandleFunc("GET /api/attendance", func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		defer f.mu.Unlock()
		f.lastQuery = r.URL.Query()
		filter := models.AttendanceFilter{
			EmployeeID: r.URL.Query().Get("employee_id"),
			DateFrom:   r.URL.Query().Get("date_from"),
			DateTo:     r.URL.Query().Get("date_to"),
		}
		out := []models.AttendanceRecord{}
		for _, rec := range f.attendance {
			if (filter.EmployeeID == "" || filter.EmployeeID == rec.EmployeeID) && inDateRange(rec.Date, filter.DateFrom, filter.DateTo) {
				out = append(out, rec)
			}
		}
		writeJSON(w, http.StatusOK, out)
	})
	mux.HandleFunc("POST /api/attendance", func(w http.ResponseWriter, r *http.Request) {
		var in models.NewAttendance
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
			writeJSON(w, http.StatusUnprocessableEntity, map[string]string{"detail": "invalid body"})
			return
		}
		f.mu.Lock()
		defer f.mu.Unlock()
		f.attendanceID++
		rec := models.AttendanceRecord{ID: "att", EmployeeID: in.EmployeeID, Date: in.Date, Status: in.Status}
		f.attendance = append(f.attendance, rec)
		writeJSON(w, http.StatusCreated, rec)
	})
	mux.HandleFunc("GET /api/attendance/stats", func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		defer f.mu.Unlock()
		if f.failStats {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		byID := map[string]*models.AttendanceStat{}
		stats := []*models.AttendanceStat{}
		for _, e := range f.employees {
			s := &models.AttendanceStat{EmployeeID: e.EmployeeID, EmployeeName: e.FullName}
			byID[e.EmployeeID] = s
			stats = append(stats, s)
		}
		for _, rec := range f.attendance {
			s, ok := byID[rec.EmployeeID]
			if !ok {
				continue
			}
			if rec.Status == models.AttendanceStatusPresent {
				s.TotalPresent++
			} else {
				s.TotalAbsent++
			}
			s.TotalDays++
		}
		writeJSON(w, http.StatusOK, stats)
	})
	return mux
}

// inDateRange reports whether date falls inside the inclusive range. Empty
// bounds are open.
func inDateRange(date, from, to string) bool {
	if from != "" && date < from {
		return false
	}
	if to != "" && date > to {
		return false
	}
	return true
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

type testConsole struct {
	t      *testing.T
	api    *fakeHRAPI
	router *gin.Engine
	cookie *http.Cookie
}

func newTestConsole(t *testing.T, api *fakeHRAPI) *testConsole {
	t.Helper()
	gin.SetMode(gin.TestMode)

	server := httptest.NewServer(api.handler())
	t.Cleanup(server.Close)

	client := hrapi.NewClient(hrapi.Config{BaseURL: server.URL, Timeout: 5 * time.Second})
	clock := func() time.Time { return time.Date(2024, time.May, 10, 12, 0, 0, 0, time.Local) }
	employees := service.NewEmployeeService(repository.NewEmployeeRepository(client), nil, nil)
	attendance := service.NewAttendanceService(repository.NewAttendanceRepository(client), nil, nil, clock)
	workspaces := service.NewWorkspaceService(employees, attendance, service.WorkspaceConfig{TTL: time.Hour}, nil, nil)
	exports := service.NewExportService(employees, attendance, nil, service.ExportConfig{Enabled: true}, nil)

	pages := MustPages()
	r := gin.New()
	health := NewHealthHandler(client, nil, time.Second, nil)
	r.GET("/health", health.Health)
	r.GET("/ready", health.Ready)
	screens := r.Group("")
	screens.Use(middleware.Workspace(workspaces, middleware.WorkspaceCookie{Name: "ws", TTL: time.Hour}))
	Routes{
		Employees:  NewEmployeeHandler(pages),
		Attendance: NewAttendanceHandler(pages, exports, true),
		Dashboard:  NewDashboardHandler(pages, exports, true),
	}.Register(screens)

	return &testConsole{t: t, api: api, router: r}
}

func (tc *testConsole) get(path string) *httptest.ResponseRecorder {
	return tc.do(httptest.NewRequest(http.MethodGet, path, nil))
}

func (tc *testConsole) post(path string, form url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return tc.do(req)
}

func (tc *testConsole) do(req *http.Request) *httptest.ResponseRecorder {
	if tc.cookie != nil {
		req.AddCookie(tc.cookie)
	}
	rec := httptest.NewRecorder()
	tc.router.ServeHTTP(rec, req)
	for _, c := range rec.Result().Cookies() {
		if c.Name == "ws" {
			tc.cookie = c
		}
	}
	return rec
}

// send serves req with the current workspace cookie without updating it, so
// it is safe to call from several goroutines.
func (tc *testConsole) send(req *http.Request) *httptest.ResponseRecorder {
	if tc.cookie != nil {
		req.AddCookie(tc.cookie)
	}
	rec := httptest.NewRecorder()
	tc.router.ServeHTTP(rec, req)
	return rec
}

func newGinContext(rec *httptest.ResponseRecorder, path string) (*gin.Context, *gin.Engine) {
	gin.SetMode(gin.TestMode)
	c, engine := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodGet, path, nil)
	return c, engine
}
