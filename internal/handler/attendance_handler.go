package handler

import (
	"context"
	"errors"
	"html/template"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/hrms-lite-console/internal/console"
	"github.com/noah-isme/hrms-lite-console/internal/dto"
	"github.com/noah-isme/hrms-lite-console/internal/models"
	"github.com/noah-isme/hrms-lite-console/internal/service"
	appErrors "github.com/noah-isme/hrms-lite-console/pkg/errors"
	"github.com/noah-isme/hrms-lite-console/pkg/export"
	"github.com/noah-isme/hrms-lite-console/pkg/response"
)

type attendanceExporter interface {
	Attendance(ctx context.Context, filter models.AttendanceFilter, format export.Format) (*service.ExportFile, error)
}

// AttendanceHandler serves the attendance screen.
type AttendanceHandler struct {
	pages          *Pages
	exports        attendanceExporter
	exportsEnabled bool
	now            func() time.Time
}

// NewAttendanceHandler constructs the handler. exports may be nil when
// downloads are disabled.
func NewAttendanceHandler(pages *Pages, exports attendanceExporter, exportsEnabled bool) *AttendanceHandler {
	return &AttendanceHandler{pages: pages, exports: exports, exportsEnabled: exportsEnabled && exports != nil, now: time.Now}
}

// Index applies the query-string filter, loads the list and renders the screen.
func (h *AttendanceHandler) Index(c *gin.Context) {
	ws := workspaceOrAbort(c, h.pages)
	if ws == nil {
		return
	}
	h.load(c, ws.Attendance, bindFilter(c))
	h.renderScreen(c, http.StatusOK, ws.Attendance)
}

// New opens the mark-attendance form.
func (h *AttendanceHandler) New(c *gin.Context) {
	ws := workspaceOrAbort(c, h.pages)
	if ws == nil {
		return
	}
	ws.Attendance.Form.Open()
	h.load(c, ws.Attendance, bindFilter(c))
	h.renderScreen(c, http.StatusOK, ws.Attendance)
}

// Cancel closes the mark-attendance form.
func (h *AttendanceHandler) Cancel(c *gin.Context) {
	ws := workspaceOrAbort(c, h.pages)
	if ws == nil {
		return
	}
	ws.Attendance.Form.Close()
	redirectSeeOther(c, attendanceLocation(ws.Attendance.List.Filter()))
}

// Create submits the mark-attendance form. The list is reloaded with the
// filter in effect.
func (h *AttendanceHandler) Create(c *gin.Context) {
	ws := workspaceOrAbort(c, h.pages)
	if ws == nil {
		return
	}
	var draft dto.AttendanceDraft
	if err := c.ShouldBind(&draft); err != nil {
		_ = c.Error(err)
	}
	_, err := ws.Attendance.Form.Submit(c.Request.Context(), draft)
	if err == nil {
		redirectSeeOther(c, attendanceLocation(ws.Attendance.List.Filter()))
		return
	}
	_ = c.Error(err)
	status := http.StatusUnprocessableEntity
	if errors.Is(err, appErrors.ErrSubmitInFlight) {
		status = http.StatusConflict
	}
	if ws.Attendance.Employees.Snapshot().Status == console.StatusIdle {
		_, loadErr := ws.Attendance.Employees.Load(c.Request.Context(), console.NoFilter{})
		settleList(c, ws.Attendance.Employees, loadErr)
	}
	h.renderScreen(c, status, ws.Attendance)
}

// Export godoc
// @Summary Export attendance records
// @Tags Attendance
// @Produce octet-stream
// @Param employee_id query string false "Employee ID"
// @Param date_from query string false "Inclusive start date (YYYY-MM-DD)"
// @Param date_to query string false "Inclusive end date (YYYY-MM-DD)"
// @Param format query string false "csv, pdf or xlsx" default(csv)
// @Success 200 {file} file
// @Failure 400 {object} response.Envelope
// @Router /attendance/export [get]
func (h *AttendanceHandler) Export(c *gin.Context) {
	if !h.exportsEnabled {
		response.Error(c, appErrors.ErrExportsDisabled)
		return
	}
	format, err := export.ParseFormat(c.Query("format"))
	if err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, err.Error()))
		return
	}
	file, err := h.exports.Attendance(c.Request.Context(), bindFilter(c), format)
	if err != nil {
		response.Error(c, gatewayError(err))
		return
	}
	response.Attachment(c, file.Filename, file.ContentType, file.Body)
}

func (h *AttendanceHandler) load(c *gin.Context, screen *console.AttendanceScreen, filter models.AttendanceFilter) {
	ctx := c.Request.Context()
	_, err := screen.Employees.Load(ctx, console.NoFilter{})
	settleList(c, screen.Employees, err)
	_, err = screen.List.Load(ctx, filter)
	settleList(c, screen.List, err)
}

func (h *AttendanceHandler) renderScreen(c *gin.Context, status int, screen *console.AttendanceScreen) {
	list := screen.List.Settled()
	h.pages.render(c, status, pageAttendance, attendanceView{
		pageView:       newPageView(c, "Attendance", "attendance"),
		List:           list,
		Employees:      screen.Employees.Settled(),
		Form:           screen.Form.Snapshot(),
		Filter:         list.Filter,
		Query:          template.URL(list.Filter.Query().Encode()),
		Today:          h.now().Format(models.DateLayout),
		ExportsEnabled: h.exportsEnabled,
	})
}

func bindFilter(c *gin.Context) models.AttendanceFilter {
	var filter models.AttendanceFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		_ = c.Error(err)
	}
	filter.EmployeeID = strings.TrimSpace(filter.EmployeeID)
	filter.DateFrom = strings.TrimSpace(filter.DateFrom)
	filter.DateTo = strings.TrimSpace(filter.DateTo)
	return filter
}

func attendanceLocation(filter models.AttendanceFilter) string {
	if filter.IsZero() {
		return "/attendance"
	}
	return "/attendance?" + filter.Query().Encode()
}
