package handler

import (
	"embed"
	"fmt"
	"html/template"
	"net/url"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/render"

	"github.com/noah-isme/hrms-lite-console/internal/console"
	"github.com/noah-isme/hrms-lite-console/internal/dto"
	"github.com/noah-isme/hrms-lite-console/internal/models"
	"github.com/noah-isme/hrms-lite-console/pkg/middleware/requestid"
)

//go:embed templates/*.html
var templatesFS embed.FS

const (
	pageDashboard     = "dashboard.html"
	pageEmployees     = "employees.html"
	pageConfirmDelete = "confirm_delete.html"
	pageAttendance    = "attendance.html"
	pageAlert         = "alert.html"
)

var templateFuncs = template.FuncMap{
	"rate":        formatRate,
	"urlpath":     url.PathEscape,
	"exportQuery": exportQuery,
}

func formatRate(v float64) string {
	return fmt.Sprintf("%.1f%%", v)
}

// exportQuery adds format to an already encoded filter query.
func exportQuery(query template.URL, format string) template.URL {
	values, _ := url.ParseQuery(string(query))
	values.Set("format", format)
	return template.URL(values.Encode())
}

// Pages holds one parsed template per console page, each sharing the layout.
type Pages struct {
	templates map[string]*template.Template
}

// NewPages parses the embedded templates.
func NewPages() (*Pages, error) {
	pages := &Pages{templates: map[string]*template.Template{}}
	for _, name := range []string{pageDashboard, pageEmployees, pageConfirmDelete, pageAttendance, pageAlert} {
		tmpl, err := template.New(name).Funcs(templateFuncs).ParseFS(templatesFS, "templates/layout.html", "templates/"+name)
		if err != nil {
			return nil, fmt.Errorf("parse %s: %w", name, err)
		}
		pages.templates[name] = tmpl
	}
	return pages, nil
}

// MustPages is NewPages for program start-up.
func MustPages() *Pages {
	pages, err := NewPages()
	if err != nil {
		panic(err)
	}
	return pages
}

func (p *Pages) render(c *gin.Context, status int, name string, data interface{}) {
	c.Header("Cache-Control", "no-store")
	c.Render(status, render.HTML{Template: p.templates[name], Name: "layout", Data: data})
}

type pageView struct {
	Title     string
	Active    string
	RequestID string
}

func newPageView(c *gin.Context, title, active string) pageView {
	return pageView{Title: title, Active: active, RequestID: requestid.Value(c)}
}

type dashboardView struct {
	pageView
	State          console.DashboardState
	ExportsEnabled bool
}

type employeesView struct {
	pageView
	List          console.ListState[models.Employee, console.NoFilter]
	Form          console.FormState[dto.EmployeeDraft]
	PendingDelete string
}

type confirmDeleteView struct {
	pageView
	Employee models.Employee
	Confirm  console.ConfirmState[string]
}

type attendanceView struct {
	pageView
	List           console.ListState[models.AttendanceRecord, models.AttendanceFilter]
	Employees      console.ListState[models.Employee, console.NoFilter]
	Form           console.FormState[dto.AttendanceDraft]
	Filter         models.AttendanceFilter
	Query          template.URL
	Today          string
	ExportsEnabled bool
}

type alertView struct {
	pageView
	Message string
	Back    string
}
