package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Routes groups the console handlers for registration.
type Routes struct {
	Employees  *EmployeeHandler
	Attendance *AttendanceHandler
	Dashboard  *DashboardHandler
}

// Register mounts the console screens. Every route expects the workspace
// middleware to have run.
func (rt Routes) Register(r gin.IRouter) {
	r.GET("/", func(c *gin.Context) { c.Redirect(http.StatusFound, "/dashboard") })

	r.GET("/dashboard", rt.Dashboard.Index)
	r.GET("/dashboard/stats", rt.Dashboard.Stats)
	r.GET("/dashboard/export", rt.Dashboard.Export)

	r.GET("/employees", rt.Employees.Index)
	r.GET("/employees/new", rt.Employees.New)
	r.POST("/employees", rt.Employees.Create)
	r.POST("/employees/cancel", rt.Employees.Cancel)
	r.POST("/employees/delete/cancel", rt.Employees.CancelDelete)
	r.GET("/employees/:employee_id/delete", rt.Employees.ConfirmDelete)
	r.POST("/employees/:employee_id/delete", rt.Employees.Delete)

	r.GET("/attendance", rt.Attendance.Index)
	r.GET("/attendance/new", rt.Attendance.New)
	r.GET("/attendance/export", rt.Attendance.Export)
	r.POST("/attendance", rt.Attendance.Create)
	r.POST("/attendance/cancel", rt.Attendance.Cancel)
}
