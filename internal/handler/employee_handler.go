package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/hrms-lite-console/internal/console"
	"github.com/noah-isme/hrms-lite-console/internal/dto"
	"github.com/noah-isme/hrms-lite-console/internal/models"
	appErrors "github.com/noah-isme/hrms-lite-console/pkg/errors"
)

// EmployeeHandler serves the employees screen.
type EmployeeHandler struct {
	pages *Pages
}

// NewEmployeeHandler constructs the handler.
func NewEmployeeHandler(pages *Pages) *EmployeeHandler {
	return &EmployeeHandler{pages: pages}
}

// Index loads the employee list and renders the screen.
func (h *EmployeeHandler) Index(c *gin.Context) {
	ws := workspaceOrAbort(c, h.pages)
	if ws == nil {
		return
	}
	_, err := ws.Employees.List.Load(c.Request.Context(), console.NoFilter{})
	settleList(c, ws.Employees.List, err)
	h.renderScreen(c, http.StatusOK, ws.Employees)
}

// New opens the add-employee form.
func (h *EmployeeHandler) New(c *gin.Context) {
	ws := workspaceOrAbort(c, h.pages)
	if ws == nil {
		return
	}
	ws.Employees.Form.Open()
	_, err := ws.Employees.List.Load(c.Request.Context(), console.NoFilter{})
	settleList(c, ws.Employees.List, err)
	h.renderScreen(c, http.StatusOK, ws.Employees)
}

// Cancel closes the add-employee form, keeping the draft.
func (h *EmployeeHandler) Cancel(c *gin.Context) {
	ws := workspaceOrAbort(c, h.pages)
	if ws == nil {
		return
	}
	ws.Employees.Form.Close()
	redirectSeeOther(c, "/employees")
}

// Create submits the add-employee form. Success redirects back to the list;
// failure re-renders the form with the draft and the reason.
func (h *EmployeeHandler) Create(c *gin.Context) {
	ws := workspaceOrAbort(c, h.pages)
	if ws == nil {
		return
	}
	var draft dto.EmployeeDraft
	if err := c.ShouldBind(&draft); err != nil {
		_ = c.Error(err)
	}
	_, err := ws.Employees.Form.Submit(c.Request.Context(), draft)
	if err == nil {
		redirectSeeOther(c, "/employees")
		return
	}
	_ = c.Error(err)
	status := http.StatusUnprocessableEntity
	if errors.Is(err, appErrors.ErrSubmitInFlight) {
		status = http.StatusConflict
	}
	if ws.Employees.List.Snapshot().Status == console.StatusIdle {
		_, loadErr := ws.Employees.List.Load(c.Request.Context(), console.NoFilter{})
		settleList(c, ws.Employees.List, loadErr)
	}
	h.renderScreen(c, status, ws.Employees)
}

// ConfirmDelete asks the administrator to confirm deleting one employee.
func (h *EmployeeHandler) ConfirmDelete(c *gin.Context) {
	ws := workspaceOrAbort(c, h.pages)
	if ws == nil {
		return
	}
	employeeID := c.Param("employee_id")
	state := ws.Employees.Delete.Request(employeeID)

	employee := models.Employee{EmployeeID: employeeID}
	for _, e := range ws.Employees.List.Settled().Items {
		if e.EmployeeID == employeeID {
			employee = e
			break
		}
	}
	h.pages.render(c, http.StatusOK, pageConfirmDelete, confirmDeleteView{
		pageView: newPageView(c, "Delete employee", "employees"),
		Employee: employee,
		Confirm:  state,
	})
}

// Delete performs a previously requested deletion. Without a matching
// request nothing is sent to the HR API.
func (h *EmployeeHandler) Delete(c *gin.Context) {
	ws := workspaceOrAbort(c, h.pages)
	if ws == nil {
		return
	}
	employeeID := c.Param("employee_id")
	state, err := ws.Employees.Delete.Confirm(c.Request.Context(), employeeID)
	if err == nil {
		redirectSeeOther(c, "/employees")
		return
	}
	_ = c.Error(err)

	message := state.Err
	status := appErrors.FromError(err).Status
	switch {
	case errors.Is(err, appErrors.ErrNotConfirmed):
		message = "Deletion of " + employeeID + " was not confirmed. Nothing was deleted."
		status = http.StatusConflict
	case errors.Is(err, appErrors.ErrSubmitInFlight):
		message = "A deletion is already in progress."
		status = http.StatusConflict
	case status < http.StatusBadRequest:
		status = http.StatusBadGateway
	}
	h.pages.render(c, status, pageAlert, alertView{
		pageView: newPageView(c, "Delete failed", "employees"),
		Message:  message,
		Back:     "/employees",
	})
}

// CancelDelete drops the pending deletion.
func (h *EmployeeHandler) CancelDelete(c *gin.Context) {
	ws := workspaceOrAbort(c, h.pages)
	if ws == nil {
		return
	}
	ws.Employees.Delete.Cancel()
	redirectSeeOther(c, "/employees")
}

func (h *EmployeeHandler) renderScreen(c *gin.Context, status int, screen *console.EmployeesScreen) {
	pending, _ := screen.Delete.Pending()
	h.pages.render(c, status, pageEmployees, employeesView{
		pageView:      newPageView(c, "Employees", "employees"),
		List:          screen.List.Settled(),
		Form:          screen.Form.Snapshot(),
		PendingDelete: pending,
	})
}
