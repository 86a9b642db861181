package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/hrms-lite-console/internal/service"
	appErrors "github.com/noah-isme/hrms-lite-console/pkg/errors"
	"github.com/noah-isme/hrms-lite-console/pkg/export"
	"github.com/noah-isme/hrms-lite-console/pkg/response"
)

type dashboardExporter interface {
	Dashboard(ctx context.Context, format export.Format) (*service.ExportFile, error)
}

// DashboardHandler serves the dashboard page and its JSON twin.
type DashboardHandler struct {
	pages          *Pages
	exports        dashboardExporter
	exportsEnabled bool
}

// NewDashboardHandler constructs the handler.
func NewDashboardHandler(pages *Pages, exports dashboardExporter, exportsEnabled bool) *DashboardHandler {
	return &DashboardHandler{pages: pages, exports: exports, exportsEnabled: exportsEnabled && exports != nil}
}

// Index computes and renders the dashboard.
func (h *DashboardHandler) Index(c *gin.Context) {
	ws := workspaceOrAbort(c, h.pages)
	if ws == nil {
		return
	}
	_, err := ws.Dashboard.Stats.Compute(c.Request.Context())
	if errors.Is(err, appErrors.ErrSuperseded) {
		_, err = ws.Dashboard.Stats.Await(c.Request.Context())
	}
	loadOutcome(c, err)
	h.pages.render(c, http.StatusOK, pageDashboard, dashboardView{
		pageView:       newPageView(c, "Dashboard", "dashboard"),
		State:          ws.Dashboard.Stats.Settled(),
		ExportsEnabled: h.exportsEnabled,
	})
}

// Stats godoc
// @Summary Dashboard attendance summary
// @Tags Dashboard
// @Produce json
// @Success 200 {object} response.Envelope{data=dto.DashboardStats}
// @Failure 502 {object} response.Envelope
// @Failure 503 {object} response.Envelope
// @Router /dashboard/stats [get]
func (h *DashboardHandler) Stats(c *gin.Context) {
	ws := workspaceOrAbort(c, h.pages)
	if ws == nil {
		return
	}
	state, err := ws.Dashboard.Stats.Compute(c.Request.Context())
	if errors.Is(err, appErrors.ErrSuperseded) {
		// a newer computation owns the state; report what it produces
		state, err = ws.Dashboard.Stats.Await(c.Request.Context())
		if err == nil && state.Failed() {
			err = appErrors.Upstream(appErrors.ErrUpstream.Status, state.Err, nil)
		}
	}
	if err != nil {
		response.Error(c, gatewayError(err))
		return
	}
	response.JSON(c, http.StatusOK, state.Stats, map[string]interface{}{
		"generation": state.Generation,
		"loaded_at":  state.LoadedAt,
	})
}

// Export godoc
// @Summary Export the dashboard attendance summary
// @Tags Dashboard
// @Produce octet-stream
// @Param format query string false "csv, pdf or xlsx" default(csv)
// @Success 200 {file} file
// @Failure 400 {object} response.Envelope
// @Router /dashboard/export [get]
func (h *DashboardHandler) Export(c *gin.Context) {
	if !h.exportsEnabled {
		response.Error(c, appErrors.ErrExportsDisabled)
		return
	}
	format, err := export.ParseFormat(c.Query("format"))
	if err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, err.Error()))
		return
	}
	file, err := h.exports.Dashboard(c.Request.Context(), format)
	if err != nil {
		response.Error(c, gatewayError(err))
		return
	}
	response.Attachment(c, file.Filename, file.ContentType, file.Body)
}

// gatewayError reports HR API failures as 502 with the upstream detail, or
// the generic upstream message when there is none.
func gatewayError(err error) error {
	appErr := appErrors.FromError(err)
	if appErr.Code != appErrors.ErrUpstream.Code {
		return appErr
	}
	clone := appErrors.Clone(appErr, "")
	clone.Status = appErrors.ErrUpstream.Status
	return clone
}
