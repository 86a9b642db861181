package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/hrms-lite-console/internal/console"
	"github.com/noah-isme/hrms-lite-console/internal/middleware"
	appErrors "github.com/noah-isme/hrms-lite-console/pkg/errors"
)

// workspaceOrAbort returns the caller's workspace. Without one the request is
// answered with an alert page and nil is returned.
func workspaceOrAbort(c *gin.Context, pages *Pages) *console.Workspace {
	ws := middleware.WorkspaceFrom(c)
	if ws == nil {
		_ = c.Error(appErrors.Clone(appErrors.ErrInternal, "workspace missing from context"))
		pages.render(c, http.StatusInternalServerError, pageAlert, alertView{
			pageView: newPageView(c, "Error", ""),
			Message:  "Your session could not be restored. Reload the page to start a new one.",
			Back:     "/",
		})
		return nil
	}
	return ws
}

// loadOutcome records a controller failure on the gin context for the access
// log. Superseded loads are expected under concurrent requests and not recorded.
func loadOutcome(c *gin.Context, err error) {
	if err == nil || errors.Is(err, appErrors.ErrSuperseded) {
		return
	}
	_ = c.Error(err)
}

// settleList waits for the newer load when this request's load was overtaken,
// so the rendered page carries that load's result instead of a loading state.
func settleList[T any, F any](c *gin.Context, list *console.ListController[T, F], err error) {
	if errors.Is(err, appErrors.ErrSuperseded) {
		_, err = list.Await(c.Request.Context())
	}
	loadOutcome(c, err)
}

func redirectSeeOther(c *gin.Context, location string) {
	c.Redirect(http.StatusSeeOther, location)
}
