package middleware

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/hrms-lite-console/internal/console"
)

// ContextWorkspaceKey stores the resolved workspace in the Gin context.
const ContextWorkspaceKey = "workspace"

type workspaceResolver interface {
	Resolve(id string) (*console.Workspace, bool)
}

// WorkspaceCookie configures the session cookie.
type WorkspaceCookie struct {
	Name   string
	TTL    time.Duration
	Secure bool
}

// Workspace attaches the caller's workspace, issuing a new session cookie
// when the presented one is missing or expired.
func Workspace(resolver workspaceResolver, cookie WorkspaceCookie) gin.HandlerFunc {
	if cookie.Name == "" {
		cookie.Name = "hrms_workspace"
	}
	return func(c *gin.Context) {
		id, _ := c.Cookie(cookie.Name)
		ws, created := resolver.Resolve(id)
		if created {
			c.SetSameSite(http.SameSiteLaxMode)
			c.SetCookie(cookie.Name, ws.ID, int(cookie.TTL.Seconds()), "/", "", cookie.Secure, true)
		}
		c.Set(ContextWorkspaceKey, ws)
		c.Next()
	}
}

// WorkspaceFrom returns the workspace attached by Workspace, or nil.
func WorkspaceFrom(c *gin.Context) *console.Workspace {
	value, exists := c.Get(ContextWorkspaceKey)
	if !exists {
		return nil
	}
	ws, ok := value.(*console.Workspace)
	if !ok {
		return nil
	}
	return ws
}
