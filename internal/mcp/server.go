// Package mcp exposes the daemon's zone and placement operations as MCP
// tools over stdio, so editor and assistant integrations can drive window
// placement through the same IPC surface the CLI uses.
package mcp

import (
	"context"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/1broseidon/zonesnap/internal/ipc"
)

const (
	ServerName    = "zonesnap"
	ServerVersion = "0.1.0"
)

// Daemon is the subset of the IPC client the tools need. Tests substitute
// a fake; production passes ipc.NewClient().
type Daemon interface {
	GetStatus() (*ipc.StatusData, error)
	GetMonitors() (*ipc.MonitorsData, error)
	ListLayouts() (*ipc.LayoutsData, error)
	ApplyLayout(layoutName string) error
	GetPlacements() (*ipc.PlacementsData, error)
	SnapWindow(windowID uint32, zoneNumber int) error
	UnsnapWindow(windowID uint32) error
	QuickSnap() error
}

// Server is the MCP server bridging tools to the running daemon.
type Server struct {
	mcpServer *mcpsdk.Server
	daemon    Daemon
}

// NewServer creates an MCP server talking to the daemon over IPC.
func NewServer() *Server {
	return NewServerWithDaemon(ipc.NewClient())
}

// NewServerWithDaemon creates an MCP server with an explicit daemon client.
func NewServerWithDaemon(daemon Daemon) *Server {
	s := &Server{daemon: daemon}

	s.mcpServer = mcpsdk.NewServer(
		&mcpsdk.Implementation{
			Name:    ServerName,
			Version: ServerVersion,
		},
		nil,
	)

	s.registerTools()
	return s
}

// Run starts the MCP server on stdio transport, blocking until done.
func (s *Server) Run(ctx context.Context) error {
	return s.mcpServer.Run(ctx, &mcpsdk.StdioTransport{})
}

func (s *Server) registerTools() {
	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "get_status",
		Description: "Get daemon status: the active layout, how many windows are placed, the current desktop, and uptime.",
	}, s.handleGetStatus)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "list_layouts",
		Description: "List the configured zone layouts along with the default and currently active layout names.",
	}, s.handleListLayouts)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "apply_layout",
		Description: "Switch the active zone layout. The choice is remembered per screen and desktop, and windows already sitting in matching zone frames are adopted.",
	}, s.handleApplyLayout)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "get_placements",
		Description: "List the windows currently placed in zones: window ID, zone number, layout, screen, and desktop for each.",
	}, s.handleGetPlacements)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "snap_window",
		Description: "Snap a window into a numbered zone of the active layout. Omit window_id (or pass 0) to snap the currently focused window. The window's original geometry is captured so it can be restored later.",
	}, s.handleSnapWindow)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "unsnap_window",
		Description: "Release a window from its zone and restore its pre-snap geometry. Omit window_id (or pass 0) for the currently focused window. A window that is not placed is a no-op.",
	}, s.handleUnsnapWindow)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "quick_snap",
		Description: "Open the quick snap navigator on the user's display: a keyboard-driven panel for placing windows into zones.",
	}, s.handleQuickSnap)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "list_monitors",
		Description: "List the connected monitors and their pixel geometry.",
	}, s.handleListMonitors)
}
