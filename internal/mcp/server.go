// ABOUTME: MCP server exposing the betterself tracker to assistants.
// ABOUTME: Wraps the go-sdk server around one loaded App and a rollover watcher.
package mcp

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/harperreed/betterself/internal/app"
	"github.com/harperreed/betterself/internal/logger"
	"github.com/harperreed/betterself/internal/rollover"
)

// Server wraps the MCP server with access to the App.
type Server struct {
	mcpServer *mcp.Server
	app       *app.App
	schedule  string
}

// NewServer creates a new MCP server over a loaded App. schedule is the
// rollover watcher's cron schedule; empty disables the watcher.
func NewServer(a *app.App, schedule string) (*Server, error) {
	mcpServer := mcp.NewServer(
		&mcp.Implementation{
			Name:    "betterself",
			Version: "1.0.0",
		},
		nil,
	)

	s := &Server{
		mcpServer: mcpServer,
		app:       a,
		schedule:  schedule,
	}

	s.registerTools()
	s.registerTrackerTools()
	s.registerResources()

	return s, nil
}

// Serve runs the server on stdio until ctx is cancelled or the client hangs up.
func (s *Server) Serve(ctx context.Context) error {
	if s.schedule != "" {
		w := rollover.NewWatcher(s.app, s.schedule)
		if err := w.Start(); err != nil {
			return err
		}
		defer w.Stop()
	}
	logger.Info("mcp server starting", "day", s.app.Today())
	return s.mcpServer.Run(ctx, &mcp.StdioTransport{})
}

// begin runs before every tool so a server left open overnight acts on the new day.
func (s *Server) begin() {
	if s.app.CheckRollover() {
		s.app.SnapshotStats()
		logger.Info("rolled over during tool call", "day", s.app.Today())
	}
}
