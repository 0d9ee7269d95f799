package mcp

import (
	"log/slog"

	"github.com/mark3labs/mcp-go/server"
)

// New creates an MCP server with all tools registered.
func New(ds DataSource, version string, log *slog.Logger) *server.MCPServer {
	s := server.NewMCPServer("setlog", version,
		server.WithToolCapabilities(false),
		server.WithInstructions("setlog workout tracking server. Query logged workout totals, over-time progression per workout type, and bodyweight-aware exercise comparisons. Dates use YYYY-MM-DD."),
	)

	h := &handlers{ds: ds, log: log}

	s.AddTools(
		server.ServerTool{Tool: toolGetDayTotals, Handler: h.getDayTotals},
		server.ServerTool{Tool: toolGetWorkoutTotals, Handler: h.getWorkoutTotals},
		server.ServerTool{Tool: toolGetProgression, Handler: h.getProgression},
		server.ServerTool{Tool: toolCompareExercise, Handler: h.compareExercise},
		server.ServerTool{Tool: toolListWorkoutTypes, Handler: h.listWorkoutTypes},
		server.ServerTool{Tool: toolListLoggedDates, Handler: h.listLoggedDates},
	)

	return s
}

// handlers holds dependencies for MCP tool handlers.
type handlers struct {
	ds  DataSource
	log *slog.Logger
}
