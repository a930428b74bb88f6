// Package mcp exposes the tracking layer as Model Context Protocol
// tools over stdio or streamable HTTP.
package mcp

import (
	"log/slog"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/reelworks/pipetrack/internal/tracker"
)

const serverInstructions = `pipetrack tracks VFX production work: projects hold sequences,
sequences hold shots, and every saved work file is a numbered version of
a shot or an asset. Start with list_projects or create_project. Version
numbers are allocated by the server; never invent one, ask with
next_version_number or just omit it.`

// Config contains server configuration.
type Config struct {
	Tracker *tracker.Tracker
	Logger  *slog.Logger
}

// NewServer creates and configures an MCP server with all tools and
// middleware.
func NewServer(cfg Config) *sdkmcp.Server {
	server := sdkmcp.NewServer(&sdkmcp.Implementation{
		Name:    "pipetrack",
		Version: "0.1.0",
	}, &sdkmcp.ServerOptions{
		Instructions: serverInstructions,
		Logger:       cfg.Logger,
	})

	server.AddReceivingMiddleware(trafficLoggingMiddleware(cfg.Logger, "inbound"))
	server.AddSendingMiddleware(trafficLoggingMiddleware(cfg.Logger, "outbound"))

	registerTools(server, cfg.Tracker)

	return server
}
