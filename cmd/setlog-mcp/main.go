// setlog-mcp serves the tracking engine's analytics tools over MCP stdio.
// It either opens the local sqlite blob store directly, or, with -remote,
// proxies queries to a running setlog server's REST API.
package main

import (
	"context"
	"flag"
	"log/slog"
	"os"

	"github.com/claude/setlog/internal/blobstore"
	"github.com/claude/setlog/internal/mcp"
	"github.com/claude/setlog/internal/registry"
	"github.com/claude/setlog/internal/store"
	"github.com/claude/setlog/internal/tracker"
	mcpserver "github.com/mark3labs/mcp-go/server"
)

// Version is set at build time via -ldflags.
var Version = "dev"

func main() {
	dataDir := flag.String("data", "data", "local blob store directory")
	userKey := flag.String("user", "anonymous", "user partition key")
	remote := flag.String("remote", "", "base URL of a setlog server; overrides -data")
	flag.Parse()

	// Logs go to stderr: stdout carries the MCP stdio transport.
	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo}))

	var ds mcp.DataSource
	if *remote != "" {
		ds = mcp.NewHTTPClient(*remote)
		log.Info("setlog-mcp starting", "version", Version, "mode", "remote", "url", *remote)
	} else {
		blobs, err := blobstore.OpenSQLite(*dataDir)
		if err != nil {
			log.Error("failed to open blob store", "error", err)
			os.Exit(1)
		}
		defer blobs.Close()

		ctx := context.Background()
		st := store.New(ctx, blobs, *userKey, log)
		defer st.Close()
		reg := registry.New(ctx, blobs, st, *userKey, log)
		ds = tracker.New(st, reg, log)
		log.Info("setlog-mcp starting", "version", Version, "mode", "local", "dir", *dataDir)
	}

	s := mcp.New(ds, Version, log)
	if err := mcpserver.ServeStdio(s); err != nil {
		log.Error("mcp server error", "error", err)
		os.Exit(1)
	}
}
