package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/mark3labs/mcp-go/server"
	"go.uber.org/zap"

	"github.com/peterkuimelis/homeworlds/internal/config"
	hwmcp "github.com/peterkuimelis/homeworlds/internal/mcp"
)

var version = "dev"

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	cfg.Bind(flag.CommandLine)
	flag.Parse()

	logger, err := cfg.Logger()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()

	s := server.NewMCPServer("homeworlds", version)
	reg := hwmcp.NewRegistry(cfg.Openings, logger)
	hwmcp.RegisterTools(s, hwmcp.NewTools(reg, logger))

	logger.Info("serving MCP over stdio", zap.String("version", version), zap.String("openings", cfg.Openings))
	if err := server.ServeStdio(s); err != nil {
		logger.Error("stdio server stopped", zap.Error(err))
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
