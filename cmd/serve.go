package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/edubridge/edubridge/internal/config"
	"github.com/edubridge/edubridge/internal/container"
	"github.com/edubridge/edubridge/internal/server"
)

var serveVerbose bool

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the edubridge MCP server on stdio",
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().BoolVarP(&serveVerbose, "verbose", "v", false, "Verbose logging")
}

func runServe(_ *cobra.Command, _ []string) error {
	// Stdout carries the MCP protocol, so every log line goes to stderr.
	level := slog.LevelInfo
	if serveVerbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	cfg, err := config.Load(config.ConfigPath())
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	cfg.MergeEnv()

	c, err := container.New(cfg, version)
	if err != nil {
		return fmt.Errorf("wire services: %w", err)
	}

	if len(c.Sessions().All()) == 0 {
		slog.Warn("no school logged in yet, the client can use the login tool")
	}

	if err := c.KeepAlive().Start(); err != nil {
		return err
	}
	defer c.KeepAlive().Stop()

	slog.Info("edubridge serving on stdio", "schools", len(c.Sessions().All()), "tools", c.Tools().Len())
	return server.ServeStdio(c.MCPServer())
}
