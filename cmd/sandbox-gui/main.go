// Package main is the entry point for the ImGui shading sandbox: the same
// renderer with a settings panel.
package main

import (
	"fmt"
	"os"
	"runtime"

	"go.uber.org/zap"

	"github.com/Faultbox/shading-sandbox/internal/app"
	"github.com/Faultbox/shading-sandbox/internal/config"
	"github.com/Faultbox/shading-sandbox/internal/logger"
)

func init() {
	// GL calls must stay on the main thread
	runtime.LockOSThread()
}

func main() {
	config.ParseFlags()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("=== Shading Sandbox (ImGui) ===")

	g, err := app.NewGUI(cfg)
	if err != nil {
		logger.Fatal("failed to initialize sandbox", zap.Error(err))
	}
	defer g.Close()

	if err := g.Run(); err != nil {
		logger.Error("sandbox error", zap.Error(err))
		g.Close()
		logger.Sync()
		os.Exit(1)
	}

	logger.Info("sandbox closed normally")
}
