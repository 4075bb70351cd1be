// bsptool is a CLI utility for inspecting BSP scene files.
package main

import (
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/Faultbox/spooky-bsp/internal/config"
	"github.com/Faultbox/spooky-bsp/internal/logger"
)

func main() {
	config.ParseFlags()
	args := config.Args()
	if len(args) < 1 {
		printUsage()
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	command, rest := args[0], args[1:]
	logger.Debug("starting", zap.String("command", command), zap.Strings("args", rest))

	switch command {
	case "info":
		err = cmdInfo(rest)
	case "chunks", "ls":
		err = cmdChunks(rest)
	case "scan":
		err = cmdScan(cfg, rest)
	case "config":
		err = cmdConfig(cfg, rest)
	case "help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}

	if err != nil {
		logger.Error("command failed", zap.String("command", command), zap.Error(err))
		logger.Sync()
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`bsptool - BSP scene file utility

Usage:
  bsptool [flags] <command> [options]

Commands:
  info <file.bsp>          Decode a file and show a summary
  chunks <file.bsp>        List chunk headers in stream order
  scan <dir>               Decode every matching file under dir
  config [-write path]     Print the effective configuration

Flags:
  -config <path>           Config file (default ./bsptool.yaml)
  -debug                   Enable debug logging
  -log-file <path>         Also write logs to a rotated file
  -workers <n>             Files decoded in parallel by scan
  -pattern <glob>          File pattern used by scan (default **/*.bsp)

Examples:
  bsptool info levels/graveyard.bsp
  bsptool -debug chunks levels/graveyard.bsp
  bsptool -workers 8 scan ./levels`)
}
