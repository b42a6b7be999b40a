// cmd/inkforge/main.go
package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/InkForge/inkforge/internal/config"
	"github.com/InkForge/inkforge/internal/resolver"
	"github.com/InkForge/inkforge/internal/setup"
	"go.uber.org/zap"
)

func main() {
	logger := newLogger()
	defer func() { _ = logger.Sync() }()

	cfg := loadConfig(logger)

	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	ctx := context.Background()

	s, err := setup.FromConfig(cfg, logger).Build(ctx)
	if err != nil {
		logger.Fatal("failed to build I/O setup", zap.Error(err))
	}
	defer func() { _ = s.Close() }()

	switch os.Args[1] {
	case "digest":
		if s.Bundle == nil {
			logger.Fatal("no bundle configured")
		}
		d, err := s.Bundle.GetDigest(ctx)
		if err != nil {
			logger.Fatal("failed to read bundle digest", zap.Error(err))
		}
		fmt.Println(d)

	case "cat":
		if len(os.Args) < 3 {
			usage()
			os.Exit(2)
		}
		h, err := s.Stack.InputOpenName(ctx, os.Args[2])
		if resolver.IsNotAvailable(err) {
			logger.Fatal("file not found in any backend", zap.String("name", os.Args[2]))
		}
		if err != nil {
			logger.Fatal("open failed", zap.String("name", os.Args[2]), zap.Error(err))
		}
		defer func() { _ = h.Close() }()
		if _, err := io.Copy(os.Stdout, h); err != nil {
			logger.Fatal("read failed", zap.String("name", os.Args[2]), zap.Error(err))
		}

	case "resolve":
		if len(os.Args) < 3 {
			usage()
			os.Exit(2)
		}
		name := os.Args[2]
		h, err := s.Stack.InputOpenName(ctx, name)
		switch {
		case resolver.IsNotAvailable(err):
			fmt.Printf("%s: not available\n", resolver.Normalize(name))
			os.Exit(1)
		case err != nil:
			fmt.Printf("%s: error: %v\n", resolver.Normalize(name), err)
			os.Exit(1)
		default:
			fmt.Printf("%s: ok (origin %s)\n", h.Name(), h.Origin())
			_ = h.Close()
		}

	default:
		usage()
		os.Exit(2)
	}
}

func newLogger() *zap.Logger {
	if os.Getenv("INKFORGE_LOG_LEVEL") == "debug" {
		logger, _ := zap.NewDevelopment()
		return logger
	}
	logger, _ := zap.NewProduction()
	return logger
}

func loadConfig(logger *zap.Logger) *config.Config {
	path := config.GetEnvOrDefault("INKFORGE_CONFIG", "")
	cfg := config.Default()
	if path != "" {
		loaded, err := config.Load(path)
		if err != nil {
			logger.Fatal("failed to load config", zap.String("path", path), zap.Error(err))
		}
		cfg = loaded
	}
	config.LoadFromEnv(cfg)
	return cfg
}

func usage() {
	fmt.Fprintln(os.Stderr, `usage: inkforge <command>

commands:
  digest          print the configured bundle's content digest
  cat <name>      resolve a file through the stack and write it to stdout
  resolve <name>  report how a name resolves

configuration comes from $INKFORGE_CONFIG (yaml) and INKFORGE_* variables`)
}
