package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	clientcmd "github.com/karvel/ringd/internal/cmd/client"
	serverrun "github.com/karvel/ringd/internal/cmd/server"
	cfgpkg "github.com/karvel/ringd/internal/config"
	logpkg "github.com/karvel/ringd/pkg/log"
	"github.com/spf13/cobra"
)

func main() {
	// initialize logger for CLI
	// Respect RINGD_LOG_LEVEL for both CLI and server start output
	level := os.Getenv("RINGD_LOG_LEVEL")
	parsed, err := logpkg.ParseLevel(level)
	if err != nil || level == "" {
		parsed = logpkg.InfoLevel
	}
	logger := logpkg.NewLogger(
		logpkg.WithLevel(parsed),
		logpkg.WithFormatter(&logpkg.TextFormatter{}),
		logpkg.WithOutput(logpkg.NewConsoleOutput()),
	)

	// Redirect standard library logs (used by Pebble) to our logger
	logpkg.RedirectStdLog(logger)

	rootCmd := &cobra.Command{
		Use:   "ringd",
		Short: "ringd runtime CLI",
		Long:  "ringd is a single-binary bounded record log. This CLI manages the server and basic operations.",
	}

	// server start
	serverCmd := &cobra.Command{Use: "server", Short: "Server commands"}
	serverStartCmd := &cobra.Command{
		Use:     "start",
		Short:   "Start ringd server (TCP daemon and HTTP API)",
		Aliases: []string{"run"},
		RunE: func(cmd *cobra.Command, args []string) error {
			configPath, _ := cmd.Flags().GetString("config")
			tcpAddr, _ := cmd.Flags().GetString("tcp")
			httpAddr, _ := cmd.Flags().GetString("http")
			capacity, _ := cmd.Flags().GetInt("capacity")
			dataDir, _ := cmd.Flags().GetString("data-dir")
			archive, _ := cmd.Flags().GetBool("archive")
			fsyncMode, _ := cmd.Flags().GetString("fsync")
			logLevel, _ := cmd.Flags().GetString("log-level")
			logFormat, _ := cmd.Flags().GetString("log-format")

			cfg, err := cfgpkg.Load(configPath)
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			cfgpkg.FromEnv(&cfg)
			if cmd.Flags().Changed("tcp") {
				cfg.TCPAddr = tcpAddr
			}
			if cmd.Flags().Changed("http") {
				cfg.HTTPAddr = httpAddr
			}
			if cmd.Flags().Changed("capacity") {
				cfg.Capacity = capacity
			}
			if cmd.Flags().Changed("data-dir") {
				cfg.DataDir = dataDir
			}
			if cmd.Flags().Changed("archive") {
				cfg.ArchiveEnabled = archive
			}
			if cmd.Flags().Changed("fsync") {
				cfg.Fsync = fsyncMode
			}
			if logLevel != "" {
				cfg.LogLevel = logLevel
			}
			if logFormat != "" {
				cfg.LogFormat = logFormat
			}

			ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer cancel()

			if err := serverrun.Run(ctx, serverrun.Options{Config: cfg}); err != nil {
				return fmt.Errorf("server error: %w", err)
			}
			return nil
		},
	}
	serverStartCmd.Flags().String("config", "", "Path to JSON config file")
	serverStartCmd.Flags().String("tcp", ":9000", "TCP daemon listen address")
	serverStartCmd.Flags().String("http", ":8080", "HTTP API listen address")
	serverStartCmd.Flags().Int("capacity", 10, "Ring capacity in records")
	serverStartCmd.Flags().String("data-dir", "", "Archive data directory")
	serverStartCmd.Flags().Bool("archive", false, "Persist evicted and live records to disk")
	serverStartCmd.Flags().String("fsync", "always", "Fsync mode: always|interval|never")
	serverStartCmd.Flags().String("log-level", os.Getenv("RINGD_LOG_LEVEL"), "Log level: debug|info|warn|error")
	serverStartCmd.Flags().String("log-format", os.Getenv("RINGD_LOG_FORMAT"), "Log format: text|json (default text)")
	serverCmd.AddCommand(serverStartCmd)
	rootCmd.AddCommand(serverCmd)

	// log commands (write/read/cat/seek/stats over the HTTP API)
	rootCmd.AddCommand(clientcmd.NewLogCommand(apiURL))

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func apiURL() string {
	if v := os.Getenv("RINGD_HTTP"); v != "" {
		return v
	}
	return "http://127.0.0.1:8080"
}
