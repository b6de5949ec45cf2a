package commands

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/quillnotes/quill/internal/audit"
	"github.com/quillnotes/quill/internal/command"
	"github.com/quillnotes/quill/internal/config"
	"github.com/quillnotes/quill/internal/event"
	"github.com/quillnotes/quill/internal/executor"
	"github.com/quillnotes/quill/internal/logging"
	"github.com/quillnotes/quill/internal/mcp"
	"github.com/quillnotes/quill/internal/server"
	"github.com/quillnotes/quill/internal/tool"
)

var (
	servePort  int
	serveVault string
	serveMCP   bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the governance core with the HTTP inspection API",
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "Inspection API port (overrides config)")
	serveCmd.Flags().StringVar(&serveVault, "vault", "", "Vault directory backing the demo collaborator commands")
	serveCmd.Flags().BoolVar(&serveMCP, "mcp", false, "Also serve the tool catalog over MCP on stdio")
}

func runServe(cmd *cobra.Command, args []string) error {
	dir := workDir
	if dir == "" {
		var err error
		if dir, err = os.Getwd(); err != nil {
			return err
		}
	}

	cfg, err := config.Load(dir)
	if err != nil {
		return err
	}
	if !cmd.Flags().Changed("log-level") {
		logging.SetLevel(logging.ParseLevel(cfg.LogLevel))
	}
	if servePort > 0 {
		cfg.Server.Port = servePort
	}
	if serveVault != "" {
		cfg.Vault = serveVault
	}
	if cfg.Vault == "" {
		cfg.Vault = dir
	}

	// Core wiring: one bus, one audit log, one registry, one executor,
	// passed by reference to everything that needs them.
	bus := event.NewBus()
	defer bus.Close()

	auditLog := audit.New(cfg.AuditLimit)
	registry := command.NewRegistry(auditLog, bus)
	catalog := tool.Default()

	exec := executor.New(registry, catalog, bus)
	exec.SetDiffMaxChars(cfg.DiffMaxChars)

	if err := registerVaultCommands(registry, cfg.Vault); err != nil {
		return err
	}

	stopWatch, err := config.Watch(dir, func(fresh *config.Config) {
		logging.SetLevel(logging.ParseLevel(fresh.LogLevel))
	})
	if err != nil {
		logging.Warn().Err(err).Msg("config watch unavailable")
	} else {
		defer stopWatch()
	}

	srv := server.New(&server.Config{
		Port:         cfg.Server.Port,
		EnableCORS:   cfg.Server.EnableCORS,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
	}, registry, auditLog, catalog, exec)

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	if serveMCP {
		go func() {
			if err := mcp.ServeStdio(catalog, exec); err != nil {
				logging.Error().Err(err).Msg("mcp server stopped")
			}
		}()
	}

	logging.Info().
		Str("vault", cfg.Vault).
		Int("commands", registry.Stats().Total).
		Int("tools", len(catalog.All())).
		Msg("governance core running")

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case <-sigCh:
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return srv.Shutdown(ctx)
}
