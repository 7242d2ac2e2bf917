package main

import (
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/cory-johannsen/fashionscape/internal/frontend/handlers"
	"github.com/cory-johannsen/fashionscape/internal/frontend/telnet"
	"github.com/cory-johannsen/fashionscape/internal/game/command"
	"github.com/cory-johannsen/fashionscape/internal/game/workspace"
	"github.com/cory-johannsen/fashionscape/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the outfit shell over Telnet",
	Long: `Listen for Telnet clients and give each connection its own outfit shell.

Every connection loads the configured profiles afresh, so swaps made by one
client are never visible to another. Colors are shown as 24-bit swatches.

Examples:
  fashionscape serve
  FASHION_TELNET_PORT=4200 fashionscape serve`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	start := time.Now()
	env, cleanup, err := setup()
	if err != nil {
		return err
	}
	defer cleanup()

	// Fail at startup rather than on the first connection.
	if _, err := env.loadPlayers(); err != nil {
		return err
	}

	handler := handlers.NewShellHandler(func() (*workspace.Workspace, error) {
		return env.open(command.WithSwatch(telnet.Swatch))
	}, env.logger)
	acceptor := telnet.NewAcceptor(env.cfg.Telnet, handler, env.logger)

	lifecycle := server.NewLifecycle(env.logger)
	lifecycle.Add("telnet", &server.FuncService{
		StartFn: acceptor.ListenAndServe,
		StopFn:  acceptor.Stop,
	})

	env.logger.Info("outfit server initialized",
		zap.Duration("startup", time.Since(start)),
		zap.String("telnet_addr", env.cfg.Telnet.Addr()),
		zap.Strings("profiles", env.profiles),
	)
	return lifecycle.Run(cmd.Context())
}
