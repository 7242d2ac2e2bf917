package main

import (
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/cory-johannsen/fashionscape/internal/frontend/handlers"
)

var replCmd = &cobra.Command{
	Use:   "repl",
	Short: "Edit outfits in an interactive shell",
	Long: `Open the outfit shell on standard input and output.

The first profile is logged in; others can be switched to with 'login'.
Type 'help' inside the shell for the command list.

Examples:
  fashionscape repl
  fashionscape repl --profile configs/player.yaml --profile configs/player_female.yaml
  fashionscape repl --seed 42`,
	Args: cobra.NoArgs,
	RunE: runRepl,
}

func init() {
	rootCmd.AddCommand(replCmd)
}

func runRepl(cmd *cobra.Command, args []string) error {
	env, cleanup, err := setup()
	if err != nil {
		return err
	}
	defer cleanup()

	w, err := env.open()
	if err != nil {
		return err
	}
	defer w.Close()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	term := handlers.NewStdioTerminal(cmd.InOrStdin(), cmd.OutOrStdout())
	if err := term.WriteText("Fashionscape outfit shell. Type 'help' for commands.\n"); err != nil {
		return err
	}
	return handlers.RunShell(ctx, term, w, handlers.PlainPrompt)
}
