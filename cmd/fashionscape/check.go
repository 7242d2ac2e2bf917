package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/cory-johannsen/fashionscape/internal/config"
	"github.com/cory-johannsen/fashionscape/internal/game/catalog"
	"github.com/cory-johannsen/fashionscape/internal/game/outfit"
	"github.com/cory-johannsen/fashionscape/internal/game/swap"
)

var checkCmd = &cobra.Command{
	Use:   "check <outfit-file>...",
	Short: "Validate outfit files against the catalog",
	Long: `Parse outfit files and print them back with catalog names.

Lines that cannot be parsed are listed as skipped and make the command fail,
so it can guard outfit files kept under version control.

Examples:
  fashionscape check outfits/*.txt`,
	Args: cobra.MinimumNArgs(1),
	RunE: runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)
}

func runCheck(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	reg, err := catalog.LoadRegistry(cfg.Fashionscape.CatalogDir)
	if err != nil {
		return fmt.Errorf("loading catalog: %w", err)
	}
	skipped, err := checkOutfits(cmd.OutOrStdout(), swap.CatalogNamer{Registry: reg}, args)
	if err != nil {
		return err
	}
	if skipped > 0 {
		return fmt.Errorf("%d unparseable line(s)", skipped)
	}
	return nil
}

// checkOutfits prints each file's normalized outfit and its unparseable lines,
// and returns how many lines were skipped in total.
func checkOutfits(w io.Writer, namer outfit.Namer, paths []string) (int, error) {
	skipped := 0
	for _, path := range paths {
		lines, err := outfit.ReadFile(path)
		if err != nil {
			return skipped, err
		}
		o, bad := outfit.Parse(lines)
		fmt.Fprintf(w, "%s:\n", path)
		for _, line := range outfit.Format(o, namer) {
			fmt.Fprintf(w, "  %s\n", line)
		}
		for _, line := range bad {
			fmt.Fprintf(w, "  skipped: %s\n", line)
		}
		skipped += len(bad)
	}
	return skipped, nil
}
