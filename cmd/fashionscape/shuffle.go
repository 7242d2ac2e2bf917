package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cory-johannsen/fashionscape/internal/game/workspace"
)

var (
	shuffleOut   string
	shuffleCount int
)

var shuffleCmd = &cobra.Command{
	Use:   "shuffle",
	Short: "Generate random outfits and export them",
	Long: `Randomize the first profile's outfit and write it as an outfit file.

Without --out each outfit is written to a fresh file under
fashionscape.outfits_dir. The written paths are printed one per line.

Examples:
  fashionscape shuffle
  fashionscape shuffle --count 5
  fashionscape shuffle --seed 7 --out outfits/seven.txt`,
	Args: cobra.NoArgs,
	RunE: runShuffle,
}

func init() {
	shuffleCmd.Flags().StringVar(&shuffleOut, "out", "", "Write the outfit to this path (only with --count 1)")
	shuffleCmd.Flags().IntVar(&shuffleCount, "count", 1, "Number of outfits to generate")
	rootCmd.AddCommand(shuffleCmd)
}

func runShuffle(cmd *cobra.Command, args []string) error {
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

	paths, err := shuffleOutfits(w, shuffleOut, shuffleCount)
	for _, p := range paths {
		fmt.Fprintln(cmd.OutOrStdout(), p)
	}
	return err
}

// shuffleOutfits shuffles and exports count outfits, returning the paths
// written so far even when a later export fails.
func shuffleOutfits(w *workspace.Workspace, out string, count int) ([]string, error) {
	if count < 1 {
		return nil, fmt.Errorf("--count must be >= 1, got %d", count)
	}
	if out != "" && count > 1 {
		return nil, fmt.Errorf("--out cannot be combined with --count %d", count)
	}
	paths := make([]string, 0, count)
	for range count {
		w.Swaps.Shuffle()
		path, err := w.Swaps.ExportSwaps(out)
		if err != nil {
			return paths, err
		}
		paths = append(paths, path)
	}
	return paths, nil
}
