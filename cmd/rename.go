package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/kozaktomas/face-compare/internal/archive"
	"github.com/spf13/cobra"
)

var renameCmd = &cobra.Command{
	Use:   "rename <archived-image> <new-name>",
	Short: "Rename a saved image, keeping its extension",
	Long: `Rename an image in the store folder. The new name is given without the
extension; the original extension is kept. Fails if the name is taken.

Example:
  face-compare rename headshots/3f2b9c1e-....jpg "Jane Doe"`,
	Args: cobra.ExactArgs(2),
	RunE: runRename,
}

func init() {
	rootCmd.AddCommand(renameCmd)
}

func runRename(cmd *cobra.Command, args []string) error {
	newPath, err := archive.Rename(args[0], args[1])
	if err != nil {
		return err
	}
	fmt.Printf("File renamed to %s\n", filepath.Base(newPath))
	return nil
}
