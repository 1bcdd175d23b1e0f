package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/kozaktomas/face-compare/internal/matcher"
	"github.com/spf13/cobra"
)

var nearestCmd = &cobra.Command{
	Use:   "nearest <image>",
	Short: "Rank the closest faces in the store folder",
	Long: `Rank the faces in the store folder by distance to the face in an image.
Unlike compare, this shows near misses too and never saves the image.

Example:
  face-compare nearest -k 10 ~/Downloads/visitor.jpg`,
	Args: cobra.ExactArgs(1),
	RunE: runNearest,
}

func init() {
	rootCmd.AddCommand(nearestCmd)
	nearestCmd.Flags().IntP("k", "k", 5, "Number of faces to show")
}

func runNearest(cmd *cobra.Command, args []string) error {
	imagePath := args[0]
	k := mustGetInt(cmd, "k")

	cfg, proc, closeRecognizer, err := newProcessor(cmd)
	if err != nil {
		return err
	}
	defer closeRecognizer()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	query, err := proc.Describe(imagePath)
	if err != nil {
		return err
	}
	if query == nil {
		fmt.Printf("No face detected in %s\n", filepath.Base(imagePath))
		return nil
	}

	progress, finish := scanProgress()
	loaded, err := proc.Scan(ctx, progress)
	finish()
	if err != nil {
		return err
	}

	idx := matcher.NewIndex(loaded.Records)
	neighbors, err := idx.Nearest(*query, k)
	if err != nil {
		return err
	}
	if len(neighbors) == 0 {
		fmt.Printf("No reference faces in %s\n", proc.Dir())
		return nil
	}

	rows := make([][]string, 0, len(neighbors))
	for i, n := range neighbors {
		verdict := ""
		if n.Distance <= cfg.Recognizer.Tolerance {
			verdict = "match"
		}
		rows = append(rows, []string{
			fmt.Sprintf("%d", i+1),
			filepath.Base(n.Path),
			fmt.Sprintf("%.4f", n.Distance),
			verdict,
		})
	}
	fmt.Println(renderTable([]string{"#", "Reference", "Distance", ""}, rows, []columnAlignment{alignRight, alignLeft, alignRight}))
	fmt.Printf("%d of %d reference face(s), tolerance %.2f\n", len(neighbors), idx.Len(), cfg.Recognizer.Tolerance)
	return nil
}
