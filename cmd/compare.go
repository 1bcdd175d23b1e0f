package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/kozaktomas/face-compare/internal/store"
	"github.com/kozaktomas/face-compare/internal/workflow"
	"github.com/spf13/cobra"
)

var compareCmd = &cobra.Command{
	Use:   "compare <image>",
	Short: "Compare an image against the store folder without the window",
	Long: `Compare the face in an image against every image in the store folder, then
save the image into the store folder under a unique name.

Example:
  face-compare compare ~/Downloads/visitor.jpg
  face-compare compare --no-archive --json ~/Downloads/visitor.jpg`,
	Args: cobra.ExactArgs(1),
	RunE: runCompare,
}

func init() {
	rootCmd.AddCommand(compareCmd)
	compareCmd.Flags().Bool("no-archive", false, "Only compare, do not save the image into the store folder")
	compareCmd.Flags().Bool("json", false, "Output as JSON")
}

type skippedOutput struct {
	Path   string `json:"path"`
	Reason string `json:"reason"`
	Error  string `json:"error,omitempty"`
}

type compareOutput struct {
	Query        string          `json:"query"`
	QueryHasFace bool            `json:"query_has_face"`
	References   int             `json:"references"`
	Matches      []string        `json:"matches"`
	Archived     string          `json:"archived,omitempty"`
	Skipped      []skippedOutput `json:"skipped,omitempty"`
}

func toSkippedOutput(skipped []store.Skipped) []skippedOutput {
	out := make([]skippedOutput, 0, len(skipped))
	for _, s := range skipped {
		o := skippedOutput{Path: s.Path, Reason: string(s.Reason)}
		if s.Err != nil {
			o.Error = s.Err.Error()
		}
		out = append(out, o)
	}
	return out
}

func runCompare(cmd *cobra.Command, args []string) error {
	imagePath := args[0]
	noArchive := mustGetBool(cmd, "no-archive")
	jsonOutput := mustGetBool(cmd, "json")

	if _, err := os.Stat(imagePath); err != nil {
		return fmt.Errorf("cannot access image %s: %w", imagePath, err)
	}

	_, proc, closeRecognizer, err := newProcessor(cmd)
	if err != nil {
		return err
	}
	defer closeRecognizer()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	progress, finish := scanProgress()
	result, err := proc.Process(ctx, imagePath, workflow.Options{NoArchive: noArchive, Progress: progress})
	finish()
	if err != nil {
		return err
	}

	if jsonOutput {
		out := compareOutput{
			Query:        result.Query,
			QueryHasFace: result.QueryHasFace,
			References:   result.References,
			Matches:      make([]string, 0, len(result.Matches)),
			Archived:     result.Archived,
			Skipped:      toSkippedOutput(result.Skipped),
		}
		for _, m := range result.Matches {
			out.Matches = append(out.Matches, m.Reference)
		}
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	}

	fmt.Printf("Compared against %d reference image(s) in %s\n", result.References, proc.Dir())
	if !result.QueryHasFace {
		fmt.Printf("No face detected in %s\n", filepath.Base(imagePath))
	}
	for _, s := range result.Skipped {
		if s.Reason == store.SkipUnreadable {
			fmt.Printf("Warning: skipped %s: %v\n", filepath.Base(s.Path), s.Err)
		}
	}

	_, message := result.Summary()
	fmt.Println(message)
	if len(result.Matches) > 0 {
		rows := make([][]string, 0, len(result.Matches))
		for i, m := range result.Matches {
			rows = append(rows, []string{fmt.Sprintf("%d", i+1), filepath.Base(m.Reference), filepath.Base(m.Archived)})
		}
		fmt.Println(renderTable([]string{"#", "Reference", "New image"}, rows, []columnAlignment{alignRight}))
	}
	if result.Archived != "" {
		fmt.Printf("Saved as %s\n", result.Archived)
	}
	return nil
}
