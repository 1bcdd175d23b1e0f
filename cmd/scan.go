package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/spf13/cobra"
)

var scanCmd = &cobra.Command{
	Use:   "scan",
	Short: "List the faces loaded from the store folder",
	Long: `Scan the store folder the same way a comparison does and list which images
contribute a face and which are skipped (no face, or unreadable).`,
	Args: cobra.NoArgs,
	RunE: runScan,
}

func init() {
	rootCmd.AddCommand(scanCmd)
	scanCmd.Flags().Bool("json", false, "Output as JSON")
}

type scanOutput struct {
	Folder     string          `json:"folder"`
	References []string        `json:"references"`
	Skipped    []skippedOutput `json:"skipped"`
}

func runScan(cmd *cobra.Command, args []string) error {
	jsonOutput := mustGetBool(cmd, "json")

	_, proc, closeRecognizer, err := newProcessor(cmd)
	if err != nil {
		return err
	}
	defer closeRecognizer()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	progress, finish := scanProgress()
	loaded, err := proc.Scan(ctx, progress)
	finish()
	if err != nil {
		return err
	}

	if jsonOutput {
		out := scanOutput{
			Folder:     proc.Dir(),
			References: make([]string, 0, len(loaded.Records)),
			Skipped:    toSkippedOutput(loaded.Skipped),
		}
		for _, r := range loaded.Records {
			out.References = append(out.References, r.Path)
		}
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	}

	if len(loaded.Records) == 0 && len(loaded.Skipped) == 0 {
		fmt.Printf("No images found in %s\n", proc.Dir())
		return nil
	}

	rows := make([][]string, 0, len(loaded.Records)+len(loaded.Skipped))
	for _, r := range loaded.Records {
		rows = append(rows, []string{filepath.Base(r.Path), "face", ""})
	}
	for _, s := range loaded.Skipped {
		detail := ""
		if s.Err != nil {
			detail = s.Err.Error()
		}
		rows = append(rows, []string{filepath.Base(s.Path), string(s.Reason), detail})
	}
	fmt.Println(renderTable([]string{"File", "Status", "Detail"}, rows, nil))
	fmt.Printf("%d reference face(s), %d skipped\n", len(loaded.Records), len(loaded.Skipped))
	return nil
}
