package cmd

import (
	"fyne.io/fyne/v2/app"
	"github.com/kozaktomas/face-compare/internal/ui"
	"github.com/spf13/cobra"
)

const appID = "com.github.kozaktomas.face-compare"

var guiCmd = &cobra.Command{
	Use:   "gui",
	Short: "Open the desktop window",
	Long: `Open the desktop window. "Choose Image" compares the picked image against
the store folder, saves it there and shows the matches for review.`,
	Args: cobra.NoArgs,
	RunE: runGUI,
}

func init() {
	rootCmd.AddCommand(guiCmd)
}

func runGUI(cmd *cobra.Command, args []string) error {
	cfg, proc, closeRecognizer, err := newProcessor(cmd)
	if err != nil {
		return err
	}
	defer closeRecognizer()

	ui.NewApp(app.NewWithID(appID), cfg, proc).Run()
	return nil
}
