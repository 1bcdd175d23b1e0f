package cmd

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "face-compare",
	Short: "Compare a face against a folder of known faces",
	Long: `Face Compare lets you pick an image, compares the face in it against every
image in a folder of previously seen faces, saves the image into that folder
under a unique name and shows the matches side by side so the new file can be
renamed.

Running without a subcommand opens the desktop window.`,
	RunE: runGUI,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)
	pf := rootCmd.PersistentFlags()
	pf.String("config", "", "YAML config file (default $FACE_COMPARE_CONFIG)")
	pf.String("store", "", "Folder of known faces, also where new images are saved")
	pf.String("picker-dir", "", "Folder the file picker opens in")
	pf.String("models", "", "Folder with the dlib model files")
	pf.Float64("tolerance", 0, "Maximum face distance for a match (default 0.6)")
	pf.Bool("cnn", false, "Use the CNN face detector (slower, more accurate)")
}

func initConfig() {
	// .env file is optional, don't fail if not found
	_ = godotenv.Load()
}
