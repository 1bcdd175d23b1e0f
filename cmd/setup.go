package cmd

import (
	"fmt"
	"os"

	"github.com/kozaktomas/face-compare/internal/archive"
	"github.com/kozaktomas/face-compare/internal/config"
	"github.com/kozaktomas/face-compare/internal/recognizer/dlib"
	"github.com/kozaktomas/face-compare/internal/workflow"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
)

// loadConfig layers the global flags over config.Load and validates the result.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	path := mustGetString(cmd, "config")
	if path == "" {
		path = os.Getenv("FACE_COMPARE_CONFIG")
	}

	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}

	flags := cmd.Flags()
	if flags.Changed("store") {
		cfg.Store.Dir = mustGetString(cmd, "store")
	}
	if flags.Changed("picker-dir") {
		cfg.Store.PickerDir = mustGetString(cmd, "picker-dir")
	}
	if flags.Changed("models") {
		cfg.Recognizer.ModelsDir = mustGetString(cmd, "models")
	}
	if flags.Changed("tolerance") {
		cfg.Recognizer.Tolerance = mustGetFloat64(cmd, "tolerance")
	}
	if flags.Changed("cnn") {
		cfg.Recognizer.UseCNN = mustGetBool(cmd, "cnn")
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// newProcessor loads the configuration, makes sure the store folder exists
// and initializes the dlib recognizer. The returned func releases the models.
func newProcessor(cmd *cobra.Command) (*config.Config, *workflow.Processor, func(), error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, nil, nil, err
	}
	if err := archive.EnsureDir(cfg.Store.Dir); err != nil {
		return nil, nil, nil, err
	}

	rec, err := dlib.New(cfg.Recognizer.ModelsDir, cfg.Recognizer.UseCNN)
	if err != nil {
		return nil, nil, nil, err
	}
	proc := workflow.NewProcessor(cfg, rec, dlib.NewComparator(cfg.Recognizer.Tolerance))
	return cfg, proc, rec.Close, nil
}

func newProgressBar(total int, description string) *progressbar.ProgressBar {
	return progressbar.NewOptions(total,
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionSetDescription(description),
		progressbar.OptionShowCount(),
		progressbar.OptionShowIts(),
		progressbar.OptionSetItsString("files"),
		progressbar.OptionShowElapsedTimeOnFinish(),
		progressbar.OptionSetPredictTime(true),
		progressbar.OptionFullWidth(),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "=",
			SaucerHead:    ">",
			SaucerPadding: " ",
			BarStart:      "[",
			BarEnd:        "]",
		}),
	)
}

// scanProgress returns a progress callback for store scans that draws a bar
// once the number of files is known, and a func to finish the bar.
func scanProgress() (func(done, total int), func()) {
	var bar *progressbar.ProgressBar
	update := func(done, total int) {
		if bar == nil {
			bar = newProgressBar(total, "Scanning")
		}
		_ = bar.Set(done)
	}
	finish := func() {
		if bar != nil {
			_ = bar.Finish()
			fmt.Fprintln(os.Stderr)
		}
	}
	return update, finish
}
