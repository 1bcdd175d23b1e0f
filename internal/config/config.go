package config

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

type Config struct {
	Store      StoreConfig      `yaml:"store"`
	Recognizer RecognizerConfig `yaml:"recognizer"`
	UI         UIConfig         `yaml:"ui"`
}

type StoreConfig struct {
	Dir         string        `yaml:"dir"`          // archive folder, also the set of known faces
	PickerDir   string        `yaml:"picker_dir"`   // folder the file picker opens in (defaults to home)
	LockTimeout time.Duration `yaml:"lock_timeout"` // how long to wait for another instance to release the folder
}

type RecognizerConfig struct {
	ModelsDir string  `yaml:"models_dir"` // dlib model files
	Tolerance float64 `yaml:"tolerance"`  // max euclidean distance for a match
	UseCNN    bool    `yaml:"use_cnn"`    // CNN detector: slower, finds more faces
}

type UIConfig struct {
	ThumbnailSize int `yaml:"thumbnail_size"` // edge of the square review thumbnails in pixels
}

// envInt reads an environment variable and parses it as a positive integer.
// Returns the default value if the env var is unset, empty, or invalid.
func envInt(key string, defaultVal int) int {
	s := os.Getenv(key)
	if s == "" {
		return defaultVal
	}
	if n, err := strconv.Atoi(s); err == nil && n > 0 {
		return n
	}
	return defaultVal
}

// envFloat reads a positive float, falling back to defaultVal.
func envFloat(key string, defaultVal float64) float64 {
	s := os.Getenv(key)
	if s == "" {
		return defaultVal
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil && f > 0 {
		return f
	}
	return defaultVal
}

func envBool(key string, defaultVal bool) bool {
	s := os.Getenv(key)
	if s == "" {
		return defaultVal
	}
	if b, err := strconv.ParseBool(s); err == nil {
		return b
	}
	return defaultVal
}

func envDuration(key string, defaultVal time.Duration) time.Duration {
	s := os.Getenv(key)
	if s == "" {
		return defaultVal
	}
	if d, err := time.ParseDuration(s); err == nil && d > 0 {
		return d
	}
	return defaultVal
}

func envString(key, defaultVal string) string {
	if s := os.Getenv(key); s != "" {
		return s
	}
	return defaultVal
}

// Defaults returns the embedded default configuration.
func Defaults() *Config {
	var cfg Config
	if err := yaml.Unmarshal(defaultsYAML, &cfg); err != nil {
		// This is an embedded file so this error should never happen in practice
		panic("failed to unmarshal embedded defaults.yaml: " + err.Error())
	}
	return &cfg
}

// Load builds the configuration from the embedded defaults, the optional YAML
// file at path and the FACE_* environment variables, in that order.
func Load(path string) (*Config, error) {
	cfg := Defaults()

	if path != "" {
		data, err := os.ReadFile(path) //nolint:gosec // path is from trusted flag or env
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file %s: %w", path, err)
		}
	}

	cfg.Store.Dir = envString("FACE_STORE_DIR", cfg.Store.Dir)
	cfg.Store.PickerDir = envString("FACE_PICKER_DIR", cfg.Store.PickerDir)
	cfg.Store.LockTimeout = envDuration("FACE_LOCK_TIMEOUT", cfg.Store.LockTimeout)
	cfg.Recognizer.ModelsDir = envString("FACE_MODELS_DIR", cfg.Recognizer.ModelsDir)
	cfg.Recognizer.Tolerance = envFloat("FACE_TOLERANCE", cfg.Recognizer.Tolerance)
	cfg.Recognizer.UseCNN = envBool("FACE_USE_CNN", cfg.Recognizer.UseCNN)
	cfg.UI.ThumbnailSize = envInt("FACE_THUMBNAIL_SIZE", cfg.UI.ThumbnailSize)

	return cfg, nil
}

// Validate reports the first setting that cannot work.
func (c *Config) Validate() error {
	if c.Store.Dir == "" {
		return errors.New("store folder is not set (FACE_STORE_DIR or --store)")
	}
	if c.Recognizer.ModelsDir == "" {
		return errors.New("models folder is not set (FACE_MODELS_DIR or --models)")
	}
	if c.Recognizer.Tolerance <= 0 {
		return fmt.Errorf("tolerance must be positive, got %v", c.Recognizer.Tolerance)
	}
	if c.Store.LockTimeout <= 0 {
		return fmt.Errorf("lock timeout must be positive, got %v", c.Store.LockTimeout)
	}
	if c.UI.ThumbnailSize <= 0 {
		return fmt.Errorf("thumbnail size must be positive, got %d", c.UI.ThumbnailSize)
	}
	return nil
}

// PickerStart returns the folder the file picker should open in: the
// configured picker folder, else the home folder, else the store folder.
func (c *Config) PickerStart() string {
	if c.Store.PickerDir != "" {
		return c.Store.PickerDir
	}
	if home, err := os.UserHomeDir(); err == nil {
		return home
	}
	return c.Store.Dir
}
