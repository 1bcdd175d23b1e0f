package recognizer

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"
	_ "image/png"
	"os"
	"path/filepath"
	"strings"
)

// Extensions lists the image extensions the program accepts, lowercase and
// with the leading dot.
var Extensions = []string{".jpg", ".jpeg", ".png"}

// IsSupportedImage checks if a file name has a supported image extension.
func IsSupportedImage(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	for _, e := range Extensions {
		if ext == e {
			return true
		}
	}
	return false
}

// ReadJPEG reads an image file and returns JPEG-encoded bytes.
// dlib only decodes JPEG, so PNG files are re-encoded in memory.
func ReadJPEG(path string) ([]byte, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path comes from the user or the archive folder
	if err != nil {
		return nil, fmt.Errorf("reading image: %w", err)
	}
	return ToJPEG(data)
}

// ToJPEG returns data unchanged when it already holds a JPEG, otherwise it
// decodes the image and encodes it as JPEG.
func ToJPEG(data []byte) ([]byte, error) {
	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}
	if format == "jpeg" {
		return data, nil
	}

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: 95}); err != nil {
		return nil, fmt.Errorf("failed to encode %s as jpeg: %w", format, err)
	}
	return buf.Bytes(), nil
}
