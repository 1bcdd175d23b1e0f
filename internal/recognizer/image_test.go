package recognizer

import (
	"bytes"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"testing"
)

func TestIsSupportedImage(t *testing.T) {
	tests := []struct {
		name     string
		expected bool
	}{
		{"face.jpg", true},
		{"face.JPG", true},
		{"face.jpeg", true},
		{"face.JpEg", true},
		{"face.png", true},
		{"face.PNG", true},
		{"face.gif", false},
		{"face.heic", false},
		{"face", false},
		{"jpg", false},
		{".png.txt", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsSupportedImage(tt.name); got != tt.expected {
				t.Errorf("IsSupportedImage(%q) = %v, want %v", tt.name, got, tt.expected)
			}
		})
	}
}

func testImage() image.Image {
	img := image.NewRGBA(image.Rect(0, 0, 8, 8))
	for x := 0; x < 8; x++ {
		for y := 0; y < 8; y++ {
			img.Set(x, y, color.RGBA{R: uint8(x * 30), G: uint8(y * 30), B: 128, A: 255})
		}
	}
	return img
}

func TestToJPEG_KeepsJPEGBytes(t *testing.T) {
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, testImage(), nil); err != nil {
		t.Fatal(err)
	}

	out, err := ToJPEG(buf.Bytes())
	if err != nil {
		t.Fatalf("ToJPEG() error = %v", err)
	}
	if !bytes.Equal(out, buf.Bytes()) {
		t.Error("expected JPEG input to be returned unchanged")
	}
}

func TestToJPEG_ConvertsPNG(t *testing.T) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, testImage()); err != nil {
		t.Fatal(err)
	}

	out, err := ToJPEG(buf.Bytes())
	if err != nil {
		t.Fatalf("ToJPEG() error = %v", err)
	}
	_, format, err := image.Decode(bytes.NewReader(out))
	if err != nil {
		t.Fatalf("decoding output: %v", err)
	}
	if format != "jpeg" {
		t.Errorf("expected jpeg output, got %s", format)
	}
}

func TestToJPEG_Garbage(t *testing.T) {
	if _, err := ToJPEG([]byte("not an image")); err == nil {
		t.Error("expected error for garbage input")
	}
}

func TestReadJPEG_MissingFile(t *testing.T) {
	if _, err := ReadJPEG(filepath.Join(t.TempDir(), "missing.jpg")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestReadJPEG_PNGFile(t *testing.T) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, testImage()); err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(t.TempDir(), "face.png")
	if err := os.WriteFile(path, buf.Bytes(), 0o600); err != nil {
		t.Fatal(err)
	}

	out, err := ReadJPEG(path)
	if err != nil {
		t.Fatalf("ReadJPEG() error = %v", err)
	}
	if _, err := jpeg.Decode(bytes.NewReader(out)); err != nil {
		t.Errorf("output is not a valid jpeg: %v", err)
	}
}

func TestDescriptorVector(t *testing.T) {
	var d Descriptor
	d[0] = 1.5
	d[DescriptorSize-1] = -2

	v := d.Vector()
	if len(v) != DescriptorSize {
		t.Fatalf("len(Vector()) = %d, want %d", len(v), DescriptorSize)
	}
	if v[0] != 1.5 || v[DescriptorSize-1] != -2 {
		t.Errorf("Vector() did not copy values: %v", v)
	}

	v[0] = 99
	if d[0] != 1.5 {
		t.Error("Vector() must not alias the descriptor")
	}
}
