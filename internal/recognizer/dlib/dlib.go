// Package dlib implements the recognizer interfaces on top of go-face,
// which binds the dlib face detector and ResNet descriptor model via cgo.
package dlib

import (
	"fmt"
	"log"

	"github.com/Kagami/go-face"
	"github.com/kozaktomas/face-compare/internal/recognizer"
)

// DefaultTolerance is the euclidean distance under which two descriptors are
// considered the same person.
const DefaultTolerance = 0.6

// Recognizer detects faces and computes descriptors with dlib.
type Recognizer struct {
	rec    *face.Recognizer
	useCNN bool
}

// New loads the dlib models from modelsDir. The directory must contain
// shape_predictor_5_face_landmarks.dat, dlib_face_recognition_resnet_model_v1.dat
// and mmod_human_face_detector.dat.
func New(modelsDir string, useCNN bool) (*Recognizer, error) {
	rec, err := face.NewRecognizer(modelsDir)
	if err != nil {
		return nil, fmt.Errorf("initializing dlib recognizer from %s: %w", modelsDir, err)
	}
	log.Println("[recognizer]", "models loaded from", modelsDir, "cnn:", useCNN)
	return &Recognizer{rec: rec, useCNN: useCNN}, nil
}

// Detect implements recognizer.Detector.
func (r *Recognizer) Detect(path string) ([]recognizer.Descriptor, error) {
	data, err := recognizer.ReadJPEG(path)
	if err != nil {
		return nil, err
	}

	var faces []face.Face
	if r.useCNN {
		faces, err = r.rec.RecognizeCNN(data)
	} else {
		faces, err = r.rec.Recognize(data)
	}
	if err != nil {
		return nil, fmt.Errorf("recognizing faces in %s: %w", path, err)
	}

	descriptors := make([]recognizer.Descriptor, len(faces))
	for i, f := range faces {
		descriptors[i] = recognizer.Descriptor(f.Descriptor)
	}
	return descriptors, nil
}

// Close releases the dlib models.
func (r *Recognizer) Close() {
	r.rec.Close()
}

// Comparator matches descriptors whose euclidean distance is within Tolerance.
type Comparator struct {
	Tolerance float64
}

// NewComparator returns a comparator, falling back to DefaultTolerance for
// non-positive values.
func NewComparator(tolerance float64) Comparator {
	if tolerance <= 0 {
		tolerance = DefaultTolerance
	}
	return Comparator{Tolerance: tolerance}
}

// Compare implements recognizer.Comparator.
func (c Comparator) Compare(known []recognizer.Descriptor, candidate recognizer.Descriptor) []bool {
	limit := c.Tolerance * c.Tolerance
	verdicts := make([]bool, len(known))
	for i, k := range known {
		verdicts[i] = face.SquaredEuclideanDistance(face.Descriptor(k), face.Descriptor(candidate)) <= limit
	}
	return verdicts
}
