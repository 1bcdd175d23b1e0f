// Package recognizer defines the face recognition capability the rest of the
// program depends on. The dlib subpackage provides the production
// implementation; tests use hand-written fakes.
package recognizer

// DescriptorSize is the length of a face descriptor produced by dlib.
const DescriptorSize = 128

// Descriptor is a face identity vector.
type Descriptor [DescriptorSize]float32

// Vector returns the descriptor as a slice, the form vector indexes expect.
func (d Descriptor) Vector() []float32 {
	v := make([]float32, DescriptorSize)
	copy(v, d[:])
	return v
}

// Detector extracts face descriptors from an image file.
type Detector interface {
	// Detect returns one descriptor per detected face, in detection order.
	// An image without faces yields an empty slice and a nil error.
	Detect(path string) ([]Descriptor, error)
}

// Comparator decides whether two descriptors belong to the same person.
type Comparator interface {
	// Compare returns one verdict per known descriptor, in the same order.
	Compare(known []Descriptor, candidate Descriptor) []bool
}
