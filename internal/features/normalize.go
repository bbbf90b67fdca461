package features

import (
	"strings"

	"gonum.org/v1/gonum/floats"

	apperrors "github.com/anime-shed/texture-inspector-go/internal/errors"
)

// Normalization scales a feature vector
type Normalization string

const (
	NormalizeNone Normalization = "none"
	NormalizeL1   Normalization = "l1"
	NormalizeL2   Normalization = "l2"
)

// ParseNormalization resolves a normalization name; the empty string means none.
func ParseNormalization(name string) (Normalization, error) {
	switch n := Normalization(strings.ToLower(strings.TrimSpace(name))); n {
	case "", NormalizeNone:
		return NormalizeNone, nil
	case NormalizeL1, NormalizeL2:
		return n, nil
	}
	return "", apperrors.NewInvalidParameterError("unknown normalization "+name, nil)
}

// Normalize returns a scaled copy of v. A zero vector is returned unchanged.
func Normalize(v []float64, n Normalization) []float64 {
	out := make([]float64, len(v))
	copy(out, v)

	var norm float64
	switch n {
	case NormalizeL1:
		norm = floats.Norm(out, 1)
	case NormalizeL2:
		norm = floats.Norm(out, 2)
	default:
		return out
	}
	if norm > 0 {
		floats.Scale(1/norm, out)
	}
	return out
}
