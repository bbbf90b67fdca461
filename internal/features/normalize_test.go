package features

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseNormalization(t *testing.T) {
	for name, want := range map[string]Normalization{
		"":     NormalizeNone,
		"none": NormalizeNone,
		"L1":   NormalizeL1,
		" l2 ": NormalizeL2,
	} {
		got, err := ParseNormalization(name)
		require.NoError(t, err, name)
		assert.Equal(t, want, got, name)
	}

	_, err := ParseNormalization("max")
	assert.Error(t, err)
}

func TestNormalize(t *testing.T) {
	assert.InDeltaSlice(t, []float64{0.25, 0.75}, Normalize([]float64{1, 3}, NormalizeL1), 1e-12)
	assert.InDeltaSlice(t, []float64{0.6, 0.8}, Normalize([]float64{3, 4}, NormalizeL2), 1e-12)
	assert.Equal(t, []float64{0, 0}, Normalize([]float64{0, 0}, NormalizeL1))
	assert.Equal(t, []float64{3, 4}, Normalize([]float64{3, 4}, NormalizeNone))
}

func TestNormalize_DoesNotModifyInput(t *testing.T) {
	v := []float64{2, 2}
	out := Normalize(v, NormalizeL1)
	out[0] = 42
	assert.Equal(t, []float64{2, 2}, v)
}
