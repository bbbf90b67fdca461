package lbp

import (
	"math"
	"math/bits"

	"gonum.org/v1/gonum/stat"
)

// Bit p of a pattern corresponds to sample point p; sample p is at angle
// 2πp/P. A bit is set when the sample is greater than or equal to the center.

func binarize(samples []float64, center float64) uint64 {
	var pattern uint64
	for i, v := range samples {
		if v >= center {
			pattern |= 1 << uint(i)
		}
	}
	return pattern
}

func mask(p int) uint64 {
	return 1<<uint(p) - 1
}

// rotateRight rotates a p-bit pattern right by k positions
func rotateRight(pattern uint64, k, p int) uint64 {
	k %= p
	if k == 0 {
		return pattern
	}
	return (pattern>>uint(k) | pattern<<uint(p-k)) & mask(p)
}

// rotationInvariant returns the smallest value among all rotations
func rotationInvariant(pattern uint64, p int) uint64 {
	best := pattern
	for k := 1; k < p; k++ {
		if r := rotateRight(pattern, k, p); r < best {
			best = r
		}
	}
	return best
}

// transitions counts 0/1 changes around the circle, including P-1 to 0
func transitions(pattern uint64, p int) int {
	return bits.OnesCount64(pattern ^ rotateRight(pattern, 1, p))
}

func uniformCode(pattern uint64, p int) uint64 {
	if transitions(pattern, p) > 2 {
		return uint64(p + 1)
	}
	return uint64(bits.OnesCount64(pattern))
}

// nriUniformCode numbers uniform patterns by (ones, start of the run of ones):
// 0 for no ones, 1+(ones-1)*P+start for partial runs, P(P-1)+1 for all ones
// and P(P-1)+2 for every non-uniform pattern.
func nriUniformCode(pattern uint64, p int) uint64 {
	if transitions(pattern, p) > 2 {
		return uint64(p*(p-1) + 2)
	}
	ones := bits.OnesCount64(pattern)
	switch ones {
	case 0:
		return 0
	case p:
		return uint64(p*(p-1) + 1)
	}
	// A run starts where a set bit follows a clear one.
	prev := rotateRight(pattern, p-1, p)
	start := bits.TrailingZeros64(pattern &^ prev)
	return uint64(1 + (ones-1)*p + start)
}

func localVariance(samples []float64) float64 {
	v := stat.PopVariance(samples, nil)
	if v < 0 || math.IsNaN(v) {
		return 0
	}
	return v
}

// encode maps one neighborhood to its output value
func encode(method Method, samples []float64, center float64) float64 {
	p := len(samples)
	switch method {
	case Var:
		return localVariance(samples)
	case Default:
		return float64(binarize(samples, center))
	case ROR:
		return float64(rotationInvariant(binarize(samples, center), p))
	case Uniform:
		return float64(uniformCode(binarize(samples, center), p))
	case NRIUniform:
		return float64(nriUniformCode(binarize(samples, center), p))
	}
	panic("lbp: unhandled method " + method.String())
}
