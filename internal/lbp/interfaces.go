package lbp

import "github.com/anime-shed/texture-inspector-go/pkg/ndarray"

// PatternComputer computes pattern images; callers depend on this rather than
// on *Engine so they can be tested with stubs.
type PatternComputer interface {
	Compute(img *ndarray.Array, p int, r float64, method Method) (*ndarray.Array, error)
}

var _ PatternComputer = (*Engine)(nil)

// NamedPatternComputer also accepts method names
type NamedPatternComputer interface {
	PatternComputer
	ComputeNamed(img *ndarray.Array, p int, r float64, method string) (*ndarray.Array, error)
}

var _ NamedPatternComputer = (*Engine)(nil)
