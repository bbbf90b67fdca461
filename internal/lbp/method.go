package lbp

import (
	"fmt"
	"strings"

	apperrors "github.com/anime-shed/texture-inspector-go/internal/errors"
)

// Method selects how a neighborhood is encoded
type Method int

const (
	// Default is the plain P-bit pattern, grayscale invariant only
	Default Method = iota
	// ROR is the minimum over all circular rotations of the pattern
	ROR
	// Uniform counts ones for patterns with at most two transitions and
	// collapses the rest into P+1
	Uniform
	// NRIUniform keeps one code per rotation of every uniform pattern
	NRIUniform
	// Var is the population variance of the sampled neighbors
	Var
)

var methodNames = [...]string{
	Default:    "default",
	ROR:        "ror",
	Uniform:    "uniform",
	NRIUniform: "nri_uniform",
	Var:        "var",
}

// Methods lists every supported method in declaration order
func Methods() []Method {
	return []Method{Default, ROR, Uniform, NRIUniform, Var}
}

// ParseMethod resolves a method name case-insensitively
func ParseMethod(name string) (Method, error) {
	normalized := strings.ToLower(strings.TrimSpace(name))
	for m, n := range methodNames {
		if n == normalized {
			return Method(m), nil
		}
	}
	return 0, apperrors.NewUnknownMethodError(name)
}

func (m Method) String() string {
	if m.valid() {
		return methodNames[m]
	}
	return fmt.Sprintf("Method(%d)", int(m))
}

// IsInteger reports whether the method produces integer codes
func (m Method) IsInteger() bool {
	return m.valid() && m != Var
}

// Bins returns the size of the code space for p sample points, i.e. every
// code lies in [0, Bins(p)). Var has no discrete code space and returns 0.
func (m Method) Bins(p int) int {
	switch m {
	case Default, ROR:
		return 1 << p
	case Uniform:
		return p + 2
	case NRIUniform:
		return p*(p-1) + 3
	default:
		return 0
	}
}

// MarshalText implements encoding.TextMarshaler
func (m Method) MarshalText() ([]byte, error) {
	if !m.valid() {
		return nil, apperrors.NewUnknownMethodError(m.String())
	}
	return []byte(m.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler
func (m *Method) UnmarshalText(text []byte) error {
	parsed, err := ParseMethod(string(text))
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

func (m Method) valid() bool {
	return m >= Default && m <= Var
}
