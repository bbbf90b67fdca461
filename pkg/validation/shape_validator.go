package validation

import (
	"fmt"
	"strconv"
	"strings"

	apperrors "github.com/anime-shed/texture-inspector-go/internal/errors"
	"github.com/anime-shed/texture-inspector-go/pkg/ndarray"
)

const (
	msgIncorrectDim = "The parameter `%s` must be a %s-dimensional array"
	msgEmptyArray   = "The parameter `%s` cannot be an empty array"
)

// CheckND verifies that an array is non-empty and has one of the allowed
// numbers of dimensions. A nil array is reported as empty.
func CheckND(array *ndarray.Array, argName string, ndim ...int) error {
	if array == nil || array.Size() == 0 {
		return apperrors.NewEmptyInputError(fmt.Sprintf(msgEmptyArray, argName), nil)
	}

	for _, n := range ndim {
		if array.NDim() == n {
			return nil
		}
	}

	allowed := make([]string, len(ndim))
	for i, n := range ndim {
		allowed[i] = strconv.Itoa(n)
	}
	err := apperrors.NewInvalidShapeError(fmt.Sprintf(msgIncorrectDim, argName, strings.Join(allowed, "-or-")), nil)
	err.Details = fmt.Sprintf("got shape %v", array.Shape())
	return err
}

// ShapeValidator checks arrays against a fixed set of allowed ranks.
type ShapeValidator struct {
	argName string
	ndim    []int
}

// NewShapeValidator creates a validator for the named argument
func NewShapeValidator(argName string, ndim ...int) *ShapeValidator {
	return &ShapeValidator{
		argName: argName,
		ndim:    append([]int(nil), ndim...),
	}
}

// Validate runs CheckND with the configured argument name and ranks
func (v *ShapeValidator) Validate(array *ndarray.Array) error {
	return CheckND(array, v.argName, v.ndim...)
}
