package validation

import (
	"errors"
	"strings"
	"testing"

	apperrors "github.com/anime-shed/texture-inspector-go/internal/errors"
	"github.com/anime-shed/texture-inspector-go/pkg/ndarray"
)

func TestCheckND(t *testing.T) {
	image2D := ndarray.New(ndarray.Integer, 3, 3)
	volume := ndarray.New(ndarray.Integer, 2, 2, 2)

	tests := []struct {
		name     string
		array    *ndarray.Array
		ndim     []int
		wantErr  error
		wantText string
	}{
		{
			name:  "Matching rank",
			array: image2D,
			ndim:  []int{2},
		},
		{
			name:  "One of several ranks",
			array: volume,
			ndim:  []int{2, 3},
		},
		{
			name:     "Wrong rank",
			array:    volume,
			ndim:     []int{2},
			wantErr:  apperrors.ErrInvalidShape,
			wantText: "The parameter `image` must be a 2-dimensional array",
		},
		{
			name:     "Wrong rank with alternatives",
			array:    ndarray.New(ndarray.Float, 4),
			ndim:     []int{2, 3},
			wantErr:  apperrors.ErrInvalidShape,
			wantText: "The parameter `image` must be a 2-or-3-dimensional array",
		},
		{
			name:     "Empty array",
			array:    ndarray.New(ndarray.Integer, 0, 5),
			ndim:     []int{2},
			wantErr:  apperrors.ErrEmptyInput,
			wantText: "The parameter `image` cannot be an empty array",
		},
		{
			name:     "Empty wins over wrong rank",
			array:    ndarray.New(ndarray.Integer, 0),
			ndim:     []int{2},
			wantErr:  apperrors.ErrEmptyInput,
			wantText: "cannot be an empty array",
		},
		{
			name:    "Nil array",
			array:   nil,
			ndim:    []int{2},
			wantErr: apperrors.ErrEmptyInput,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := CheckND(tt.array, "image", tt.ndim...)
			if tt.wantErr == nil {
				if err != nil {
					t.Fatalf("Expected no error, got %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("Expected %v, got %v", tt.wantErr, err)
			}
			if tt.wantText != "" {
				var appErr *apperrors.AppError
				if !errors.As(err, &appErr) {
					t.Fatalf("Expected AppError, got %T", err)
				}
				if !strings.Contains(appErr.Message, tt.wantText) {
					t.Errorf("Expected message containing %q, got %q", tt.wantText, appErr.Message)
				}
			}
		})
	}
}

func TestShapeValidator(t *testing.T) {
	v := NewShapeValidator("texture", 2)

	if err := v.Validate(ndarray.New(ndarray.Integer, 2, 2)); err != nil {
		t.Errorf("Expected valid 2D array, got %v", err)
	}

	err := v.Validate(ndarray.New(ndarray.Integer, 2))
	if !errors.Is(err, apperrors.ErrInvalidShape) {
		t.Fatalf("Expected invalid shape error, got %v", err)
	}
	if !strings.Contains(err.Error(), "`texture`") {
		t.Errorf("Expected argument name in error, got %q", err.Error())
	}
}
