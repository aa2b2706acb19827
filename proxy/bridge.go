package proxy

import (
	"fmt"

	"github.com/hippodribble/pixmat/pixel"
	"gonum.org/v1/gonum/mat"
)

// Matrix is a read-only 2D grid of scalars. *mat.Dense and *mat.CDense both
// satisfy it.
type Matrix[T any] interface {
	Dims() (r, c int)
	At(i, j int) T
}

// Mutable is a Matrix that can be filled in place.
type Mutable[T any] interface {
	Matrix[T]
	Set(i, j int, v T)
}

// rawLener is implemented by matrices that can report the length of their
// backing store, so that FlattenMatrix can check it against Dims.
type rawLener interface {
	RawLen() int
}

// BuildMatrix decodes a row-major raster of width*height samples into a
// matrix of width rows and height columns, allocated by alloc.
//
// Element (r, c) holds the sample at x=r, y=c, i.e. raw[c*width+r]. This is
// column-major traversal of the matrix and must agree with FlattenMatrix,
// otherwise images come back transposed.
func BuildMatrix[T any, M Mutable[T]](width, height int, raw []uint8, codec pixel.Codec[T], alloc func(rows, cols int) M) (M, error) {
	var m M
	if width < 0 || height < 0 {
		return m, fmt.Errorf("build matrix %dx%d: %w", width, height, ErrContractViolation)
	}
	if len(raw) != width*height {
		return m, fmt.Errorf("build matrix %dx%d from %d samples: %w", width, height, len(raw), ErrContractViolation)
	}
	m = alloc(width, height)
	for c := 0; c < height; c++ {
		for r := 0; r < width; r++ {
			m.Set(r, c, codec.Decode(raw[c*width+r]))
		}
	}
	return m, nil
}

// FlattenMatrix encodes m back into rows*cols raw samples, reading in the
// order BuildMatrix writes. The result is a row-major raster of width rows
// and height cols.
func FlattenMatrix[T any](m Matrix[T], codec pixel.Codec[T]) ([]uint8, error) {
	rows, cols := m.Dims()
	if rows < 0 || cols < 0 {
		return nil, fmt.Errorf("flatten matrix %dx%d: %w", rows, cols, ErrContractViolation)
	}
	if rl, ok := m.(rawLener); ok && rl.RawLen() != rows*cols {
		return nil, fmt.Errorf("flatten matrix %dx%d holding %d elements: %w", rows, cols, rl.RawLen(), ErrContractViolation)
	}
	out := make([]uint8, rows*cols)
	for c := 0; c < cols; c++ {
		for r := 0; r < rows; r++ {
			out[c*rows+r] = codec.Encode(m.At(r, c))
		}
	}
	return out, nil
}

// BuildDense builds a real-valued matrix using pixel.Real.
func BuildDense(width, height int, raw []uint8) (*mat.Dense, error) {
	if width == 0 || height == 0 {
		return nil, fmt.Errorf("build dense %dx%d: %w", width, height, ErrEmptyRaster)
	}
	return BuildMatrix[float64](width, height, raw, pixel.Real{}, func(r, c int) *mat.Dense {
		return mat.NewDense(r, c, nil)
	})
}

// BuildCDense builds a complex-valued matrix using pixel.Complex. All
// imaginary parts are zero.
func BuildCDense(width, height int, raw []uint8) (*mat.CDense, error) {
	if width == 0 || height == 0 {
		return nil, fmt.Errorf("build cdense %dx%d: %w", width, height, ErrEmptyRaster)
	}
	return BuildMatrix[complex128](width, height, raw, pixel.Complex{}, func(r, c int) *mat.CDense {
		return mat.NewCDense(r, c, nil)
	})
}

// FlattenDense is FlattenMatrix with pixel.Real.
func FlattenDense(m *mat.Dense) ([]uint8, error) {
	return FlattenMatrix[float64](m, pixel.Real{})
}

// FlattenCDense is FlattenMatrix with pixel.Complex.
func FlattenCDense(m *mat.CDense) ([]uint8, error) {
	return FlattenMatrix[complex128](m, pixel.Complex{})
}
