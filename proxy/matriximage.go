package proxy

import (
	"image"
	"image/color"

	"github.com/hippodribble/pixmat/pixel"
)

// MatrixImage presents a matrix as a grayscale image.Image without copying,
// encoding each element on access. Matrix rows run along x and columns along
// y, as in BuildMatrix.
type MatrixImage[T any] struct {
	matrix Matrix[T]
	codec  pixel.Codec[T]
}

func NewMatrixImage[T any](matrix Matrix[T], codec pixel.Codec[T]) *MatrixImage[T] {
	return &MatrixImage[T]{matrix: matrix, codec: codec}
}

func (mi *MatrixImage[T]) At(x, y int) color.Color {
	r, c := mi.matrix.Dims()
	if x < 0 || y < 0 || x >= r || y >= c {
		return color.Gray{}
	}
	return color.Gray{Y: mi.codec.Encode(mi.matrix.At(x, y))}
}

func (mi *MatrixImage[T]) ColorModel() color.Model {
	return color.GrayModel
}

func (mi *MatrixImage[T]) Bounds() image.Rectangle {
	r, c := mi.matrix.Dims()
	return image.Rect(0, 0, r, c)
}
