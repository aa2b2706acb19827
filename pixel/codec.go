// Package pixel maps 8-bit raster samples to the numeric domains that matrix
// code works in, and back again.
//
// Every codec follows one normalisation law: the raw range [0,255] is spread
// linearly over [-1,+1]. Decode is total on uint8 and Encode saturates, so
// values pushed out of range by filtering still produce a valid sample.
package pixel

import "math"

// MaxRaw is the largest raw sample value.
const MaxRaw = math.MaxUint8

// Codec is the decode/encode pair for one scalar type T.
//
// Implementations must satisfy Encode(Decode(x)) == x for every raw x, and
// Decode(Encode(y)) must stay within one quantisation step of y for y in
// [-1,1].
type Codec[T any] interface {
	Decode(raw uint8) T
	Encode(v T) uint8
}

// Real decodes to float64 signed-normalised luminance.
type Real struct{}

// Decode maps 0 to -1.0 and 255 to +1.0.
func (Real) Decode(raw uint8) float64 {
	return float64(raw)/MaxRaw*2 - 1
}

// Encode is the inverse of Decode, rounded to the nearest sample. Values
// outside [-1,1] saturate; NaN encodes to 0.
func (Real) Encode(v float64) uint8 {
	if math.IsNaN(v) {
		return 0
	}
	s := math.Round((v + 1) / 2 * MaxRaw)
	switch {
	case s <= 0:
		return 0
	case s >= MaxRaw:
		return MaxRaw
	}
	return uint8(s)
}

// Complex decodes to complex128 with the luminance on the real axis and a zero
// imaginary part. Encode ignores the imaginary part.
type Complex struct{}

func (Complex) Decode(raw uint8) complex128 {
	return complex(Real{}.Decode(raw), 0)
}

func (Complex) Encode(v complex128) uint8 {
	return Real{}.Encode(real(v))
}

// DecodeAll decodes a slice of raw samples.
func DecodeAll[T any](c Codec[T], raw []uint8) []T {
	out := make([]T, len(raw))
	for i, r := range raw {
		out[i] = c.Decode(r)
	}
	return out
}

// EncodeAll encodes a slice of scalars.
func EncodeAll[T any](c Codec[T], v []T) []uint8 {
	out := make([]uint8, len(v))
	for i, x := range v {
		out[i] = c.Encode(x)
	}
	return out
}
