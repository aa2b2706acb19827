package proxy

import "errors"

var (
	// ErrContractViolation is returned when a sample count does not match the
	// dimensions it is paired with, or a dimension is negative.
	ErrContractViolation = errors.New("proxy: sample count does not match dimensions")

	// ErrEmptyRaster is returned where a zero-sized raster cannot be
	// represented, e.g. as a gonum matrix.
	ErrEmptyRaster = errors.New("proxy: empty raster")

	// ErrDimensionMismatch is returned when two matrices must share a shape
	// and do not.
	ErrDimensionMismatch = errors.New("proxy: matrix dimensions do not match")

	// ErrUnsupportedFormat is returned for file names whose extension has no
	// registered raster encoder.
	ErrUnsupportedFormat = errors.New("proxy: unsupported image format")
)
