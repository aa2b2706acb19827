package proxy

import (
	"fmt"
	"math"
	"math/cmplx"

	"github.com/mjibson/go-dsp/fft"
	"gonum.org/v1/gonum/mat"
)

// wrapper for a 2D complex array, the layout go-dsp works in
type Complex2D [][]complex128

// NewComplex2D copies a complex matrix into a Complex2D indexed [row][col].
func NewComplex2D(m *mat.CDense) Complex2D {
	r, c := m.Dims()
	out := make(Complex2D, r)
	for i := 0; i < r; i++ {
		out[i] = make([]complex128, c)
		for j := 0; j < c; j++ {
			out[i][j] = m.At(i, j)
		}
	}
	return out
}

// ToCDense copies the array into a new complex matrix.
func (c Complex2D) ToCDense() *mat.CDense {
	r, cols := c.Dims()
	m := mat.NewCDense(r, cols, nil)
	for i := 0; i < r; i++ {
		for j := 0; j < cols; j++ {
			m.Set(i, j, c[i][j])
		}
	}
	return m
}

func (c Complex2D) Spectrum() Complex2D {
	return fft.FFT2(c)
}

// IFFT is the inverse of Spectrum, including the 1/N scaling.
func (c Complex2D) IFFT() Complex2D {
	return fft.IFFT2(c)
}

func (c Complex2D) AsAmplitude() *mat.Dense {
	r, cols := c.Dims()
	out := mat.NewDense(r, cols, nil)
	for i := 0; i < r; i++ {
		for j := 0; j < cols; j++ {
			out.Set(i, j, cmplx.Abs(c[i][j]))
		}
	}
	return out
}

// shifts the array by half in both directions, to centre DC in amplitude spectra etc.
func (c Complex2D) Shift() Complex2D {
	h, w := c.Dims()
	cOut := make(Complex2D, h)
	for j := 0; j < h; j++ {
		cOut[j] = make([]complex128, w)
	}
	for j := 0; j < h; j++ {
		for i := 0; i < w; i++ {
			cOut[(j+h/2)%h][(i+w/2)%w] = c[j][i]
		}
	}
	return cOut
}

func (c Complex2D) Dims() (rows, cols int) {
	if len(c) == 0 {
		return 0, 0
	}
	return len(c), len(c[0])
}

func (c Complex2D) MultiplyElements(a Complex2D) (Complex2D, error) {
	R, C := c.Dims()
	R2, C2 := a.Dims()
	if R != R2 || C != C2 {
		return nil, fmt.Errorf("multiply %dx%d by %dx%d: %w", R, C, R2, C2, ErrDimensionMismatch)
	}
	out := make(Complex2D, R)
	for i := 0; i < R; i++ {
		out[i] = make([]complex128, C)
		for j := 0; j < C; j++ {
			out[i][j] = c[i][j] * a[i][j]
		}
	}
	return out, nil
}

// FFT2 returns the 2D discrete Fourier transform of m.
func FFT2(m *mat.CDense) *mat.CDense {
	return NewComplex2D(m).Spectrum().ToCDense()
}

// IFFT2 returns the normalised inverse transform, so IFFT2(FFT2(m)) ≈ m.
func IFFT2(m *mat.CDense) *mat.CDense {
	return NewComplex2D(m).IFFT().ToCDense()
}

// MultiplyElements returns the element-wise product of two matrices of the
// same shape.
func MultiplyElements(a, b *mat.CDense) (*mat.CDense, error) {
	p, err := NewComplex2D(a).MultiplyElements(NewComplex2D(b))
	if err != nil {
		return nil, err
	}
	return p.ToCDense(), nil
}

// RadialLowPass builds a frequency-domain window for an unshifted spectrum.
// The weight falls linearly from 1 at DC to 0 at radius, using wrapped
// distances along both axes.
func RadialLowPass(rows, cols int, radius float64) (*mat.CDense, error) {
	if rows <= 0 || cols <= 0 {
		return nil, fmt.Errorf("window %dx%d: %w", rows, cols, ErrEmptyRaster)
	}
	if !(radius > 0) {
		return nil, fmt.Errorf("window radius %v must be positive", radius)
	}
	w := mat.NewCDense(rows, cols, nil)
	for x := 0; x < rows; x++ {
		dx := float64(x)
		if x >= rows/2 {
			dx = float64(rows - x)
		}
		for y := 0; y < cols; y++ {
			dy := float64(y)
			if y >= cols/2 {
				dy = float64(cols - y)
			}
			w.Set(x, y, complex(math.Max(0, 1-math.Hypot(dx, dy)/radius), 0))
		}
	}
	return w, nil
}

// LowPass filters m through RadialLowPass in the frequency domain and returns
// a matrix of the same shape.
func LowPass(m *mat.CDense, radius float64) (*mat.CDense, error) {
	r, c := m.Dims()
	window, err := RadialLowPass(r, c, radius)
	if err != nil {
		return nil, err
	}
	filtered, err := MultiplyElements(FFT2(m), window)
	if err != nil {
		return nil, err
	}
	return IFFT2(filtered), nil
}

// Spectrum returns the centred log-amplitude spectrum of m rescaled to
// [-1,1], ready to be encoded as an image.
func Spectrum(m *mat.CDense) *mat.Dense {
	amp := NewComplex2D(m).Spectrum().Shift().AsAmplitude()
	amp.Apply(func(_, _ int, v float64) float64 { return math.Log1p(v) }, amp)
	return RescaleMatrix(amp)
}
