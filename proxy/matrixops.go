package proxy

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

// ImageMatrix adds spatial image operations to a real matrix built by
// BuildDense. Rows run along x and columns along y.
type ImageMatrix struct {
	*mat.Dense
}

func NewImageMatrix(m *mat.Dense) ImageMatrix {
	return ImageMatrix{Dense: m}
}

// NewPSF returns a (2*radius+1)² Gaussian kernel normalised to unit sum.
func NewPSF(radius int, sigma float64) (ImageMatrix, error) {
	if radius < 0 || !(sigma > 0) {
		return ImageMatrix{}, fmt.Errorf("psf radius %d sigma %v: invalid kernel", radius, sigma)
	}
	n := 2*radius + 1
	psf := mat.NewDense(n, n, nil)
	sum := 0.0
	for i := -radius; i <= radius; i++ {
		for j := -radius; j <= radius; j++ {
			a := math.Exp(-float64(i*i+j*j) / (2 * sigma * sigma))
			psf.Set(i+radius, j+radius, a)
			sum += a
		}
	}
	psf.Scale(1/sum, psf)
	return NewImageMatrix(psf), nil
}

// Transpose swaps the x and y axes.
func (imat ImageMatrix) Transpose() ImageMatrix {
	t := mat.DenseCopyOf(imat.T())
	return NewImageMatrix(t)
}

// shifts an image by an integer number of pixels; exposed areas are zero
func (imat ImageMatrix) Translate(dx, dy int) ImageMatrix {
	r, c := imat.Dims()
	shifted := mat.NewDense(r, c, nil)
	for i := 0; i < r; i++ {
		I := i - dx
		if I < 0 || I >= r {
			continue
		}
		for j := 0; j < c; j++ {
			J := j - dy
			if J > -1 && J < c {
				shifted.Set(i, j, imat.At(I, J))
			}
		}
	}
	return NewImageMatrix(shifted)
}

// Flip mirrors the image along both axes.
func (imat ImageMatrix) Flip() ImageMatrix {
	r, c := imat.Dims()
	M := mat.NewDense(r, c, nil)
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			M.Set(i, j, imat.At(r-1-i, c-1-j))
		}
	}
	return NewImageMatrix(M)
}

// Pad surrounds the matrix with zeros: top/bottom rows, left/right columns.
func (imat ImageMatrix) Pad(T, B, L, R int) ImageMatrix {
	rows, cols := imat.Dims()
	M := mat.NewDense(rows+T+B, cols+L+R, nil)
	M.Slice(T, T+rows, L, L+cols).(*mat.Dense).Copy(imat)
	return NewImageMatrix(M)
}

// PadReflect pads by n on every side, mirroring the edge values. n must not
// exceed either dimension.
func (imat ImageMatrix) PadReflect(n int) (ImageMatrix, error) {
	rows, cols := imat.Dims()
	if n < 0 || n > rows || n > cols {
		return ImageMatrix{}, fmt.Errorf("reflect %dx%d by %d: %w", rows, cols, n, ErrDimensionMismatch)
	}
	M := imat.Pad(n, n, n, n)
	for i := 0; i < n; i++ {
		for col := n; col < cols+n; col++ {
			M.Set(n-1-i, col, M.At(n+i, col))
			M.Set(rows+n+i, col, M.At(rows+n-1-i, col))
		}
	}
	for j := 0; j < n; j++ {
		for row := 0; row < rows+2*n; row++ {
			M.Set(row, n-1-j, M.At(row, n+j))
			M.Set(row, cols+n+j, M.At(row, cols+n-1-j))
		}
	}
	return M, nil
}

// Trim removes T/B rows and L/R columns from the edges.
func (imat ImageMatrix) Trim(T, B, L, R int) (ImageMatrix, error) {
	r, c := imat.Dims()
	h, w := r-T-B, c-L-R
	if T < 0 || B < 0 || L < 0 || R < 0 || h <= 0 || w <= 0 {
		return ImageMatrix{}, fmt.Errorf("trim %dx%d by %d,%d,%d,%d: %w", r, c, T, B, L, R, ErrDimensionMismatch)
	}
	return NewImageMatrix(mat.DenseCopyOf(imat.Slice(T, T+h, L, L+w))), nil
}

func (imat ImageMatrix) TrimAll(n int) (ImageMatrix, error) {
	return imat.Trim(n, n, n, n)
}

// Convolve applies the square kernel k centred on each element, treating
// values outside the matrix as zero.
func (imat ImageMatrix) Convolve(k ImageMatrix) (ImageMatrix, error) {
	kr, kc := k.Dims()
	if kr != kc || kr%2 == 0 {
		return ImageMatrix{}, fmt.Errorf("kernel %dx%d must be square and odd: %w", kr, kc, ErrDimensionMismatch)
	}
	R, C := imat.Dims()
	radius := kr / 2
	g := mat.NewDense(R, C, nil)
	for i := 0; i < R; i++ {
		for j := 0; j < C; j++ {
			v := 0.0
			for a := -radius; a <= radius; a++ {
				if i+a < 0 || i+a >= R {
					continue
				}
				for b := -radius; b <= radius; b++ {
					if j+b >= 0 && j+b < C {
						v += imat.At(i+a, j+b) * k.At(radius-a, radius-b)
					}
				}
			}
			g.Set(i, j, v)
		}
	}
	return NewImageMatrix(g), nil
}

// RescaleMatrix linearly maps the data range of m onto [-1,1]. A constant
// matrix maps to zero.
func RescaleMatrix(m mat.Matrix) *mat.Dense {
	r, c := m.Dims()
	out := mat.NewDense(r, c, nil)
	vmin, vmax := mat.Min(m), mat.Max(m)
	vrange := vmax - vmin
	if vrange == 0 {
		return out
	}
	out.Apply(func(i, j int, v float64) float64 {
		return (v-vmin)/vrange*2 - 1
	}, m)
	return out
}
