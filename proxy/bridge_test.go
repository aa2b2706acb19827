package proxy

import (
	"errors"
	"math/rand"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/hippodribble/pixmat/pixel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

func TestBuildDenseAxisConvention(t *testing.T) {
	raw := []uint8{0, 64, 128, 192, 255, 32}
	m, err := BuildDense(2, 3, raw)
	require.NoError(t, err)

	r, c := m.Dims()
	assert.Equal(t, 2, r, "rows follow width")
	assert.Equal(t, 3, c, "columns follow height")

	// (x, y) -> raw[y*width+x]
	for y := 0; y < 3; y++ {
		for x := 0; x < 2; x++ {
			assert.Equal(t, pixel.Real{}.Decode(raw[y*2+x]), m.At(x, y), "x=%d y=%d", x, y)
		}
	}

	out, err := FlattenDense(m)
	require.NoError(t, err)
	if diff := cmp.Diff(raw, out); diff != "" {
		t.Errorf("flatten mismatch (-want +got):\n%s", diff)
	}
}

func TestBuildCDenseAxisConvention(t *testing.T) {
	raw := []uint8{0, 64, 128, 192, 255, 32}
	m, err := BuildCDense(2, 3, raw)
	require.NoError(t, err)

	r, c := m.Dims()
	require.Equal(t, 2, r)
	require.Equal(t, 3, c)
	for y := 0; y < 3; y++ {
		for x := 0; x < 2; x++ {
			assert.Equal(t, 0.0, imag(m.At(x, y)))
		}
	}

	out, err := FlattenCDense(m)
	require.NoError(t, err)
	assert.Equal(t, raw, out)
}

func TestShapePreservation(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	for _, dims := range [][2]int{{1, 1}, {1, 7}, {7, 1}, {4, 4}, {5, 3}, {3, 5}, {16, 9}} {
		w, h := dims[0], dims[1]
		raw := make([]uint8, w*h)
		for i := range raw {
			raw[i] = uint8(rng.Intn(256))
		}

		m, err := BuildDense(w, h, raw)
		require.NoError(t, err)
		r, c := m.Dims()
		assert.Equal(t, w, r)
		assert.Equal(t, h, c)

		out, err := FlattenDense(m)
		require.NoError(t, err)
		assert.Equal(t, raw, out, "%dx%d", w, h)
	}
}

func TestRealAndComplexAgree(t *testing.T) {
	raw := make([]uint8, 6*4)
	for i := range raw {
		raw[i] = uint8(i * 11)
	}
	dr, err := BuildDense(6, 4, raw)
	require.NoError(t, err)
	cr, err := BuildCDense(6, 4, raw)
	require.NoError(t, err)

	// imaginary parts are discarded on encode
	cr.Set(1, 1, cr.At(1, 1)+0.75i)

	a, err := FlattenDense(dr)
	require.NoError(t, err)
	b, err := FlattenCDense(cr)
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestBuildContractViolation(t *testing.T) {
	_, err := BuildDense(2, 3, make([]uint8, 5))
	assert.True(t, errors.Is(err, ErrContractViolation))

	_, err = BuildCDense(2, 3, make([]uint8, 7))
	assert.ErrorIs(t, err, ErrContractViolation)

	_, err = BuildMatrix[float64](-1, 2, nil, pixel.Real{}, func(r, c int) *mat.Dense { return nil })
	assert.ErrorIs(t, err, ErrContractViolation)
}

func TestBuildDenseEmpty(t *testing.T) {
	_, err := BuildDense(0, 0, nil)
	assert.ErrorIs(t, err, ErrEmptyRaster)
	_, err = BuildCDense(3, 0, nil)
	assert.ErrorIs(t, err, ErrEmptyRaster)
}

// grid is a minimal column-major container used to check the generic bridge
// against scalar types gonum has no matrix for.
type grid[T any] struct {
	rows, cols int
	data       []T
}

func newGrid[T any](r, c int) *grid[T] {
	return &grid[T]{rows: r, cols: c, data: make([]T, r*c)}
}

func (g *grid[T]) Dims() (int, int) { return g.rows, g.cols }
func (g *grid[T]) At(i, j int) T { return g.data[j*g.rows+i] }
func (g *grid[T]) Set(i, j int, v T) { g.data[j*g.rows+i] = v }
func (g *grid[T]) RawLen() int { return len(g.data) }

func TestGenericBridgeFixedPoint(t *testing.T) {
	raw := []uint8{0, 64, 128, 192, 255, 32}
	g, err := BuildMatrix[pixel.Q15](2, 3, raw, pixel.Fixed{}, newGrid[pixel.Q15])
	require.NoError(t, err)

	// column-major traversal of the matrix is the raster order itself
	assert.Equal(t, pixel.DecodeAll[pixel.Q15](pixel.Fixed{}, raw), g.data)

	out, err := FlattenMatrix[pixel.Q15](g, pixel.Fixed{})
	require.NoError(t, err)
	assert.Equal(t, raw, out)
}

func TestGenericBridgeEmpty(t *testing.T) {
	g, err := BuildMatrix[float64](0, 0, nil, pixel.Real{}, newGrid[float64])
	require.NoError(t, err)
	out, err := FlattenMatrix[float64](g, pixel.Real{})
	require.NoError(t, err)
	assert.Empty(t, out)
}

func TestFlattenDetectsBadBackingStore(t *testing.T) {
	g := newGrid[float64](2, 3)
	g.data = g.data[:5]
	_, err := FlattenMatrix[float64](g, pixel.Real{})
	assert.ErrorIs(t, err, ErrContractViolation)
}

func TestFlattenSaturates(t *testing.T) {
	m := mat.NewDense(2, 2, []float64{2, -2, 1, -1})
	out, err := FlattenDense(m)
	require.NoError(t, err)
	// column-major: (0,0) (1,0) (0,1) (1,1)
	assert.Equal(t, []uint8{255, 255, 0, 0}, out)
}

func TestMatrixImageMatchesFlatten(t *testing.T) {
	raw := []uint8{0, 64, 128, 192, 255, 32}
	m, err := BuildDense(2, 3, raw)
	require.NoError(t, err)

	mi := NewMatrixImage[float64](m, pixel.Real{})
	assert.Equal(t, 2, mi.Bounds().Dx())
	assert.Equal(t, 3, mi.Bounds().Dy())
	for y := 0; y < 3; y++ {
		for x := 0; x < 2; x++ {
			r, _, _, _ := mi.At(x, y).RGBA()
			assert.Equal(t, raw[y*2+x], uint8(r>>8))
		}
	}
}
