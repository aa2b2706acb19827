package pixel

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const step = 2.0 / MaxRaw

func TestRealRoundTrip(t *testing.T) {
	c := Real{}
	for x := 0; x <= MaxRaw; x++ {
		require.Equal(t, uint8(x), c.Encode(c.Decode(uint8(x))), "raw %d", x)
	}
}

func TestComplexRoundTrip(t *testing.T) {
	c := Complex{}
	for x := 0; x <= MaxRaw; x++ {
		v := c.Decode(uint8(x))
		require.Equal(t, 0.0, imag(v), "raw %d", x)
		require.Equal(t, Real{}.Decode(uint8(x)), real(v))
		require.Equal(t, uint8(x), c.Encode(v), "raw %d", x)
	}
}

func TestFixedRoundTrip(t *testing.T) {
	c := Fixed{}
	for x := 0; x <= MaxRaw; x++ {
		require.Equal(t, uint8(x), c.Encode(c.Decode(uint8(x))), "raw %d", x)
	}
	assert.Equal(t, -QOne, c.Decode(0))
	assert.Equal(t, QOne, c.Decode(MaxRaw))
}

func TestDecodeEndpoints(t *testing.T) {
	assert.Equal(t, -1.0, Real{}.Decode(0))
	assert.Equal(t, 1.0, Real{}.Decode(MaxRaw))
	assert.InDelta(t, 0.0, Real{}.Decode(128), step)
}

func TestEncodeSaturates(t *testing.T) {
	cases := []struct {
		in   float64
		want uint8
	}{
		{2, 255},
		{-2, 0},
		{1, 255},
		{-1, 0},
		{math.Inf(1), 255},
		{math.Inf(-1), 0},
		{math.NaN(), 0},
		{1e300, 255},
		{-1e300, 0},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, Real{}.Encode(tc.in), "encode %v", tc.in)
		assert.Equal(t, tc.want, Complex{}.Encode(complex(tc.in, 7)), "encode complex %v", tc.in)
	}
}

func TestDecodeEncodeWithinOneStep(t *testing.T) {
	for i := 0; i <= 1000; i++ {
		y := -1 + 2*float64(i)/1000
		got := Real{}.Decode(Real{}.Encode(y))
		assert.InDelta(t, y, got, step, "y=%v", y)
	}
}

func TestComplexIgnoresImaginary(t *testing.T) {
	for x := 0; x <= MaxRaw; x++ {
		v := Real{}.Decode(uint8(x))
		assert.Equal(t, Real{}.Encode(v), Complex{}.Encode(complex(v, -3.5)))
	}
}

func TestDecodeAllEncodeAll(t *testing.T) {
	raw := []uint8{0, 64, 128, 192, 255, 32}
	assert.Equal(t, raw, EncodeAll[float64](Real{}, DecodeAll[float64](Real{}, raw)))
	assert.Equal(t, raw, EncodeAll[complex128](Complex{}, DecodeAll[complex128](Complex{}, raw)))
	assert.Empty(t, DecodeAll[float64](Real{}, nil))
}
