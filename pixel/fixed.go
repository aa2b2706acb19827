package pixel

import "math"

// Q15 is a signed Q1.15 fixed-point value; QOne represents +1.0.
type Q15 int16

const QOne Q15 = math.MaxInt16

// Float returns the value as float64.
func (q Q15) Float() float64 {
	return float64(q) / float64(QOne)
}

// Fixed decodes to Q15 using the same normalisation as Real.
type Fixed struct{}

func (Fixed) Decode(raw uint8) Q15 {
	return Q15(math.Round(Real{}.Decode(raw) * float64(QOne)))
}

func (Fixed) Encode(v Q15) uint8 {
	return Real{}.Encode(v.Float())
}
