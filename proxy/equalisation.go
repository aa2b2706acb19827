package proxy

type Ushort interface {
	uint8 | uint16
}

// Equalise maps samples through their cumulative histogram so that the
// output levels are spread over the full range of k. The input is not
// modified.
func Equalise[k Ushort](Y []k) []k {
	out := make([]k, len(Y))
	N := len(Y)
	if N == 0 {
		return out
	}
	top := ^k(0)
	levels := int(top) + 1

	hist := make([]int, levels)
	for _, v := range Y {
		hist[v]++
	}
	mapper := make([]k, levels)
	cdf := 0
	for i := 0; i < levels; i++ {
		cdf += hist[i]
		mapper[i] = k(float64(cdf) * float64(top) / float64(N))
	}
	for i, v := range Y {
		out[i] = mapper[v]
	}
	return out
}

// HistogramEqualise equalises the luminance of the image and returns the
// result as an 8-bit Gray image.
func (ip *ImageProxy) HistogramEqualise() (*ImageProxy, error) {
	w, h, raw, err := ip.Luminance()
	if err != nil {
		return nil, err
	}
	out, err := NewImageProxyFromSamples(w, h, Equalise(raw))
	if err != nil {
		return nil, err
	}
	out.Path = ip.Path
	out.AddMetadata("Equalised")
	return out, nil
}
