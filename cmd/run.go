package main

import (
	"context"
	"fmt"
	"log"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/hippodribble/pixmat/pixel"
	"github.com/hippodribble/pixmat/proxy"
	"golang.org/x/sync/errgroup"
)

type operation struct {
	name  string
	short string
	run   func(ip *proxy.ImageProxy, o *options) (*proxy.ImageProxy, error)
}

var operations = []operation{
	{"roundtrip", "Decode to a matrix and encode straight back", roundtrip},
	{"transpose", "Swap the x and y axes", transpose},
	{"lowpass", "Radial low-pass filter in the frequency domain", lowpass},
	{"spectrum", "Centred log-amplitude spectrum", spectrum},
	{"blur", "Gaussian blur by spatial convolution", blur},
	{"equalise", "Histogram equalisation of the luminance", equalise},
}

// runBatch processes every input concurrently, at most o.jobs at a time, and
// returns the first error.
func runBatch(ctx context.Context, op operation, o *options, inputs []string) error {
	if err := proxy.CheckWritable("out." + o.format); err != nil {
		return err
	}
	if o.outDir != "" {
		if err := os.MkdirAll(o.outDir, 0o755); err != nil {
			return err
		}
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(o.jobs)
	for _, in := range inputs {
		in := in
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			return processFile(op, o, in)
		})
	}
	return g.Wait()
}

func processFile(op operation, o *options, in string) error {
	ip := new(proxy.ImageProxy)
	if err := ip.LoadFromFile(in); err != nil {
		return err
	}
	ip = ip.ReduceTo(o.maxSize)

	res, err := op.run(ip, o)
	if err != nil {
		return fmt.Errorf("%s %s: %w", op.name, in, err)
	}
	out := outputPath(in, op.name, o)
	if err := res.Save(out); err != nil {
		return err
	}
	log.Printf("%s: %s -> %s", op.name, in, out)
	return nil
}

func outputPath(in, opName string, o *options) string {
	dir := o.outDir
	if dir == "" {
		dir = filepath.Dir(in)
	}
	base := strings.TrimSuffix(filepath.Base(in), filepath.Ext(in))
	return filepath.Join(dir, base+o.suffix+"-"+opName+"."+o.format)
}

func roundtrip(ip *proxy.ImageProxy, o *options) (*proxy.ImageProxy, error) {
	w, h, raw, err := ip.Luminance()
	if err != nil {
		return nil, err
	}
	var out []uint8
	if o.scalar == "complex" {
		m, err := proxy.BuildCDense(w, h, raw)
		if err != nil {
			return nil, err
		}
		out, err = proxy.FlattenCDense(m)
		if err != nil {
			return nil, err
		}
	} else {
		m, err := proxy.BuildDense(w, h, raw)
		if err != nil {
			return nil, err
		}
		out, err = proxy.FlattenDense(m)
		if err != nil {
			return nil, err
		}
	}
	return proxy.NewImageProxyFromSamples(w, h, out)
}

// denseOp runs f on the real-valued matrix of the image's luminance.
func denseOp(ip *proxy.ImageProxy, f func(proxy.ImageMatrix) (proxy.ImageMatrix, error)) (*proxy.ImageProxy, error) {
	w, h, raw, err := ip.Luminance()
	if err != nil {
		return nil, err
	}
	m, err := proxy.BuildDense(w, h, raw)
	if err != nil {
		return nil, err
	}
	res, err := f(proxy.NewImageMatrix(m))
	if err != nil {
		return nil, err
	}
	out, err := proxy.FlattenDense(res.Dense)
	if err != nil {
		return nil, err
	}
	rows, cols := res.Dims()
	return proxy.NewImageProxyFromSamples(rows, cols, out)
}

func transpose(ip *proxy.ImageProxy, _ *options) (*proxy.ImageProxy, error) {
	return denseOp(ip, func(m proxy.ImageMatrix) (proxy.ImageMatrix, error) {
		return m.Transpose(), nil
	})
}

func blur(ip *proxy.ImageProxy, o *options) (*proxy.ImageProxy, error) {
	psf, err := proxy.NewPSF(int(math.Ceil(3*o.sigma)), o.sigma)
	if err != nil {
		return nil, err
	}
	return denseOp(ip, func(m proxy.ImageMatrix) (proxy.ImageMatrix, error) {
		return m.Convolve(psf)
	})
}

func lowpass(ip *proxy.ImageProxy, o *options) (*proxy.ImageProxy, error) {
	w, h, raw, err := ip.Luminance()
	if err != nil {
		return nil, err
	}
	m, err := proxy.BuildCDense(w, h, raw)
	if err != nil {
		return nil, err
	}
	f, err := proxy.LowPass(m, o.radius)
	if err != nil {
		return nil, err
	}
	out, err := proxy.FlattenCDense(f)
	if err != nil {
		return nil, err
	}
	return proxy.NewImageProxyFromSamples(w, h, out)
}

func spectrum(ip *proxy.ImageProxy, _ *options) (*proxy.ImageProxy, error) {
	w, h, raw, err := ip.Luminance()
	if err != nil {
		return nil, err
	}
	m, err := proxy.BuildCDense(w, h, raw)
	if err != nil {
		return nil, err
	}
	res := &proxy.ImageProxy{Image: proxy.NewMatrixImage[float64](proxy.Spectrum(m), pixel.Real{})}
	res.AddMetadata("Log amplitude spectrum")
	return res, nil
}

func equalise(ip *proxy.ImageProxy, _ *options) (*proxy.ImageProxy, error) {
	return ip.HistogramEqualise()
}
