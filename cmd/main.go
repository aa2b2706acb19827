package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// options shared by all subcommands
type options struct {
	scalar  string
	radius  float64
	sigma   float64
	outDir  string
	suffix  string
	format  string
	jobs    int
	maxSize int
	quiet   bool
}

func (o *options) bind(fs *pflag.FlagSet) {
	fs.StringVar(&o.scalar, "scalar", "real", "matrix scalar type: real or complex")
	fs.Float64Var(&o.radius, "radius", 20, "low-pass cut-off radius in frequency samples")
	fs.Float64Var(&o.sigma, "sigma", 1.5, "Gaussian blur standard deviation in pixels")
	fs.StringVarP(&o.outDir, "out-dir", "o", "", "output directory (default: next to each input)")
	fs.StringVar(&o.suffix, "suffix", "", "text appended to each output base name")
	fs.StringVar(&o.format, "format", "png", "output image format extension")
	fs.IntVarP(&o.jobs, "jobs", "j", 4, "images processed concurrently")
	fs.IntVar(&o.maxSize, "max-size", 0, "halve inputs until neither side exceeds this (0 keeps full size)")
	fs.BoolVarP(&o.quiet, "quiet", "q", false, "suppress progress logging")
}

func (o *options) validate() error {
	if o.scalar != "real" && o.scalar != "complex" {
		return fmt.Errorf("--scalar must be real or complex, not %q", o.scalar)
	}
	if o.jobs < 1 {
		return fmt.Errorf("--jobs must be at least 1")
	}
	return nil
}

func newRootCmd() *cobra.Command {
	opts := new(options)
	root := &cobra.Command{
		Use:           "pixmat",
		Short:         "Run matrix operations on grayscale images",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if opts.quiet {
				log.SetOutput(io.Discard)
			}
			return opts.validate()
		},
	}
	opts.bind(root.PersistentFlags())

	for _, op := range operations {
		op := op
		root.AddCommand(&cobra.Command{
			Use:   op.name + " input...",
			Short: op.short,
			Args:  cobra.MinimumNArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return runBatch(cmd.Context(), op, opts, args)
			},
		})
	}
	return root
}

func main() {
	log.SetFlags(log.Ltime)
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := newRootCmd().ExecuteContext(ctx)
	stop()
	if err != nil {
		fmt.Fprintf(os.Stderr, "pixmat: %v\n", err)
		os.Exit(1)
	}
}
