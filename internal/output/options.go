package output

import (
	"io"
	"os"
)

type Options struct {
	Writer io.Writer
}

type Option func(*Options)

// Writer redirects table output, os.Stdout by default.
func Writer(w io.Writer) Option {
	return func(args *Options) {
		args.Writer = w
	}
}

func newOptions(setters ...Option) *Options {
	args := &Options{
		Writer: os.Stdout,
	}
	for _, setter := range setters {
		setter(args)
	}
	return args
}
