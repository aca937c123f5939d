package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"
)

func main() {
	ctx := context.Background()

	var timeout time.Duration
	var trace, save, noPrelude bool
	var space, fuel int
	var podPath string
	flag.DurationVar(&timeout, "timeout", 0, "specify a time limit")
	flag.BoolVar(&trace, "trace", false, "enable trace logging")
	flag.IntVar(&space, "space", defaultSpaceQuota, "heap capacity in nodes")
	flag.IntVar(&fuel, "time", defaultTimeQuota, "rewrite steps allowed per evaluation")
	flag.StringVar(&podPath, "pod", "", "pod file to load, and to save with -save")
	flag.BoolVar(&save, "save", false, "write the dictionary back to the -pod file on exit")
	flag.BoolVar(&noPrelude, "no-prelude", false, "start with an empty dictionary")
	flag.Parse()

	var opts = []PodOption{
		WithSpaceQuota(space),
		WithTimeQuota(fuel),
		WithInput(os.Stdin),
		WithOutput(os.Stdout),
	}
	if !noPrelude {
		opts = append(opts, WithPrelude())
	}
	if trace {
		opts = append(opts, WithLogf(log.Printf))
	}
	pod := New(opts...)

	if podPath != "" {
		if src, err := os.ReadFile(podPath); err == nil {
			if lerr := pod.Load(string(src)); lerr != nil {
				fmt.Fprintf(os.Stderr, "ERROR: loading %v: %v\n", podPath, lerr)
				os.Exit(1)
			}
		} else if !os.IsNotExist(err) {
			fmt.Fprintf(os.Stderr, "ERROR: %v\n", err)
			os.Exit(1)
		}
	}

	if timeout != 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}
	if err := pod.Run(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %+v\n", err)
		os.Exit(1)
	}

	if save && podPath != "" {
		f, err := os.Create(podPath)
		if err == nil {
			_, err = pod.WriteTo(f)
			if cerr := f.Close(); err == nil {
				err = cerr
			}
		}
		if err != nil {
			fmt.Fprintf(os.Stderr, "ERROR: saving %v: %v\n", podPath, err)
			os.Exit(1)
		}
	}
}
