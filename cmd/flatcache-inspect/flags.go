package main

// flags.go defines the CLI surface for flatcache-inspect using pflag so that
// the tool gets GNU-style long/short flags (--target/-t) for free instead of
// hand-rolling a second parser alongside the stdlib flag package.

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/pflag"
)

type options struct {
	target            string
	json              bool
	watch             bool
	interval          time.Duration
	heapProfile       string
	goroutineProfile  string
	version           bool
}

func parseFlags() *options {
	opts := &options{}

	fs := pflag.NewFlagSet("flatcache-inspect", pflag.ExitOnError)
	fs.StringVarP(&opts.target, "target", "t", "http://127.0.0.1:6060", "base URL of the target process")
	fs.BoolVarP(&opts.json, "json", "j", false, "emit the snapshot as JSON instead of a text summary")
	fs.BoolVarP(&opts.watch, "watch", "w", false, "poll the target at --interval instead of exiting after one dump")
	fs.DurationVar(&opts.interval, "interval", 2*time.Second, "poll interval when --watch is set")
	fs.StringVar(&opts.heapProfile, "heap-profile", "", "download the heap pprof profile to this path and exit")
	fs.StringVar(&opts.goroutineProfile, "goroutine-profile", "", "download the goroutine pprof profile to this path and exit")
	fs.BoolVar(&opts.version, "version", false, "print the CLI version and exit")

	if err := fs.Parse(os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	return opts
}
