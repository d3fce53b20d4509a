package drawingx

import (
	"github.com/tsawler/drawingx/cluster"
	"github.com/tsawler/drawingx/marker"
	"github.com/tsawler/drawingx/titleblock"
)

// Options holds configuration for one extraction run.
type Options struct {
	// Stage configuration
	cluster    cluster.Config
	marker     marker.Config
	titleBlock titleblock.Config

	// Concurrency: number of pages processed in parallel.
	// Zero means one worker per CPU.
	workers int

	// Title-block scope: when true every sheet is parsed and reported
	// individually; otherwise only the first page is consulted.
	perPageTitleBlocks bool
}

// defaultOptions returns the default extraction options.
func defaultOptions() Options {
	return Options{
		cluster:    cluster.DefaultConfig(),
		marker:     marker.DefaultConfig(),
		titleBlock: titleblock.DefaultConfig(),
		workers:    0,
	}
}

// clone creates a copy of Options.
func (o Options) clone() Options {
	return o
}

// validate checks every stage configuration before any page is touched.
// A bad parameter fails the whole run; no partial output is produced.
func (o Options) validate() error {
	if err := o.cluster.Validate(); err != nil {
		return err
	}
	return o.marker.Validate()
}
