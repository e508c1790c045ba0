// Package pipeline provides the core visualization pipeline for CDM Lens.
//
// This package implements the project → resolve → render pipeline shared by
// the CLI and the HTTP API. Centralizing it keeps the two entry points
// cache-compatible and behaviorally identical.
//
// # Architecture
//
// The pipeline consists of three stages:
//
//  1. Project: build a graph view from catalog objects and lists
//  2. Resolve: compute the parallel-edge render plan for the view
//  3. Render: produce output artifacts (plan JSON, DOT, SVG, PNG)
//
// Each stage can be run independently or as part of the complete pipeline.
//
// # Usage
//
// Create a Runner and execute the pipeline on a graph view:
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	opts := pipeline.Options{
//	    Mode:    "relationship-emphasis",
//	    Formats: []string{"svg"},
//	}
//	result, err := runner.Execute(ctx, view, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	svg := result.Artifacts["svg"]
package pipeline

import (
	"github.com/cdmlens/cdmlens/pkg/errors"
	"github.com/cdmlens/cdmlens/pkg/layout"
)

// =============================================================================
// Defaults - Single Source of Truth for CLI and API
// =============================================================================

// DefaultMode is the resolver mode used when none is requested.
const DefaultMode = layout.ModeDefault

// Format constants for output artifacts.
const (
	FormatPlan = "plan" // render plan as JSON
	FormatDOT  = "dot"  // Graphviz DOT source
	FormatSVG  = "svg"  // rendered SVG
	FormatPNG  = "png"  // rendered PNG (via SVG conversion)
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatPlan: true,
	FormatDOT:  true,
	FormatSVG:  true,
	FormatPNG:  true,
}

// pngScale is the resolution multiplier for PNG export.
const pngScale = 2.0

// =============================================================================
// Options
// =============================================================================

// Options contains all configuration for the visualization pipeline.
// This struct supports JSON serialization for API requests.
type Options struct {
	// Mode selects the resolver's curvature range.
	Mode string `json:"mode,omitempty"`

	// Formats lists the artifacts to produce.
	Formats []string `json:"formats,omitempty"`

	// IncludeLists adds list nodes and membership edges to the
	// projection stage.
	IncludeLists bool `json:"include_lists,omitempty"`

	// Detailed includes node properties in DOT labels.
	Detailed bool `json:"detailed,omitempty"`

	// Refresh bypasses cached plans and artifacts.
	Refresh bool `json:"refresh,omitempty"`
}

// ValidateAndSetDefaults checks the options and fills in defaults.
func (o *Options) ValidateAndSetDefaults() error {
	if o.Mode == "" {
		o.Mode = string(DefaultMode)
	}
	if !layout.ValidModes[layout.Mode(o.Mode)] {
		return errors.New(errors.ErrCodeInvalidMode, "unknown mode %q", o.Mode)
	}
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatPlan}
	}
	return ValidateFormats(o.Formats)
}

// ValidateFormat checks a single output format.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errors.New(errors.ErrCodeInvalidFormat, "unknown format %q", format)
	}
	return nil
}

// ValidateFormats checks a list of output formats.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}
