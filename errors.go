package droneshow

import (
	"errors"
	"fmt"
)

var (
	// ErrNoForeground is returned when segmentation leaves no outer contour to fill.
	ErrNoForeground = errors.New("droneshow: no foreground contour found")
	// ErrEmptyRegion is returned when the filled mask has no foreground pixel to sample.
	ErrEmptyRegion = errors.New("droneshow: filled region is empty")
)

// ImageLoadError reports an input image that could not be opened or decoded.
type ImageLoadError struct {
	Path string
	Err  error
}

func (e *ImageLoadError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("droneshow: cannot load image: %v", e.Err)
	}
	return fmt.Sprintf("droneshow: cannot load image %q: %v", e.Path, e.Err)
}

func (e *ImageLoadError) Unwrap() error { return e.Err }

// WriteError reports a show document that could not be written to its sink.
type WriteError struct {
	Path string
	Err  error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("droneshow: cannot write document %q: %v", e.Path, e.Err)
}

func (e *WriteError) Unwrap() error { return e.Err }

// WarningKind classifies non-fatal pipeline conditions.
type WarningKind int

const (
	// WarnSampledWithReplacement means the foreground held fewer pixels than
	// requested drones, so coordinates were drawn with duplicates.
	WarnSampledWithReplacement WarningKind = iota
)

// Warning is a recoverable condition surfaced to the caller next to the result.
type Warning struct {
	Kind       WarningKind
	Population int
	Requested  int
}

func (w Warning) String() string {
	switch w.Kind {
	case WarnSampledWithReplacement:
		return fmt.Sprintf("foreground holds %d pixels, fewer than %d drones: sampling with replacement", w.Population, w.Requested)
	default:
		return fmt.Sprintf("warning %d", int(w.Kind))
	}
}
