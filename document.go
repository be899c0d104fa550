package droneshow

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/lucasb-eyer/go-colorful"
)

// LayerTypeCustom tags a layer whose points are given explicitly.
const LayerTypeCustom = "custom"

// Document is the show description consumed by the playback tool.
type Document struct {
	Title  string  `json:"title"`
	Layers []Layer `json:"layers"`
}

type Layer struct {
	ID       string      `json:"id"`
	Name     string      `json:"name"`
	Type     string      `json:"type"`
	Duration int         `json:"duration"`
	Points   []ShowPoint `json:"points"`
}

// LayerMeta carries the descriptive fields of the generated document.
type LayerMeta struct {
	Title    string
	ID       string
	Name     string
	Duration int
}

// NewDocument wraps points into a single custom layer.
func NewDocument(points []ShowPoint, meta LayerMeta) *Document {
	if points == nil {
		points = []ShowPoint{}
	}
	return &Document{
		Title: meta.Title,
		Layers: []Layer{{
			ID:       meta.ID,
			Name:     meta.Name,
			Type:     LayerTypeCustom,
			Duration: meta.Duration,
			Points:   points,
		}},
	}
}

// Encode writes the document as indented JSON.
func (d *Document) Encode(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(d)
}

// ReadDocument parses and validates a show document.
func ReadDocument(r io.Reader) (*Document, error) {
	var d Document
	if err := json.NewDecoder(r).Decode(&d); err != nil {
		return nil, fmt.Errorf("failed to parse show document: %w", err)
	}
	if err := d.Validate(); err != nil {
		return nil, err
	}
	return &d, nil
}

// Validate checks the structure the playback tool relies on.
func (d *Document) Validate() error {
	if len(d.Layers) == 0 {
		return errors.New("show document has no layers")
	}
	for li, l := range d.Layers {
		if l.Type == "" {
			return fmt.Errorf("layer %d (%s): missing type", li, l.ID)
		}
		if l.Duration < 0 {
			return fmt.Errorf("layer %d (%s): negative duration %d", li, l.ID, l.Duration)
		}
		for pi, p := range l.Points {
			if len(p.Color) != 7 {
				return fmt.Errorf("layer %d point %d: color %q is not #rrggbb", li, pi, p.Color)
			}
			if _, err := colorful.Hex(p.Color); err != nil {
				return fmt.Errorf("layer %d point %d: %w", li, pi, err)
			}
		}
	}
	return nil
}

// NumPoints returns the largest point count over all layers, which is the
// number of drones the show needs.
func (d *Document) NumPoints() int {
	n := 0
	for _, l := range d.Layers {
		n = max(n, len(l.Points))
	}
	return n
}
