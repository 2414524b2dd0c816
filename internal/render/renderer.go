package render

import (
	"fmt"

	"github.com/ThomasCrouzet/apicem-inventory/internal/model"
)

// Renderer defines the interface for inventory encoders.
type Renderer interface {
	Render(inv *model.Inventory) ([]byte, error)
}

// ForFormat returns the renderer for an output format name.
func ForFormat(format string, indent bool) (Renderer, error) {
	switch format {
	case "", "json":
		return &JSONRenderer{Indent: indent}, nil
	case "yaml", "yml":
		return &YAMLRenderer{}, nil
	}
	return nil, fmt.Errorf("unknown format %q (use json or yaml)", format)
}
