package render

import (
	"encoding/json"

	"github.com/ThomasCrouzet/apicem-inventory/internal/model"
)

// JSONRenderer writes the dynamic inventory document printed by --list.
type JSONRenderer struct {
	Indent bool
}

func (r *JSONRenderer) Render(inv *model.Inventory) ([]byte, error) {
	var (
		out []byte
		err error
	)
	if r.Indent {
		out, err = json.MarshalIndent(inv, "", "  ")
	} else {
		out, err = json.Marshal(inv)
	}
	if err != nil {
		return nil, err
	}
	return append(out, '\n'), nil
}
