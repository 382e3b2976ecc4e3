package export

import (
	"encoding/json"
	"io"

	"github.com/rotisserie/eris"
)

// WriteJSON writes v as indented JSON. Accented text is kept literal.
func WriteJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return eris.Wrap(err, "json: encode report")
	}
	return nil
}
