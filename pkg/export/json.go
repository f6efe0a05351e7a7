// Package export turns a finished checklist into output text.
package export

import (
	"fmt"
	"io"

	"github.com/goccy/go-json"
)

// JSON encodes the selected names as a two-space indented array. A nil slice
// encodes as [] rather than null.
func JSON(names []string) (string, error) {
	if names == nil {
		names = []string{}
	}
	data, err := json.MarshalIndent(names, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encoding result: %w", err)
	}
	return string(data) + "\n", nil
}

// WriteJSON writes the JSON encoding of names to w.
func WriteJSON(w io.Writer, names []string) error {
	out, err := JSON(names)
	if err != nil {
		return err
	}
	_, err = io.WriteString(w, out)
	return err
}
