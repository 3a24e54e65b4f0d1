// Package render writes a YearReport for display or sharing.
package render

import (
	"encoding/json"
	"fmt"
	"io"
)

// Output formats accepted by Resolve.
const (
	FormatAuto = "auto"
	FormatJSON = "json"
	FormatText = "text"
)

// Resolve maps the requested format onto a concrete one. Auto picks text
// for an interactive terminal and JSON otherwise.
func Resolve(format string, terminal bool) (string, error) {
	switch format {
	case FormatJSON, FormatText:
		return format, nil
	case FormatAuto, "":
		if terminal {
			return FormatText, nil
		}
		return FormatJSON, nil
	}
	return "", fmt.Errorf("unknown output format %q: must be one of auto, json, text", format)
}

// JSON writes v as pretty-printed JSON followed by a newline.
func JSON(w io.Writer, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal report to JSON: %w", err)
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}
