// Package output holds the shared JSON envelope and paging helpers for
// command output.
package output

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/klytics/olivar/cmd/version"
)

// JSONResult is the standard JSON output envelope for all commands.
type JSONResult struct {
	OK      bool        `json:"ok"`
	Command string      `json:"command"`
	Version string      `json:"version"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// PrintJSON writes a success envelope around data.
func PrintJSON(w io.Writer, cmd string, data interface{}) error {
	return encode(w, JSONResult{
		OK:      true,
		Command: cmd,
		Version: version.Version,
		Data:    data,
	})
}

// PrintJSONError writes a failure envelope. data may carry partial results.
func PrintJSONError(w io.Writer, cmd string, msg string, data interface{}) error {
	if err := encode(w, JSONResult{
		OK:      false,
		Command: cmd,
		Version: version.Version,
		Data:    data,
		Error:   msg,
	}); err != nil {
		return fmt.Errorf("could not encode JSON error: %w", err)
	}
	return nil
}

func encode(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
