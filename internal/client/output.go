// Package client provides the connection-configuration layer: it resolves
// raw connection strings against configured defaults and formats structured
// CLI output. It performs no network I/O.
package client

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"gopkg.in/yaml.v3"
)

// Output formats supported by the CLI envelope.
const (
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// Response represents the output envelope for all CLI command outputs.
// It provides a consistent structure with a success flag, optional data
// payload, optional error information, and a timestamp. The Data and Error
// fields are mutually exclusive.
type Response struct {
	Success   bool        `json:"success"             yaml:"success"`
	Data      interface{} `json:"data,omitempty"      yaml:"data,omitempty"`
	Error     *Error      `json:"error,omitempty"     yaml:"error,omitempty"`
	Timestamp time.Time   `json:"timestamp"           yaml:"timestamp"`
}

// Error represents structured error information in a CLI response.
type Error struct {
	Code    string      `json:"code"              yaml:"code"`
	Message string      `json:"message"           yaml:"message"`
	Details interface{} `json:"details,omitempty" yaml:"details,omitempty"`
}

// WriteSuccess writes a success response to the provided writer in the given
// format. The data parameter can be any serializable value and will be
// included in the envelope with success=true.
func WriteSuccess(w io.Writer, format string, data interface{}) error {
	response := Response{
		Success:   true,
		Data:      data,
		Timestamp: time.Now(),
	}
	return writeResponse(w, format, response)
}

// WriteError writes an error response to the provided writer in the given
// format. The code parameter should be a machine-readable error code (e.g.,
// "INVALID_CONNECTION_STRING") and the message a human-readable description.
func WriteError(w io.Writer, format, code, message string, details interface{}) error {
	response := Response{
		Success: false,
		Error: &Error{
			Code:    code,
			Message: message,
			Details: details,
		},
		Timestamp: time.Now(),
	}
	return writeResponse(w, format, response)
}

func writeResponse(w io.Writer, format string, response Response) error {
	switch format {
	case FormatYAML:
		return yaml.NewEncoder(w).Encode(response)
	case FormatJSON, "":
		return json.NewEncoder(w).Encode(response)
	default:
		return fmt.Errorf("unsupported output format: %s", format)
	}
}
