// Package output renders command results and failures for the CLI.
package output

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/starford/obi/internal/apperr"
)

// Write renders v as single-line JSON when asJSON is set, YAML otherwise.
func Write(w io.Writer, v any, asJSON bool) error {
	if asJSON {
		data, err := json.Marshal(v)
		if err != nil {
			return fmt.Errorf("output: encode json: %w", err)
		}
		_, err = fmt.Fprintln(w, string(data))
		return err
	}

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("output: encode yaml: %w", err)
	}
	return enc.Close()
}

// ErrorBody returns the object a failure is reported as: the message under
// "error", the code when known, and the failure's context fields.
func ErrorBody(err error) map[string]any {
	body := map[string]any{"error": err.Error()}
	var appErr *apperr.Error
	if errors.As(err, &appErr) {
		body["error"] = appErr.Message
		body["code"] = appErr.Code
		for k, v := range appErr.Data {
			body[k] = v
		}
	}
	return body
}

// Error writes err to w as a single-line JSON object.
func Error(w io.Writer, err error) {
	data, mErr := json.Marshal(ErrorBody(err))
	if mErr != nil {
		data = []byte(fmt.Sprintf(`{"error":%q}`, err.Error()))
	}
	_, _ = fmt.Fprintln(w, string(data))
}
