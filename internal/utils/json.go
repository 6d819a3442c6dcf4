package utils

import (
	"bytes"
	"encoding/json"
)

// PrettyJSON re-indents raw JSON with two spaces. Input that is not valid
// JSON is returned unchanged as text.
func PrettyJSON(raw []byte) string {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return ""
	}

	var buf bytes.Buffer
	if err := json.Indent(&buf, trimmed, "", "  "); err != nil {
		return string(trimmed)
	}
	return buf.String()
}

// MarshalPretty encodes v as indented JSON.
func MarshalPretty(v any) (string, error) {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return "", err
	}
	return string(b), nil
}
