package util

import (
	"fmt"

	"github.com/tidwall/gjson"
)

// Query returns the JSON text found at path in doc, using gjson path syntax
// (e.g. "items.0.name", "items.#"). Strings are returned unquoted.
func Query(doc, path string) (string, error) {
	if !gjson.Valid(doc) {
		return "", fmt.Errorf("cannot query invalid JSON")
	}
	result := gjson.Get(doc, path)
	if !result.Exists() {
		return "", fmt.Errorf("path %q not found", path)
	}
	if result.Type == gjson.String {
		return result.String(), nil
	}
	return result.Raw, nil
}
