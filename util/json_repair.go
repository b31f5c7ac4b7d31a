// Package util provides JSON pre-cleaning and fall-back repair for text
// fetched from the remote API.
package util

import (
	"bytes"
	"fmt"

	"github.com/kaptinlin/jsonrepair"
	log "github.com/sirupsen/logrus"
	"github.com/trevorspielman/JSONCodeChallenge/repair"
)

// PrepareJSONForParse strips wrapping around a JSON document.
// Handles: UTF-8 BOM, markdown code blocks (```json ... ```), leading/trailing text.
// Returns cleaned bytes, or the trimmed input if no JSON block is found.
func PrepareJSONForParse(data []byte) []byte {
	data = bytes.TrimSpace(data)
	// Strip UTF-8 BOM
	if len(data) >= 3 && data[0] == 0xEF && data[1] == 0xBB && data[2] == 0xBF {
		data = bytes.TrimSpace(data[3:])
	}
	// Extract from markdown code block: ```json ... ``` or ``` ... ```
	if idx := bytes.Index(data, []byte("```")); idx >= 0 {
		data = data[idx+3:]
		if bytes.HasPrefix(data, []byte("json")) {
			data = data[4:]
		}
		data = bytes.TrimSpace(data)
		if end := bytes.Index(data, []byte("```")); end >= 0 {
			data = bytes.TrimSpace(data[:end])
		}
	}
	// Extract JSON block by bracket matching (handles leading/trailing text)
	if extracted, err := ExtractJSONFromOutput(data); err == nil {
		return extracted
	}
	return data
}

// ExtractJSONFromOutput returns the first complete {...} or [...] block in
// output. Brackets inside string literals are ignored.
func ExtractJSONFromOutput(output []byte) ([]byte, error) {
	if len(output) == 0 {
		return nil, fmt.Errorf("empty output, no JSON found")
	}

	startIdx := bytes.IndexAny(output, "{[")
	if startIdx == -1 {
		return nil, fmt.Errorf("no JSON found in output (missing opening bracket)")
	}
	log.Debugf("found JSON start at position %d", startIdx)

	var (
		depth    int
		inString bool
		escaped  bool
	)
	for i := startIdx; i < len(output); i++ {
		c := output[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}
		switch c {
		case '"':
			inString = true
		case '{', '[':
			depth++
		case '}', ']':
			depth--
			if depth == 0 {
				return output[startIdx : i+1], nil
			}
		}
	}
	return nil, fmt.Errorf("no matching closing bracket found (unclosed JSON)")
}

// DeepRepair runs the general-purpose jsonrepair engine on text and checks
// the outcome with a strict parse. It handles defects the sanitizer does
// not, such as single quotes, comments and missing closers.
func DeepRepair(text string) (string, repair.Result, error) {
	repaired, err := jsonrepair.JSONRepair(text)
	if err != nil {
		return "", repair.Result{}, fmt.Errorf("failed to repair JSON: %w", err)
	}
	r := repair.Parse(repaired)
	if !r.OK() {
		return repaired, r, nil
	}
	pretty, err := repair.Pretty(r.Value)
	if err != nil {
		return repaired, r, err
	}
	return pretty, r, nil
}
