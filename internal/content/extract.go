package content

import (
	"encoding/json"
	"errors"
	"strings"
)

// ErrNoJSON is returned when model output holds no JSON value.
var ErrNoJSON = errors.New("content: no JSON object in model output")

// ExtractJSON pulls the first complete JSON object or array out of model
// output. Markdown code fences, leading prose and trailing text are
// dropped.
func ExtractJSON(raw string) (string, error) {
	s := strings.TrimSpace(raw)
	if i := strings.Index(s, "```"); i >= 0 {
		rest := s[i+3:]
		if nl := strings.IndexByte(rest, '\n'); nl >= 0 {
			rest = rest[nl+1:]
		}
		if j := strings.Index(rest, "```"); j >= 0 {
			rest = rest[:j]
		}
		s = strings.TrimSpace(rest)
	}

	start := strings.IndexAny(s, "{[")
	if start < 0 {
		return "", ErrNoJSON
	}
	dec := json.NewDecoder(strings.NewReader(s[start:]))
	var v json.RawMessage
	if err := dec.Decode(&v); err != nil {
		return "", ErrNoJSON
	}
	return string(v), nil
}
