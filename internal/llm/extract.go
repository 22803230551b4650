package llm

import (
	"encoding/json"
	"errors"
	"regexp"
	"strings"
)

// ErrNoJSON is returned when a reply contains no JSON value of the wanted
// shape.
var ErrNoJSON = errors.New("no JSON found in model reply")

var (
	arrayPattern  = regexp.MustCompile(`\[[\s\S]*\]`)
	objectPattern = regexp.MustCompile(`\{[\s\S]*\}`)
)

// StripFences removes a surrounding Markdown code fence, with or without a
// language tag.
func StripFences(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```")
	if nl := strings.IndexByte(s, '\n'); nl >= 0 {
		s = s[nl+1:]
	}
	s = strings.TrimSpace(s)
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}

// DecodeArray finds the outermost JSON array in text and decodes it.
func DecodeArray(text string, v interface{}) error {
	return decode(arrayPattern, text, v)
}

// DecodeObject finds the outermost JSON object in text and decodes it.
func DecodeObject(text string, v interface{}) error {
	return decode(objectPattern, text, v)
}

func decode(pattern *regexp.Regexp, text string, v interface{}) error {
	text = StripFences(text)
	if err := json.Unmarshal([]byte(text), v); err == nil {
		return nil
	}
	match := pattern.FindString(text)
	if match == "" {
		return ErrNoJSON
	}
	return json.Unmarshal([]byte(match), v)
}
