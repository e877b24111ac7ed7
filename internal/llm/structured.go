package llm

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Local models wrap their JSON in prose and markdown fences, slip in
// C-style comments, and write bare leading-decimal numbers. ExtractJSON
// is the single entry point that turns that output into a validated
// struct; anything a task needs beyond schema shape belongs in its
// SchemaValidator.

// SchemaValidator checks task-specific constraints on a decoded value.
type SchemaValidator[T any] func(T) error

// ExtractJSON decodes the first JSON object found in raw model output
// into T, repairing the almost-JSON dialects seen in practice, then
// runs the task's validator. Every failure wraps ErrInvalidOutput.
func ExtractJSON[T any](raw string, validator SchemaValidator[T]) (T, error) {
	var zero T

	obj := firstObject(fenceInterior(raw))
	if obj == "" {
		return zero, fmt.Errorf("%w: no JSON object in model output", ErrInvalidOutput)
	}

	var out T
	if err := json.Unmarshal(repairJSON(obj), &out); err != nil {
		return zero, fmt.Errorf("%w: %v", ErrInvalidOutput, err)
	}
	if validator != nil {
		if err := validator(out); err != nil {
			return zero, fmt.Errorf("%w: validation failed: %v", ErrInvalidOutput, err)
		}
	}
	return out, nil
}

// EnumField reports an error unless v is one of the allowed values.
func EnumField(field, v string, allowed ...string) error {
	for _, a := range allowed {
		if v == a {
			return nil
		}
	}
	return fmt.Errorf("%s: unexpected value %q", field, v)
}

// UnitInterval reports an error unless v lies in [0,1].
func UnitInterval(field string, v float64) error {
	if v < 0 || v > 1 {
		return fmt.Errorf("%s: %v outside [0,1]", field, v)
	}
	return nil
}

// fenceInterior returns the body of the first markdown code fence that
// contains an object. Without such a fence the input passes through
// unchanged, so fence-free replies and replies with decorative fences
// both work.
func fenceInterior(raw string) string {
	rest := raw
	for {
		open := strings.Index(rest, "```")
		if open < 0 {
			return raw
		}
		body := rest[open+3:]
		if nl := strings.IndexByte(body, '\n'); nl >= 0 {
			body = body[nl+1:] // drop the info string ("json", ...)
		}
		end := strings.Index(body, "```")
		if end < 0 {
			return raw
		}
		if strings.IndexByte(body[:end], '{') >= 0 {
			return body[:end]
		}
		rest = body[end+3:]
	}
}

// jsonScanner tracks string-literal state while walking raw bytes so
// structural characters inside strings are never misread.
type jsonScanner struct {
	inString bool
	escaped  bool
}

// literal consumes one byte and reports whether it belongs to a string
// literal (quotes included).
func (sc *jsonScanner) literal(c byte) bool {
	switch {
	case sc.escaped:
		sc.escaped = false
		return true
	case sc.inString && c == '\\':
		sc.escaped = true
		return true
	case c == '"':
		sc.inString = !sc.inString
		return true
	}
	return sc.inString
}

// firstObject returns the first balanced top-level {...} span of s, or
// "" when none closes.
func firstObject(s string) string {
	start := strings.IndexByte(s, '{')
	if start < 0 {
		return ""
	}
	var sc jsonScanner
	depth := 0
	for i := start; i < len(s); i++ {
		c := s[i]
		if sc.literal(c) {
			continue
		}
		switch c {
		case '{':
			depth++
		case '}':
			if depth--; depth == 0 {
				return s[start : i+1]
			}
		}
	}
	return ""
}

// repairJSON rewrites the almost-JSON dialects into strict JSON in one
// pass: C-style line and block comments are dropped, and bare
// leading-decimal numbers (".8", "-.3") gain the missing zero. String
// literals pass through untouched.
func repairJSON(s string) []byte {
	out := make([]byte, 0, len(s)+4)
	var sc jsonScanner
	lastSig := byte(0) // last significant byte emitted outside strings
	for i := 0; i < len(s); i++ {
		c := s[i]
		if sc.literal(c) {
			out = append(out, c)
			continue
		}
		if c == '/' && i+1 < len(s) {
			switch s[i+1] {
			case '/':
				for i < len(s) && s[i] != '\n' {
					i++
				}
				continue
			case '*':
				i += 2
				for i+1 < len(s) && !(s[i] == '*' && s[i+1] == '/') {
					i++
				}
				i++
				continue
			}
		}
		if c == '.' && i+1 < len(s) && isDigit(s[i+1]) && startsNumber(lastSig) {
			out = append(out, '0')
		}
		out = append(out, c)
		switch c {
		case ' ', '\t', '\n', '\r':
		default:
			lastSig = c
		}
	}
	return out
}

// startsNumber reports whether a numeric literal may begin right after
// byte c. Zero means start of input.
func startsNumber(c byte) bool {
	switch c {
	case 0, ':', ',', '[', '{', '-':
		return true
	}
	return false
}

func isDigit(c byte) bool { return '0' <= c && c <= '9' }
