// SPDX-License-Identifier: MPL-2.0

package atat

import (
	"fmt"
	"strings"
)

const terminator = "@@"

// Directive is a single parsed `@key@ value @@` pair.
type Directive struct {
	// Key is the directive name between the opening at signs, with
	// surrounding whitespace stripped.
	Key string
	// Value is the text between the key delimiter and the `@@` terminator,
	// preserved verbatim (including embedded newlines) and trimmed only at
	// the two outer edges.
	Value string
}

// MalformedDirectiveError is returned when an opening `@key@` has no matching
// `@@` terminator before the end of input.
type MalformedDirectiveError struct {
	// Key is the directive whose value was never terminated.
	Key string
	// Line is the 1-based line number of the opening delimiter.
	Line int
}

// Error implements the error interface.
func (e *MalformedDirectiveError) Error() string {
	return fmt.Sprintf("malformed directive '@%s@' at line %d: missing '@@' terminator", e.Key, e.Line)
}

// scanner states for the line-anchored forward scan.
const (
	stateSeekingKey = iota
	stateReadingValue
)

// Parse scans src and returns every directive it contains, in file order.
// Duplicate keys are returned as-is; interpretation (last-wins vs. accumulate)
// is the caller's concern.
//
// The scan is a single forward pass. A key line is recognized only when the
// `@` is the first character of its line, so directives inside indented code
// are ignored. While a value is open, a `@key@` sequence is plain content
// until the literal `@@` terminator is seen.
func Parse(src string) ([]Directive, error) {
	var (
		directives []Directive
		state      = stateSeekingKey
		key        string
		keyLine    int
		segments   []string
	)

	lines := strings.Split(src, "\n")
	for i, line := range lines {
		line = strings.TrimSuffix(line, "\r")

		switch state {
		case stateSeekingKey:
			if len(line) == 0 || line[0] != '@' {
				continue
			}
			end := strings.IndexByte(line[1:], '@')
			if end < 0 {
				// A lone '@' with no closing key delimiter on the same
				// line is not a directive.
				continue
			}
			k := strings.TrimSpace(line[1 : 1+end])
			if k == "" {
				continue
			}
			key = k
			keyLine = i + 1
			segments = segments[:0]

			rest := line[2+end:]
			if idx := strings.Index(rest, terminator); idx >= 0 {
				directives = append(directives, Directive{Key: key, Value: strings.TrimSpace(rest[:idx])})
				continue
			}
			segments = append(segments, rest)
			state = stateReadingValue

		case stateReadingValue:
			if idx := strings.Index(line, terminator); idx >= 0 {
				segments = append(segments, line[:idx])
				value := strings.TrimSpace(strings.Join(segments, "\n"))
				directives = append(directives, Directive{Key: key, Value: value})
				state = stateSeekingKey
				continue
			}
			segments = append(segments, line)
		}
	}

	if state == stateReadingValue {
		return nil, &MalformedDirectiveError{Key: key, Line: keyLine}
	}

	return directives, nil
}
