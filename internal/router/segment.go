package router

import (
	"fmt"
	"net/url"
	"strings"
)

// Params holds URL-decoded values captured from :param segments.
type Params map[string]string

// segment is one piece of a route pattern: either a literal that must match
// exactly, or a named parameter capturing the path segment.
type segment struct {
	param bool
	value string
}

// parsePattern splits a route pattern into typed segments.
// Both "/" and "-" act as separators, since playlist routes embed IDs
// as "playlist-<id>".
func parsePattern(pattern string) ([]segment, error) {
	if pattern == "" {
		return nil, fmt.Errorf("empty route pattern")
	}

	parts := splitPath(pattern)
	if len(parts) == 0 {
		return nil, fmt.Errorf("route pattern %q has no segments", pattern)
	}

	segments := make([]segment, 0, len(parts))
	for _, part := range parts {
		if name, ok := strings.CutPrefix(part, ":"); ok {
			if name == "" {
				return nil, fmt.Errorf("route pattern %q has an unnamed parameter", pattern)
			}
			segments = append(segments, segment{param: true, value: name})
		} else {
			segments = append(segments, segment{value: part})
		}
	}

	return segments, nil
}

// match tests a path against the parsed segments, returning captured params.
func match(segments []segment, path string) (Params, bool) {
	parts := splitPath(path)
	if len(parts) != len(segments) {
		return nil, false
	}

	params := Params{}
	for i, seg := range segments {
		if !seg.param {
			if parts[i] != seg.value {
				return nil, false
			}
			continue
		}

		decoded, err := url.PathUnescape(parts[i])
		if err != nil {
			decoded = parts[i]
		}
		params[seg.value] = decoded
	}

	return params, true
}

func splitPath(path string) []string {
	return strings.FieldsFunc(path, func(r rune) bool {
		return r == '/' || r == '-'
	})
}
