package parser

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// TypeAnnotation holds parsed @layout annotation
type TypeAnnotation struct {
	Size     int    // Buffer size in bytes (0 = end of last field)
	Endian   string // "little" or "big"
	Revision int    // Library revision the type belongs to (0 = unversioned)
}

var (
	annotationRe = regexp.MustCompile(`^@layout(?:\s+(.+))?$`)
	pairRe       = regexp.MustCompile(`(\w+)=([\w-]+)`)
)

// ParseAnnotation parses @layout annotation from comment text
//
// Expected format:
//
//	// @layout
//	// @layout revision=2
//	// @layout size=4 endian=big
//
// Params are space-separated key=value pairs. Size is optional and will be
// calculated from fields if not specified.
func ParseAnnotation(comment string) (*TypeAnnotation, error) {
	matches := annotationRe.FindStringSubmatch(strings.TrimSpace(comment))
	if matches == nil {
		return nil, fmt.Errorf("no @layout annotation found")
	}

	if matches[1] == "" {
		return &TypeAnnotation{Endian: "little"}, nil
	}

	return parseLayoutParams(matches[1])
}

func parseLayoutParams(params string) (*TypeAnnotation, error) {
	anno := &TypeAnnotation{Endian: "little"}

	pairs := pairRe.FindAllStringSubmatch(params, -1)
	if len(pairs) == 0 {
		return nil, fmt.Errorf("malformed @layout params: %q", params)
	}

	for _, pair := range pairs {
		key := pair[1]
		value := pair[2]

		switch key {
		case "size":
			size, err := strconv.Atoi(value)
			if err != nil {
				return nil, fmt.Errorf("invalid size: %s", value)
			}
			if size <= 0 {
				return nil, fmt.Errorf("size must be positive, got: %d", size)
			}
			anno.Size = size

		case "endian":
			if value != "little" && value != "big" {
				return nil, fmt.Errorf("endian must be 'little' or 'big', got: %s", value)
			}
			anno.Endian = value

		case "revision":
			rev, err := strconv.Atoi(value)
			if err != nil {
				return nil, fmt.Errorf("invalid revision: %s", value)
			}
			if rev <= 0 {
				return nil, fmt.Errorf("revision must be positive, got: %d", rev)
			}
			anno.Revision = rev

		default:
			return nil, fmt.Errorf("unknown parameter: %s", key)
		}
	}

	return anno, nil
}

// FindAnnotation searches comment lines for @layout annotation.
// A line that carries @layout but fails to parse is reported as an error
// rather than silently skipped.
func FindAnnotation(comments []string) (*TypeAnnotation, bool, error) {
	for _, comment := range comments {
		if !strings.HasPrefix(comment, "@layout") {
			continue
		}
		anno, err := ParseAnnotation(comment)
		if err != nil {
			return nil, true, err
		}
		return anno, true, nil
	}
	return nil, false, nil
}

// CleanComment removes comment markers from a line
// "// @layout revision=2" → "@layout revision=2"
// "/* @layout revision=2 */" → "@layout revision=2"
func CleanComment(line string) string {
	line = strings.TrimSpace(line)

	if strings.HasPrefix(line, "//") {
		return strings.TrimSpace(strings.TrimPrefix(line, "//"))
	}

	if strings.HasPrefix(line, "/*") && strings.HasSuffix(line, "*/") {
		line = strings.TrimPrefix(line, "/*")
		line = strings.TrimSuffix(line, "*/")
		return strings.TrimSpace(line)
	}

	return line
}
