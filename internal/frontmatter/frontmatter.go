// Package frontmatter reads the YAML frontmatter block of MDX pages.
package frontmatter

import (
	"errors"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// ErrUnclosedFrontmatter is returned when the opening delimiter has no match.
var ErrUnclosedFrontmatter = errors.New("unclosed frontmatter")

// Split separates a document into frontmatter and body components.
// Frontmatter is delimited by --- on its own line. CRLF line endings are
// accepted and returned unchanged inside the body.
func Split(input string) (string, string, error) {
	if input == "" {
		return "", "", nil
	}
	var rest string
	switch {
	case strings.HasPrefix(input, "---\n"):
		rest = input[4:]
	case strings.HasPrefix(input, "---\r\n"):
		rest = input[5:]
	default:
		return "", input, nil
	}

	pos := 0
	for pos < len(rest) {
		nlIdx := strings.IndexByte(rest[pos:], '\n')

		var line string
		var nextPos int
		if nlIdx < 0 {
			line = rest[pos:]
			nextPos = len(rest)
		} else {
			line = rest[pos : pos+nlIdx]
			nextPos = pos + nlIdx + 1
		}

		if strings.TrimSuffix(line, "\r") == "---" {
			if nlIdx < 0 {
				return rest[:pos], "", nil
			}
			return rest[:pos], rest[nextPos:], nil
		}

		pos = nextPos
	}

	return "", "", ErrUnclosedFrontmatter
}

// findKeyIndex returns the index of a key in a YAML mapping node, or -1 if not found.
func findKeyIndex(mapping *yaml.Node, key string) int {
	for i := 0; i < len(mapping.Content)-1; i += 2 {
		if mapping.Content[i].Value == key {
			return i
		}
	}
	return -1
}

// Field returns the string value of key in a document's frontmatter.
// A document without frontmatter, or without the key, yields "".
// Non-string values are an error.
func Field(input, key string) (string, error) {
	fm, _, err := Split(input)
	if fm == "" {
		return "", err
	}

	var doc yaml.Node
	if err := yaml.Unmarshal([]byte(fm), &doc); err != nil {
		return "", err
	}
	if len(doc.Content) == 0 || doc.Content[0].Kind != yaml.MappingNode {
		return "", nil
	}

	idx := findKeyIndex(doc.Content[0], key)
	if idx < 0 {
		return "", nil
	}

	val := doc.Content[0].Content[idx+1]
	if val.Tag != "!!str" {
		return "", fmt.Errorf("%s is not a string", key)
	}
	return val.Value, nil
}

// GetTitle extracts the title field from a document's YAML frontmatter.
func GetTitle(input string) (string, error) {
	return Field(input, "title")
}
