// Package frontmatter separates YAML front matter from layout bodies.
package frontmatter

import (
	"errors"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// ErrMissingClosingDelimiter indicates the document started with a YAML
// front matter delimiter but did not contain a closing delimiter.
var ErrMissingClosingDelimiter = errors.New("yaml front matter start delimiter found but closing delimiter is missing")

// Document is a layout source split into front matter and body.
type Document struct {
	// FrontMatter is the raw YAML between the delimiters, without them.
	FrontMatter string
	// Data holds the parsed front matter; never nil.
	Data map[string]any
	// Body is everything after the closing delimiter.
	Body string
	// HasFrontMatter reports whether the source opened with a delimiter.
	HasFrontMatter bool
}

// Parse splits `---` delimited YAML front matter from the body and decodes it.
//
// Documents without a leading delimiter are returned whole as Body with empty Data.
func Parse(content string) (Document, error) {
	fm, body, had, err := split(content)
	if err != nil {
		return Document{}, err
	}

	doc := Document{FrontMatter: fm, Body: body, HasFrontMatter: had, Data: map[string]any{}}
	if strings.TrimSpace(fm) == "" {
		return doc, nil
	}
	if err := yaml.Unmarshal([]byte(fm), &doc.Data); err != nil {
		return Document{}, fmt.Errorf("parse yaml front matter: %w", err)
	}
	if doc.Data == nil {
		doc.Data = map[string]any{}
	}
	return doc, nil
}

func split(content string) (frontmatter string, body string, had bool, err error) {
	nl := strings.IndexByte(content, '\n')
	if nl < 0 || !isDelimiter(content[:nl]) {
		return "", content, false, nil
	}

	rest := content[nl+1:]
	pos := 0
	for {
		i := strings.IndexByte(rest[pos:], '\n')
		line, next := rest[pos:], len(rest)
		if i >= 0 {
			line, next = rest[pos:pos+i], pos+i+1
		}
		if isDelimiter(line) {
			return rest[:pos], rest[next:], true, nil
		}
		if i < 0 {
			return "", "", false, ErrMissingClosingDelimiter
		}
		pos = next
	}
}

// isDelimiter accepts "---" followed only by spaces, tabs or a carriage return.
func isDelimiter(line string) bool {
	return strings.TrimRight(line, " \t\r") == "---"
}
