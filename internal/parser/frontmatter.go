package parser

import (
	"bytes"
	"fmt"

	"gopkg.in/yaml.v3"
)

var fmDelim = []byte("---")

// splitFrontmatter separates a leading YAML block delimited by --- lines from
// the body. Without a frontmatter block meta is nil and body is src.
func splitFrontmatter(src []byte) (meta map[string]any, body []byte, err error) {
	src = bytes.TrimPrefix(src, []byte("\ufeff"))
	first, rest, ok := cutLine(src)
	if !ok || !bytes.Equal(bytes.TrimRight(first, " \t\r"), fmDelim) {
		return nil, src, nil
	}

	var block []byte
	for len(rest) > 0 {
		line, next, _ := cutLine(rest)
		if bytes.Equal(bytes.TrimRight(line, " \t\r"), fmDelim) {
			meta = map[string]any{}
			if err := yaml.Unmarshal(block, &meta); err != nil {
				return nil, nil, fmt.Errorf("parse frontmatter: %w", err)
			}
			return meta, next, nil
		}
		block = append(block, line...)
		block = append(block, '\n')
		rest = next
	}
	// Unterminated block: treat the whole file as body.
	return nil, src, nil
}

func cutLine(b []byte) (line, rest []byte, found bool) {
	if len(b) == 0 {
		return nil, nil, false
	}
	line, rest, found = bytes.Cut(b, []byte("\n"))
	return line, rest, true
}

func metaString(meta map[string]any, key string) string {
	if v, ok := meta[key].(string); ok {
		return v
	}
	return ""
}

func metaBool(meta map[string]any, key string) bool {
	switch v := meta[key].(type) {
	case bool:
		return v
	case string:
		return v == "true"
	}
	return false
}
