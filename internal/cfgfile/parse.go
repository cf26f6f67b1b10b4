package cfgfile

import (
	"fmt"
	"strings"
)

// Parse parses config data. path is only used for error messages and
// Document.Path.
func Parse(path string, data []byte) (*Document, error) {
	doc := newDocument(path)

	var (
		cur       *section
		lastKey   string // key that indented lines continue
		keyIndent int    // indent width of lastKey's line
	)

	for i, raw := range strings.Split(string(data), "\n") {
		lineNo := i + 1
		raw = strings.TrimRight(raw, "\r")
		if lineNo == 1 {
			raw = strings.TrimPrefix(raw, "\ufeff")
		}

		trimmed := strings.TrimSpace(raw)
		if trimmed == "" {
			lastKey = ""
			continue
		}
		if isComment(trimmed) {
			continue
		}

		content := stripInlineComment(raw)
		trimmed = strings.TrimSpace(content)
		if trimmed == "" {
			continue
		}

		indent := indentWidth(content)
		if cur != nil && lastKey != "" && indent > keyIndent {
			if prev := cur.values[lastKey]; prev != "" {
				cur.values[lastKey] = prev + "\n" + trimmed
			} else {
				cur.values[lastKey] = trimmed
			}
			continue
		}

		if strings.HasPrefix(trimmed, "[") {
			if !strings.HasSuffix(trimmed, "]") {
				return nil, &ParseError{Path: path, Line: lineNo, Msg: fmt.Sprintf("unterminated section header %q", trimmed)}
			}
			name := strings.TrimSpace(trimmed[1 : len(trimmed)-1])
			if name == "" {
				return nil, &ParseError{Path: path, Line: lineNo, Msg: "empty section name"}
			}
			if doc.HasSection(name) {
				return nil, &ParseError{Path: path, Line: lineNo, Msg: fmt.Sprintf("duplicate section %q", name)}
			}
			cur = doc.addSection(name)
			lastKey = ""
			continue
		}

		if cur == nil {
			return nil, &ParseError{Path: path, Line: lineNo, Msg: fmt.Sprintf("%q appears before any section header", trimmed)}
		}

		idx := strings.IndexByte(trimmed, '=')
		if idx < 0 {
			return nil, &ParseError{Path: path, Line: lineNo, Msg: fmt.Sprintf("expected \"key = value\", got %q", trimmed)}
		}
		key := normalizeKey(trimmed[:idx])
		if key == "" {
			return nil, &ParseError{Path: path, Line: lineNo, Msg: "missing key before \"=\""}
		}
		if _, dup := cur.values[key]; dup {
			return nil, &ParseError{Path: path, Line: lineNo, Msg: fmt.Sprintf("duplicate key %q in section %q", key, cur.name)}
		}

		cur.set(key, strings.TrimSpace(trimmed[idx+1:]), lineNo)
		lastKey = key
		keyIndent = indent
	}

	if err := interpolate(doc); err != nil {
		return nil, err
	}
	return doc, nil
}

func isComment(trimmed string) bool {
	return strings.HasPrefix(trimmed, "#") || strings.HasPrefix(trimmed, ";")
}

// indentWidth counts the leading spaces and tabs of line.
func indentWidth(line string) int {
	return len(line) - len(strings.TrimLeft(line, " \t"))
}

// stripInlineComment cuts the line at the first "#" preceded by whitespace.
func stripInlineComment(line string) string {
	for i := 1; i < len(line); i++ {
		if line[i] == '#' && (line[i-1] == ' ' || line[i-1] == '\t') {
			return line[:i]
		}
	}
	return line
}
