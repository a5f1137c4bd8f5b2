// Copyright 2024 The buildlogscan Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package cudf decodes the small, YAML-shaped-but-not-valid-YAML
// report dose3's aspcud-based resolver prints at the end of an
// "install ... build dependencies" sbuild section. The report nests
// maps, "-"-prefixed list items, and bare scalars by indentation, the
// same way YAML would, but dose3 emits it with an indentation scheme
// a real YAML parser rejects outright (list markers that don't align
// with their siblings, in particular) — so this is a small, forgiving
// recursive-descent reader rather than a `gopkg.in/yaml.v3` decode.
package cudf

import (
	"strconv"
	"strings"
)

// Node is either a map[string]Node, []Node, or string leaf.
type Node interface{}

// FindOutput locates the CUDF report embedded in an sbuild section's
// lines: the block starting at the last "output-version: " line and
// running until the next blank line, mirroring find_cudf_output.
func FindOutput(lines []string) (Node, bool) {
	start := -1
	for i := len(lines) - 1; i >= 0; i-- {
		if strings.HasPrefix(lines[i], "output-version: ") {
			start = i
			break
		}
	}
	if start < 0 {
		return nil, false
	}
	var block []string
	for i := start; i < len(lines); i++ {
		if strings.TrimSpace(lines[i]) == "" {
			break
		}
		block = append(block, strings.TrimRight(lines[i], "\r\n"))
	}
	doc, _ := parseBlock(block, 0, 0)
	return doc, true
}

// parseBlock parses the lines from index i at minimum indent indent
// as a single map, returning the map and the index past its last
// consumed line.
func parseBlock(lines []string, i, indent int) (Node, int) {
	out := map[string]Node{}
	for i < len(lines) {
		line := lines[i]
		curIndent := leadingSpaces(line)
		if curIndent < indent {
			break
		}
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			i++
			continue
		}
		colon := strings.Index(trimmed, ":")
		if colon < 0 {
			i++
			continue
		}
		key := strings.TrimSpace(trimmed[:colon])
		rest := strings.TrimSpace(trimmed[colon+1:])
		i++
		if rest != "" {
			out[key] = rest
			continue
		}
		// Nested value: either a list (next non-blank line starts
		// with "-") or a deeper map.
		nextIndent, isList := peekNested(lines, i)
		if nextIndent <= curIndent && !isList {
			out[key] = nil
			continue
		}
		if isList {
			var list Node
			list, i = parseList(lines, i, nextIndent)
			out[key] = list
		} else {
			var sub Node
			sub, i = parseBlock(lines, i, nextIndent)
			out[key] = sub
		}
	}
	return out, i
}

func parseList(lines []string, i, indent int) (Node, int) {
	var out []Node
	for i < len(lines) {
		line := lines[i]
		curIndent := leadingSpaces(line)
		if curIndent < indent {
			break
		}
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			i++
			continue
		}
		if trimmed == "-" {
			i++
			nextIndent, isList := peekNested(lines, i)
			var item Node
			if isList {
				item, i = parseList(lines, i, nextIndent)
			} else {
				item, i = parseBlock(lines, i, nextIndent)
			}
			out = append(out, item)
			continue
		}
		if strings.HasPrefix(trimmed, "- ") {
			rest := trimmed[2:]
			if colon := strings.Index(rest, ":"); colon >= 0 {
				// "- key: value" inline map item.
				sub := map[string]Node{
					strings.TrimSpace(rest[:colon]): strings.TrimSpace(rest[colon+1:]),
				}
				i++
				out = append(out, Node(sub))
				continue
			}
			out = append(out, Node(rest))
			i++
			continue
		}
		break
	}
	return out, i
}

// peekNested looks at the next non-blank line to decide whether a
// "key:" with no inline value introduces a list (its first non-blank
// child line starts with "-") or a nested map, and what indent that
// child content sits at.
func peekNested(lines []string, i int) (indent int, isList bool) {
	for j := i; j < len(lines); j++ {
		if strings.TrimSpace(lines[j]) == "" {
			continue
		}
		ind := leadingSpaces(lines[j])
		t := strings.TrimSpace(lines[j])
		return ind, t == "-" || strings.HasPrefix(t, "- ")
	}
	return 0, false
}

func leadingSpaces(s string) int {
	return len(s) - len(strings.TrimLeft(s, " "))
}

// String returns n as a string if it is a leaf, else "".
func String(n Node) string {
	s, _ := n.(string)
	return s
}

// Map returns n as a map if it is one, else nil.
func Map(n Node) map[string]Node {
	m, _ := n.(map[string]Node)
	return m
}

// List returns n as a slice if it is one, else nil.
func List(n Node) []Node {
	l, _ := n.([]Node)
	return l
}

// Get is a shorthand for Map(n)[key], nil if n isn't a map or the key
// is absent.
func Get(n Node, key string) Node {
	m := Map(n)
	if m == nil {
		return nil
	}
	return m[key]
}

// Int parses n as an integer, 0 if it isn't a numeric leaf.
func Int(n Node) int {
	i, _ := strconv.Atoi(String(n))
	return i
}
