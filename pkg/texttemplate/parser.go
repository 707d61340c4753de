// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

package texttemplate

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

const (
	period   = '.'
	lbracket = '['
	rbracket = ']'
	lbrace   = '{'
	rbrace   = '}'
)

// Parse never fails: text that looks like an expression but does not
// follow the grammar is kept as literal text.
func Parse(data string) *NodeRoot {
	var nodes []interface{}
	textStart := 0

	for i := 0; i < len(data); {
		if data[i] == '$' && i+1 < len(data) && data[i+1] == lbrace && (i == 0 || data[i-1] != '\\') {
			if code, end, ok := parseCode(data, i); ok {
				if i > textStart {
					nodes = append(nodes, &NodeText{Content: data[textStart:i]})
				}
				nodes = append(nodes, code)
				i = end
				textStart = end
				continue
			}
		}
		i++
	}

	if textStart < len(data) {
		nodes = append(nodes, &NodeText{Content: data[textStart:]})
	}

	return &NodeRoot{Items: nodes}
}

// parseCode expects data[start:] to begin with "${".
func parseCode(data string, start int) (*NodeCode, int, bool) {
	pos := start + 2
	double := pos < len(data) && data[pos] == lbrace
	if double {
		pos++
	}

	path, pos, ok := parseInner(data, pos)
	if !ok {
		return nil, 0, false
	}

	closing := "}"
	if double {
		closing = "}}"
	}
	if !strings.HasPrefix(data[pos:], closing) {
		return nil, 0, false
	}
	end := pos + len(closing)

	return &NodeCode{Content: data[start:end], Path: path, Double: double}, end, true
}

func parseInner(data string, pos int) (string, int, bool) {
	word, pos := parseWord(data, pos)
	if len(word) == 0 {
		return "", 0, false
	}

	var path strings.Builder
	path.WriteString(word)

	for pos < len(data) {
		switch data[pos] {
		case period:
			word, pos = parseWord(data, pos+1)
			if len(word) == 0 {
				return "", 0, false
			}

		case lbracket:
			word, pos = parseWord(data, pos+1)
			if len(word) == 0 || pos >= len(data) || data[pos] != rbracket {
				return "", 0, false
			}
			pos++

		default:
			return path.String(), pos, true
		}

		path.WriteByte(period)
		path.WriteString(word)
	}

	return path.String(), pos, true
}

// parseWord reads a path segment. A segment made only of spaces is not a
// word, so "${ }" stays literal.
func parseWord(data string, pos int) (string, int) {
	start := pos
	for pos < len(data) {
		ch, size := utf8.DecodeRuneInString(data[pos:])
		if !isWordChar(ch) {
			break
		}
		pos += size
	}
	if strings.TrimSpace(data[start:pos]) == "" {
		return "", pos
	}
	return data[start:pos], pos
}

// isWordChar accepts identifier characters plus '-', '/', ' ' and '\'.
// Shell forms such as ${HOME:-x} or ${#arr} end the match early and are
// kept as literal text.
func isWordChar(ch rune) bool {
	switch ch {
	case '_', '-', '/', ' ', '\\':
		return true
	case utf8.RuneError:
		return false
	default:
		return unicode.IsLetter(ch) || unicode.IsDigit(ch) || unicode.IsMark(ch)
	}
}
