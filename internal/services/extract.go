package services

import (
	"encoding/json"
	"regexp"
	"strings"

	"github.com/skillup/backend/internal/models"
)

// maxLiteralStarts bounds how many opening brackets are tried as the start of a JSON literal
const maxLiteralStarts = 32

// fencedBlockRegex matches markdown code fences, optionally tagged as json
var fencedBlockRegex = regexp.MustCompile("(?s)```[ \t]*(?:json|JSON)?[ \t]*\r?\n?(.*?)```")

// ExtractJSON recovers a JSON document from free-form model output.
// It tries, in order: the whole trimmed text, the first fenced code block holding valid JSON,
// then the first balanced array or object literal that is valid JSON, trying at most maxLiteralStarts openers.
// This is a best-effort heuristic; models.ErrUnparseableOutput is returned when all three fail.
func ExtractJSON(text string) ([]byte, error) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return nil, models.ErrUnparseableOutput
	}

	if json.Valid([]byte(trimmed)) {
		return []byte(trimmed), nil
	}

	for _, match := range fencedBlockRegex.FindAllStringSubmatch(trimmed, -1) {
		block := strings.TrimSpace(match[1])
		if block != "" && json.Valid([]byte(block)) {
			return []byte(block), nil
		}
	}

	tried := 0
	for start := 0; start < len(trimmed) && tried < maxLiteralStarts; start++ {
		if trimmed[start] != '[' && trimmed[start] != '{' {
			continue
		}
		tried++
		end := matchingClose(trimmed, start)
		if end < 0 {
			continue
		}
		candidate := trimmed[start : end+1]
		if json.Valid([]byte(candidate)) {
			return []byte(candidate), nil
		}
	}

	return nil, models.ErrUnparseableOutput
}

// matchingClose returns the index of the bracket closing the one at start, skipping string literals, or -1
func matchingClose(text string, start int) int {
	var stack []byte
	inString := false
	escaped := false

	for i := start; i < len(text); i++ {
		c := text[i]

		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}

		switch c {
		case '"':
			inString = true
		case '[':
			stack = append(stack, ']')
		case '{':
			stack = append(stack, '}')
		case ']', '}':
			if len(stack) == 0 || stack[len(stack)-1] != c {
				return -1
			}
			stack = stack[:len(stack)-1]
			if len(stack) == 0 {
				return i
			}
		}
	}

	return -1
}
