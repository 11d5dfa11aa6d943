package models

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// TopicContent is a remote topic document passed through to the view verbatim
type TopicContent map[string]any

// Title returns the "title" field of the document, or the fallback when it is missing
func (c TopicContent) Title(fallback string) string {
	if title, ok := c["title"].(string); ok && title != "" {
		return title
	}
	return fallback
}

// SlugTitle turns a slug into a display title: "frontend-developer" becomes "Frontend Developer"
func SlugTitle(slug string) string {
	words := strings.Split(strings.ToLower(slug), "-")
	for i, word := range words {
		r, size := utf8.DecodeRuneInString(word)
		if size == 0 {
			continue
		}
		words[i] = string(unicode.ToUpper(r)) + word[size:]
	}
	return strings.Join(words, " ")
}

// Question is a single interview question from the local corpus or a role file
type Question struct {
	ID         any    `json:"id,omitempty"`
	Topic      string `json:"topic,omitempty"`
	Question   string `json:"question"`
	Answer     string `json:"answer,omitempty"`
	Difficulty string `json:"difficulty,omitempty"`
}

// GeneratedQuestion is a question and answer pair produced by the completion API
type GeneratedQuestion struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}
