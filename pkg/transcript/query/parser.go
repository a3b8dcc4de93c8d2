// Package query provides the transcript search query language: free text
// terms, quoted phrases, negation, and colon filters for speakers and time
// bounds.
package query

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"golang.org/x/text/cases"

	"github.com/replaykit/replay/pkg/timeutil"
	"github.com/replaykit/replay/pkg/transcript"
)

// Term is one text condition. Quoted terms match as a whole phrase; negated
// terms exclude sentences containing them.
type Term struct {
	Text    string
	Quoted  bool
	Negated bool
}

// Query is a parsed search query. All conditions must hold for a sentence to
// match (negated terms must be absent).
type Query struct {
	Terms    []Term
	Speakers []int
	AfterMs  *int
	BeforeMs *int

	// Original is the input query string.
	Original string
}

// ParseError reports where in the query parsing failed.
type ParseError struct {
	Message  string
	Position int
	Context  string
}

func (e *ParseError) Error() string {
	if e.Context != "" {
		return fmt.Sprintf("parse error at position %d: %s (near %q)", e.Position, e.Message, e.Context)
	}
	return fmt.Sprintf("parse error at position %d: %s", e.Position, e.Message)
}

// Parse parses a search query string. Supported syntax:
//
//	budget review          all terms must match
//	"the budget"           quoted phrase
//	-draft                 negated term
//	speaker:2              only sentences by speaker 2 (repeatable, ORed)
//	after:1:30 before:3:00 time bounds on sentence start (clock or seconds)
func Parse(input string) (*Query, error) {
	if strings.TrimSpace(input) == "" {
		return nil, &ParseError{Message: "empty query"}
	}

	tokens, err := tokenize(input)
	if err != nil {
		return nil, err
	}

	q := &Query{Original: input}
	for _, tok := range tokens {
		if !tok.isFilter {
			q.Terms = append(q.Terms, Term{Text: tok.value, Quoted: tok.isQuoted, Negated: tok.negated})
			continue
		}

		switch tok.key {
		case "speaker", "si":
			id, err := strconv.Atoi(tok.value)
			if err != nil {
				return nil, &ParseError{
					Message:  fmt.Sprintf("invalid speaker id %q", tok.value),
					Position: tok.position,
					Context:  tok.key + ":" + tok.value,
				}
			}
			q.Speakers = append(q.Speakers, id)
		case "after":
			ms, err := timeutil.ParseClock(tok.value)
			if err != nil {
				return nil, &ParseError{
					Message:  fmt.Sprintf("invalid time %q for 'after'", tok.value),
					Position: tok.position,
					Context:  "after:" + tok.value,
				}
			}
			q.AfterMs = &ms
		case "before":
			ms, err := timeutil.ParseClock(tok.value)
			if err != nil {
				return nil, &ParseError{
					Message:  fmt.Sprintf("invalid time %q for 'before'", tok.value),
					Position: tok.position,
					Context:  "before:" + tok.value,
				}
			}
			q.BeforeMs = &ms
		default:
			return nil, &ParseError{
				Message:  fmt.Sprintf("unknown filter %q", tok.key),
				Position: tok.position,
				Context:  tok.key + ":" + tok.value,
			}
		}
	}

	return q, nil
}

// Match reports whether a sentence satisfies every condition. Time bounds
// apply to the sentence's start: after is inclusive, before exclusive.
func (q *Query) Match(s transcript.Sentence) bool {
	if len(q.Speakers) > 0 {
		found := false
		for _, id := range q.Speakers {
			if s.SpeakerID == id {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}

	if q.AfterMs != nil && s.BeginMs < *q.AfterMs {
		return false
	}
	if q.BeforeMs != nil && s.BeginMs >= *q.BeforeMs {
		return false
	}

	fold := cases.Fold()
	text := fold.String(s.Text)
	for _, term := range q.Terms {
		contains := strings.Contains(text, fold.String(term.Text))
		if contains == term.Negated {
			return false
		}
	}
	return true
}

// Filter returns the sentences matching the query, in input order.
func Filter(sentences []transcript.Sentence, q *Query) []transcript.Sentence {
	var matches []transcript.Sentence
	for _, s := range sentences {
		if q.Match(s) {
			matches = append(matches, s)
		}
	}
	return matches
}

// token represents a parsed token from the input.
type token struct {
	value    string
	position int
	isQuoted bool
	isFilter bool
	key      string
	negated  bool
}

// tokenize breaks the input into tokens: quoted strings, negation prefixes,
// and key:value filters.
func tokenize(input string) ([]token, error) {
	var tokens []token
	pos := 0
	runes := []rune(input)
	n := len(runes)

	for pos < n {
		for pos < n && unicode.IsSpace(runes[pos]) {
			pos++
		}
		if pos >= n {
			break
		}

		startPos := pos

		// Quoted phrase.
		if runes[pos] == '"' {
			pos++
			var sb strings.Builder
			for pos < n && runes[pos] != '"' {
				if runes[pos] == '\\' && pos+1 < n {
					pos++
				}
				sb.WriteRune(runes[pos])
				pos++
			}
			if pos >= n {
				return nil, &ParseError{
					Message:  "unclosed quoted string",
					Position: startPos,
					Context:  string(runes[startPos:min(startPos+20, n)]),
				}
			}
			pos++
			tokens = append(tokens, token{value: sb.String(), position: startPos, isQuoted: true})
			continue
		}

		// Negation prefix.
		negated := false
		if runes[pos] == '-' && pos+1 < n && !unicode.IsSpace(runes[pos+1]) {
			negated = true
			pos++
			startPos = pos
		}

		var sb strings.Builder
		for pos < n && !unicode.IsSpace(runes[pos]) && runes[pos] != '"' {
			sb.WriteRune(runes[pos])
			pos++
		}
		word := sb.String()
		if word == "" {
			continue
		}

		if colonIdx := strings.Index(word, ":"); colonIdx > 0 && isFilterKey(word[:colonIdx]) {
			tokens = append(tokens, token{
				value:    word[colonIdx+1:],
				position: startPos,
				isFilter: true,
				key:      strings.ToLower(word[:colonIdx]),
				negated:  negated,
			})
			continue
		}

		tokens = append(tokens, token{value: word, position: startPos, negated: negated})
	}

	return tokens, nil
}

// isFilterKey distinguishes filter prefixes from plain words containing a
// colon, such as clock strings typed as bare terms.
func isFilterKey(key string) bool {
	switch strings.ToLower(key) {
	case "speaker", "si", "after", "before":
		return true
	}
	return false
}
